package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vault/errors"
)

// ascendBtree collects all btree items within [start, end) in ascending
// order. A nil start or end is unbounded.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(i btree.Item) bool {
		items = append(items, i.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return items
}

// descendBtree collects all btree items within [start, end) in descending
// order. A nil start or end is unbounded.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(i btree.Item) bool {
		k := i.(keyer).Key()
		if end != nil && bytes.Compare(k, end) >= 0 {
			return true
		}
		if start != nil && bytes.Compare(k, start) < 0 {
			return false
		}
		items = append(items, i.(keyer))
		return true
	}
	if end == nil {
		bt.Descend(collect)
	} else {
		bt.DescendLessOrEqual(entry{key: end}, collect)
	}
	return items
}

// mergeIterator combines the cached items with the parent iterator. Cached
// entries shadow the parent ones with the same key and deleted entries are
// skipped.
type mergeIterator struct {
	items     []keyer
	parent    Iterator
	ascending bool

	// lookahead value of the parent iterator
	pkey, pval []byte
	pdone      bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []keyer, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
}

func (m *mergeIterator) peekParent() error {
	if m.pdone || m.pkey != nil {
		return nil
	}
	k, v, err := m.parent.Next()
	switch {
	case err == nil:
		m.pkey, m.pval = k, v
	case errors.ErrIteratorDone.Is(err):
		m.pdone = true
	default:
		return err
	}
	return nil
}

// before returns true if key a comes before b in the iteration order.
func (m *mergeIterator) before(a, b []byte) bool {
	cmp := bytes.Compare(a, b)
	if m.ascending {
		return cmp < 0
	}
	return cmp > 0
}

func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}
		if len(m.items) == 0 {
			if m.pdone {
				return nil, nil, errors.ErrIteratorDone
			}
			k, v := m.pkey, m.pval
			m.pkey, m.pval = nil, nil
			return k, v, nil
		}

		item := m.items[0]
		if !m.pdone && m.before(m.pkey, item.Key()) {
			k, v := m.pkey, m.pval
			m.pkey, m.pval = nil, nil
			return k, v, nil
		}

		// cached entry wins, drop the shadowed parent value
		if !m.pdone && bytes.Equal(m.pkey, item.Key()) {
			m.pkey, m.pval = nil, nil
		}
		m.items = m.items[1:]
		if e, ok := item.(entry); ok && !e.deleted {
			return e.key, e.value, nil
		}
	}
}

func (m *mergeIterator) Release() {
	m.parent.Release()
	m.items = nil
}
