package orm

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// prefixRange turns a prefix into a (start, end) range. The start is the
// given prefix value and the end is calculated by adding 1 bit to the start
// value. Nil is not allowed as prefix.
// Example: []byte{1, 3, 4} becomes []byte{1, 3, 5}
//
//	[]byte{15, 42, 255, 255} becomes []byte{15, 43, 0, 0}
//
// In case of an overflow the end is set to nil.
// Example: []byte{255, 255, 255, 255} becomes nil
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
	}
	return prefix, nil
}

// consumeIterator reads all remaining entries and releases the iterator.
func consumeIterator(it vault.Iterator) ([]vault.Model, error) {
	defer it.Release()

	var res []vault.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, vault.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// queryPrefix returns all entries with a key starting with given prefix.
func queryPrefix(db vault.ReadOnlyKVStore, prefix []byte) ([]vault.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	return consumeIterator(it)
}
