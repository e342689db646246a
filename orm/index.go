package orm

import (
	"bytes"
	"math"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const nativeIdxPrefix = "_x."

// Indexer computes index values for given model. A model can be indexed
// under any number of values, including none.
type Indexer func(Model) ([][]byte, error)

// nativeIndex is an index implementation that is using a database native
// storage and query in order to maintain and provide access to an index.
//
// Index key is in format:
//
//	_x.#<bucket>#<index name>#<value>#<entity id>
//
// where # is a single byte length of the following chunk.
type nativeIndex struct {
	bucket  string
	name    string
	indexer Indexer
}

func (ix *nativeIndex) key(value, id []byte) ([]byte, error) {
	chunks := [][]byte{[]byte(ix.bucket), []byte(ix.name), value}
	if id != nil {
		chunks = append(chunks, id)
	}
	return packNativeIdxKey(chunks)
}

// update rewrites the index entries of id. A nil prev inserts, a nil next
// deletes.
func (ix *nativeIndex) update(db vault.KVStore, id []byte, prev, next Model) error {
	if err := ix.each(prev, id, db.Delete); err != nil {
		return err
	}
	return ix.each(next, id, func(k []byte) error { return db.Set(k, []byte{}) })
}

// each calls fn with every index key of m.
func (ix *nativeIndex) each(m Model, id []byte, fn func(key []byte) error) error {
	if m == nil {
		return nil
	}
	values, err := ix.indexer(m)
	if err != nil {
		return errors.Wrapf(err, "index %s", ix.name)
	}
	for _, v := range values {
		k, err := ix.key(v, id)
		if err != nil {
			return err
		}
		if err := fn(k); err != nil {
			return errors.Wrapf(err, "index %s", ix.name)
		}
	}
	return nil
}

// ids returns the primary keys of all entities indexed under given value,
// ordered by the primary key.
func (ix *nativeIndex) ids(db vault.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	start, err := ix.key(value, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build index key")
	}
	// MaxUint8 is never used as a chunk length so it bounds the range.
	end := make([]byte, len(start)+1)
	copy(end, start)
	end[len(end)-1] = math.MaxUint8

	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	entries, err := consumeIterator(it)
	if err != nil {
		return nil, err
	}
	ids := make([][]byte, 0, len(entries))
	for _, e := range entries {
		chunks, err := unpackNativeIdxKey(e.Key)
		if err != nil {
			return nil, err
		}
		if len(chunks) != 4 {
			return nil, errors.Wrapf(errors.ErrDatabase, "malformed index key %X", e.Key)
		}
		ids = append(ids, chunks[3])
	}
	return ids, nil
}

// maxChunk leaves MaxUint8 free as the upper bound of range scans.
const maxChunk = math.MaxUint8 - 1

func packNativeIdxKey(chunks [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(nativeIdxPrefix)
	for i, c := range chunks {
		if len(c) > maxChunk {
			return nil, errors.Wrapf(errors.ErrInput, "index key chunk %d is %d bytes, max %d", i, len(c), maxChunk)
		}
		buf.WriteByte(byte(len(c)))
		buf.Write(c)
	}
	return buf.Bytes(), nil
}

func unpackNativeIdxKey(key []byte) ([][]byte, error) {
	rest := bytes.TrimPrefix(key, []byte(nativeIdxPrefix))
	if len(rest) == len(key) {
		return nil, errors.Wrapf(errors.ErrInput, "%X is not an index key", key)
	}
	var chunks [][]byte
	for len(rest) != 0 {
		n := int(rest[0]) + 1
		if len(rest) < n {
			return nil, errors.Wrapf(errors.ErrInput, "truncated index key %X", key)
		}
		chunks = append(chunks, rest[1:n])
		rest = rest[n:]
	}
	return chunks, nil
}
