package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	vault.Persistent
	Validate() error
}

// ModelSlicePtr is a *[]M or *[]*M where M implements Model. The element
// type is checked at runtime.
type ModelSlicePtr interface{}

// ModelBucket stores models of one type under the "<name>:" key prefix and
// maintains their secondary indexes.
type ModelBucket interface {
	// One loads the model stored under key into dest. It fails with
	// ErrNotFound for a missing key and ErrType when dest cannot hold
	// the bucket model.
	One(db vault.ReadOnlyKVStore, key []byte, dest Model) error

	// Put validates and stores m. An empty key is replaced with the next
	// value of the bucket sequence. The key used is returned.
	Put(db vault.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes the model and its index entries. ErrNotFound if
	// missing.
	Delete(db vault.KVStore, key []byte) error

	// Has returns ErrNotFound when nothing is stored under key.
	Has(db vault.ReadOnlyKVStore, key []byte) error

	// ByIndex appends to dest every model indexed under key and returns
	// their primary keys.
	ByIndex(db vault.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Register exposes the bucket and its indexes as query paths.
	Register(name string, r vault.QueryRouter)
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// NewModelBucket returns a ModelBucket instance. This implementation is
// storing entities directly in the KVStore, each under a key prefixed with
// the bucket name.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   tp.Elem(),
		indexes: make(map[string]*nativeIndex),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIDSequence configures the bucket to use the given sequence instance
// for generating ID.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = &s
	}
}

// WithNativeIndex configures the bucket to build an index with given name
// using the database native ordering.
func WithNativeIndex(name string, indexer Indexer) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("duplicated index name: " + name)
		}
		mb.indexes[name] = &nativeIndex{
			bucket:  mb.name,
			name:    name,
			indexer: indexer,
		}
	}
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	idSeq   *Sequence
	indexes map[string]*nativeIndex
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model).Interface().(Model)
}

func (mb *modelBucket) One(db vault.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Has(db vault.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db vault.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		if mb.idSeq == nil {
			return nil, errors.Wrap(errors.ErrHuman, "bucket has no sequence, key is required")
		}
		id, err := mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "next id")
		}
		key = id
	}

	var prev Model
	if len(mb.indexes) > 0 {
		prev = mb.newModel()
		switch err := mb.One(db, key, prev); {
		case err == nil:
		case errors.ErrNotFound.Is(err):
			prev = nil
		default:
			return nil, errors.Wrap(err, "load previous state")
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	for _, ix := range mb.indexes {
		if err := ix.update(db, key, prev, m); err != nil {
			return nil, errors.Wrapf(err, "update %s index", ix.name)
		}
	}
	return key, nil
}

func (mb *modelBucket) Delete(db vault.KVStore, key []byte) error {
	prev := mb.newModel()
	if err := mb.One(db, key, prev); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	for _, ix := range mb.indexes {
		if err := ix.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "update %s index", ix.name)
		}
	}
	return nil
}

func (mb *modelBucket) ByIndex(db vault.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error) {
	ix, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "unknown index %q", indexName)
	}

	destVal := reflect.ValueOf(dest)
	if destVal.Kind() != reflect.Ptr || destVal.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to slice, got %T", dest)
	}
	slice := destVal.Elem()
	elemType := slice.Type().Elem()
	if elemType != mb.model && elemType != reflect.PtrTo(mb.model) {
		return nil, errors.Wrapf(errors.ErrType, "cannot load %s into %T", mb.model, dest)
	}

	ids, err := ix.ids(db, key)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		m := mb.newModel()
		if err := mb.One(db, id, m); err != nil {
			return nil, errors.Wrapf(err, "indexed entity %x", id)
		}
		v := reflect.ValueOf(m)
		if elemType == mb.model {
			v = v.Elem()
		}
		slice = reflect.Append(slice, v)
	}
	destVal.Elem().Set(slice)
	return ids, nil
}

// Register adds a query handler for the bucket under "/<name>" and one
// for every index under "/<name>/<index name>".
func (mb *modelBucket) Register(name string, r vault.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	r.Register("/"+name, vault.QueryFunc(mb.query))
	for _, ix := range mb.indexes {
		ix := ix
		r.Register("/"+name+"/"+ix.name, vault.QueryFunc(func(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
			if mod != vault.KeyQueryMod {
				return nil, errors.Wrapf(errors.ErrInput, "unsupported index query mod %q", mod)
			}
			ids, err := ix.ids(db, data)
			if err != nil {
				return nil, err
			}
			res := make([]vault.Model, 0, len(ids))
			for _, id := range ids {
				raw, err := db.Get(mb.dbKey(id))
				if err != nil {
					return nil, err
				}
				res = append(res, vault.Pair(id, raw))
			}
			return res, nil
		}))
	}
}

// query returns entities by primary key. Returned keys are not prefixed
// with the bucket name.
func (mb *modelBucket) query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	switch mod {
	case vault.KeyQueryMod:
		raw, err := db.Get(mb.dbKey(data))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []vault.Model{vault.Pair(data, raw)}, nil
	case vault.PrefixQueryMod:
		found, err := queryPrefix(db, mb.dbKey(data))
		if err != nil {
			return nil, err
		}
		for i := range found {
			found[i].Key = found[i].Key[len(mb.prefix):]
		}
		return found, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
