package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

// record is a minimal model used to exercise the bucket.
type record struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Value int64  `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
}

type recordCodec record

func (m *recordCodec) Reset()         { *m = recordCodec{} }
func (m *recordCodec) String() string { return proto.CompactTextString(m) }
func (*recordCodec) ProtoMessage()    {}

func (r *record) Marshal() ([]byte, error) { return proto.Marshal((*recordCodec)(r)) }
func (r *record) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*recordCodec)(r)) }

func (r *record) Validate() error {
	if len(r.Owner) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return nil
}

func newRecordBucket() ModelBucket {
	return NewModelBucket("record", &record{},
		WithIDSequence(NewSequence("record", "id")),
		WithNativeIndex("owner", func(m Model) ([][]byte, error) {
			r, ok := m.(*record)
			if !ok {
				return nil, errors.Wrapf(errors.ErrType, "%T", m)
			}
			return [][]byte{r.Owner}, nil
		}),
	)
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := newRecordBucket()

	key, err := b.Put(db, nil, &record{Owner: []byte("alice"), Value: 5})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), key)

	key2, err := b.Put(db, nil, &record{Owner: []byte("bob"), Value: 7})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(2), key2)

	var got record
	assert.Nil(t, b.One(db, key, &got))
	assert.Equal(t, record{Owner: []byte("alice"), Value: 5}, got)

	assert.Nil(t, b.Has(db, key2))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, EncodeSequence(3)))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, EncodeSequence(3), &got))

	_, err = b.Put(db, nil, &record{Value: 1})
	assert.IsErr(t, errors.ErrEmpty, err)
}

func TestModelBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := newRecordBucket()

	k1, err := b.Put(db, nil, &record{Owner: []byte("alice"), Value: 1})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &record{Owner: []byte("alice"), Value: 2})
	assert.Nil(t, err)
	k3, err := b.Put(db, nil, &record{Owner: []byte("bob"), Value: 3})
	assert.Nil(t, err)

	var alice []record
	ids, err := b.ByIndex(db, "owner", []byte("alice"), &alice)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k1, k2}, ids)
	assert.Equal(t, 2, len(alice))

	// moving an entity to another owner updates the index
	_, err = b.Put(db, k2, &record{Owner: []byte("bob"), Value: 2})
	assert.Nil(t, err)
	var bob []*record
	ids, err = b.ByIndex(db, "owner", []byte("bob"), &bob)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k2, k3}, ids)

	assert.Nil(t, b.Delete(db, k3))
	ids, err = b.ByIndex(db, "owner", []byte("bob"), &bob)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k2}, ids)

	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, k3))

	_, err = b.ByIndex(db, "unknown", []byte("bob"), &bob)
	assert.IsErr(t, errors.ErrHuman, err)
	var wrong []int
	_, err = b.ByIndex(db, "owner", []byte("bob"), &wrong)
	assert.IsErr(t, errors.ErrType, err)
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := newRecordBucket()
	qr := vault.NewQueryRouter()
	b.Register("records", qr)

	k1, err := b.Put(db, nil, &record{Owner: []byte("alice"), Value: 1})
	assert.Nil(t, err)
	_, err = b.Put(db, nil, &record{Owner: []byte("bob"), Value: 2})
	assert.Nil(t, err)

	res, err := qr.Handler("/records").Query(db, vault.KeyQueryMod, k1)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, k1, res[0].Key)

	res, err = qr.Handler("/records").Query(db, vault.PrefixQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	res, err = qr.Handler("/records/owner").Query(db, vault.KeyQueryMod, []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))

	_, err = qr.Handler("/records").Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		end    []byte
	}{
		"normal":                 {[]byte{1, 3, 4}, []byte{1, 3, 5}},
		"normal short":           {[]byte{79}, []byte{80}},
		"empty cases":            {nil, nil},
		"roll-over example 1":    {[]byte{17, 28, 255}, []byte{17, 29, 0}},
		"pathological roll-over": {[]byte{255, 255}, nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.prefix, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestSequenceInModelBucket(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("lock", "id")

	latest, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), latest)

	for want := int64(1); want <= 3; want++ {
		got, err := s.NextInt(db)
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}

	// another sequence is independent
	other := NewSequence("vesting", "id")
	val, err := other.NextVal(db)
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), val)

	_, err = DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)
}
