package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// ResultSet is one half of a query response. The ABCI Key field holds
// the keys and the Value field the values, in the same order.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetCodec ResultSet

func (m *resultSetCodec) Reset()         { *m = resultSetCodec{} }
func (m *resultSetCodec) String() string { return proto.CompactTextString(m) }
func (*resultSetCodec) ProtoMessage()    {}

func (r *ResultSet) Marshal() ([]byte, error) { return proto.Marshal((*resultSetCodec)(r)) }
func (r *ResultSet) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*resultSetCodec)(r)) }

func ResultsFromKeys(models []vault.Model) *ResultSet {
	return collect(models, func(m vault.Model) []byte { return m.Key })
}

func ResultsFromValues(models []vault.Model) *ResultSet {
	return collect(models, func(m vault.Model) []byte { return m.Value })
}

func collect(models []vault.Model, field func(vault.Model) []byte) *ResultSet {
	set := ResultSet{Results: make([][]byte, 0, len(models))}
	for _, m := range models {
		set.Results = append(set.Results, field(m))
	}
	return &set
}

// JoinResults pairs keys with values again.
func JoinResults(keys, values *ResultSet) ([]vault.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values",
			len(keys.Results), len(values.Results))
	}
	models := make([]vault.Model, 0, len(keys.Results))
	for i, k := range keys.Results {
		models = append(models, vault.Pair(k, values.Results[i]))
	}
	return models, nil
}

// UnmarshalOneResult decodes the first entry of a serialized ResultSet
// into o. An empty set gives ErrNotFound.
func UnmarshalOneResult(raw []byte, o vault.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	if len(set.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result set")
	}
	return o.Unmarshal(set.Results[0])
}
