package emergency

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// EmergencyApprovals is the set of emergency signers that approved the
// release of a lock. It is stored under the lock id.
type EmergencyApprovals struct {
	LockID    []byte          `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id"`
	Approvers []vault.Address `protobuf:"bytes,2,rep,name=approvers,proto3" json:"approvers"`
}

var _ orm.Model = (*EmergencyApprovals)(nil)

func (a *EmergencyApprovals) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "LockID", orm.ValidateID(a.LockID))
	for i, addr := range a.Approvers {
		if err := addr.Validate(); err != nil {
			errs = errors.AppendField(errs, "Approvers", errors.Wrapf(err, "approver %d", i))
			continue
		}
		for _, prev := range a.Approvers[:i] {
			if prev.Equals(addr) {
				errs = errors.AppendField(errs, "Approvers", errors.Wrapf(errors.ErrDuplicate, "approver %s", addr))
			}
		}
	}
	return errs
}

// Has returns true if given address already approved.
func (a *EmergencyApprovals) Has(addr vault.Address) bool {
	for _, ap := range a.Approvers {
		if ap.Equals(addr) {
			return true
		}
	}
	return false
}

type emergencyApprovalsCodec EmergencyApprovals

func (m *emergencyApprovalsCodec) Reset()         { *m = emergencyApprovalsCodec{} }
func (m *emergencyApprovalsCodec) String() string { return proto.CompactTextString(m) }
func (*emergencyApprovalsCodec) ProtoMessage()    {}

func (a *EmergencyApprovals) Marshal() ([]byte, error) {
	return proto.Marshal((*emergencyApprovalsCodec)(a))
}

func (a *EmergencyApprovals) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*emergencyApprovalsCodec)(a))
}

// NewBucket returns a bucket of approvals keyed by the lock id.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("approvals", &EmergencyApprovals{})
}

// Load returns the approvals of given lock. An empty set is returned for a
// lock that was never approved.
func Load(db vault.ReadOnlyKVStore, lockID []byte) (*EmergencyApprovals, error) {
	var a EmergencyApprovals
	switch err := NewBucket().One(db, lockID, &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return &EmergencyApprovals{LockID: lockID}, nil
	default:
		return nil, err
	}
}
