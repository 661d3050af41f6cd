package multisig

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
	"github.com/fibondev/fibon-token/orm"
)

func init() {
	migration.MustRegister(1, &Wallet{}, migration.NoModification)
	migration.MustRegister(1, &Transaction{}, migration.NoModification)
}

var _ orm.Model = (*Wallet)(nil)
var _ orm.Model = (*Transaction)(nil)

// Validate enforces the wallet invariants: at least one owner, no
// duplicates, and a requirement between one and the owner count.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateOwners(w.Owners); err != nil {
		return err
	}
	if w.Required < 1 {
		return errors.Wrap(errors.ErrMsg, "required must be at least one")
	}
	if int(w.Required) > len(w.Owners) {
		return errors.Wrap(errors.ErrMsg, "required exceeds owner count")
	}
	return nil
}

func validateOwners(owners []fibon.Address) error {
	if len(owners) == 0 {
		return errors.Wrap(errors.ErrMsg, "no owners")
	}
	seen := make(map[string]struct{}, len(owners))
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(err, "owner #%d", i)
		}
		if _, ok := seen[string(o)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "owner #%d", i)
		}
		seen[string(o)] = struct{}{}
	}
	return nil
}

// IsOwner returns true if given address is one of the wallet owners.
func (w *Wallet) IsOwner(addr fibon.Address) bool {
	for _, o := range w.Owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}

// Validate enforces the transaction invariants. A transaction must carry a
// payload: either a funds transfer or a raw message.
func (t *Transaction) Validate() error {
	if err := t.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(t.WalletID) != 8 {
		return errors.Wrap(errors.ErrInput, "wallet id")
	}
	if t.Amount == nil && len(t.RawMsg) == 0 {
		return errors.Wrap(errors.ErrEmpty, "transaction without a payload")
	}
	if t.Amount != nil {
		if err := t.Amount.Validate(); err != nil {
			return errors.Wrap(err, "amount")
		}
		if !t.Amount.IsPositive() {
			return errors.Wrap(errors.ErrAmount, "non-positive amount")
		}
		if err := t.Destination.Validate(); err != nil {
			return errors.Wrap(err, "destination")
		}
	}
	for i, a := range t.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "approval #%d", i)
		}
	}
	return nil
}

// HasApproved returns true if given address already confirmed this
// transaction.
func (t *Transaction) HasApproved(addr fibon.Address) bool {
	for _, a := range t.Approvals {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// NewWalletBucket returns a bucket for the wallets, with an ID sequence.
func NewWalletBucket() orm.ModelBucket {
	b := orm.NewModelBucket("wlt", &Wallet{},
		orm.WithIDSequence(orm.NewSequence("wlt", "id")))
	return migration.NewModelBucket("multisig", b)
}

// NewTransactionBucket returns a bucket for the wallet transactions, with
// an ID sequence.
func NewTransactionBucket() orm.ModelBucket {
	b := orm.NewModelBucket("wtx", &Transaction{},
		orm.WithIDSequence(orm.NewSequence("wtx", "id")))
	return migration.NewModelBucket("multisig", b)
}

// RegisterQuery registers the buckets for queries.
func RegisterQuery(qr fibon.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
	NewTransactionBucket().Register("transactions", qr)
}

// MultiSigCondition returns the condition under which the wallet funds are
// held. Satisfying this condition means the wallet approved the operation.
func MultiSigCondition(id []byte) fibon.Condition {
	return fibon.NewCondition("multisig", "usage", id)
}
