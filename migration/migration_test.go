package migration

import (
	"testing"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/orm"
	"github.com/fibondev/fibon-token/store"
	proto "github.com/gogo/protobuf/proto"
)

// Ticket is a payload used to exercise migrations. It is registered with
// its own migration chain in each test through a private register to keep
// tests independent from the global state.
type Ticket struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    []byte          `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
}

var _ Migratable = (*Ticket)(nil)
var _ orm.Model = (*Ticket)(nil)

func (t *Ticket) GetMetadata() *fibon.Metadata { return t.Metadata }

func (t *Ticket) Validate() error {
	return t.Metadata.Validate()
}

func (t *Ticket) Marshal() ([]byte, error)   { return proto.Marshal((*ticketPB)(t)) }
func (t *Ticket) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*ticketPB)(t)) }

type ticketPB Ticket

func (t *ticketPB) Reset()         { *t = ticketPB{} }
func (t *ticketPB) String() string { return proto.CompactTextString(t) }
func (*ticketPB) ProtoMessage()    {}

func TestRegisterApply(t *testing.T) {
	r := newRegister()
	r.MustRegister(1, &Ticket{}, NoModification)
	r.MustRegister(2, &Ticket{}, func(db fibon.ReadOnlyKVStore, m Migratable) error {
		m.(*Ticket).Owner = []byte("migrated")
		return nil
	})

	db := store.MemStore()

	tk := &Ticket{Metadata: &fibon.Metadata{Schema: 1}}
	if err := r.Apply(db, tk, 2); err != nil {
		t.Fatalf("apply: %+v", err)
	}
	if tk.Metadata.Schema != 2 {
		t.Fatalf("schema not bumped: %d", tk.Metadata.Schema)
	}
	if string(tk.Owner) != "migrated" {
		t.Fatalf("migration not applied: %q", tk.Owner)
	}

	// Applying again is a noop.
	if err := r.Apply(db, tk, 2); err != nil {
		t.Fatalf("reapply: %+v", err)
	}
	if string(tk.Owner) != "migrated" {
		t.Fatalf("unexpected payload change: %q", tk.Owner)
	}
}

func TestRegisterApplyCannotDowngrade(t *testing.T) {
	r := newRegister()
	r.MustRegister(1, &Ticket{}, NoModification)

	db := store.MemStore()
	tk := &Ticket{Metadata: &fibon.Metadata{Schema: 4}}
	if err := r.Apply(db, tk, 1); !errors.ErrSchema.Is(err) {
		t.Fatalf("want schema error, got %+v", err)
	}
}

func TestRegisterVersionGap(t *testing.T) {
	r := newRegister()
	r.MustRegister(1, &Ticket{}, NoModification)

	defer func() {
		if recover() == nil {
			t.Fatal("registering with a version gap must panic")
		}
	}()
	r.MustRegister(3, &Ticket{}, NoModification)
}

func TestCurrentSchema(t *testing.T) {
	db := store.MemStore()
	MustInitPkg(db, "tickets")

	ver, err := CurrentSchema(db, "tickets")
	if err != nil {
		t.Fatalf("current schema: %+v", err)
	}
	if ver != 1 {
		t.Fatalf("want version 1, got %d", ver)
	}

	if _, err := CurrentSchema(db, "unknown"); !errors.ErrSchema.Is(err) {
		t.Fatalf("want schema error, got %+v", err)
	}
}

func TestSchemaMigratingModelBucket(t *testing.T) {
	db := store.MemStore()
	MustInitPkg(db, "tickets")

	b := NewModelBucket("tickets", orm.NewModelBucket("tickets", &Ticket{}))

	// A zero schema is set to the current package version on put.
	key, err := b.Put(db, []byte("t1"), &Ticket{Metadata: &fibon.Metadata{}})
	if err != nil {
		t.Fatalf("put: %+v", err)
	}

	var got Ticket
	if err := b.One(db, key, &got); err != nil {
		t.Fatalf("one: %+v", err)
	}
	if got.Metadata.Schema != 1 {
		t.Fatalf("want schema 1, got %d", got.Metadata.Schema)
	}

	// An entity from the future must be rejected.
	_, err = b.Put(db, []byte("t2"), &Ticket{Metadata: &fibon.Metadata{Schema: 9}})
	if !errors.ErrSchema.Is(err) {
		t.Fatalf("want schema error, got %+v", err)
	}
}
