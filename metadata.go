package fibon

import (
	"github.com/fibondev/fibon-token/errors"
	proto "github.com/gogo/protobuf/proto"
)

// Metadata is carried by every persisted model and every message. It holds
// the schema version of the entity so that the data can be migrated when the
// code evolves.
//
// The structure is hand-maintained together with codec.proto. Serialization
// is delegated to gogo/protobuf through a method-less alias type, which
// routes around the Marshaler interface check and into the reflection
// marshaler.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if the metadata is not valid. Nil metadata is
// not valid either, which removes the need of a nil check from every
// caller.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version missing")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// implementing the orm.Model interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

func (m *Metadata) Marshal() ([]byte, error) {
	return proto.Marshal((*metadataPB)(m))
}

func (m *Metadata) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*metadataPB)(m))
}

type metadataPB Metadata

func (m *metadataPB) Reset()         { *m = metadataPB{} }
func (m *metadataPB) String() string { return proto.CompactTextString(m) }
func (*metadataPB) ProtoMessage()    {}
