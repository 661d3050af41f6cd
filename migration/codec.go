package migration

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	proto "github.com/gogo/protobuf/proto"
)

// Schema declares the maintained schema version of a single package. The
// structure is hand-maintained together with codec.proto.
type Schema struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Pkg holds the name of the package that this schema version refers
	// to.
	Pkg string `protobuf:"bytes,2,opt,name=pkg,proto3" json:"pkg,omitempty"`
	// Version holds the highest supported schema version.
	Version uint32 `protobuf:"varint,3,opt,name=version,proto3" json:"version,omitempty"`
}

func (s *Schema) GetMetadata() *fibon.Metadata { return s.Metadata }

func (s *Schema) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(s.Pkg) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pkg")
	}
	if s.Version < 1 {
		return errors.Wrap(errors.ErrEmpty, "version")
	}
	return nil
}

func (s *Schema) Marshal() ([]byte, error) {
	return proto.Marshal((*schemaPB)(s))
}

func (s *Schema) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*schemaPB)(s))
}

type schemaPB Schema

func (s *schemaPB) Reset()         { *s = schemaPB{} }
func (s *schemaPB) String() string { return proto.CompactTextString(s) }
func (*schemaPB) ProtoMessage()    {}
