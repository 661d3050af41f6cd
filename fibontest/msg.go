package fibontest

import (
	fibon "github.com/fibondev/fibon-token"
)

// Msg is a mock implementing fibon.Msg interface.
type Msg struct {
	// RoutePath is returned by the Path method.
	RoutePath string
	// Serialized is returned by the Marshal method.
	Serialized []byte
	// Err if set is returned by Validate, Marshal and Unmarshal.
	Err error
}

var _ fibon.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Serialized, nil
}

func (m *Msg) Unmarshal(raw []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Serialized = raw
	return nil
}
