package fibon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondition(t *testing.T) {
	other := NewCondition("some", "such", []byte("data"))

	cases := map[string]struct {
		perm      Condition
		isErr     bool
		ext       string
		typ       string
		data      []byte
		serialize string
	}{
		"valid": {
			perm:      NewCondition("fooo", "bar", []byte{1, 2, 3, 4}),
			ext:       "fooo",
			typ:       "bar",
			data:      []byte{1, 2, 3, 4},
			serialize: "fooo/bar/01020304",
		},
		"nil data": {
			perm:  NewCondition("fooo", "bar", nil),
			isErr: true,
		},
		"emoji not permitted": {
			perm:  NewCondition("he🤣", "bar", []byte{1, 2, 3, 4}),
			isErr: true,
		},
		"newline in data is fine": {
			perm:      NewCondition("fooo", "bar", []byte{0xAB, 0x20}),
			ext:       "fooo",
			typ:       "bar",
			data:      []byte{0xAB, 0x20},
			serialize: "fooo/bar/AB20",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.perm.Parse()
			if tc.isErr {
				assert.Error(t, err)
				assert.Error(t, tc.perm.Validate())
				return
			}
			assert.NoError(t, err)
			assert.NoError(t, tc.perm.Validate())
			assert.Equal(t, tc.ext, ext)
			assert.Equal(t, tc.typ, typ)
			assert.Equal(t, tc.data, data)
			assert.Equal(t, tc.serialize, tc.perm.String())

			addr := tc.perm.Address()
			assert.NoError(t, addr.Validate())
			assert.True(t, tc.perm.Equals(tc.perm))
			assert.False(t, tc.perm.Equals(other))
		})
	}
}

func TestConditionJSON(t *testing.T) {
	cond := NewCondition("fooo", "bar", []byte{0xCA, 0xFE})

	raw, err := json.Marshal(cond)
	assert.NoError(t, err)
	assert.Equal(t, `"fooo/bar/CAFE"`, string(raw))

	var got Condition
	assert.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, cond.Equals(got))

	var empty Condition
	assert.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.Nil(t, empty)
}

func TestAddress(t *testing.T) {
	cond := NewCondition("fooo", "bar", []byte{1, 2, 3, 4})
	addr := cond.Address()

	assert.Equal(t, AddressLength, len(addr))
	assert.NoError(t, addr.Validate())
	assert.True(t, addr.Equals(addr.Clone()))

	var short Address = []byte{1, 2, 3}
	assert.Error(t, short.Validate())

	// Hashing nil must not produce an address.
	assert.Nil(t, NewAddress(nil))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		isErr    bool
		wantAddr Address
	}{
		"default hex": {
			json:     `"8d0d55645f1241a7a16d7bc198b9879a2c1f8615"`,
			wantAddr: fromHex(t, "8d0d55645f1241a7a16d7bc198b9879a2c1f8615"),
		},
		"hex prefix": {
			json:     `"hex:8d0d55645f1241a7a16d7bc198b9879a2c1f8615"`,
			wantAddr: fromHex(t, "8d0d55645f1241a7a16d7bc198b9879a2c1f8615"),
		},
		"cond prefix": {
			json:     `"cond:fooo/bar/636f6e646974696f6e64617461"`,
			wantAddr: NewCondition("fooo", "bar", []byte("conditiondata")).Address(),
		},
		"empty": {
			json:     `""`,
			wantAddr: nil,
		},
		"invalid length": {
			json:  `"8d0d5564"`,
			isErr: true,
		},
		"unknown format": {
			json:  `"nope:8d0d55645f1241a7a16d7bc198b9879a2c1f8615"`,
			isErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if tc.isErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tc.wantAddr.Equals(a))
		})
	}
}

func fromHex(t *testing.T, s string) Address {
	t.Helper()
	var a Address
	if err := json.Unmarshal([]byte(`"`+s+`"`), &a); err != nil {
		t.Fatalf("cannot decode %q: %s", s, err)
	}
	return a
}
