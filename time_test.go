package fibon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnixTimeUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		isErr    bool
		wantTime UnixTime
	}{
		"number": {
			json:     "1234567890",
			wantTime: 1234567890,
		},
		"zero": {
			json:     "0",
			wantTime: 0,
		},
		"rfc3339 string": {
			json:     `"2009-02-13T23:31:30Z"`,
			wantTime: 1234567890,
		},
		"negative number": {
			json:  "-4",
			isErr: true,
		},
		"garbage": {
			json:  `"not a time"`,
			isErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := got.UnmarshalJSON([]byte(tc.json))
			if tc.isErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantTime, got)
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	now := AsUnixTime(time.Now())
	assert.Equal(t, now+120, now.Add(2*time.Minute))
	// Below second precision is dropped.
	assert.Equal(t, now, now.Add(999*time.Millisecond))
	assert.Equal(t, now-3, now.Add(-3*time.Second))
}

func TestUnixDurationUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json    string
		isErr   bool
		wantDur UnixDuration
	}{
		"seconds": {
			json:    "600",
			wantDur: AsUnixDuration(10 * time.Minute),
		},
		"human readable": {
			json:    `"2h30m"`,
			wantDur: AsUnixDuration(150 * time.Minute),
		},
		"negative seconds allowed": {
			json:    "-5",
			wantDur: -5,
		},
		"garbage": {
			json:  `"over 9000"`,
			isErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixDuration
			err := got.UnmarshalJSON([]byte(tc.json))
			if tc.isErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantDur, got)
		})
	}
}
