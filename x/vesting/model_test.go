package vesting

import (
	"testing"

	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/fibontest/assert"
)

func TestValidatePhases(t *testing.T) {
	cases := map[string]struct {
		phases  []*Phase
		wantErr *errors.Error
	}{
		"single full phase": {
			phases: []*Phase{
				{StartOffset: 0, EndOffset: 100, Percentage: 100},
			},
		},
		"instant unlock phase": {
			phases: []*Phase{
				{StartOffset: 0, EndOffset: 0, Percentage: 100},
			},
		},
		"ordered with a gap": {
			phases: []*Phase{
				{StartOffset: 0, EndOffset: 10, Percentage: 40},
				{StartOffset: 50, EndOffset: 60, Percentage: 60},
			},
		},
		"no phases": {
			phases:  nil,
			wantErr: errors.ErrEmpty,
		},
		"percentages above hundred": {
			phases: []*Phase{
				{StartOffset: 0, EndOffset: 10, Percentage: 60},
				{StartOffset: 10, EndOffset: 20, Percentage: 60},
			},
			wantErr: errors.ErrState,
		},
		"percentages below hundred": {
			phases: []*Phase{
				{StartOffset: 0, EndOffset: 10, Percentage: 40},
			},
			wantErr: errors.ErrState,
		},
		"overlapping phases": {
			phases: []*Phase{
				{StartOffset: 0, EndOffset: 50, Percentage: 50},
				{StartOffset: 20, EndOffset: 70, Percentage: 50},
			},
			wantErr: errors.ErrState,
		},
		"end before start": {
			phases: []*Phase{
				{StartOffset: 50, EndOffset: 10, Percentage: 100},
			},
			wantErr: errors.ErrState,
		},
		"zero percentage phase": {
			phases: []*Phase{
				{StartOffset: 0, EndOffset: 10, Percentage: 0},
				{StartOffset: 10, EndOffset: 20, Percentage: 100},
			},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := validatePhases(tc.phases)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}
