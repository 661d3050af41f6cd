package vesting

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ fibon.Initializer = (*Initializer)(nil)

// FromGenesis will parse the package configuration and the initial catalog
// from genesis and save them to the database.
//
//	"vesting": {
//	  "admin": "hex:...",
//	  "ticker": "FIB",
//	  "types": [
//	    {"id": 1, "phases": [
//	      {"start_offset": 0, "end_offset": 0, "percentage": 20},
//	      {"start_offset": 2592000, "end_offset": 31536000, "percentage": 80}
//	    ]}
//	  ]
//	}
func (Initializer) FromGenesis(opts fibon.Options, db fibon.KVStore) error {
	var conf struct {
		Admin  fibon.Address `json:"admin"`
		Ticker string        `json:"ticker"`
		Types  []struct {
			ID     uint32   `json:"id"`
			Phases []*Phase `json:"phases"`
		} `json:"types"`
	}
	if err := opts.ReadOptions("vesting", &conf); err != nil {
		return errors.Wrap(err, "cannot load vesting")
	}
	if len(conf.Admin) == 0 && len(conf.Types) == 0 {
		return nil
	}

	c := &Config{
		Metadata: &fibon.Metadata{Schema: 1},
		Admin:    conf.Admin,
		Ticker:   conf.Ticker,
	}
	if _, err := NewConfigBucket().Put(db, configKey, c); err != nil {
		return errors.Wrap(err, "cannot store configuration")
	}

	types := NewVestingTypeBucket()
	for _, t := range conf.Types {
		vt := &VestingType{
			Metadata: &fibon.Metadata{Schema: 1},
			Phases:   t.Phases,
		}
		if _, err := types.Put(db, vestingTypeID(t.ID), vt); err != nil {
			return errors.Wrapf(err, "cannot store vesting type %d", t.ID)
		}
	}
	return nil
}
