package vesting

import (
	"encoding/binary"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
	"github.com/fibondev/fibon-token/orm"
)

func init() {
	migration.MustRegister(1, &VestingType{}, migration.NoModification)
	migration.MustRegister(1, &Schedule{}, migration.NoModification)
	migration.MustRegister(1, &Pool{}, migration.NoModification)
	migration.MustRegister(1, &Config{}, migration.NoModification)
}

var _ orm.Model = (*VestingType)(nil)
var _ orm.Model = (*Schedule)(nil)
var _ orm.Model = (*Pool)(nil)
var _ orm.Model = (*Config)(nil)

// Validate ensures the phase interval is sane.
func (p *Phase) Validate() error {
	if err := p.StartOffset.Validate(); err != nil {
		return errors.Wrap(err, "start offset")
	}
	if err := p.EndOffset.Validate(); err != nil {
		return errors.Wrap(err, "end offset")
	}
	if p.EndOffset < p.StartOffset {
		return errors.Wrap(errors.ErrState, "end before start")
	}
	if p.Percentage < 1 || p.Percentage > 100 {
		return errors.Wrap(errors.ErrState, "percentage out of range")
	}
	return nil
}

// validatePhases checks a whole curve: every phase valid, phases ordered
// without overlap, and percentages summing up to one hundred. Gaps between
// phases are allowed, nothing unlocks during a gap.
func validatePhases(phases []*Phase) error {
	if len(phases) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no phases")
	}
	var sum uint32
	var prevEnd fibon.UnixDuration
	for i, p := range phases {
		if p == nil {
			return errors.Wrapf(errors.ErrState, "phase #%d is nil", i)
		}
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "phase #%d", i)
		}
		if i > 0 && p.StartOffset < prevEnd {
			return errors.Wrapf(errors.ErrState, "phase #%d overlaps the previous one", i)
		}
		prevEnd = p.EndOffset
		sum += p.Percentage
	}
	if sum != 100 {
		return errors.Wrapf(errors.ErrState, "percentages sum up to %d", sum)
	}
	return nil
}

func (v *VestingType) Validate() error {
	if err := v.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return validatePhases(v.Phases)
}

func (s *Schedule) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := s.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if err := s.StartTime.Validate(); err != nil {
		return errors.Wrap(err, "start time")
	}
	if s.Allocation < 0 {
		return errors.Wrap(errors.ErrAmount, "negative allocation")
	}
	if s.Released < 0 {
		return errors.Wrap(errors.ErrAmount, "negative released")
	}
	if s.Released > s.Allocation {
		return errors.Wrap(errors.ErrState, "released exceeds allocation")
	}
	return validatePhases(s.Phases)
}

func (p *Pool) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if p.TotalAllocated < 0 {
		return errors.Wrap(errors.ErrAmount, "negative total allocation")
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if len(c.Ticker) == 0 {
		return errors.Wrap(errors.ErrEmpty, "ticker")
	}
	return nil
}

// NewVestingTypeBucket returns a bucket of catalog curves, keyed by a
// caller chosen identifier.
func NewVestingTypeBucket() orm.ModelBucket {
	b := orm.NewModelBucket("vtyp", &VestingType{})
	return migration.NewModelBucket("vesting", b)
}

// vestingTypeID encodes a catalog identifier as a bucket key.
func vestingTypeID(id uint32) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

// NewScheduleBucket returns a bucket of schedules keyed by the beneficiary
// address. A beneficiary has at most one schedule.
func NewScheduleBucket() orm.ModelBucket {
	b := orm.NewModelBucket("vsch", &Schedule{})
	return migration.NewModelBucket("vesting", b)
}

// NewPoolBucket returns the bucket holding the pool singleton.
func NewPoolBucket() orm.ModelBucket {
	b := orm.NewModelBucket("vpool", &Pool{})
	return migration.NewModelBucket("vesting", b)
}

// NewConfigBucket returns the bucket holding the configuration singleton.
func NewConfigBucket() orm.ModelBucket {
	b := orm.NewModelBucket("vconf", &Config{})
	return migration.NewModelBucket("vesting", b)
}

// poolKey and configKey address the singletons in their buckets.
var (
	poolKey   = []byte("pool")
	configKey = []byte("config")
)

// PoolCondition is the condition under which the custody funds are held.
func PoolCondition() fibon.Condition {
	return fibon.NewCondition("vesting", "pool", []byte("custody"))
}

// RegisterQuery registers the buckets for queries.
func RegisterQuery(qr fibon.QueryRouter) {
	NewVestingTypeBucket().Register("vestingtypes", qr)
	NewScheduleBucket().Register("vestingschedules", qr)
}

func loadPool(db fibon.ReadOnlyKVStore, b orm.ModelBucket) (*Pool, error) {
	var pool Pool
	switch err := b.One(db, poolKey, &pool); {
	case err == nil:
		return &pool, nil
	case errors.ErrNotFound.Is(err):
		return &Pool{Metadata: &fibon.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "cannot load pool")
	}
}

func loadConfig(db fibon.ReadOnlyKVStore, b orm.ModelBucket) (*Config, error) {
	var conf Config
	if err := b.One(db, configKey, &conf); err != nil {
		return nil, errors.Wrap(err, "cannot load configuration")
	}
	return &conf, nil
}
