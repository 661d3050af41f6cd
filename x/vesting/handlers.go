package vesting

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/coin"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
	"github.com/fibondev/fibon-token/orm"
	"github.com/fibondev/fibon-token/x"
	"github.com/fibondev/fibon-token/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	addTypeCost        int64 = 150
	createScheduleCost int64 = 250
	releaseCost        int64 = 150
	revokeCost         int64 = 200
	disableCost        int64 = 200
	recoverCost        int64 = 150

	tagType     = "vesting/type"
	tagSchedule = "vesting/schedule"
	tagRelease  = "vesting/release"
	tagRevoke   = "vesting/revoke"
	tagDisable  = "vesting/disable"
	tagRecover  = "vesting/recover"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r fibon.Registry, auth x.Authenticator, ctrl cash.Controller) {
	r = migration.SchemaMigratingRegistry("vesting", r)

	base := baseHandler{
		auth:   auth,
		ctrl:   ctrl,
		types:  NewVestingTypeBucket(),
		scheds: NewScheduleBucket(),
		pools:  NewPoolBucket(),
		confs:  NewConfigBucket(),
	}

	r.Handle(&AddVestingTypeMsg{}, &AddVestingTypeHandler{base})
	r.Handle(&CreateScheduleMsg{}, &CreateScheduleHandler{base})
	r.Handle(&BatchCreateScheduleMsg{}, &BatchCreateScheduleHandler{base})
	r.Handle(&ReleaseMsg{}, &ReleaseHandler{base})
	r.Handle(&RevokeMsg{}, &RevokeHandler{base})
	r.Handle(&DisableMsg{}, &DisableHandler{base})
	r.Handle(&RecoverMsg{}, &RecoverHandler{base})
}

// baseHandler carries the dependencies shared by all handlers of this
// package.
type baseHandler struct {
	auth   x.Authenticator
	ctrl   cash.Controller
	types  orm.ModelBucket
	scheds orm.ModelBucket
	pools  orm.ModelBucket
	confs  orm.ModelBucket
}

// adminConfig loads the configuration and ensures the transaction is
// authorized by the administrator.
func (h baseHandler) adminConfig(ctx fibon.Context, db fibon.KVStore) (*Config, error) {
	conf, err := loadConfig(db, h.confs)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the administrator")
	}
	return conf, nil
}

// now returns the block time of this operation.
func (h baseHandler) now(ctx fibon.Context) (fibon.UnixTime, error) {
	t, err := fibon.BlockTime(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "block time")
	}
	return fibon.AsUnixTime(t), nil
}

// unallocatedBalance returns how much of the custody balance is not
// promised to any schedule yet.
func (h baseHandler) unallocatedBalance(db fibon.KVStore, conf *Config, pool *Pool) (int64, error) {
	balance, err := h.ctrl.Balance(db, PoolCondition().Address())
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "cannot check custody balance")
	}
	return balance.AmountOf(conf.Ticker) - pool.TotalAllocated, nil
}

// AddVestingTypeHandler adds a new curve to the catalog.
type AddVestingTypeHandler struct {
	baseHandler
}

var _ fibon.Handler = (*AddVestingTypeHandler)(nil)

func (h *AddVestingTypeHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(addTypeCost, ""), nil
}

func (h *AddVestingTypeHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	key := vestingTypeID(msg.TypeID)
	switch err := h.types.Has(db, key); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "vesting type %d", msg.TypeID)
	case errors.ErrNotFound.Is(err):
		// Good to go.
	default:
		return nil, errors.Wrap(err, "cannot check catalog")
	}

	vt := &VestingType{
		Metadata: &fibon.Metadata{Schema: 1},
		Phases:   msg.Phases,
	}
	if _, err := h.types.Put(db, key, vt); err != nil {
		return nil, errors.Wrap(err, "cannot store vesting type")
	}
	return &fibon.DeliverResult{
		Data: key,
		Tags: []common.KVPair{{Key: []byte(tagType), Value: key}},
	}, nil
}

func (h *AddVestingTypeHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*AddVestingTypeMsg, error) {
	var msg AddVestingTypeMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.adminConfig(ctx, db); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateScheduleHandler creates a schedule for a single beneficiary.
type CreateScheduleHandler struct {
	baseHandler
}

var _ fibon.Handler = (*CreateScheduleHandler)(nil)

func (h *CreateScheduleHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(createScheduleCost, ""), nil
}

func (h *CreateScheduleHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := h.adminConfig(ctx, db)
	if err != nil {
		return nil, err
	}

	now, err := h.now(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := loadPool(db, h.pools)
	if err != nil {
		return nil, err
	}
	if err := h.createSchedule(db, conf, pool, msg, now); err != nil {
		return nil, err
	}
	if _, err := h.pools.Put(db, poolKey, pool); err != nil {
		return nil, errors.Wrap(err, "cannot store pool")
	}

	return &fibon.DeliverResult{
		Data: msg.Beneficiary,
		Tags: []common.KVPair{{Key: []byte(tagSchedule), Value: msg.Beneficiary}},
	}, nil
}

func (h *CreateScheduleHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*CreateScheduleMsg, error) {
	var msg CreateScheduleMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.adminConfig(ctx, db); err != nil {
		return nil, err
	}
	return &msg, nil
}

// createSchedule persists a single schedule and accounts for it in the
// pool. The pool is mutated in memory only, storing it is up to the
// caller.
func (h baseHandler) createSchedule(db fibon.KVStore, conf *Config, pool *Pool, msg *CreateScheduleMsg, now fibon.UnixTime) error {
	var vt VestingType
	if err := h.types.One(db, vestingTypeID(msg.TypeID), &vt); err != nil {
		return errors.Wrap(err, "cannot load vesting type")
	}

	switch err := h.scheds.Has(db, msg.Beneficiary); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "schedule for %s", msg.Beneficiary)
	case errors.ErrNotFound.Is(err):
		// Good to go.
	default:
		return errors.Wrap(err, "cannot check schedule")
	}

	// Every promise must be covered by custody funds that are not
	// already promised to someone else.
	free, err := h.unallocatedBalance(db, conf, pool)
	if err != nil {
		return err
	}
	if free < msg.Allocation {
		return errors.Wrapf(errors.ErrAmount,
			"custody covers %d of %d", free, msg.Allocation)
	}

	start := msg.StartTime
	if start.IsZero() {
		start = now
	}
	s := &Schedule{
		Metadata:    &fibon.Metadata{Schema: 1},
		Beneficiary: msg.Beneficiary,
		StartTime:   start,
		Allocation:  msg.Allocation,
		Phases:      vt.Phases,
	}
	if _, err := h.scheds.Put(db, msg.Beneficiary, s); err != nil {
		return errors.Wrap(err, "cannot store schedule")
	}
	pool.TotalAllocated += msg.Allocation
	return nil
}

// BatchCreateScheduleHandler creates many schedules atomically. A single
// failure rolls back the whole batch.
type BatchCreateScheduleHandler struct {
	baseHandler
}

var _ fibon.Handler = (*BatchCreateScheduleHandler)(nil)

func (h *BatchCreateScheduleHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return fibon.NewCheck(int64(len(msg.Items))*createScheduleCost, ""), nil
}

func (h *BatchCreateScheduleHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := h.adminConfig(ctx, db)
	if err != nil {
		return nil, err
	}

	cdb, ok := db.(fibon.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store cannot be cache wrapped")
	}
	now, err := h.now(ctx)
	if err != nil {
		return nil, err
	}
	cache := cdb.CacheWrap()

	pool, err := loadPool(cache, h.pools)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	tags := make([]common.KVPair, 0, len(msg.Items))
	for i, item := range msg.Items {
		if err := h.createSchedule(cache, conf, pool, item, now); err != nil {
			cache.Discard()
			return nil, errors.Wrapf(err, "item #%d", i)
		}
		tags = append(tags, common.KVPair{Key: []byte(tagSchedule), Value: item.Beneficiary})
	}
	if _, err := h.pools.Put(cache, poolKey, pool); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "cannot store pool")
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot flush cache")
	}
	return &fibon.DeliverResult{Tags: tags}, nil
}

func (h *BatchCreateScheduleHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*BatchCreateScheduleMsg, error) {
	var msg BatchCreateScheduleMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.adminConfig(ctx, db); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ReleaseHandler pays out the unlocked share of the signer's schedule.
type ReleaseHandler struct {
	baseHandler
}

var _ fibon.Handler = (*ReleaseHandler)(nil)

func (h *ReleaseHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(releaseCost, ""), nil
}

func (h *ReleaseHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	s, amount, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.ctrl.MoveCoins(db, PoolCondition().Address(), s.Beneficiary,
		coin.NewCoin(amount, conf.Ticker)); err != nil {
		return nil, errors.Wrap(err, "cannot pay out")
	}

	s.Released += amount
	if _, err := h.scheds.Put(db, s.Beneficiary, s); err != nil {
		return nil, errors.Wrap(err, "cannot store schedule")
	}

	pool, err := loadPool(db, h.pools)
	if err != nil {
		return nil, err
	}
	pool.TotalAllocated -= amount
	if _, err := h.pools.Put(db, poolKey, pool); err != nil {
		return nil, errors.Wrap(err, "cannot store pool")
	}

	return &fibon.DeliverResult{
		Tags: []common.KVPair{{Key: []byte(tagRelease), Value: s.Beneficiary}},
	}, nil
}

func (h *ReleaseHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*Schedule, int64, *Config, error) {
	var msg ReleaseMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, 0, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, 0, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}

	var s Schedule
	if err := h.scheds.One(db, signer.Address(), &s); err != nil {
		return nil, 0, nil, errors.Wrap(err, "cannot load schedule")
	}

	now, err := h.now(ctx)
	if err != nil {
		return nil, 0, nil, err
	}
	amount := s.ReleasableAmount(now)
	if amount <= 0 {
		return nil, 0, nil, errors.Wrap(errors.ErrAmount, "nothing to release")
	}

	conf, err := loadConfig(db, h.confs)
	if err != nil {
		return nil, 0, nil, err
	}
	return &s, amount, conf, nil
}

// RevokeHandler terminates a schedule. Everything not yet released returns
// to the administrator and the schedule is removed.
type RevokeHandler struct {
	baseHandler
}

var _ fibon.Handler = (*RevokeHandler)(nil)

func (h *RevokeHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(revokeCost, ""), nil
}

func (h *RevokeHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	s, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Everything not yet paid out, vested or not, returns to the
	// administrator.
	remaining := s.Allocation - s.Released
	if remaining > 0 {
		if err := h.ctrl.MoveCoins(db, PoolCondition().Address(), conf.Admin,
			coin.NewCoin(remaining, conf.Ticker)); err != nil {
			return nil, errors.Wrap(err, "cannot return the remainder")
		}
	}

	pool, err := loadPool(db, h.pools)
	if err != nil {
		return nil, err
	}
	pool.TotalAllocated -= remaining
	if _, err := h.pools.Put(db, poolKey, pool); err != nil {
		return nil, errors.Wrap(err, "cannot store pool")
	}

	if err := h.scheds.Delete(db, s.Beneficiary); err != nil {
		return nil, errors.Wrap(err, "cannot delete schedule")
	}

	return &fibon.DeliverResult{
		Tags: []common.KVPair{{Key: []byte(tagRevoke), Value: s.Beneficiary}},
	}, nil
}

func (h *RevokeHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*Schedule, *Config, error) {
	var msg RevokeMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := h.adminConfig(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	var s Schedule
	if err := h.scheds.One(db, msg.Beneficiary, &s); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load schedule")
	}
	return &s, conf, nil
}

// DisableHandler freezes a schedule. The unlocked share is paid out, the
// unvested share is forfeited back to the unallocated custody and the
// schedule stays around, marked as disabled.
type DisableHandler struct {
	baseHandler
}

var _ fibon.Handler = (*DisableHandler)(nil)

func (h *DisableHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(disableCost, ""), nil
}

func (h *DisableHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	s, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := h.now(ctx)
	if err != nil {
		return nil, err
	}

	payout := s.ReleasableAmount(now)
	if payout > 0 {
		if err := h.ctrl.MoveCoins(db, PoolCondition().Address(), s.Beneficiary,
			coin.NewCoin(payout, conf.Ticker)); err != nil {
			return nil, errors.Wrap(err, "cannot pay the vested share")
		}
	}

	pool, err := loadPool(db, h.pools)
	if err != nil {
		return nil, err
	}
	// The whole outstanding promise is settled: the vested share is paid
	// and the rest is forfeited into the unallocated custody.
	pool.TotalAllocated -= s.Allocation - s.Released
	if _, err := h.pools.Put(db, poolKey, pool); err != nil {
		return nil, errors.Wrap(err, "cannot store pool")
	}

	s.Released += payout
	s.Allocation = s.Released
	s.Disabled = true
	if _, err := h.scheds.Put(db, s.Beneficiary, s); err != nil {
		return nil, errors.Wrap(err, "cannot store schedule")
	}

	return &fibon.DeliverResult{
		Tags: []common.KVPair{{Key: []byte(tagDisable), Value: s.Beneficiary}},
	}, nil
}

func (h *DisableHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*Schedule, *Config, error) {
	var msg DisableMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := h.adminConfig(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	var s Schedule
	if err := h.scheds.One(db, msg.Beneficiary, &s); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load schedule")
	}
	if s.Disabled {
		return nil, nil, errors.Wrap(errors.ErrState, "already disabled")
	}
	return &s, conf, nil
}

// RecoverHandler moves foreign tokens out of the custody wallet. Tokens of
// the vested currency are protected and can never be recovered.
type RecoverHandler struct {
	baseHandler
}

var _ fibon.Handler = (*RecoverHandler)(nil)

func (h *RecoverHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(recoverCost, ""), nil
}

func (h *RecoverHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, PoolCondition().Address(), msg.Destination,
		coin.NewCoin(msg.Amount, msg.Ticker)); err != nil {
		return nil, errors.Wrap(err, "cannot recover")
	}
	return &fibon.DeliverResult{
		Tags: []common.KVPair{{Key: []byte(tagRecover), Value: msg.Destination}},
	}, nil
}

func (h *RecoverHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*RecoverMsg, error) {
	var msg RecoverMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := h.adminConfig(ctx, db)
	if err != nil {
		return nil, err
	}
	if msg.Ticker == conf.Ticker {
		return nil, errors.Wrap(errors.ErrState, "cannot recover the vested token")
	}

	balance, err := h.ctrl.Balance(db, PoolCondition().Address())
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrAmount, "nothing to recover")
	case err != nil:
		return nil, errors.Wrap(err, "cannot check custody balance")
	}
	if balance.AmountOf(msg.Ticker) < msg.Amount {
		return nil, errors.Wrap(errors.ErrAmount, "not enough to recover")
	}
	return &msg, nil
}
