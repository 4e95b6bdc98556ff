package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"
	"github.com/x-xyz/checkout/base/countdown"
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/base/metrics"
	"github.com/x-xyz/checkout/base/pricing"
	"github.com/x-xyz/checkout/base/ptr"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/collection"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/domain/purchase"
	"golang.org/x/xerrors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	sweepWorkers    = 10
	createAttempts  = 3
)

var (
	met = metrics.New("purchase")

	timeNow = time.Now
)

type PurchaseUseCaseCfg struct {
	Repo           purchase.Repo
	NftitemRepo    nftitem.Repo
	CollectionRepo collection.Repo
	PaytokenRepo   domain.PayTokenRepo
	Pricing        pricing.Calculator
	Verifier       purchase.Verifier
	Publisher      purchase.EventPublisher
	// Window is how long a session stays open, DefaultWindow when zero
	Window time.Duration
	// ExpiryTick is the countdown interval of the in-process expiry scheduler,
	// zero leaves expiry to Expire calls and the sweeper
	ExpiryTick time.Duration
}

type impl struct {
	repo           purchase.Repo
	nftitemRepo    nftitem.Repo
	collectionRepo collection.Repo
	paytokenRepo   domain.PayTokenRepo
	pricing        pricing.Calculator
	gate           *gate
	publisher      purchase.EventPublisher
	window         time.Duration
	scheduler      *scheduler
}

func New(cfg *PurchaseUseCaseCfg) purchase.Usecase {
	im := &impl{
		repo:           cfg.Repo,
		nftitemRepo:    cfg.NftitemRepo,
		collectionRepo: cfg.CollectionRepo,
		paytokenRepo:   cfg.PaytokenRepo,
		pricing:        cfg.Pricing,
		gate:           &gate{verifier: cfg.Verifier},
		publisher:      cfg.Publisher,
		window:         cfg.Window,
	}
	if im.window <= 0 {
		im.window = purchase.DefaultWindow
	}
	if cfg.ExpiryTick > 0 {
		im.scheduler = newScheduler(cfg.ExpiryTick, im.now, im.onClockExpired)
	}
	return im
}

// now is truncated to what mongo stores
func (im *impl) now() time.Time {
	return timeNow().UTC().Truncate(time.Millisecond)
}

func (im *impl) CreateOrResume(c ctx.Ctx, params purchase.CreateParams) (*purchase.Session, error) {
	if params.Buyer.IsEmpty() || params.DepositAddress.IsEmpty() {
		return nil, xerrors.Errorf("missing buyer or deposit address: %w", purchase.ErrValidation)
	}
	if err := params.Nft.Validate(); err != nil {
		return nil, xerrors.Errorf("nft %s (%v): %w", params.Nft, err, purchase.ErrValidation)
	}

	quote, err := im.pricing.Quote(c, params.Nft.ChainId, params.Currency, params.Amount)
	if errors.Is(err, domain.ErrBadParamInput) ||
		errors.Is(err, domain.ErrInvalidNumberFormat) ||
		errors.Is(err, domain.ErrInvalidCurrency) {
		return nil, xerrors.Errorf("%v: %w", err, purchase.ErrValidation)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"params": params,
		}).Error("pricing.Quote failed")
		return nil, err
	}

	now := im.now()
	var snapshot *purchase.Snapshot
	for i := 0; i < createAttempts; i++ {
		active, err := im.resumeActive(c, params.Buyer, params.Nft, now)
		if err != nil || active != nil {
			return active, err
		}

		if snapshot == nil {
			if snapshot, err = im.snapshot(c, params.Nft, now); err != nil {
				return nil, err
			}
		}

		s := &purchase.Session{
			Id:             uuid.NewString(),
			Buyer:          params.Buyer.ToLower(),
			Nft:            params.Nft,
			Amount:         quote.AmountString(),
			Fee:            quote.FeeString(),
			Total:          quote.TotalString(),
			Currency:       quote.Currency,
			DepositAddress: params.DepositAddress.ToLower(),
			Snapshot:       *snapshot,
			Status:         purchase.StatusPending,
			CreatedAt:      now,
			ExpiresAt:      now.Add(im.window),
		}
		err = im.repo.Insert(c, s)
		if errors.Is(err, purchase.ErrDuplicateActive) {
			// lost the race, the winner is read on the next round
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"session": s,
			}).Error("repo.Insert failed")
			return nil, err
		}

		met.BumpSum("session.created", 1)
		im.scheduler.watch(s)
		im.publish(c, purchase.EventCreated, s, now)
		return s, nil
	}

	return nil, xerrors.Errorf("create session of %s: %w", purchase.ActiveKeyOf(params.Buyer, params.Nft), purchase.ErrTransitionConflict)
}

// resumeActive returns the active session of the pair, expiring an overdue one.
// It returns nil when a new session can be created.
func (im *impl) resumeActive(c ctx.Ctx, buyer domain.Address, nft nftitem.Id, now time.Time) (*purchase.Session, error) {
	s, err := im.repo.FindActive(c, buyer, nft)
	if errors.Is(err, purchase.ErrSessionNotFound) {
		return nil, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"buyer": buyer,
			"nft":   nft,
		}).Error("repo.FindActive failed")
		return nil, err
	}

	if s.IsActiveAt(now) {
		im.scheduler.watch(s)
		return s, nil
	}

	if _, err := im.expire(c, s, now); err != nil {
		return nil, err
	}
	return nil, nil
}

// owned returns the session if buyer owns it, sessions of others are not found
func (im *impl) owned(c ctx.Ctx, id string, buyer domain.Address) (*purchase.Session, error) {
	s, err := im.repo.FindOne(c, id)
	if err != nil {
		if !errors.Is(err, purchase.ErrSessionNotFound) {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("repo.FindOne failed")
		}
		return nil, err
	}
	if !s.Buyer.Equals(buyer) {
		return nil, purchase.ErrSessionNotFound
	}
	return s, nil
}

// actionable classifies s for a buyer action at now. Past the expiry the
// session is expired first, whatever the action carries.
func (im *impl) actionable(c ctx.Ctx, s *purchase.Session, now time.Time) error {
	switch s.Status {
	case purchase.StatusConfirmed, purchase.StatusCancelled:
		return purchase.ErrSessionFinalized
	case purchase.StatusExpired:
		return purchase.ErrExpiredSession
	}

	if s.IsExpiredAt(now) {
		if _, err := im.expire(c, s, now); err != nil {
			return err
		}
		return purchase.ErrSessionExpired
	}

	if s.Status == purchase.StatusAwaitingVerification {
		return purchase.ErrAttestationSubmitted
	}
	return nil
}

// reclassify re-reads a session after a lost compare-and-set
func (im *impl) reclassify(c ctx.Ctx, id string, buyer domain.Address, now time.Time) error {
	s, err := im.owned(c, id, buyer)
	if err != nil {
		return err
	}
	if err := im.actionable(c, s, now); err != nil {
		return err
	}
	return purchase.ErrTransitionConflict
}

func (im *impl) SubmitAttestation(c ctx.Ctx, id string, buyer domain.Address, txHash string) (*purchase.Session, error) {
	now := im.now()
	s, err := im.owned(c, id, buyer)
	if err != nil {
		return nil, err
	}
	if err := im.actionable(c, s, now); err != nil {
		return nil, err
	}

	hash, err := im.gate.Validate(txHash)
	if err != nil {
		return nil, err
	}

	updated, err := im.repo.Transition(c, id,
		purchase.TransitionCond{From: []purchase.Status{purchase.StatusPending}, ValidAt: ptr.Time(now)},
		purchase.TransitionUpdate{To: purchase.StatusAwaitingVerification, At: now, TxHash: &hash},
	)
	if errors.Is(err, purchase.ErrTransitionConflict) {
		return nil, im.reclassify(c, id, buyer, now)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.Transition failed")
		return nil, err
	}

	met.BumpSum("session.transition", 1, "to", string(updated.Status))
	if err := im.gate.Forward(c, updated); err != nil {
		// the session stays awaiting, the published event still reaches the authority
		met.BumpSum("verifier.forward.failed", 1)
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("gate.Forward failed")
	}
	im.publish(c, purchase.EventAttestationSubmitted, updated, now)
	return updated, nil
}

func (im *impl) Expire(c ctx.Ctx, id string) (*purchase.Session, error) {
	now := im.now()
	s, err := im.repo.FindOne(c, id)
	if err != nil {
		if !errors.Is(err, purchase.ErrSessionNotFound) {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("repo.FindOne failed")
		}
		return nil, err
	}

	if s.Status.IsTerminal() || !s.IsExpiredAt(now) {
		return s, nil
	}
	return im.expire(c, s, now)
}

// expire moves s to expired if it is still active and overdue at now. Losing
// the compare-and-set is not an error, the current session is returned.
func (im *impl) expire(c ctx.Ctx, s *purchase.Session, now time.Time) (*purchase.Session, error) {
	res, _, err := im.tryExpire(c, s, now)
	return res, err
}

// tryExpire is expire, also reporting whether this call made the transition
func (im *impl) tryExpire(c ctx.Ctx, s *purchase.Session, now time.Time) (*purchase.Session, bool, error) {
	updated, err := im.repo.Transition(c, s.Id,
		purchase.TransitionCond{From: purchase.ActiveStatuses, ExpiredAt: ptr.Time(now)},
		purchase.TransitionUpdate{To: purchase.StatusExpired, At: now},
	)
	if errors.Is(err, purchase.ErrTransitionConflict) {
		current, err := im.repo.FindOne(c, s.Id)
		return current, false, err
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  s.Id,
		}).Error("repo.Transition failed")
		return nil, false, err
	}

	met.BumpSum("session.transition", 1, "to", string(updated.Status))
	im.scheduler.forget(updated.Id)
	im.publish(c, purchase.EventExpired, updated, now)
	return updated, true, nil
}

func (im *impl) onClockExpired(id string) {
	c := ctx.WithValue(ctx.Background(), "sessionId", id)
	if _, err := im.Expire(c, id); err != nil {
		c.WithField("err", err).Warn("scheduled expire failed")
	}
}

func (im *impl) Cancel(c ctx.Ctx, id string, buyer domain.Address) (*purchase.Session, error) {
	now := im.now()
	s, err := im.owned(c, id, buyer)
	if err != nil {
		return nil, err
	}
	if err := im.actionable(c, s, now); err != nil {
		return nil, err
	}

	updated, err := im.repo.Transition(c, id,
		purchase.TransitionCond{From: []purchase.Status{purchase.StatusPending}, ValidAt: ptr.Time(now)},
		purchase.TransitionUpdate{To: purchase.StatusCancelled, At: now},
	)
	if errors.Is(err, purchase.ErrTransitionConflict) {
		return nil, im.reclassify(c, id, buyer, now)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.Transition failed")
		return nil, err
	}

	met.BumpSum("session.transition", 1, "to", string(updated.Status))
	im.scheduler.forget(id)
	im.publish(c, purchase.EventCancelled, updated, now)
	return updated, nil
}

// confirmable checks a confirmation of hash against s, a confirmed session
// with the same hash returns done.
func confirmable(s *purchase.Session, hash domain.TxHash) (done bool, err error) {
	switch s.Status {
	case purchase.StatusConfirmed:
		if s.TxHash == hash {
			return true, nil
		}
		return false, purchase.ErrSessionFinalized
	case purchase.StatusCancelled:
		return false, purchase.ErrSessionFinalized
	case purchase.StatusExpired:
		return false, purchase.ErrExpiredSession
	case purchase.StatusPending:
		return false, xerrors.Errorf("session %s has no attestation: %w", s.Id, purchase.ErrValidation)
	}
	if s.TxHash != hash {
		return false, xerrors.Errorf("transaction hash %s does not match session %s: %w", hash, s.Id, purchase.ErrValidation)
	}
	return false, nil
}

func (im *impl) Confirm(c ctx.Ctx, id string, txHash string) (*purchase.Session, error) {
	now := im.now()
	hash, err := im.gate.Validate(txHash)
	if err != nil {
		return nil, err
	}

	s, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if done, err := confirmable(s, hash); err != nil || done {
		return s, err
	}

	updated, err := im.repo.Transition(c, id,
		purchase.TransitionCond{From: []purchase.Status{purchase.StatusAwaitingVerification}, TxHash: &hash},
		purchase.TransitionUpdate{To: purchase.StatusConfirmed, At: now},
	)
	if errors.Is(err, purchase.ErrTransitionConflict) {
		s, err := im.repo.FindOne(c, id)
		if err != nil {
			return nil, err
		}
		if done, err := confirmable(s, hash); err != nil || done {
			return s, err
		}
		return nil, purchase.ErrTransitionConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.Transition failed")
		return nil, err
	}

	met.BumpSum("session.transition", 1, "to", string(updated.Status))
	if updated.IsExpiredAt(now) {
		met.BumpSum("session.confirmed.late", 1)
	}
	im.scheduler.forget(id)
	im.publish(c, purchase.EventConfirmed, updated, now)
	return updated, nil
}

func (im *impl) Get(c ctx.Ctx, id string, buyer domain.Address) (*purchase.SessionView, error) {
	now := im.now()
	s, err := im.owned(c, id, buyer)
	if err != nil {
		return nil, err
	}

	if !s.Status.IsTerminal() && s.IsExpiredAt(now) {
		if s, err = im.expire(c, s, now); err != nil {
			return nil, err
		}
	}

	view := &purchase.SessionView{Session: s}
	if !s.Status.IsTerminal() {
		clock := countdown.New(s.ExpiresAt, countdown.WithNow(func() time.Time { return now }))
		view.RemainingSeconds = int64(clock.Remaining() / time.Second)
	}
	return view, nil
}

func (im *impl) List(c ctx.Ctx, params purchase.ListParams) (*purchase.SearchResult, error) {
	if params.Buyer.IsEmpty() {
		return nil, xerrors.Errorf("missing buyer: %w", purchase.ErrValidation)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	} else if limit > maxPageSize {
		limit = maxPageSize
	}

	opts := []purchase.FindAllOptionsFunc{
		purchase.WithBuyer(params.Buyer),
		purchase.WithStatuses(params.Statuses...),
	}
	items, err := im.repo.FindAll(c, append(opts, purchase.WithPagination(params.Offset, limit))...)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"params": params,
		}).Error("repo.FindAll failed")
		return nil, err
	}

	count, err := im.repo.Count(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"params": params,
		}).Error("repo.Count failed")
		return nil, err
	}

	return &purchase.SearchResult{Items: items, Count: count}, nil
}

func (im *impl) SweepExpired(c ctx.Ctx, limit int) (int, error) {
	now := im.now()
	overdue, err := im.repo.FindOverdue(c, now, limit)
	if err != nil {
		c.WithField("err", err).Error("repo.FindOverdue failed")
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	b := goroutines.NewBatch(sweepWorkers, goroutines.WithBatchSize(len(overdue)))
	defer b.Close()
	for i := 0; i < len(overdue); i++ {
		s := overdue[i]
		b.Queue(func() (interface{}, error) {
			_, moved, err := im.tryExpire(c, s, now)
			return moved, err
		})
	}
	b.QueueComplete()

	expired := 0
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("expire failed")
			continue
		}
		if ret.Value().(bool) {
			expired++
		}
	}
	met.BumpSum("sweeper.expired", float64(expired))
	return expired, nil
}

func (im *impl) Close() {
	im.scheduler.close()
}

func (im *impl) publish(c ctx.Ctx, typ purchase.EventType, s *purchase.Session, at time.Time) {
	if im.publisher == nil {
		return
	}
	if err := im.publisher.Publish(c, purchase.Event{Type: typ, Session: *s, At: at}); err != nil {
		met.BumpSum("event.publish.failed", 1, "type", string(typ))
		c.WithFields(log.Fields{
			"err":  err,
			"type": typ,
			"id":   s.Id,
		}).Error("publisher.Publish failed")
	}
}
