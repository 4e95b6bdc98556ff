package purchase

import (
	"errors"
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/ptr"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/nftitem"
)

type FindAllOptions struct {
	Buyer    *domain.Address
	Statuses []Status
	Offset   *int
	Limit    *int
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithBuyer(buyer domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		b := buyer.ToLower()
		options.Buyer = &b
		return nil
	}
}

func WithStatuses(statuses ...Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		for _, s := range statuses {
			if !s.IsValid() {
				return ErrValidation
			}
			options.Statuses = append(options.Statuses, s)
		}
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if offset < 0 || limit <= 0 {
			return ErrValidation
		}
		options.Offset = ptr.Int(offset)
		options.Limit = ptr.Int(limit)
		return nil
	}
}

// TransitionCond guards a status transition, every set field must hold
type TransitionCond struct {
	From []Status
	// ExpiredAt requires expiresAt < t
	ExpiredAt *time.Time
	// ValidAt requires expiresAt >= t
	ValidAt *time.Time
	// TxHash requires the recorded hash to equal it
	TxHash *domain.TxHash
}

type TransitionUpdate struct {
	To Status
	At time.Time
	// TxHash is recorded with the transition when set
	TxHash *domain.TxHash
}

type Repo interface {
	// Insert returns ErrDuplicateActive if the (buyer, nft) pair has an active session
	Insert(c ctx.Ctx, s *Session) error
	FindOne(c ctx.Ctx, id string) (*Session, error)
	FindActive(c ctx.Ctx, buyer domain.Address, nft nftitem.Id) (*Session, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Session, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	// FindOverdue lists active sessions expired before now, oldest first
	FindOverdue(c ctx.Ctx, now time.Time, limit int) ([]*Session, error)
	// Transition is a compare-and-set on the session status, it returns the updated
	// session or ErrTransitionConflict when cond does not hold.
	// returns ErrIllegalTransition unless every cond.From can move to update.To
	Transition(c ctx.Ctx, id string, cond TransitionCond, update TransitionUpdate) (*Session, error)
}

type CreateParams struct {
	Buyer          domain.Address
	DepositAddress domain.Address
	Nft            nftitem.Id
	Amount         string
	Currency       string
}

type ListParams struct {
	Buyer    domain.Address
	Statuses []Status
	Offset   int
	Limit    int
}

type SearchResult struct {
	Items []*Session `json:"items"`
	Count int        `json:"count"`
}

type Usecase interface {
	// CreateOrResume returns the active session of (buyer, nft), or opens a new one
	CreateOrResume(c ctx.Ctx, params CreateParams) (*Session, error)
	// SubmitAttestation records txHash and moves the session to awaiting_verification
	SubmitAttestation(c ctx.Ctx, id string, buyer domain.Address, txHash string) (*Session, error)
	// Expire moves an overdue active session to expired, it is a no-op otherwise
	Expire(c ctx.Ctx, id string) (*Session, error)
	Cancel(c ctx.Ctx, id string, buyer domain.Address) (*Session, error)
	// Confirm is called by the verification authority once the transaction is accepted
	Confirm(c ctx.Ctx, id string, txHash string) (*Session, error)
	Get(c ctx.Ctx, id string, buyer domain.Address) (*SessionView, error)
	List(c ctx.Ctx, params ListParams) (*SearchResult, error)
	// SweepExpired expires up to limit overdue sessions and returns how many it moved
	SweepExpired(c ctx.Ctx, limit int) (int, error)
	// Close stops the expiry timers owned by the usecase
	Close()
}

// Attestation is what the verification authority receives
type Attestation struct {
	SessionId      string         `json:"sessionId"`
	Buyer          domain.Address `json:"buyer"`
	Nft            nftitem.Id     `json:"nft"`
	TxHash         domain.TxHash  `json:"txHash"`
	Total          string         `json:"total"`
	Currency       string         `json:"currency"`
	DepositAddress domain.Address `json:"depositAddress"`
	ExpiresAt      time.Time      `json:"expiresAt"`
}

func (s *Session) ToAttestation() Attestation {
	return Attestation{
		SessionId:      s.Id,
		Buyer:          s.Buyer,
		Nft:            s.Nft,
		TxHash:         s.TxHash,
		Total:          s.Total,
		Currency:       s.Currency,
		DepositAddress: s.DepositAddress,
		ExpiresAt:      s.ExpiresAt,
	}
}

// Verifier forwards attestations to the verification authority
type Verifier interface {
	Submit(c ctx.Ctx, a Attestation) error
}

// VerificationResult is the authority's answer, delivered by webhook or bus
type VerificationResult struct {
	SessionId string `json:"sessionId" validate:"required"`
	TxHash    string `json:"txHash" validate:"required"`
	Confirmed bool   `json:"confirmed"`
	Reason    string `json:"reason,omitempty"`
}

type EventType string

const (
	EventCreated              EventType = "created"
	EventAttestationSubmitted EventType = "attestation_submitted"
	EventConfirmed            EventType = "confirmed"
	EventExpired              EventType = "expired"
	EventCancelled            EventType = "cancelled"
)

// EventTypeOf maps the status a session just entered to its event
func EventTypeOf(s Status) EventType {
	switch s {
	case StatusAwaitingVerification:
		return EventAttestationSubmitted
	case StatusConfirmed:
		return EventConfirmed
	case StatusExpired:
		return EventExpired
	case StatusCancelled:
		return EventCancelled
	default:
		return EventCreated
	}
}

type Event struct {
	Type    EventType `json:"type"`
	Session Session   `json:"session"`
	At      time.Time `json:"at"`
}

type EventPublisher interface {
	Publish(c ctx.Ctx, e Event) error
}

// Publishers fans an event out to every publisher, all of them are tried
type Publishers []EventPublisher

func (ps Publishers) Publish(c ctx.Ctx, e Event) error {
	var errs []error
	for _, p := range ps {
		if err := p.Publish(c, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
