package purchase

import (
	"time"

	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/nftitem"
)

// DefaultWindow is how long a purchase intent stays valid
const DefaultWindow = 30 * time.Minute

type Status string

const (
	StatusPending              Status = "pending"
	StatusAwaitingVerification Status = "awaiting_verification"
	StatusConfirmed            Status = "confirmed"
	StatusExpired              Status = "expired"
	StatusCancelled            Status = "cancelled"
)

// ActiveStatuses are the statuses a session can leave
var ActiveStatuses = []Status{StatusPending, StatusAwaitingVerification}

var transitions = map[Status][]Status{
	StatusPending:              {StatusAwaitingVerification, StatusExpired, StatusCancelled},
	StatusAwaitingVerification: {StatusConfirmed, StatusExpired},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingVerification, StatusConfirmed, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal tells no transition leaves s
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusExpired || s == StatusCancelled
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type CollectionRef struct {
	Address domain.Address `json:"address" bson:"address"`
	Name    string         `json:"name" bson:"name"`
}

// Snapshot is the listing as seen when the session was created
type Snapshot struct {
	Name       string        `json:"name" bson:"name"`
	Image      string        `json:"image" bson:"image"`
	Collection CollectionRef `json:"collection" bson:"collection"`
	Price      string        `json:"price" bson:"price"`
	Currency   string        `json:"currency" bson:"currency"`
}

type Session struct {
	Id             string         `json:"id" bson:"sessionId"`
	Buyer          domain.Address `json:"buyer" bson:"buyer"`
	Nft            nftitem.Id     `json:"nft" bson:"nft"`
	Amount         string         `json:"amount" bson:"amount"`
	Fee            string         `json:"fee" bson:"fee"`
	Total          string         `json:"total" bson:"total"`
	Currency       string         `json:"currency" bson:"currency"`
	DepositAddress domain.Address `json:"depositAddress" bson:"depositAddress"`
	Snapshot       Snapshot       `json:"snapshot" bson:"snapshot"`
	Status         Status         `json:"status" bson:"status"`
	TxHash         domain.TxHash  `json:"txHash,omitempty" bson:"txHash,omitempty"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	ExpiresAt      time.Time      `json:"expiresAt" bson:"expiresAt"`
	SubmittedAt    *time.Time     `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	FinalizedAt    *time.Time     `json:"finalizedAt,omitempty" bson:"finalizedAt,omitempty"`

	// ActiveKey is set while the session is not terminal, a unique index on it
	// keeps one active session per (buyer, nft)
	ActiveKey string `json:"-" bson:"activeKey,omitempty"`
}

func (Session) EntityKind() domain.EntityKind {
	return domain.EntityKindPurchaseSession
}

// IsExpiredAt reports whether t is past the expiry, the expiry instant itself is still valid
func (s *Session) IsExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// IsActiveAt reports whether the session can still be resumed at t
func (s *Session) IsActiveAt(t time.Time) bool {
	return !s.Status.IsTerminal() && !s.IsExpiredAt(t)
}

// Remaining is the time left at t, never negative
func (s *Session) Remaining(t time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(t); d > 0 {
		return d
	}
	return 0
}

func ActiveKeyOf(buyer domain.Address, nft nftitem.Id) string {
	return buyer.ToLowerStr() + "|" + nft.String()
}

// SessionView is a session with its countdown
type SessionView struct {
	*Session
	RemainingSeconds int64 `json:"remainingSeconds"`
}
