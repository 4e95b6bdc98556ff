package bus

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain/purchase"
)

const (
	// PurchaseStream holds every purchase subject
	PurchaseStream       = "PURCHASE"
	PurchaseStreamMaxAge = 7 * 24 * time.Hour

	SubjectPurchaseAll = "purchase.>"
	// SubjectVerificationConfirmed is where the verification authority reports outcomes
	SubjectVerificationConfirmed = "purchase.verification.confirmed"
)

// SubjectOf is the subject lifecycle events of type t are published to
func SubjectOf(t purchase.EventType) string {
	return "purchase." + string(t)
}

type eventPublisher struct {
	p Publisher
}

// NewEventPublisher publishes purchase lifecycle events on the bus
func NewEventPublisher(p Publisher) purchase.EventPublisher {
	return &eventPublisher{p}
}

func (im *eventPublisher) Publish(c ctx.Ctx, e purchase.Event) error {
	if err := im.p.Publish(c, SubjectOf(e.Type), e); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"type":      e.Type,
			"sessionId": e.Session.Id,
		}).Error("bus.Publish failed")
		return err
	}
	return nil
}

// ConfirmHandler turns verification results into Confirm calls. Rejections and
// results about sessions that can no longer be confirmed are acked and dropped.
func ConfirmHandler(uc purchase.Usecase) Handler {
	return func(c ctx.Ctx, data []byte) error {
		res := purchase.VerificationResult{}
		if err := json.Unmarshal(data, &res); err != nil {
			c.WithField("err", err).Error("malformed verification result")
			return nil
		}
		if res.SessionId == "" || res.TxHash == "" {
			c.WithField("result", res).Error("incomplete verification result")
			return nil
		}

		c = ctx.WithValue(c, "sessionId", res.SessionId)
		if !res.Confirmed {
			c.WithFields(log.Fields{
				"txHash": res.TxHash,
				"reason": res.Reason,
			}).Warn("attestation rejected")
			return nil
		}

		if _, err := uc.Confirm(c, res.SessionId, res.TxHash); errors.Is(err, purchase.ErrValidation) ||
			errors.Is(err, purchase.ErrSessionNotFound) ||
			errors.Is(err, purchase.ErrSessionFinalized) {
			c.WithField("err", err).Warn("verification result dropped")
			return nil
		} else if err != nil {
			return err
		}
		return nil
	}
}
