package bus

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain/purchase"
	mPurchase "github.com/x-xyz/checkout/domain/purchase/mocks"
)

type fakePublisher struct {
	subjects []string
	payloads []interface{}
	err      error
}

func (f *fakePublisher) Publish(c ctx.Ctx, subj string, v interface{}) error {
	f.subjects = append(f.subjects, subj)
	f.payloads = append(f.payloads, v)
	return f.err
}

type purchaseBusSuite struct {
	suite.Suite

	uc *mPurchase.Usecase
}

func TestPurchaseBusSuite(t *testing.T) {
	suite.Run(t, new(purchaseBusSuite))
}

func (s *purchaseBusSuite) SetupTest() {
	s.uc = &mPurchase.Usecase{}
}

func (s *purchaseBusSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func (s *purchaseBusSuite) TestSubjects() {
	s.Equal("purchase.created", SubjectOf(purchase.EventCreated))
	s.Equal("purchase.attestation_submitted", SubjectOf(purchase.EventAttestationSubmitted))
	s.Equal("purchase.expired", SubjectOf(purchase.EventExpired))
}

func (s *purchaseBusSuite) TestEventPublisher() {
	f := &fakePublisher{}
	e := purchase.Event{Type: purchase.EventCancelled, Session: purchase.Session{Id: "sid"}, At: time.Unix(0, 0)}
	s.NoError(NewEventPublisher(f).Publish(ctx.Background(), e))
	s.Equal([]string{"purchase.cancelled"}, f.subjects)
	s.Equal(e, f.payloads[0])

	f.err = errors.New("nats down")
	s.EqualError(NewEventPublisher(f).Publish(ctx.Background(), e), "nats down")
}

func (s *purchaseBusSuite) result(r purchase.VerificationResult) []byte {
	data, err := json.Marshal(r)
	s.Require().NoError(err)
	return data
}

func (s *purchaseBusSuite) TestConfirmHandler() {
	h := ConfirmHandler(s.uc)
	c := ctx.Background()

	s.uc.On("Confirm", mock.Anything, "ok", "0xabc").Return(&purchase.Session{Id: "ok"}, nil).Once()
	s.NoError(h(c, s.result(purchase.VerificationResult{SessionId: "ok", TxHash: "0xabc", Confirmed: true})))

	// dropped
	s.uc.On("Confirm", mock.Anything, "gone", "0xabc").Return(nil, purchase.ErrSessionFinalized).Once()
	s.NoError(h(c, s.result(purchase.VerificationResult{SessionId: "gone", TxHash: "0xabc", Confirmed: true})))
	s.uc.On("Confirm", mock.Anything, "expired", "0xabc").Return(nil, purchase.ErrExpiredSession).Once()
	s.NoError(h(c, s.result(purchase.VerificationResult{SessionId: "expired", TxHash: "0xabc", Confirmed: true})))
	s.NoError(h(c, s.result(purchase.VerificationResult{SessionId: "rejected", TxHash: "0xabc"})))
	s.NoError(h(c, []byte("{")))
	s.NoError(h(c, s.result(purchase.VerificationResult{TxHash: "0xabc", Confirmed: true})))

	// redelivered
	s.uc.On("Confirm", mock.Anything, "race", "0xabc").Return(nil, purchase.ErrTransitionConflict).Once()
	s.ErrorIs(h(c, s.result(purchase.VerificationResult{SessionId: "race", TxHash: "0xabc", Confirmed: true})), purchase.ErrTransitionConflict)
}
