package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/domain/purchase"
	"github.com/x-xyz/checkout/service/query"
	mQuery "github.com/x-xyz/checkout/service/query/mocks"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	mockCtx = ctx.Background()
)

type repoSuite struct {
	suite.Suite
	mockQuery *mQuery.Mongo
	subject   purchase.Repo
	nft       nftitem.Id
	now       time.Time
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(repoSuite))
}

func (s *repoSuite) SetupTest() {
	s.mockQuery = &mQuery.Mongo{}
	s.subject = New(s.mockQuery)
	s.nft = nftitem.Id{ChainId: 1, ContractAddress: "0xabc", TokenId: "7"}
	s.now = time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *repoSuite) TearDownTest() {
	s.mockQuery.AssertExpectations(s.T())
}

func (s *repoSuite) TestInsertSetsActiveKey() {
	sess := &purchase.Session{
		Id:     "s1",
		Buyer:  "0xBuyer",
		Nft:    nftitem.Id{ChainId: 1, ContractAddress: "0xABC", TokenId: "7"},
		Status: purchase.StatusPending,
	}
	s.mockQuery.On("Insert", mockCtx, domain.TablePurchaseSessions, sess).Return(nil).Once()

	s.NoError(s.subject.Insert(mockCtx, sess))
	s.Equal(domain.Address("0xbuyer"), sess.Buyer)
	s.Equal(purchase.ActiveKeyOf("0xbuyer", s.nft), sess.ActiveKey)
}

func (s *repoSuite) TestInsertDuplicate() {
	sess := &purchase.Session{Id: "s1", Buyer: "0xb", Nft: s.nft, Status: purchase.StatusPending}
	s.mockQuery.On("Insert", mockCtx, domain.TablePurchaseSessions, sess).Return(query.ErrDuplicateKey).Once()

	s.ErrorIs(s.subject.Insert(mockCtx, sess), purchase.ErrDuplicateActive)
}

func (s *repoSuite) TestFindOneNotFound() {
	s.mockQuery.
		On("FindOne", mockCtx, domain.TablePurchaseSessions, bson.M{"sessionId": "nope"}, mock.Anything).
		Return(query.ErrNotFound).Once()

	res, err := s.subject.FindOne(mockCtx, "nope")
	s.Nil(res)
	s.ErrorIs(err, purchase.ErrSessionNotFound)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *repoSuite) TestFindActive() {
	s.mockQuery.
		On("FindOne", mockCtx, domain.TablePurchaseSessions, bson.M{"activeKey": purchase.ActiveKeyOf("0xb", s.nft)}, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*purchase.Session) = purchase.Session{Id: "s1", Status: purchase.StatusPending}
		}).
		Return(nil).Once()

	res, err := s.subject.FindActive(mockCtx, "0xB", s.nft)
	s.NoError(err)
	s.Equal("s1", res.Id)
}

func (s *repoSuite) TestFindAll() {
	selector := bson.M{
		"buyer":  domain.Address("0xb"),
		"status": bson.M{"$in": []purchase.Status{purchase.StatusPending}},
	}
	s.mockQuery.
		On("Search", mockCtx, domain.TablePurchaseSessions, 20, 10, "-createdAt", selector, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(6).(*[]*purchase.Session) = []*purchase.Session{{Id: "s1"}, {Id: "s2"}}
		}).
		Return(nil).Once()
	s.mockQuery.On("Count", mockCtx, domain.TablePurchaseSessions, selector).Return(42, nil).Once()

	opts := []purchase.FindAllOptionsFunc{
		purchase.WithBuyer("0xB"),
		purchase.WithStatuses(purchase.StatusPending),
		purchase.WithPagination(20, 10),
	}
	res, err := s.subject.FindAll(mockCtx, opts...)
	s.NoError(err)
	s.Len(res, 2)

	n, err := s.subject.Count(mockCtx, opts...)
	s.NoError(err)
	s.Equal(42, n)
}

func (s *repoSuite) TestFindOverdue() {
	selector := bson.M{
		"status":    bson.M{"$in": purchase.ActiveStatuses},
		"expiresAt": bson.M{"$lt": s.now},
	}
	s.mockQuery.
		On("Search", mockCtx, domain.TablePurchaseSessions, 0, 50, "expiresAt", selector, mock.Anything).
		Return(nil).Once()

	res, err := s.subject.FindOverdue(mockCtx, s.now, 50)
	s.NoError(err)
	s.Empty(res)
}

func (s *repoSuite) TestTransitionToAwaiting() {
	hash := domain.TxHash("0xhash")
	selector := bson.M{
		"sessionId": "s1",
		"status":    bson.M{"$in": []purchase.Status{purchase.StatusPending}},
		"expiresAt": bson.M{"$gte": s.now},
	}
	update := bson.M{"$set": bson.M{
		"status":      purchase.StatusAwaitingVerification,
		"txHash":      hash,
		"submittedAt": s.now,
	}}
	s.mockQuery.
		On("FindOneAndPatch", mockCtx, domain.TablePurchaseSessions, selector, update, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(4).(*purchase.Session) = purchase.Session{Id: "s1", Status: purchase.StatusAwaitingVerification, TxHash: hash}
		}).
		Return(nil).Once()

	res, err := s.subject.Transition(mockCtx, "s1",
		purchase.TransitionCond{From: []purchase.Status{purchase.StatusPending}, ValidAt: &s.now},
		purchase.TransitionUpdate{To: purchase.StatusAwaitingVerification, At: s.now, TxHash: &hash},
	)
	s.NoError(err)
	s.Equal(hash, res.TxHash)
}

func (s *repoSuite) TestTransitionToTerminalUnsetsActiveKey() {
	selector := bson.M{
		"sessionId": "s1",
		"status":    bson.M{"$in": purchase.ActiveStatuses},
		"expiresAt": bson.M{"$lt": s.now},
	}
	update := bson.M{
		"$set": bson.M{
			"status":      purchase.StatusExpired,
			"finalizedAt": s.now,
		},
		"$unset": bson.M{"activeKey": ""},
	}
	s.mockQuery.
		On("FindOneAndPatch", mockCtx, domain.TablePurchaseSessions, selector, update, mock.Anything).
		Return(query.ErrNotFound).Once()

	_, err := s.subject.Transition(mockCtx, "s1",
		purchase.TransitionCond{From: purchase.ActiveStatuses, ExpiredAt: &s.now},
		purchase.TransitionUpdate{To: purchase.StatusExpired, At: s.now},
	)
	s.ErrorIs(err, purchase.ErrTransitionConflict)
}

func (s *repoSuite) TestTransitionRejectsIllegalMoves() {
	cases := []struct {
		from []purchase.Status
		to   purchase.Status
	}{
		{nil, purchase.StatusExpired},
		{[]purchase.Status{purchase.StatusPending}, purchase.StatusConfirmed},
		{[]purchase.Status{purchase.StatusAwaitingVerification}, purchase.StatusCancelled},
		{purchase.ActiveStatuses, purchase.StatusCancelled},
		{[]purchase.Status{purchase.StatusExpired}, purchase.StatusPending},
		{[]purchase.Status{purchase.StatusConfirmed}, purchase.StatusExpired},
	}
	for _, c := range cases {
		_, err := s.subject.Transition(mockCtx, "s1",
			purchase.TransitionCond{From: c.from},
			purchase.TransitionUpdate{To: c.to, At: s.now},
		)
		s.ErrorIs(err, purchase.ErrIllegalTransition, "%v -> %s", c.from, c.to)
	}
	s.mockQuery.AssertNotCalled(s.T(), "FindOneAndPatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *repoSuite) TestEnsureIndexes() {
	s.mockQuery.On("EnsureIndexes", mockCtx, domain.TablePurchaseSessions, Indexes()).Return(nil).Once()
	s.NoError(EnsureIndexes(mockCtx, s.mockQuery))
}
