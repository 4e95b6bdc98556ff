package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/account"
	mAccount "github.com/x-xyz/checkout/domain/account/mocks"
)

var (
	mockCtx     = ctx.Background()
	mockBuyer   = domain.Address("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	mockDeposit = domain.Address("0x00000000000000000000000000000000000000de")
	mockNow     = time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
)

type accountSuite struct {
	suite.Suite

	repo *mAccount.Repo
	im   account.Usecase
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(accountSuite))
}

func (s *accountSuite) SetupTest() {
	timeNow = func() time.Time { return mockNow }
	s.repo = &mAccount.Repo{}
	s.im = New(&AccountUseCaseCfg{Repo: s.repo, DepositAddress: "0x00000000000000000000000000000000000000DE"})
}

func (s *accountSuite) TearDownTest() {
	timeNow = time.Now
	s.repo.AssertExpectations(s.T())
}

func (s *accountSuite) TestExistingAccountWithOwnDeposit() {
	own := domain.Address("0x0000000000000000000000000000000000000001")
	s.repo.On("Get", mockCtx, mockBuyer).Return(&account.Account{Address: mockBuyer, DepositAddress: own}, nil).Once()

	w, err := s.im.GetWallet(mockCtx, "0xBC4CA0EDA7647A8AB7C2061C2E118A18A936F13D")
	s.Require().NoError(err)
	s.Equal(mockBuyer, w.Address)
	s.Equal(own, w.DepositAddress)
}

func (s *accountSuite) TestCreatesOnFirstUse() {
	s.repo.On("Get", mockCtx, mockBuyer).Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Insert", mockCtx, &account.Account{Address: mockBuyer, CreatedAt: mockNow, UpdatedAt: mockNow}).Return(nil).Once()

	w, err := s.im.GetWallet(mockCtx, mockBuyer)
	s.Require().NoError(err)
	s.Equal(mockBuyer, w.Address)
	s.Equal(mockDeposit, w.DepositAddress)
}

func (s *accountSuite) TestConcurrentCreate() {
	s.repo.On("Get", mockCtx, mockBuyer).Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Insert", mockCtx, mock.Anything).Return(domain.ErrConflict).Once()
	s.repo.On("Get", mockCtx, mockBuyer).Return(&account.Account{Address: mockBuyer}, nil).Once()

	w, err := s.im.GetWallet(mockCtx, mockBuyer)
	s.Require().NoError(err)
	s.Equal(mockDeposit, w.DepositAddress)
}

func (s *accountSuite) TestRepoFailure() {
	s.repo.On("Get", mockCtx, mockBuyer).Return(nil, domain.ErrInternalServerError).Once()

	_, err := s.im.GetWallet(mockCtx, mockBuyer)
	s.ErrorIs(err, domain.ErrInternalServerError)
}

func (s *accountSuite) TestNoDepositConfigured() {
	im := New(&AccountUseCaseCfg{Repo: s.repo})
	s.repo.On("Get", mockCtx, mockBuyer).Return(&account.Account{Address: mockBuyer}, nil).Once()

	_, err := im.GetWallet(mockCtx, mockBuyer)
	s.ErrorIs(err, domain.ErrInternalServerError)
}
