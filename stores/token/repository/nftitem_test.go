package repository

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/service/query"
	mQuery "github.com/x-xyz/checkout/service/query/mocks"
	"go.mongodb.org/mongo-driver/bson"
)

type nftitemSuite struct {
	suite.Suite

	query *mQuery.Mongo
	im    *nftitemImpl
}

func TestNftitemSuite(t *testing.T) {
	suite.Run(t, new(nftitemSuite))
}

func (s *nftitemSuite) SetupTest() {
	s.query = &mQuery.Mongo{}
	s.im = NewNftItem(s.query, nil).(*nftitemImpl)
}

func (s *nftitemSuite) TestFindOneIsCached() {
	c := ctx.Background()
	id := nftitem.Id{ChainId: 1, ContractAddress: "0xBC4CA0EDA7647A8AB7C2061C2E118A18A936F13D", TokenId: "1"}
	price := 1.5

	s.query.
		On("FindOne", mock.Anything, domain.TableNFTItems, bson.M{
			"chainId":         domain.ChainId(1),
			"contractAddress": domain.Address("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"),
			"tokenID":         domain.TokenId("1"),
		}, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*nftitem.NftItem) = nftitem.NftItem{ChainId: 1, Name: "BAYC #1", Price: &price}
		}).
		Return(nil).Once()

	for i := 0; i < 2; i++ {
		res, err := s.im.FindOne(c, id)
		s.Require().NoError(err)
		s.Equal("BAYC #1", res.Name)
		s.Equal(1.5, *res.Price)
	}
	s.query.AssertExpectations(s.T())
}

func (s *nftitemSuite) TestFindOneNotFound() {
	c := ctx.Background()
	id := nftitem.Id{ChainId: 1, ContractAddress: "0xabc", TokenId: "404"}

	s.query.On("FindOne", mock.Anything, domain.TableNFTItems, mock.Anything, mock.Anything).Return(query.ErrNotFound).Twice()

	for i := 0; i < 2; i++ {
		_, err := s.im.FindOne(c, id)
		s.ErrorIs(err, domain.ErrNotFound)
	}
	s.query.AssertExpectations(s.T())
}
