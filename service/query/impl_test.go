package query

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/database/mongoclient"
	"github.com/x-xyz/checkout/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.Table("query_test")
	dbName    = "testdb"
)

type dummy struct {
	Key    string `bson:"key"`
	Status string `bson:"status"`
	Active string `bson:"active,omitempty"`
}

type querySuite struct {
	suite.Suite
	im       *impl
	mongoURI string
}

func TestQuerySuite(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	suite.Run(t, &querySuite{mongoURI: uri})
}

func (q *querySuite) SetupTest() {
	q.im = &impl{
		client:     mongoclient.MustConnectMongoClient(q.mongoURI, "admin", dbName, false, true, 1),
		checkIndex: false,
	}
	q.Require().NoError(q.im.collection(mockTable).Drop(mockCTX))
}

func (q *querySuite) TestInsertAndFindOne() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Key: "a", Status: "pending"}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"key": "a"}, &res))
	q.Equal("pending", res.Status)

	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"key": "b"}, &res))
}

func (q *querySuite) TestUniquePartialIndex() {
	q.Require().NoError(q.im.EnsureIndexes(mockCTX, mockTable, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "active", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
				"active": bson.M{"$exists": true},
			}),
		},
	}))

	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Key: "a", Status: "pending", Active: "x"}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, dummy{Key: "b", Status: "pending", Active: "x"}))

	// entries without the field do not collide
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Key: "c", Status: "expired"}))
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Key: "d", Status: "expired"}))
}

func (q *querySuite) TestFindOneAndPatchIsCompareAndSet() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Key: "a", Status: "pending", Active: "x"}))

	selector := bson.M{"key": "a", "status": "pending"}
	update := bson.M{"$set": bson.M{"status": "cancelled"}, "$unset": bson.M{"active": ""}}

	res := dummy{}
	q.Require().NoError(q.im.FindOneAndPatch(mockCTX, mockTable, selector, update, &res))
	q.Equal(dummy{Key: "a", Status: "cancelled"}, res)

	q.Equal(ErrNotFound, q.im.FindOneAndPatch(mockCTX, mockTable, selector, update, &res))
}

func (q *querySuite) TestSearchAndCount() {
	for _, k := range []string{"c", "a", "b"} {
		q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Key: k, Status: "pending"}))
	}

	res := []dummy{}
	q.Require().NoError(q.im.Search(mockCTX, mockTable, 1, 2, "-key", bson.M{"status": "pending"}, &res))
	q.Require().Len(res, 2)
	q.Equal("b", res[0].Key)
	q.Equal("a", res[1].Key)

	n, err := q.im.Count(mockCTX, mockTable, bson.M{"status": "pending"})
	q.NoError(err)
	q.Equal(3, n)
}

func (q *querySuite) TestSortOption() {
	q.Equal(bson.D{{Key: "expiresAt", Value: 1}}, getSortOption("expiresAt"))
	q.Equal(bson.D{{Key: "createdAt", Value: -1}}, getSortOption("-createdAt"))
	q.Equal(bson.D{}, getSortOption(""))
}
