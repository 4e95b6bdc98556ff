package query

/*
	Package `query` wraps https://github.com/mongodb/mongo-go-driver for the repositories.
	Read https://godoc.org/go.mongodb.org/mongo-driver/mongo for driver details.
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

// Mongo abstract the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	// Return ErrDuplicateKey if a unique index is violated
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne get data from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count return counting for matched entry in the table
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Search sort order by `sort` argument (ex "timestamp" ascending, or "-timestamp" descending)
	// if `sort` is "", the sort action is skipped, and the MongoDB does not guarantee the order of query results.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// FindOneAndPatch applies update to the first entry matching selector and decodes
	// the updated document into result. The selector doubles as a compare-and-set guard.
	// Return ErrNotFound if selector does not match any documents
	FindOneAndPatch(context ctx.Ctx, table domain.Table, selector, update bson.M, result interface{}) error

	// EnsureIndexes creates the indexes if they do not exist yet
	EnsureIndexes(context ctx.Ctx, table domain.Table, models []mongo.IndexModel) error

	// Ping checks the connection to the primary
	Ping(context ctx.Ctx) error
}
