package pricing

import (
	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
)

// bpsDenominator is 100% in basis points
const bpsDenominator = 10000

// Quote is the breakdown of what a buyer is charged
type Quote struct {
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	Total     decimal.Decimal
	Currency  string
	Precision int32
}

func (q *Quote) AmountString() string {
	return q.Amount.StringFixed(q.Precision)
}

func (q *Quote) FeeString() string {
	return q.Fee.StringFixed(q.Precision)
}

func (q *Quote) TotalString() string {
	return q.Total.StringFixed(q.Precision)
}

type Calculator interface {
	// Quote parses amount and prices it in currency on chainId
	Quote(ctx bCtx.Ctx, chainId domain.ChainId, currency string, amount string) (*Quote, error)
}

// Total returns fee = amount * feeBps / 10000 and total = amount + fee, both
// rounded half up at precision decimals.
func Total(amount decimal.Decimal, feeBps int64, precision int32) (fee decimal.Decimal, total decimal.Decimal) {
	fee = amount.Mul(decimal.NewFromInt(feeBps)).Div(decimal.NewFromInt(bpsDenominator)).Round(precision)
	total = amount.Round(precision).Add(fee)
	return fee, total
}
