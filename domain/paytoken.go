package domain

import (
	"strings"

	"github.com/x-xyz/checkout/base/ctx"
)

const DefaultDisplayDecimals = 4

type PayToken struct {
	Name          string  `bson:"name"`
	Symbol        string  `bson:"symbol"`
	TokenDecimals int32   `bson:"tokenDecimals"`
	ChainId       ChainId `bson:"chainId"`
	Address       Address `bson:"address"`
	// DisplayDecimals is the precision amounts are rounded to, 0 means DefaultDisplayDecimals
	DisplayDecimals int32 `bson:"displayDecimals"`
}

func (t *PayToken) Precision() int32 {
	if t.DisplayDecimals <= 0 {
		return DefaultDisplayDecimals
	}
	return t.DisplayDecimals
}

// NormalizeCurrency upper-cases a currency code, "eth " becomes "ETH"
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type PayTokenRepo interface {
	FindOne(ctx.Ctx, ChainId, Address) (*PayToken, error)
	FindBySymbol(c ctx.Ctx, chainId ChainId, symbol string) (*PayToken, error)
}
