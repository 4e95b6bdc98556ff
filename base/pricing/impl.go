package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/service/query"
	"golang.org/x/xerrors"
)

type CalculatorCfg struct {
	Paytoken domain.PayTokenRepo
	FeeBps   int64
}

type impl struct {
	paytoken domain.PayTokenRepo
	feeBps   int64
}

// NewCalculator quotes against cfg.Paytoken on every call, caching is left to the repo
func NewCalculator(cfg *CalculatorCfg) Calculator {
	return &impl{
		paytoken: cfg.Paytoken,
		feeBps:   cfg.FeeBps,
	}
}

func (f *impl) Quote(ctx bCtx.Ctx, chainId domain.ChainId, currency string, amount string) (*Quote, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		ctx.WithFields(log.Fields{
			"amount": amount,
			"err":    err,
		}).Warn("decimal.NewFromString failed")
		return nil, xerrors.Errorf("amount %q: %w", amount, domain.ErrInvalidNumberFormat)
	}
	if !value.IsPositive() {
		return nil, xerrors.Errorf("amount %s must be positive: %w", amount, domain.ErrBadParamInput)
	}

	symbol := domain.NormalizeCurrency(currency)
	p, err := f.paytoken.FindBySymbol(ctx, chainId, symbol)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) {
		return nil, xerrors.Errorf("currency %s on chain %d: %w", symbol, chainId, domain.ErrInvalidCurrency)
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"chainId":  chainId,
			"currency": symbol,
			"err":      err,
		}).Error("paytoken.FindBySymbol failed")
		return nil, err
	}

	precision := p.Precision()
	// the agreed amount is stored as sent, finer amounts would be rounded away
	if rounded := value.Round(precision); !rounded.Equal(value) || !rounded.IsPositive() {
		return nil, xerrors.Errorf("amount %s exceeds %d decimals of %s: %w", amount, precision, p.Symbol, domain.ErrBadParamInput)
	}

	fee, total := Total(value, f.feeBps, precision)
	return &Quote{
		Amount:    value.Round(precision),
		Fee:       fee,
		Total:     total,
		Currency:  p.Symbol,
		Precision: precision,
	}, nil
}
