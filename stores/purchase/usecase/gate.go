package usecase

import (
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/validator"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/purchase"
	"golang.org/x/xerrors"
)

// gate checks the buyer's attestation and hands it to the verification authority.
// It does not look at the chain.
type gate struct {
	verifier purchase.Verifier
}

// Validate trims txHash and lower-cases evm hashes. Anything else non-empty is
// left for the authority to judge.
func (g *gate) Validate(txHash string) (domain.TxHash, error) {
	h := validator.NormalizeTxHash(txHash)
	if len(h) == 0 {
		return "", xerrors.Errorf("empty transaction hash: %w", purchase.ErrValidation)
	}
	return domain.TxHash(h), nil
}

func (g *gate) Forward(c ctx.Ctx, s *purchase.Session) error {
	if g.verifier == nil {
		return nil
	}
	return g.verifier.Submit(c, s.ToAttestation())
}
