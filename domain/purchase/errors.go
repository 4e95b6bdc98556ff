package purchase

import (
	"errors"
	"fmt"

	"github.com/x-xyz/checkout/domain"
)

var (
	// ErrValidation is returned for bad input: non-positive amount, empty hash, unknown currency
	ErrValidation = fmt.Errorf("invalid purchase request: %w", domain.ErrBadParamInput)
	// ErrSessionNotFound is returned for unknown sessions and sessions of other buyers
	ErrSessionNotFound = fmt.Errorf("purchase session not found: %w", domain.ErrNotFound)
	// ErrSessionExpired is returned for actions attempted past the expiry
	ErrSessionExpired = errors.New("purchase session expired")
	// ErrSessionFinalized is returned for actions attempted on a confirmed, expired or cancelled session
	ErrSessionFinalized = errors.New("purchase session already finalized")
	// ErrAttestationSubmitted is returned when the session already carries a transaction hash
	ErrAttestationSubmitted = fmt.Errorf("attestation already submitted: %w", domain.ErrConflict)

	// ErrDuplicateActive is returned by Repo.Insert when the pair already has an active session
	ErrDuplicateActive = errors.New("active purchase session exists")
	// ErrTransitionConflict is returned by Repo.Transition when the guard does not match
	ErrTransitionConflict = fmt.Errorf("purchase session transition conflict: %w", domain.ErrConflict)
	// ErrIllegalTransition is returned by Repo.Transition for a move the status machine does not allow
	ErrIllegalTransition = errors.New("illegal purchase session transition")
)

// ErrExpiredSession is the error of a session whose status is already expired,
// it matches both ErrSessionExpired and ErrSessionFinalized.
var ErrExpiredSession error = expiredSessionError{}

type expiredSessionError struct{}

func (expiredSessionError) Error() string {
	return "purchase session expired and finalized"
}

func (expiredSessionError) Is(target error) bool {
	return target == ErrSessionExpired || target == ErrSessionFinalized
}
