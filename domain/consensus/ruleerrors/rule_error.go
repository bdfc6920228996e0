package ruleerrors

import (
	"fmt"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrDuplicateBlock indicates a block with the same hash already
	// exists.
	ErrDuplicateBlock = newRuleError("ErrDuplicateBlock")

	// ErrUnexpectedDifficulty indicates specified bits do not align with
	// the value the retarget rules of the block's era derive.
	ErrUnexpectedDifficulty = newRuleError("ErrUnexpectedDifficulty")

	// ErrTargetTooHigh indicates specified bits decode to a target above
	// the network's proof-of-work ceiling.
	ErrTargetTooHigh = newRuleError("ErrTargetTooHigh")

	// ErrNegativeTarget indicates specified bits have the sign bit set on
	// a non-zero mantissa.
	ErrNegativeTarget = newRuleError("ErrNegativeTarget")

	// ErrMalformedTarget indicates specified bits decode to zero or to a
	// value that doesn't fit in 256 bits.
	ErrMalformedTarget = newRuleError("ErrMalformedTarget")

	// ErrInvalidPoW indicates that the block proof-of-work hash is above
	// the target the block claims.
	ErrInvalidPoW = newRuleError("ErrInvalidPoW")

	// ErrMissingParent indicates a header whose previous block is not in
	// the block index.
	ErrMissingParent = newRuleError("ErrMissingParent")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block header failed due to one of the consensus rules.
// The caller can use errors.As or errors.Is to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// ErrMissingParents indicates a header points to a block the index
// doesn't know.
type ErrMissingParents struct {
	MissingParentHashes []*externalapi.DomainHash
}

func (e ErrMissingParents) Error() string {
	return fmt.Sprintf("missing the following parent hashes: %v", e.MissingParentHashes)
}

// NewErrMissingParents creates a new ErrMissingParents error wrapped in a RuleError
func NewErrMissingParents(missingParentHashes []*externalapi.DomainHash) error {
	return errors.WithStack(RuleError{
		message: "ErrMissingParents",
		inner:   ErrMissingParents{missingParentHashes},
	})
}

// IsRuleError returns whether err is, or wraps, a RuleError.
func IsRuleError(err error) bool {
	return errors.As(err, &RuleError{})
}
