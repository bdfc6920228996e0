package pow

import (
	"math/big"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/ruleerrors"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/math"
	"github.com/pkg/errors"
)

// HashToBig converts a hash into a big.Int that can be used to perform
// math comparisons. Hashes are serialized little-endian.
func HashToBig(hash *externalapi.DomainHash) *big.Int {
	buf := hash.BytesArray()
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return new(big.Int).SetBytes(buf[:])
}

// CheckTarget decodes bits and makes sure the target is positive, fits in
// 256 bits and does not exceed powMax.
func CheckTarget(bits uint32, powMax *big.Int) (*big.Int, error) {
	target, isNegative, isOverflow := math.CompactToTarget(bits)
	if isNegative {
		return nil, errors.Wrapf(ruleerrors.ErrNegativeTarget, "block target %08x is negative", bits)
	}
	if isOverflow {
		return nil, errors.Wrapf(ruleerrors.ErrMalformedTarget, "block target %08x overflows 256 bits", bits)
	}
	if target.Sign() == 0 {
		return nil, errors.Wrapf(ruleerrors.ErrMalformedTarget, "block target %08x is zero", bits)
	}
	if target.Cmp(powMax) > 0 {
		return nil, errors.Wrapf(ruleerrors.ErrTargetTooHigh, "block target %064x is higher than the max of %064x",
			target, powMax)
	}
	return target, nil
}

// ValidateProofOfWork checks that bits is a legal target and that hash,
// read as an unsigned 256-bit number, does not exceed it.
func ValidateProofOfWork(hash *externalapi.DomainHash, bits uint32, powMax *big.Int) error {
	target, err := CheckTarget(bits, powMax)
	if err != nil {
		return err
	}
	if HashToBig(hash).Cmp(target) > 0 {
		return errors.Wrapf(ruleerrors.ErrInvalidPoW, "block proof-of-work hash %s is higher than the target %064x",
			hash, target)
	}
	return nil
}

// CheckProofOfWork is ValidateProofOfWork reduced to a verdict.
func CheckProofOfWork(hash *externalapi.DomainHash, bits uint32, powMax *big.Int) bool {
	return ValidateProofOfWork(hash, bits, powMax) == nil
}
