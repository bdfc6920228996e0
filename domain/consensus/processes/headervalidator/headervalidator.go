package headervalidator

import (
	"math/big"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/ruleerrors"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// headerValidator checks headers against the difficulty rules and the
// proof-of-work range
type headerValidator struct {
	powMax            *big.Int
	difficultyManager model.DifficultyManager
}

// New instantiates a new HeaderValidator
func New(powMax *big.Int, difficultyManager model.DifficultyManager) model.HeaderValidator {
	return &headerValidator{
		powMax:            powMax,
		difficultyManager: difficultyManager,
	}
}

func (v *headerValidator) ValidateHeaderInIsolation(header *externalapi.DomainBlockHeader,
	powHash *externalapi.DomainHash) error {

	return pow.ValidateProofOfWork(powHash, header.Bits, v.powMax)
}

func (v *headerValidator) ValidateHeaderInContext(header *externalapi.DomainBlockHeader,
	powHash *externalapi.DomainHash, parent model.ChainNode) error {

	err := v.checkParent(header, parent)
	if err != nil {
		return err
	}

	err = v.checkDifficulty(header, parent)
	if err != nil {
		return err
	}

	return v.ValidateHeaderInIsolation(header, powHash)
}

func (v *headerValidator) checkParent(header *externalapi.DomainBlockHeader, parent model.ChainNode) error {
	if parent == nil {
		if !header.PrevBlockHash.IsZero() {
			return errors.Wrapf(ruleerrors.ErrMissingParent,
				"header has previous block %s but no parent was given", &header.PrevBlockHash)
		}
		return nil
	}
	if !parent.Hash().Equal(&header.PrevBlockHash) {
		return errors.Wrapf(ruleerrors.ErrMissingParent,
			"header has previous block %s but was validated against %s", &header.PrevBlockHash, parent.Hash())
	}
	return nil
}

func (v *headerValidator) checkDifficulty(header *externalapi.DomainBlockHeader, parent model.ChainNode) error {
	expectedBits := v.difficultyManager.NextRequiredTarget(parent, header)
	if header.Bits != expectedBits {
		return errors.Wrapf(ruleerrors.ErrUnexpectedDifficulty, "block difficulty of %08x "+
			"is not the expected value of %08x", header.Bits, expectedBits)
	}
	log.Tracef("Header difficulty %08x matches the required target", header.Bits)
	return nil
}
