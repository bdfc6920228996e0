package model

import (
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
)

// HeaderValidator exposes the checks a header must pass before it is
// connected to the block index
type HeaderValidator interface {
	// ValidateHeaderInIsolation checks the header's claimed target and its
	// proof-of-work hash against that target.
	ValidateHeaderInIsolation(header *externalapi.DomainBlockHeader, powHash *externalapi.DomainHash) error

	// ValidateHeaderInContext additionally checks that the header extends
	// parent with the target the difficulty rules require. A nil parent
	// means header is the genesis.
	ValidateHeaderInContext(header *externalapi.DomainBlockHeader, powHash *externalapi.DomainHash, parent ChainNode) error
}
