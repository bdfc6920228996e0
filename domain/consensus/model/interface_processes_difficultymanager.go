package model

import "github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"

// DifficultyManager provides a method to resolve the
// difficulty value of a block
type DifficultyManager interface {
	// NextRequiredTarget returns the compact target a header built on tip
	// must carry. A nil tip means header is the genesis.
	NextRequiredTarget(tip ChainNode, header *externalapi.DomainBlockHeader) uint32
}
