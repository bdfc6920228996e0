package model

import "github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"

// ChainLockSig is a quorum signature locking BlockHash at Height.
type ChainLockSig struct {
	Height    uint64
	BlockHash *externalapi.DomainHash
	Signature []byte
}
