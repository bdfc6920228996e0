package consensushashing

import (
	"crypto/sha256"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
)

// BlockHash returns the given block's hash
func BlockHash(block *externalapi.DomainBlock) *externalapi.DomainHash {
	return HeaderHash(block.Header)
}

// HeaderHash returns the given header's identity hash: double SHA-256 of its
// serialization.
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	return DoubleSHA256(header.Serialize())
}

// DoubleSHA256 returns SHA-256(SHA-256(data)).
func DoubleSHA256(data []byte) *externalapi.DomainHash {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return externalapi.NewDomainHashFromByteArray(&second)
}
