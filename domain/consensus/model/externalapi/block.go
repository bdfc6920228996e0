package externalapi

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// BlockHeaderSize is the size of a serialized block header: version,
// previous block hash, merkle root, time, bits and nonce.
const BlockHeaderSize = 4 + DomainHashSize + DomainHashSize + 4 + 4 + 4

// DomainBlock represents a Machinecoin block. Transactions are carried as
// opaque payloads, their semantics live outside the consensus kernel.
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// DomainBlockHeader represents the header part of a Machinecoin block
type DomainBlockHeader struct {
	Version        int32
	PrevBlockHash  DomainHash
	HashMerkleRoot DomainHash
	Timestamp      uint32
	Bits           uint32
	Nonce          uint32
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	clone := *header
	return &clone
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{0, DomainHash{}, DomainHash{}, 0, 0, 0}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}
	return *header == *other
}

// Serialize returns the little-endian wire encoding of the header. These
// are the bytes both the identity hash and the proof-of-work hash consume.
func (header *DomainBlockHeader) Serialize() []byte {
	buf := make([]byte, BlockHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(header.Version))
	copy(buf[4:36], header.PrevBlockHash.hashArray[:])
	copy(buf[36:68], header.HashMerkleRoot.hashArray[:])
	binary.LittleEndian.PutUint32(buf[68:72], header.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], header.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], header.Nonce)
	return buf
}

// DeserializeBlockHeader parses the wire encoding produced by Serialize.
func DeserializeBlockHeader(serialized []byte) (*DomainBlockHeader, error) {
	if len(serialized) != BlockHeaderSize {
		return nil, errors.Errorf("serialized header is %d bytes, expected %d",
			len(serialized), BlockHeaderSize)
	}
	header := &DomainBlockHeader{
		Version:   int32(binary.LittleEndian.Uint32(serialized[0:4])),
		Timestamp: binary.LittleEndian.Uint32(serialized[68:72]),
		Bits:      binary.LittleEndian.Uint32(serialized[72:76]),
		Nonce:     binary.LittleEndian.Uint32(serialized[76:80]),
	}
	copy(header.PrevBlockHash.hashArray[:], serialized[4:36])
	copy(header.HashMerkleRoot.hashArray[:], serialized[36:68])
	return header, nil
}
