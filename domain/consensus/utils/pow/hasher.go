package pow

import (
	"runtime"
	"sync"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	// LegacyCutoverTime is the header time from which the chained hash
	// replaces the legacy scrypt hash (2016-09-09 18:00:00 UTC).
	LegacyCutoverTime uint32 = 1473444000

	// SequenceBaseTime is the time epoch indexes are counted from on every
	// network: the main network genesis time.
	SequenceBaseTime uint32 = 1389040865

	primitiveDigestSize = 64
)

// Hasher computes proof-of-work hashes with a given PrimitiveSet. It keeps
// no per-hash state, so one Hasher may be used from many goroutines.
type Hasher struct {
	primitives  *PrimitiveSet
	cutoverTime uint32
}

// NewHasher returns a Hasher that chains primitives from the given set for
// headers timestamped at or after cutoverTime.
func NewHasher(primitives *PrimitiveSet, cutoverTime uint32) *Hasher {
	return &Hasher{
		primitives:  primitives,
		cutoverTime: cutoverTime,
	}
}

var defaultHasher = NewHasher(DefaultPrimitiveSet(), LegacyCutoverTime)

// DefaultHasher returns the Hasher built on DefaultPrimitiveSet.
func DefaultHasher() *Hasher {
	return defaultHasher
}

// PowHash returns the proof-of-work hash of a serialized header using the
// default hasher.
func PowHash(header []byte, headerTime, genesisTime uint32) (*externalapi.DomainHash, error) {
	return defaultHasher.PowHash(header, headerTime, genesisTime)
}

// PowHash returns the proof-of-work hash of a serialized header.
func (h *Hasher) PowHash(header []byte, headerTime, genesisTime uint32) (*externalapi.DomainHash, error) {
	if headerTime < h.cutoverTime {
		return LegacyHash(header)
	}
	return h.ChainedHash(header, SequenceForTime(headerTime, genesisTime))
}

// HeaderPowHash serializes header and returns its proof-of-work hash.
func (h *Hasher) HeaderPowHash(header *externalapi.DomainBlockHeader, genesisTime uint32) (*externalapi.DomainHash, error) {
	return h.PowHash(header.Serialize(), header.Timestamp, genesisTime)
}

// ChainedHash feeds data to the first primitive of sequence and every
// 512-bit digest to the next one. The result is the low 256 bits of the
// last digest.
func (h *Hasher) ChainedHash(data []byte, sequence AlgoSequence) (*externalapi.DomainHash, error) {
	digest := data
	for _, algo := range sequence {
		primitive, err := h.primitives.newHash(algo)
		if err != nil {
			return nil, err
		}
		// hash.Hash never returns an error from Write
		_, _ = primitive.Write(digest)
		digest = primitive.Sum(nil)

		if len(digest) != primitiveDigestSize {
			return nil, errors.Errorf("%s produced a %d byte digest, expected %d",
				algo, len(digest), primitiveDigestSize)
		}
	}
	return externalapi.NewDomainHashFromByteSlice(digest[:externalapi.DomainHashSize])
}

// PowHashes hashes headers concurrently. The result at index i is the
// proof-of-work hash of headers[i].
func (h *Hasher) PowHashes(headers []*externalapi.DomainBlockHeader, genesisTime uint32) (
	[]*externalapi.DomainHash, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "PowHashes")
	defer onEnd()

	hashes := make([]*externalapi.DomainHash, len(headers))
	hashErrors := make([]error, len(headers))
	if len(headers) == 0 {
		return hashes, nil
	}

	workers := runtime.NumCPU()
	if workers > len(headers) {
		workers = len(headers)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		spawn(func() {
			defer wg.Done()
			for index := range indexes {
				hashes[index], hashErrors[index] = h.HeaderPowHash(headers[index], genesisTime)
			}
		})
	}
	for index := range headers {
		indexes <- index
	}
	close(indexes)
	wg.Wait()

	for index, err := range hashErrors {
		if err != nil {
			return nil, errors.Wrapf(err, "failed hashing header #%d", index)
		}
	}
	log.Tracef("Hashed %d headers with %d workers", len(headers), workers)
	return hashes, nil
}
