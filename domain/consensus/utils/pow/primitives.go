package pow

import (
	"hash"
	"sync"

	"github.com/bitbandi/go-x11/blake"
	"github.com/bitbandi/go-x11/bmw"
	"github.com/bitbandi/go-x11/cubed"
	"github.com/bitbandi/go-x11/echo"
	"github.com/bitbandi/go-x11/groest"
	"github.com/bitbandi/go-x11/jhash"
	"github.com/bitbandi/go-x11/luffa"
	"github.com/bitbandi/go-x11/shavite"
	"github.com/bitbandi/go-x11/simd"
	"github.com/bitbandi/go-x11/skein"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// ErrPrimitiveUnavailable is returned when an algorithm sequence needs a
// hash primitive that was never registered.
var ErrPrimitiveUnavailable = errors.New("hash primitive unavailable")

// PrimitiveConstructor returns a freshly initialized 512-bit hash.
type PrimitiveConstructor func() hash.Hash

// PrimitiveSet maps every Algo to the constructor of its 512-bit hash. A
// fresh hash is constructed for each step of a chained hash, so a set can
// be shared between goroutines.
type PrimitiveSet struct {
	lock         sync.RWMutex
	constructors [NumAlgos]PrimitiveConstructor
}

// NewPrimitiveSet returns a set with no primitives registered.
func NewPrimitiveSet() *PrimitiveSet {
	return &PrimitiveSet{}
}

// DefaultPrimitiveSet returns the primitives this build ships with. HAMSI
// and FUGUE have no implementation here and must be registered by the
// caller before hashing headers whose sequence needs them.
func DefaultPrimitiveSet() *PrimitiveSet {
	set := NewPrimitiveSet()
	set.Register(AlgoBlake, func() hash.Hash { return blake.New() })
	set.Register(AlgoBMW, func() hash.Hash { return bmw.New() })
	set.Register(AlgoGroestl, func() hash.Hash { return groest.New() })
	set.Register(AlgoSkein, func() hash.Hash { return skein.New() })
	set.Register(AlgoJH, func() hash.Hash { return jhash.New() })
	set.Register(AlgoKeccak, sha3.NewLegacyKeccak512)
	set.Register(AlgoLuffa, func() hash.Hash { return luffa.New() })
	set.Register(AlgoCubeHash, func() hash.Hash { return cubed.New() })
	set.Register(AlgoShavite, func() hash.Hash { return shavite.New() })
	set.Register(AlgoSIMD, func() hash.Hash { return simd.New() })
	set.Register(AlgoEcho, func() hash.Hash { return echo.New() })
	return set
}

// Register sets the constructor of algo, replacing any previous one.
func (set *PrimitiveSet) Register(algo Algo, constructor PrimitiveConstructor) {
	if int(algo) >= NumAlgos {
		panic(errors.Errorf("unknown algo %d", algo))
	}
	set.lock.Lock()
	defer set.lock.Unlock()
	set.constructors[algo] = constructor
}

// IsAvailable returns whether algo has a registered constructor.
func (set *PrimitiveSet) IsAvailable(algo Algo) bool {
	set.lock.RLock()
	defer set.lock.RUnlock()
	return set.constructors[algo] != nil
}

// Missing returns the algos that have no registered constructor.
func (set *PrimitiveSet) Missing() []Algo {
	set.lock.RLock()
	defer set.lock.RUnlock()

	var missing []Algo
	for algo, constructor := range set.constructors {
		if constructor == nil {
			missing = append(missing, Algo(algo))
		}
	}
	return missing
}

func (set *PrimitiveSet) newHash(algo Algo) (hash.Hash, error) {
	set.lock.RLock()
	constructor := set.constructors[algo]
	set.lock.RUnlock()

	if constructor == nil {
		return nil, errors.Wrapf(ErrPrimitiveUnavailable, "%s", algo)
	}
	return constructor(), nil
}
