package pow

import "strings"

// Algo identifies one of the hash primitives chained by the proof-of-work
// hash. The numeric order is the canonical ascending order the epoch
// permutations are derived from.
type Algo uint8

// The hash primitives, in canonical order.
const (
	AlgoBlake Algo = iota
	AlgoBMW
	AlgoGroestl
	AlgoSkein
	AlgoJH
	AlgoKeccak
	AlgoLuffa
	AlgoCubeHash
	AlgoShavite
	AlgoSIMD
	AlgoEcho
	AlgoHamsi
	AlgoFugue
)

// NumAlgos is the number of chained hash primitives.
const NumAlgos = 13

var algoNames = [NumAlgos]string{
	AlgoBlake:    "BLAKE",
	AlgoBMW:      "BMW",
	AlgoGroestl:  "GROESTL",
	AlgoSkein:    "SKEIN",
	AlgoJH:       "JH",
	AlgoKeccak:   "KECCAK",
	AlgoLuffa:    "LUFFA",
	AlgoCubeHash: "CUBEHASH",
	AlgoShavite:  "SHAVITE",
	AlgoSIMD:     "SIMD",
	AlgoEcho:     "ECHO",
	AlgoHamsi:    "HAMSI",
	AlgoFugue:    "FUGUE",
}

func (algo Algo) String() string {
	if int(algo) >= NumAlgos {
		return "UNKNOWN"
	}
	return algoNames[algo]
}

// AlgoSequence is the order in which the primitives are chained for one
// epoch. It is always a permutation of the canonical order.
type AlgoSequence [NumAlgos]Algo

// CanonicalSequence returns the ascending sequence used for epoch 0.
func CanonicalSequence() AlgoSequence {
	var sequence AlgoSequence
	for i := range sequence {
		sequence[i] = Algo(i)
	}
	return sequence
}

func (sequence AlgoSequence) String() string {
	names := make([]string, len(sequence))
	for i, algo := range sequence {
		names[i] = algo.String()
	}
	return strings.Join(names, ",")
}

// IsPermutation returns whether every primitive appears exactly once.
func (sequence AlgoSequence) IsPermutation() bool {
	var seen [NumAlgos]bool
	for _, algo := range sequence {
		if int(algo) >= NumAlgos || seen[algo] {
			return false
		}
		seen[algo] = true
	}
	return true
}
