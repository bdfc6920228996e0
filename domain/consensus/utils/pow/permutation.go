package pow

const (
	// EpochDuration is the length of one algorithm-sequence epoch, in
	// seconds.
	EpochDuration = 60 * 60 * 24

	// NumSequences is 13!, the number of distinct algorithm sequences.
	NumSequences uint64 = 6227020800
)

// factorials[i] is i!
var factorials = func() [NumAlgos]uint64 {
	var f [NumAlgos]uint64
	f[0] = 1
	for i := 1; i < NumAlgos; i++ {
		f[i] = f[i-1] * uint64(i)
	}
	return f
}()

// EpochIndex returns the number of whole days between genesisTime and
// headerTime. The subtraction wraps like the unsigned 32-bit header field
// does, so a header time before genesisTime lands in a very late epoch.
func EpochIndex(headerTime, genesisTime uint32) uint64 {
	return uint64((headerTime - genesisTime) / EpochDuration)
}

// SequenceForEpoch returns the epoch-th lexicographic permutation of the
// canonical sequence, wrapping after NumSequences epochs. It decodes the
// epoch in the factorial number system instead of stepping through
// permutations one by one.
func SequenceForEpoch(epoch uint64) AlgoSequence {
	rank := epoch % NumSequences

	remaining := make([]Algo, NumAlgos)
	for i := range remaining {
		remaining[i] = Algo(i)
	}

	var sequence AlgoSequence
	for position := 0; position < NumAlgos; position++ {
		factorial := factorials[NumAlgos-1-position]
		index := rank / factorial
		rank %= factorial

		sequence[position] = remaining[index]
		remaining = append(remaining[:index], remaining[index+1:]...)
	}
	return sequence
}

// SequenceForTime returns the algorithm sequence of a header timestamp.
func SequenceForTime(headerTime, genesisTime uint32) AlgoSequence {
	return SequenceForEpoch(EpochIndex(headerTime, genesisTime))
}

// NextPermutation advances sequence to its lexicographic successor. At the
// last permutation it wraps to the canonical sequence and returns false.
func NextPermutation(sequence *AlgoSequence) bool {
	i := NumAlgos - 2
	for i >= 0 && sequence[i] >= sequence[i+1] {
		i--
	}
	if i < 0 {
		reverseAlgos(sequence[:])
		return false
	}

	j := NumAlgos - 1
	for sequence[j] <= sequence[i] {
		j--
	}
	sequence[i], sequence[j] = sequence[j], sequence[i]
	reverseAlgos(sequence[i+1:])
	return true
}

func reverseAlgos(algos []Algo) {
	for i, j := 0, len(algos)-1; i < j; i, j = i+1, j-1 {
		algos[i], algos[j] = algos[j], algos[i]
	}
}
