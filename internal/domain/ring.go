package domain

// Ring helpers treat a sequence of length n as a cycle. Callers must pass
// n >= 1 and a position in [0, n).

// PrevIndex returns the position before i, wrapping from 0 to n-1.
func PrevIndex(i, n int) int {
	return (i - 1 + n) % n
}

// NextIndex returns the position after i, wrapping from n-1 to 0.
func NextIndex(i, n int) int {
	return (i + 1) % n
}

// Neighbors returns the cyclic predecessor and successor of seq[i].
// For a single-element sequence both are seq[0].
func Neighbors[T any](seq []T, i int) (prev, next T) {
	n := len(seq)
	return seq[PrevIndex(i, n)], seq[NextIndex(i, n)]
}
