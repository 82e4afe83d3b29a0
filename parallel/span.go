package parallel

import "iter"

// Spans splits [0, n) into at most parts contiguous, non-overlapping
// half-open ranges of near-equal length, in ascending order. Empty ranges are
// never yielded.
func Spans(n, parts int) iter.Seq2[int, int] {
	return func(yield func(lo, hi int) bool) {
		if n <= 0 {
			return
		}
		if parts < 1 {
			parts = 1
		}
		if parts > n {
			parts = n
		}

		size, rem := n/parts, n%parts
		lo := 0
		for i := range parts {
			hi := lo + size
			if i < rem {
				hi++
			}
			if !yield(lo, hi) {
				return
			}
			lo = hi
		}
	}
}
