package tracks

import "math/rand/v2"

// Source hands out the next candidate to fetch. Implementations must be
// safe for concurrent calls: multiple fetch workers pull from one source.
type Source interface {
	Next() Candidate
}

// RandomSource picks a uniformly random entry from a list on every call.
// Repeats are possible; an endless radio stream is expected to repeat
// eventually anyway.
type RandomSource struct {
	list *List
}

// NewRandomSource creates a source over the given list.
func NewRandomSource(list *List) *RandomSource {
	return &RandomSource{list: list}
}

// Next returns a random candidate. Safe for concurrent use: the top-level
// math/rand/v2 generator is goroutine-safe and the list is never mutated.
func (s *RandomSource) Next() Candidate {
	return s.list.candidate(rand.IntN(s.list.Len()))
}
