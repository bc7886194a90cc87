package fec

// Sequence hands out entry numbers for one generation run. Each run owns its
// own instance; nothing is shared across requests and nothing persists.
type Sequence struct {
	next int
}

// NewSequence starts a sequence at 1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Next returns the current entry number and advances. Called once per source
// document, never per line.
func (s *Sequence) Next() int {
	n := s.next
	s.next++
	return n
}
