package diag

import (
	"sort"
)

// Bag collects diagnostics up to a limit. Entries past the limit are
// counted, not stored, so callers can say how many were suppressed.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0
// means unbounded.
func NewBag(limit int) *Bag {
	if limit < 0 {
		limit = 0
	}
	return &Bag{limit: limit}
}

// Add stores d and reports whether it fit under the limit.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors: есть ли хоть одна SevError.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped returns how many diagnostics were refused by the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the stored diagnostics. The slice is shared with the bag.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders by file and position, errors before warnings at the same
// spot. Equal entries keep their report order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		pi, pj := b.items[i].Primary, b.items[j].Primary
		switch {
		case pi.File != pj.File:
			return pi.File < pj.File
		case pi.Start != pj.Start:
			return pi.Start < pj.Start
		default:
			return b.items[i].Severity > b.items[j].Severity
		}
	})
}
