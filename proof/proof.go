// Package proof implements an append-only proof step graph: a record of
// every inference a theory plugin made, each step naming a rule, the
// literals it concludes, and the ids of whatever steps justified it.
// It generalizes gophersat's RUP-certificate output (one line per
// learned clause, written as the solver runs) from a single flat log of
// clauses to a typed, cross-referenced graph that covers every theory
// inference, not just boolean resolution.
package proof

import (
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
)

// Step is one recorded inference.
type Step struct {
	ID        int64
	Rule      string
	Premises  []int64
	Concludes []literal.Literal
	Terms     []*term.Term
}

// MemTracer is an in-memory sink for proof steps: the only concrete
// implementation of theory.ProofTracer this module ships, since no
// on-disk proof format is prescribed.
type MemTracer struct {
	steps  []Step
	nextID int64
}

// NewMemTracer returns an empty MemTracer. Step ids start at 1, so 0 can
// keep meaning "no step" (theory.NopTracer's sentinel return value).
func NewMemTracer() *MemTracer {
	return &MemTracer{nextID: 1}
}

// Step implements theory.ProofTracer.
func (t *MemTracer) Step(rule string, premises []int64, concludes []literal.Literal, terms []*term.Term) int64 {
	id := t.nextID
	t.nextID++
	t.steps = append(t.steps, Step{
		ID:        id,
		Rule:      rule,
		Premises:  append([]int64(nil), premises...),
		Concludes: append([]literal.Literal(nil), concludes...),
		Terms:     append([]*term.Term(nil), terms...),
	})
	return id
}

// Steps returns every step recorded so far, in the order Step was
// called. Callers must not mutate the returned slice.
func (t *MemTracer) Steps() []Step { return t.steps }

// Get returns the step with the given id, or the zero Step and false if
// none was recorded with that id (ids are dense and 1-based, so a
// lookup is a direct slice index unless a tracer was reset mid-proof).
func (t *MemTracer) Get(id int64) (Step, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(t.steps) {
		return Step{}, false
	}
	return t.steps[idx], true
}
