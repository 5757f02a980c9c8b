package theory

import (
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
)

// ProofTracer records the inference steps a Plugin makes, as an
// append-only step graph: each step names a rule, the literals it
// concludes, the terms it cites (e.g. the two e-node terms a merge
// unified), and the ids of the steps it depends on. The concrete step
// graph lives in package proof; ProofTracer is declared here, next to
// the Plugin interface that drives it, so proof never needs to import
// theory to satisfy it.
type ProofTracer interface {
	// Step records one inference, returning its id for use as a later
	// step's premise.
	Step(rule string, premises []int64, concludes []literal.Literal, terms []*term.Term) int64
}

// NopTracer discards every step; its zero value is ready to use, and is
// the default a Framework falls back to when no tracer is supplied.
type NopTracer struct{}

// Step implements ProofTracer.
func (NopTracer) Step(string, []int64, []literal.Literal, []*term.Term) int64 { return 0 }
