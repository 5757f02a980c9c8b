package literal

import (
	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/term"
)

// Registry is the bijection between boolean-typed terms and SAT
// variables: every atom the theory layer wants the SAT core to reason
// about must first be registered here, so theory code can move freely
// between a literal.Literal and the sat.Lit the core actually tracks.
type Registry struct {
	termToVar map[term.ID]sat.Var
	varToTerm []*term.Term
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{termToVar: make(map[term.ID]sat.Var)}
}

// VarOf returns the SAT variable for t's canonical positive atom,
// allocating one via engine.NewVar if this is the first time t is seen.
func (r *Registry) VarOf(engine sat.TheoryEngine, t *term.Term) sat.Var {
	pos := Pos(t).Term
	if v, ok := r.termToVar[pos.ID]; ok {
		return v
	}
	v := engine.NewVar()
	r.termToVar[pos.ID] = v
	for int(v) >= len(r.varToTerm) {
		r.varToTerm = append(r.varToTerm, nil)
	}
	r.varToTerm[v] = pos
	return v
}

// LitOf returns the sat.Lit corresponding to l, registering l's atom
// with the SAT core if needed.
func (r *Registry) LitOf(engine sat.TheoryEngine, l Literal) sat.Lit {
	v := r.VarOf(engine, l.Term)
	return v.SignedLit(!l.Sign)
}

// TermOf reverses VarOf: the term registered for a SAT variable, or nil
// if v was never registered through this Registry.
func (r *Registry) TermOf(v sat.Var) *term.Term {
	if int(v) >= len(r.varToTerm) {
		return nil
	}
	return r.varToTerm[v]
}

// LiteralOf reconstructs the literal.Literal a trail entry stands for.
func (r *Registry) LiteralOf(l sat.Lit) Literal {
	t := r.TermOf(l.Var())
	return Literal{Term: t, Sign: l.IsPositive()}
}
