package sat

// Theory is the callback interface the CDCL core drives, per the
// SAT↔theory interaction loop: assume/partial-check/final-check, mirrored
// with push/pop of decision levels. The zero value of any type
// implementing Theory should behave like "no theory attached" (all
// methods no-ops, checks always return nil).
type Theory interface {
	// OnAssume is called once for every literal newly appended to the
	// trail, whether it came from a decision, boolean propagation, or a
	// theory propagation.
	OnAssume(engine TheoryEngine, lit Lit)

	// PartialCheck is called once propagation reaches quiescence, before
	// the next decision is made. The theory may inspect the trail via
	// engine, add clauses or propagate literals through engine, or
	// signal a conflict by returning a non-nil conflict clause, every
	// literal of which is currently false (the negations of the
	// currently-true literals that together conflict).
	PartialCheck(engine TheoryEngine) *Clause

	// FinalCheck is called when the core would otherwise report Sat. In
	// addition to everything PartialCheck can do, the theory must here
	// decide any remaining open cases (e.g. finite-datatype case-split).
	// If it adds nothing and returns nil, the result is Sat.
	FinalCheck(engine TheoryEngine) *Clause

	// PushLevel is called whenever the SAT core opens a new decision
	// level, mirrored 1:1 with the core's own level counter.
	PushLevel()

	// PopLevels is called on backtrack; state must be restored to
	// exactly what it was right after the matching PushLevel calls.
	PopLevels(n int)
}

// TheoryEngine is the narrow view of the CDCL core a Theory is given
// during a callback, so it can inspect the trail and act on it without
// holding a reference to the whole Solver's internals.
type TheoryEngine interface {
	// LitStatus reports whether l is currently true, false, or unassigned.
	LitStatus(l Lit) Status

	// Trail returns the literals assigned so far, in assignment order.
	// Callers must not retain or mutate the returned slice.
	Trail() []Lit

	// DecisionLevel returns the SAT core's current decision level.
	DecisionLevel() Level

	// NewVar allocates a fresh boolean variable the theory can use for
	// atoms it did not register up front (e.g. a case-split literal
	// discovered only during final check).
	NewVar() Var

	// TheoryPropagate enqueues l as true with a lazily-computed
	// explanation. explain is invoked at most once, only if conflict
	// analysis actually needs the reason clause.
	TheoryPropagate(l Lit, explain func() *Clause)

	// AddClause adds a new clause to the arena, exactly as if it had been
	// learned by the SAT core itself; the non-conflict counterpart to
	// returning a conflict from PartialCheck/FinalCheck, used for lemmas
	// and case-split clauses.
	AddClause(c *Clause)
}

// NopTheory is a Theory that never does anything; useful as the default
// when a Solver is used purely as a boolean SAT engine.
type NopTheory struct{}

func (NopTheory) OnAssume(TheoryEngine, Lit)         {}
func (NopTheory) PartialCheck(TheoryEngine) *Clause  { return nil }
func (NopTheory) FinalCheck(TheoryEngine) *Clause    { return nil }
func (NopTheory) PushLevel()                         {}
func (NopTheory) PopLevels(int)                      {}
