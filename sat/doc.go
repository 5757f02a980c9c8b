/*
Package sat implements a CDCL (Conflict-Driven Clause Learning) boolean
satisfiability engine: two-watched-literal propagation, First-UIP
conflict analysis with clause minimization, LBD-based clause database
reduction, restarts triggered by the Glucose LBD heuristic, and an EVSIDS
decision heap with phase saving. Restarts are not paced by the Luby
sequence: luby (luby.go) is not called by the search.

Unlike a standalone SAT solver, sat.Solver is built to be driven from
above: a Theory can be attached so the core notifies it at every trail
extension and at propagation quiescence, and can in turn propagate
literals or raise conflicts of its own. With no Theory attached (the
default), the Solver behaves as a plain CNF solver.

Building and solving a problem

A Solver starts empty; variables are added with Reserve (if the count is
known up front) or allocated one at a time with NewVar, and clauses are
then asserted:

    s := sat.New()
    s.Reserve(6)
    lit := func(i int) sat.Lit { return sat.IntToLit(i) }
    s.AssertClause([]sat.Lit{lit(1), lit(2), lit(3)})
    s.AssertClause([]sat.Lit{lit(-1), lit(-2)})
    status := s.Solve()

If status is sat.Sat, s.Model() returns a []bool giving, for each
variable, whether it was bound true.

Attaching a theory

SetTheory registers a Theory implementation before any clause is
asserted. The core calls OnAssume for every literal it assigns,
PartialCheck once propagation reaches a fixpoint, and FinalCheck before
it would otherwise report Sat; PushLevel/PopLevels mirror the core's own
decision-level stack so the theory can maintain backtrackable state in
lockstep.

Incremental use

PushLevel opens a new level without making a decision; a literal can then
be asserted into it via AssertClause or TheoryPropagate from an attached
theory. PopLevels(n) reverts exactly the state changes made since the
matching PushLevel calls, including the theory's own.
*/
package sat
