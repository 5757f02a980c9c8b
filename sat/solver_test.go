package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(i int) Lit { return IntToLit(i) }

func newTestSolver(nbVars int) *Solver {
	s := New()
	s.Reserve(nbVars)
	return s
}

func TestUnitPropagationChain(t *testing.T) {
	s := newTestSolver(4)
	require.NoError(t, s.AssertClause([]Lit{lit(1)}))
	require.NoError(t, s.AssertClause([]Lit{lit(-1), lit(2)}))
	require.NoError(t, s.AssertClause([]Lit{lit(-2), lit(3)}))
	require.NoError(t, s.AssertClause([]Lit{lit(-3), lit(4)}))
	status := s.Solve()
	require.Equal(t, Sat, status)
	model := s.Model()
	assert.True(t, model[0])
	assert.True(t, model[1])
	assert.True(t, model[2])
	assert.True(t, model[3])
}

func TestBinaryConflict(t *testing.T) {
	s := newTestSolver(1)
	require.NoError(t, s.AssertClause([]Lit{lit(1)}))
	require.NoError(t, s.AssertClause([]Lit{lit(-1)}))
	assert.Equal(t, Unsat, s.Solve())
}

func TestSimpleSat(t *testing.T) {
	s := newTestSolver(3)
	require.NoError(t, s.AssertClause([]Lit{lit(1), lit(2), lit(3)}))
	require.NoError(t, s.AssertClause([]Lit{lit(-1), lit(-2)}))
	require.NoError(t, s.AssertClause([]Lit{lit(-2), lit(-3)}))
	require.NoError(t, s.AssertClause([]Lit{lit(-1), lit(-3)}))
	status := s.Solve()
	require.Equal(t, Sat, status)
	model := s.Model()
	nbTrue := 0
	for _, v := range model {
		if v {
			nbTrue++
		}
	}
	assert.Equal(t, 1, nbTrue, "exactly one literal should be true")
}

func TestPushPopLevels(t *testing.T) {
	s := newTestSolver(2)
	require.NoError(t, s.AssertClause([]Lit{lit(1), lit(2)}))
	s.PushLevel()
	require.NoError(t, s.AssertClause([]Lit{lit(-1)}))
	require.NoError(t, s.AssertClause([]Lit{lit(-2)}))
	assert.Equal(t, Unsat, s.Solve())
	s.PopLevels(1)
	status := s.Solve()
	require.Equal(t, Sat, status)
}

// countingTheory records every callback invocation, to check the core
// drives a Theory at the documented points without asserting anything.
type countingTheory struct {
	assumes       int
	partialChecks int
	finalChecks   int
	pushes        int
	pops          int
}

func (c *countingTheory) OnAssume(TheoryEngine, Lit)        { c.assumes++ }
func (c *countingTheory) PartialCheck(TheoryEngine) *Clause { c.partialChecks++; return nil }
func (c *countingTheory) FinalCheck(TheoryEngine) *Clause   { c.finalChecks++; return nil }
func (c *countingTheory) PushLevel()                        { c.pushes++ }
func (c *countingTheory) PopLevels(n int)                   { c.pops += n }

func TestTheoryCallbacksDriven(t *testing.T) {
	s := newTestSolver(2)
	th := &countingTheory{}
	s.SetTheory(th)
	require.NoError(t, s.AssertClause([]Lit{lit(1), lit(2)}))
	status := s.Solve()
	require.Equal(t, Sat, status)
	assert.Greater(t, th.assumes, 0)
	assert.Greater(t, th.finalChecks, 0)
}

// refutingTheory rejects the single model where both vars are true, by
// raising a theory conflict clause during FinalCheck.
type refutingTheory struct {
	rejected bool
}

func (r *refutingTheory) OnAssume(TheoryEngine, Lit)        {}
func (r *refutingTheory) PartialCheck(TheoryEngine) *Clause { return nil }
func (r *refutingTheory) FinalCheck(engine TheoryEngine) *Clause {
	if r.rejected {
		return nil
	}
	if engine.LitStatus(lit(1)) == Sat && engine.LitStatus(lit(2)) == Sat {
		r.rejected = true
		return NewTheoryClause([]Lit{lit(-1), lit(-2)})
	}
	return nil
}
func (r *refutingTheory) PushLevel()      {}
func (r *refutingTheory) PopLevels(int)   {}

func TestTheoryConflictForcesBacktrack(t *testing.T) {
	s := newTestSolver(2)
	s.SetTheory(&refutingTheory{})
	require.NoError(t, s.AssertClause([]Lit{lit(1), lit(2)}))
	status := s.Solve()
	require.Equal(t, Sat, status)
	model := s.Model()
	assert.False(t, model[0] && model[1], "theory-refuted model must not be returned")
}
