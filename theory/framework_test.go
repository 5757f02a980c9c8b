package theory

import (
	"testing"

	"github.com/crillab/gophersmt/internal/journal"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFramework() (*Framework, *sat.Solver, *term.Store) {
	j := journal.New()
	ts := term.NewStore()
	fw := NewFramework(j, ts, nil)
	s := sat.New()
	s.SetTheory(fw)
	return fw, s, ts
}

// TestCongruenceDrivesBooleanConflict checks that asserting a=b and
// f(a)!=f(b) together produces an UNSAT verdict purely through the
// Framework's CC wiring, with no datatype Plugin involved.
func TestCongruenceDrivesBooleanConflict(t *testing.T) {
	fw, s, ts := newTestFramework()
	u := ts.UninterpretedType("U")
	a, b := ts.Const("a", u), ts.Const("b", u)
	fa := ts.App("f", u, a)
	fb := ts.App("f", u, b)

	eqAB := literal.Pos(ts.Eq(a, b))
	neqFAFB := literal.Neg(ts.Eq(fa, fb))

	lAB := fw.Assert(s, eqAB)
	lFAFB := fw.Assert(s, neqFAFB)

	require.NoError(t, s.AssertClause([]sat.Lit{lAB}))
	require.NoError(t, s.AssertClause([]sat.Lit{lFAFB}))

	assert.Equal(t, sat.Unsat, s.Solve())
}

func TestDisequalityConflictsWithLaterMerge(t *testing.T) {
	fw, s, ts := newTestFramework()
	u := ts.UninterpretedType("U")
	a, b := ts.Const("a", u), ts.Const("b", u)

	neqAB := literal.Neg(ts.Eq(a, b))
	eqAB := literal.Pos(ts.Eq(a, b))

	lNeq := fw.Assert(s, neqAB)
	lEq := fw.Assert(s, eqAB)

	require.NoError(t, s.AssertClause([]sat.Lit{lNeq}))
	require.NoError(t, s.AssertClause([]sat.Lit{lEq}))

	assert.Equal(t, sat.Unsat, s.Solve())
}

func TestSatisfiableTermProblem(t *testing.T) {
	fw, s, ts := newTestFramework()
	u := ts.UninterpretedType("U")
	a, b, c := ts.Const("a", u), ts.Const("b", u), ts.Const("c", u)

	eqAB := literal.Pos(ts.Eq(a, b))
	neqBC := literal.Neg(ts.Eq(b, c))

	lAB := fw.Assert(s, eqAB)
	lBC := fw.Assert(s, neqBC)

	require.NoError(t, s.AssertClause([]sat.Lit{lAB}))
	require.NoError(t, s.AssertClause([]sat.Lit{lBC}))

	assert.Equal(t, sat.Sat, s.Solve())
}
