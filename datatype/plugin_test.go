package datatype

import (
	"testing"

	"github.com/crillab/gophersmt/internal/journal"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/term"
	"github.com/crillab/gophersmt/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem(types []*term.Type, ts *term.Store) (*theory.Framework, *sat.Solver, *Plugin) {
	j := journal.New()
	fw := theory.NewFramework(j, ts, nil)
	plug := New(types)
	fw.AddPlugin(plug)
	s := sat.New()
	s.SetTheory(fw)
	return fw, s, plug
}

func shapeType(ts *term.Store) (*term.Type, *term.Type) {
	elem := ts.UninterpretedType("Elem")
	shape, err := ts.DatatypeType("Shape", []*term.Constructor{
		{Name: "circle", Selectors: []string{"radius"}, ArgTypes: []*term.Type{elem}},
		{Name: "square", Selectors: []string{"side"}, ArgTypes: []*term.Type{elem}},
	})
	if err != nil {
		panic(err)
	}
	return elem, shape
}

func TestDisjointConstructorsConflict(t *testing.T) {
	ts := term.NewStore()
	elem, shape := shapeType(ts)
	fw, s, plug := newTestSystem([]*term.Type{elem, shape}, ts)

	x := ts.Const("x", shape)
	r := ts.Const("r", elem)
	sd := ts.Const("s", elem)
	circleApp := ts.App("circle", shape, r)
	squareApp := ts.App("square", shape, sd)

	l1 := fw.Assert(s, literal.Pos(ts.Eq(x, circleApp)))
	l2 := fw.Assert(s, literal.Pos(ts.Eq(x, squareApp)))
	require.NoError(t, s.AssertClause([]sat.Lit{l1}))
	require.NoError(t, s.AssertClause([]sat.Lit{l2}))

	assert.Equal(t, sat.Unsat, s.Solve())
	_ = plug
}

func TestInjectivityForcesArgumentEquality(t *testing.T) {
	ts := term.NewStore()
	elem, shape := shapeType(ts)
	fw, s, _ := newTestSystem([]*term.Type{elem, shape}, ts)

	x := ts.Const("x", shape)
	y := ts.Const("y", shape)
	r1 := ts.Const("r1", elem)
	r2 := ts.Const("r2", elem)
	cx := ts.App("circle", shape, r1)
	cy := ts.App("circle", shape, r2)

	l1 := fw.Assert(s, literal.Pos(ts.Eq(x, cx)))
	l2 := fw.Assert(s, literal.Pos(ts.Eq(y, cy)))
	l3 := fw.Assert(s, literal.Pos(ts.Eq(x, y)))
	l4 := fw.Assert(s, literal.Neg(ts.Eq(r1, r2)))
	require.NoError(t, s.AssertClause([]sat.Lit{l1}))
	require.NoError(t, s.AssertClause([]sat.Lit{l2}))
	require.NoError(t, s.AssertClause([]sat.Lit{l3}))
	require.NoError(t, s.AssertClause([]sat.Lit{l4}))

	assert.Equal(t, sat.Unsat, s.Solve(), "x=circle(r1), y=circle(r2), x=y must force r1=r2")
}

func TestShapeEqualityAloneIsSatisfiable(t *testing.T) {
	ts := term.NewStore()
	elem, shape := shapeType(ts)
	fw, s, _ := newTestSystem([]*term.Type{elem, shape}, ts)

	x := ts.Const("x", shape)
	r := ts.Const("r", elem)
	cx := ts.App("circle", shape, r)

	l1 := fw.Assert(s, literal.Pos(ts.Eq(x, cx)))
	require.NoError(t, s.AssertClause([]sat.Lit{l1}))

	assert.Equal(t, sat.Sat, s.Solve())
}

func TestSelfReferentialConstructorIsAcyclicityConflict(t *testing.T) {
	ts := term.NewStore()
	elem := ts.UninterpretedType("Elem")
	list, err := ts.DeclareDatatype("List")
	require.NoError(t, err)
	require.NoError(t, ts.FinalizeDatatype(list, []*term.Constructor{
		{Name: "nil"},
		{Name: "cons", Selectors: []string{"head", "tail"}, ArgTypes: []*term.Type{elem, list}},
	}))
	fw, s, _ := newTestSystem([]*term.Type{elem, list}, ts)

	x := ts.Const("x", list)
	e := ts.Const("e", elem)
	consApp := ts.App("cons", list, e, x)

	l1 := fw.Assert(s, literal.Pos(ts.Eq(x, consApp)))
	require.NoError(t, s.AssertClause([]sat.Lit{l1}))

	assert.Equal(t, sat.Unsat, s.Solve(), "x = cons(e, x) can never be satisfied")
}

func TestFiniteDatatypeCaseSplitIsSatisfiable(t *testing.T) {
	ts := term.NewStore()
	color, err := ts.DatatypeType("Color", []*term.Constructor{
		{Name: "red"},
		{Name: "green"},
		{Name: "blue"},
	})
	require.NoError(t, err)
	fw, s, _ := newTestSystem([]*term.Type{color}, ts)

	x := ts.Const("x", color)
	l1 := fw.Assert(s, literal.Pos(ts.Eq(x, x)))
	require.NoError(t, s.AssertClause([]sat.Lit{l1}))

	assert.Equal(t, sat.Sat, s.Solve())
}
