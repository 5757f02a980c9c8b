package smt

import (
	"testing"

	"github.com/crillab/gophersmt/datatype"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPropagationChain(t *testing.T) {
	ts := term.NewStore()
	a := ts.Const("a", term.BoolType)
	b := ts.Const("b", term.BoolType)
	c := ts.Const("c", term.BoolType)
	s := New(ts)

	require.NoError(t, s.Assert([][]literal.Literal{
		{literal.Pos(a)},
		{literal.Neg(a), literal.Pos(b)},
		{literal.Neg(b), literal.Pos(c)},
	}))

	assert.Equal(t, sat.Sat, s.Solve(nil))
	assert.Same(t, ts.True(), s.Value(c))
}

func TestBinaryConflictIsUnsatAtRootLevel(t *testing.T) {
	ts := term.NewStore()
	a := ts.Const("a", term.BoolType)
	b := ts.Const("b", term.BoolType)
	s := New(ts)

	require.NoError(t, s.Assert([][]literal.Literal{
		{literal.Pos(a), literal.Pos(b)},
		{literal.Pos(a), literal.Neg(b)},
		{literal.Neg(a), literal.Pos(b)},
		{literal.Neg(a), literal.Neg(b)},
	}))

	assert.Equal(t, sat.Unsat, s.Solve(nil))
}

func abType(ts *term.Store) *term.Type {
	dt, err := ts.DatatypeType("T", []*term.Constructor{
		{Name: "A"},
		{Name: "B"},
	})
	if err != nil {
		panic(err)
	}
	return dt
}

func TestDatatypeDisjointnessAcrossTesters(t *testing.T) {
	ts := term.NewStore()
	dt := abType(ts)
	plug := datatype.New([]*term.Type{dt})
	s := New(ts, WithTheories(plug))

	x := ts.Const("x", dt)
	isA := datatype.IsC(ts, dt.Constructor("A"), x)
	isB := datatype.IsC(ts, dt.Constructor("B"), x)

	require.NoError(t, s.Assert([][]literal.Literal{
		{literal.Pos(isA)},
		{literal.Pos(isB)},
	}))

	assert.Equal(t, sat.Unsat, s.Solve(nil))
}

func consListType(ts *term.Store) (*term.Type, *term.Type) {
	intTy := ts.UninterpretedType("Int")
	list, err := ts.DeclareDatatype("T")
	if err != nil {
		panic(err)
	}
	if err := ts.FinalizeDatatype(list, []*term.Constructor{
		{Name: "nil"},
		{Name: "cons", Selectors: []string{"head", "tail"}, ArgTypes: []*term.Type{intTy, list}},
	}); err != nil {
		panic(err)
	}
	return intTy, list
}

func TestDatatypeInjectivityYieldsSelectorEqualities(t *testing.T) {
	ts := term.NewStore()
	intTy, list := consListType(ts)
	plug := datatype.New([]*term.Type{intTy, list})
	s := New(ts, WithTheories(plug))

	x := ts.Const("x", intTy)
	y := ts.Const("y", list)
	u := ts.Const("u", intTy)
	v := ts.Const("v", list)
	lhs := ts.App("cons", list, x, y)
	rhs := ts.App("cons", list, u, v)

	require.NoError(t, s.AssertOne(literal.Pos(ts.Eq(lhs, rhs))))

	assert.Equal(t, sat.Sat, s.Solve(nil))
	assert.Same(t, s.Value(x), s.Value(u))
	assert.Same(t, s.Value(y), s.Value(v))
}

func TestAcyclicDatatypeAssumptionIsUnsat(t *testing.T) {
	ts := term.NewStore()
	elem := ts.UninterpretedType("Elem")
	tree, err := ts.DeclareDatatype("T")
	require.NoError(t, err)
	require.NoError(t, ts.FinalizeDatatype(tree, []*term.Constructor{
		{Name: "leaf"},
		{Name: "node", Selectors: []string{"left", "right"}, ArgTypes: []*term.Type{tree, tree}},
	}))
	plug := datatype.New([]*term.Type{elem, tree})
	s := New(ts, WithTheories(plug))

	x := ts.Const("x", tree)
	y := ts.Const("y", tree)
	r1 := ts.Const("r1", tree)
	r2 := ts.Const("r2", tree)
	xNode := ts.App("node", tree, y, r1)
	yNode := ts.App("node", tree, x, r2)

	require.NoError(t, s.Assert([][]literal.Literal{
		{literal.Pos(ts.Eq(x, xNode))},
		{literal.Pos(ts.Eq(y, yNode))},
	}))

	assert.Equal(t, sat.Unsat, s.Solve(nil))
}

func TestFiniteDatatypeCaseSplitPicksAConstructor(t *testing.T) {
	ts := term.NewStore()
	dt := abType(ts)
	plug := datatype.New([]*term.Type{dt})
	s := New(ts, WithTheories(plug))

	x := ts.Const("x", dt)
	require.NoError(t, s.AssertOne(literal.Pos(ts.Eq(x, x))))

	require.Equal(t, sat.Sat, s.Solve(nil))
	val := s.Value(x)
	assert.Contains(t, []string{"A", "B"}, val.Sym)
}

func TestAssumptionConflictReportsUnsatCore(t *testing.T) {
	ts := term.NewStore()
	a := ts.Const("a", term.BoolType)
	s := New(ts)

	require.NoError(t, s.AssertOne(literal.Pos(a)))

	assert.Equal(t, sat.Unsat, s.Solve([]literal.Literal{literal.Neg(a)}))
	assert.Equal(t, []literal.Literal{literal.Neg(a)}, s.UnsatCore())
}

func TestPushLevelPopLevelsIsNoOp(t *testing.T) {
	ts := term.NewStore()
	a := ts.Const("a", term.BoolType)
	s := New(ts)
	require.NoError(t, s.AssertOne(literal.Pos(a)))

	s.PushLevel()
	s.PopLevels(1)

	assert.Equal(t, sat.Sat, s.Solve(nil))
}
