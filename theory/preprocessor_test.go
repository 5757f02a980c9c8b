package theory

import (
	"testing"

	"github.com/crillab/gophersmt/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldConstantConjunction(t *testing.T) {
	ts := term.NewStore()
	p := NewPreprocessor(ts)
	u := ts.UninterpretedType("U")
	a, b := ts.Const("a", u), ts.Const("b", u)
	x := ts.Eq(a, b)

	formula := ts.And(x, ts.True())
	rewritten, side := p.Process(formula)
	assert.Empty(t, side)
	assert.Equal(t, x, rewritten, "and(x, true) folds to x")
}

func TestFoldConstantDisjunctionShortCircuits(t *testing.T) {
	ts := term.NewStore()
	p := NewPreprocessor(ts)
	u := ts.UninterpretedType("U")
	a, b := ts.Const("a", u), ts.Const("b", u)
	x := ts.Eq(a, b)

	formula := ts.Or(x, ts.True())
	rewritten, _ := p.Process(formula)
	v, ok := rewritten.BoolValue()
	require.True(t, ok)
	assert.True(t, v)
}

func TestSingleConstructorUnfoldingAssertsProjection(t *testing.T) {
	ts := term.NewStore()
	i := ts.UninterpretedType("Int")
	pairType, err := ts.DatatypeType("Pair", []*term.Constructor{
		{Name: "mk-pair", Selectors: []string{"fst", "snd"}, ArgTypes: []*term.Type{i, i}},
	})
	require.NoError(t, err)

	p := NewPreprocessor(ts)
	x := ts.Const("x", pairType)
	_, side := p.Process(x)
	require.Len(t, side, 1)
	assert.Equal(t, term.KindEq, side[0].Kind)
	assert.Equal(t, x, side[0].Args[0])
	assert.Equal(t, "mk-pair", side[0].Args[1].Sym)
}

func TestMultiConstructorTypeSkipsUnfolding(t *testing.T) {
	ts := term.NewStore()
	boolLikeType, err := ts.DatatypeType("Two", []*term.Constructor{
		{Name: "one"},
		{Name: "other"},
	})
	require.NoError(t, err)

	p := NewPreprocessor(ts)
	x := ts.Const("x", boolLikeType)
	_, side := p.Process(x)
	assert.Empty(t, side)
}
