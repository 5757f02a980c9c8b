package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashConsingIdentity(t *testing.T) {
	s := NewStore()
	ty := s.UninterpretedType("U")
	a1 := s.Const("a", ty)
	a2 := s.Const("a", ty)
	assert.Same(t, a1, a2, "structurally equal terms must share identity")
	assert.Equal(t, a1.ID, a2.ID)

	b := s.Const("b", ty)
	eq1 := s.Eq(a1, b)
	eq2 := s.Eq(b, a1)
	assert.Same(t, eq1, eq2, "equality must be order-insensitive")
}

func TestDistinctSymbolsDistinctTerms(t *testing.T) {
	s := NewStore()
	ty := s.UninterpretedType("U")
	a := s.Const("a", ty)
	b := s.Const("b", ty)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecursiveDatatypeConstructorFlags(t *testing.T) {
	s := NewStore()
	intTy := s.UninterpretedType("Int")
	listTy, err := s.DeclareDatatype("List")
	require.NoError(t, err)
	err = s.FinalizeDatatype(listTy, []*Constructor{
		{Name: "nil"},
		{Name: "cons", Selectors: []string{"head", "tail"}, ArgTypes: []*Type{intTy, listTy}},
	})
	require.NoError(t, err)
	cons := listTy.Constructor("cons")
	require.NotNil(t, cons)
	assert.True(t, cons.Recursive)
	nilC := listTy.Constructor("nil")
	require.NotNil(t, nilC)
	assert.False(t, nilC.Recursive)
}

func TestMismatchedSelectorArgCountRejected(t *testing.T) {
	s := NewStore()
	_, err := s.DatatypeType("Bad", []*Constructor{
		{Name: "c", Selectors: []string{"x", "y"}, ArgTypes: []*Type{BoolType}},
	})
	assert.Error(t, err)
}
