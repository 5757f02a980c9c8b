package datatype

import (
	"testing"

	"github.com/crillab/gophersmt/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiniteDatatypeOverFiniteArgs(t *testing.T) {
	ts := term.NewStore()
	shape, err := ts.DatatypeType("Shape", []*term.Constructor{
		{Name: "circle", Selectors: []string{"radius"}, ArgTypes: []*term.Type{term.BoolType}},
		{Name: "square", Selectors: []string{"side"}, ArgTypes: []*term.Type{term.BoolType}},
	})
	require.NoError(t, err)

	finite := cardinalities([]*term.Type{shape})
	assert.True(t, finite[shape])
}

func TestRecursiveDatatypeStaysInfinite(t *testing.T) {
	ts := term.NewStore()
	elem := ts.UninterpretedType("Elem")
	list, err := ts.DeclareDatatype("List")
	require.NoError(t, err)
	require.NoError(t, ts.FinalizeDatatype(list, []*term.Constructor{
		{Name: "nil"},
		{Name: "cons", Selectors: []string{"head", "tail"}, ArgTypes: []*term.Type{elem, list}},
	}))

	finite := cardinalities([]*term.Type{elem, list})
	assert.False(t, finite[list])
	assert.False(t, finite[elem])
}

func TestMutuallyRecursiveDatatypesResolveTogether(t *testing.T) {
	ts := term.NewStore()
	evenT, err := ts.DeclareDatatype("Even")
	require.NoError(t, err)
	oddT, err := ts.DeclareDatatype("Odd")
	require.NoError(t, err)
	require.NoError(t, ts.FinalizeDatatype(evenT, []*term.Constructor{
		{Name: "zero"},
		{Name: "esucc", Selectors: []string{"pred"}, ArgTypes: []*term.Type{oddT}},
	}))
	require.NoError(t, ts.FinalizeDatatype(oddT, []*term.Constructor{
		{Name: "osucc", Selectors: []string{"pred"}, ArgTypes: []*term.Type{evenT}},
	}))

	finite := cardinalities([]*term.Type{evenT, oddT})
	assert.False(t, finite[evenT])
	assert.False(t, finite[oddT])
}

func TestBaseConstructorPrefersFiniteArgs(t *testing.T) {
	ts := term.NewStore()
	elem := ts.UninterpretedType("Elem")
	list, err := ts.DeclareDatatype("List")
	require.NoError(t, err)
	require.NoError(t, ts.FinalizeDatatype(list, []*term.Constructor{
		{Name: "nil"},
		{Name: "cons", Selectors: []string{"head", "tail"}, ArgTypes: []*term.Type{elem, list}},
	}))

	finite := cardinalities([]*term.Type{elem, list})
	base := baseConstructors([]*term.Type{elem, list}, finite)
	assert.Equal(t, "nil", base[list].Name)
}
