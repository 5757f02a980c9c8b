package literal

import (
	"testing"

	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/term"
	"github.com/stretchr/testify/assert"
)

func TestNegationIsInvolution(t *testing.T) {
	s := term.NewStore()
	ty := s.UninterpretedType("U")
	a := s.Const("a", ty)
	l := Pos(a)
	assert.Equal(t, l, l.Negation().Negation())
}

func TestCanonFoldsNot(t *testing.T) {
	s := term.NewStore()
	a := s.Const("a", term.BoolType)
	notA := s.Not(a)
	l := Canon(notA, true)
	assert.Same(t, a, l.Term)
	assert.False(t, l.Sign)

	l2 := Canon(notA, false)
	assert.Same(t, a, l2.Term)
	assert.True(t, l2.Sign)
}

func TestRegistryRoundTrip(t *testing.T) {
	sol := sat.New()
	s := term.NewStore()
	ty := s.UninterpretedType("U")
	a := s.Const("a", ty)
	eq := s.Eq(a, a)
	r := NewRegistry()
	lit := r.LitOf(sol, Neg(eq))
	got := r.LiteralOf(lit)
	assert.Same(t, eq, got.Term)
	assert.False(t, got.Sign)
}
