package cc

import (
	"testing"

	"github.com/crillab/gophersmt/internal/journal"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeUnifiesClasses(t *testing.T) {
	ts := term.NewStore()
	ty := ts.UninterpretedType("U")
	a, b := ts.Const("a", ty), ts.Const("b", ty)
	j := journal.New()
	s := NewStore(j)
	s.AddTerm(a)
	s.AddTerm(b)
	assert.False(t, s.Same(a.ID, b.ID))

	j.Push()
	l := literal.Pos(ts.Eq(a, b))
	conflict := s.Merge(a.ID, b.ID, &Explanation{Kind: ExplLit, Lit: l})
	require.Nil(t, conflict)
	assert.True(t, s.Same(a.ID, b.ID))

	expl := s.Explain(a.ID, b.ID)
	require.Len(t, expl, 1)
	assert.Equal(t, l, expl[0])
}

func TestPopUndoesMerge(t *testing.T) {
	ts := term.NewStore()
	ty := ts.UninterpretedType("U")
	a, b := ts.Const("a", ty), ts.Const("b", ty)
	j := journal.New()
	s := NewStore(j)
	s.AddTerm(a)
	s.AddTerm(b)

	j.Push()
	s.Merge(a.ID, b.ID, &Explanation{Kind: ExplLit})
	assert.True(t, s.Same(a.ID, b.ID))
	j.Pop(1)
	assert.False(t, s.Same(a.ID, b.ID))
}

func TestCongruenceAutoMerge(t *testing.T) {
	ts := term.NewStore()
	ty := ts.UninterpretedType("U")
	a, b := ts.Const("a", ty), ts.Const("b", ty)
	fa := ts.App("f", ty, a)
	fb := ts.App("f", ty, b)
	j := journal.New()
	s := NewStore(j)
	s.AddTerm(fa)
	s.AddTerm(fb)
	assert.False(t, s.Same(fa.ID, fb.ID))

	j.Push()
	s.Merge(a.ID, b.ID, &Explanation{Kind: ExplLit})
	assert.True(t, s.Same(a.ID, b.ID))
	assert.True(t, s.Same(fa.ID, fb.ID), "f(a)=f(b) must follow from a=b by congruence")
}

func TestPreMergeHookVetoesMerge(t *testing.T) {
	ts := term.NewStore()
	ty := ts.UninterpretedType("U")
	a, b := ts.Const("a", ty), ts.Const("b", ty)
	j := journal.New()
	s := NewStore(j)
	s.AddTerm(a)
	s.AddTerm(b)
	s.OnPreMerge(func(r1, r2 term.ID, expl *Explanation) *Conflict {
		return &Conflict{Lits: []literal.Literal{literal.Pos(a)}}
	})

	j.Push()
	conflict := s.Merge(a.ID, b.ID, &Explanation{Kind: ExplLit})
	require.NotNil(t, conflict)
	assert.False(t, s.Same(a.ID, b.ID))
}
