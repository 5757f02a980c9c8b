package proof

import (
	"testing"

	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepIDsAreDenseAndOneBased(t *testing.T) {
	tr := NewMemTracer()
	ts := term.NewStore()
	u := ts.UninterpretedType("U")
	a := ts.Const("a", u)

	id1 := tr.Step("merge", nil, []literal.Literal{literal.Pos(a)}, []*term.Term{a})
	id2 := tr.Step("congruence", []int64{id1}, nil, nil)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	step, ok := tr.Get(id2)
	require.True(t, ok)
	assert.Equal(t, []int64{id1}, step.Premises)
}

func TestGetUnknownIDFails(t *testing.T) {
	tr := NewMemTracer()
	_, ok := tr.Get(42)
	assert.False(t, ok)
}
