package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopIsNoOpAcrossUntouchedFence(t *testing.T) {
	j := New()
	x := 1
	j.Push()
	j.Pop(1)
	assert.Equal(t, 1, x)
	assert.Equal(t, 0, j.Level())
}

func TestPopRestoresMutations(t *testing.T) {
	j := New()
	x := 1
	j.Push()
	old := x
	x = 2
	j.Record(func() { x = old })
	assert.Equal(t, 2, x)
	j.Pop(1)
	assert.Equal(t, 1, x)
}

func TestNestedFencesUndoInOrder(t *testing.T) {
	j := New()
	var log []int
	j.Push()
	j.Record(func() { log = append(log, 1) })
	j.Push()
	j.Record(func() { log = append(log, 2) })
	j.Record(func() { log = append(log, 3) })
	j.Pop(2)
	assert.Equal(t, []int{3, 2, 1}, log)
	assert.Equal(t, 0, j.Level())
}

func TestMapSetGetDeleteRoundTrip(t *testing.T) {
	j := New()
	m := NewMap[string, int](j)
	j.Push()
	m.Set("a", 1)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	j.Pop(1)
	_, ok = m.Get("a")
	assert.False(t, ok, "binding made inside the popped fence must be gone")
}

func TestMapOverwritePreservesPriorOnPop(t *testing.T) {
	j := New()
	m := NewMap[string, int](j)
	m.Set("a", 1)
	j.Push()
	m.Set("a", 2)
	j.Pop(1)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v, "overwrite inside the popped fence must be reverted")
}
