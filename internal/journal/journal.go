// Package journal implements the one generic backtrackable-state
// abstraction every mutable structure in cc, datatype, and theory
// registers with: a stack of undo closures, fenced by decision level,
// generalizing the per-field undo gophersat's Solver.cleanupBindings
// hand-rolls for its own trail/assignment/reason arrays.
package journal

// Journal is a stack of undo actions grouped into fences. Pushing a fence
// opens a new level; Pop(n) closes the n most recent fences, running
// every action recorded since in LIFO order.
type Journal struct {
	actions []func()
	fences  []int // action-stack length recorded at each Push
}

// New returns an empty Journal at level 0.
func New() *Journal { return &Journal{} }

// Level reports how many fences are currently open.
func (j *Journal) Level() int { return len(j.fences) }

// Push opens a new fence (decision level).
func (j *Journal) Push() {
	j.fences = append(j.fences, len(j.actions))
}

// Record registers undo as the action that reverses the mutation just
// made, to run when the currently-open fence (or an earlier one) is
// popped. Calling Record before any Push records a root-level action
// that Pop can never undo — callers should not mutate root state through
// the journal unless that's intended.
func (j *Journal) Record(undo func()) {
	j.actions = append(j.actions, undo)
}

// Pop closes the n most recently opened fences, running every action
// recorded since the oldest of them, newest-first.
func (j *Journal) Pop(n int) {
	if n <= 0 {
		return
	}
	target := len(j.fences) - n
	cut := j.fences[target]
	for i := len(j.actions) - 1; i >= cut; i-- {
		j.actions[i]()
	}
	j.actions = j.actions[:cut]
	j.fences = j.fences[:target]
}
