// Package cc implements the congruence closure engine: union-find over
// e-nodes with a signature table for congruence detection and a proof
// forest for lazily-explained merges, all backtracked through
// internal/journal — the generalization of gophersat's array-based
// cleanupBindings discipline to arbitrary equivalence-class state.
package cc

import (
	"github.com/crillab/gophersmt/internal/journal"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
)

// node is the per-term e-node record. Indexed by term.ID in Store.nodes.
type node struct {
	t *term.Term

	ufParent term.ID // union-find parent; a root points to itself.
	ufRank   int

	classNext term.ID // singly-linked cycle of every term in this class.
	classSize int      // valid only at the class root.

	// explParent/explLabel form the proof forest: an edge from this node
	// toward explParent, labeled with why they're equal. A root of the
	// proof tree has explParent == -1.
	explParent term.ID
	explLabel  *Explanation

	// parentApps lists the direct parent applications of t: terms of
	// which t is an argument, consulted when walking the signature table
	// after a merge to discover new congruences.
	parentApps []term.ID
}

const noNode term.ID = -1

// Tracer receives a proof step for every merge the store performs. It is
// the same shape as theory.ProofTracer, declared locally so cc never
// needs to import theory (which itself imports cc); a *theory.Framework
// satisfies it structurally.
type Tracer interface {
	Step(rule string, premises []int64, concludes []literal.Literal, terms []*term.Term) int64
}

type nopTracer struct{}

func (nopTracer) Step(string, []int64, []literal.Literal, []*term.Term) int64 { return 0 }

// Store owns every e-node, the signature table, and the proof forest,
// and fans out pre-merge/merge/new-term hooks to registered theories.
type Store struct {
	j      *journal.Journal
	nodes  map[term.ID]*node
	sig    *journal.Map[string, term.ID] // signature -> representative
	tracer Tracer

	pending []pendingMerge

	onNewTerm  []func(t *term.Term)
	onPreMerge []func(r1, r2 term.ID, expl *Explanation) *Conflict
	onMerge    []func(r1, r2 term.ID)
}

type pendingMerge struct {
	n1, n2 term.ID
	expl   *Explanation
}

// Conflict is what an on_pre_merge hook returns to veto a merge: a set
// of literals, currently true on the trail, whose conjunction is
// unsatisfiable together with the attempted merge.
type Conflict struct {
	Lits []literal.Literal
}

// NewStore returns an empty Store journaled on j.
func NewStore(j *journal.Journal) *Store {
	return &Store{
		j:      j,
		nodes:  make(map[term.ID]*node),
		sig:    journal.NewMap[string, term.ID](j),
		tracer: nopTracer{},
	}
}

// SetTracer attaches t as the sink every subsequent Merge records a proof
// step to. A Store that never calls SetTracer discards every step.
func (s *Store) SetTracer(t Tracer) {
	if t != nil {
		s.tracer = t
	}
}

// OnNewTerm registers a hook run once per freshly-added term.
func (s *Store) OnNewTerm(f func(t *term.Term)) { s.onNewTerm = append(s.onNewTerm, f) }

// OnPreMerge registers a hook run before two classes are physically
// merged, given expl (the reason this particular merge was requested);
// returning a non-nil *Conflict aborts the merge.
func (s *Store) OnPreMerge(f func(r1, r2 term.ID, expl *Explanation) *Conflict) {
	s.onPreMerge = append(s.onPreMerge, f)
}

// OnMerge registers a hook run immediately after two classes were
// physically merged.
func (s *Store) OnMerge(f func(r1, r2 term.ID)) { s.onMerge = append(s.onMerge, f) }

func (s *Store) node(id term.ID) *node { return s.nodes[id] }

// Has reports whether t has already been added.
func (s *Store) Has(t *term.Term) bool {
	_, ok := s.nodes[t.ID]
	return ok
}
