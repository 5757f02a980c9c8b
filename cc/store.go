package cc

import (
	"fmt"

	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
)

// AddTerm interns t as an e-node, recursively adding its subterms first
// and registering its signature (if it is a function application), then
// fires every OnNewTerm hook. A no-op if t was already added. Adding a
// term can itself trigger a congruence merge (if it matches an existing
// signature), so it can return a theory conflict just like Merge can.
func (s *Store) AddTerm(t *term.Term) *Conflict {
	if s.Has(t) {
		return nil
	}
	for _, a := range t.Args {
		if c := s.AddTerm(a); c != nil {
			return c
		}
	}
	s.nodes[t.ID] = &node{
		t:          t,
		ufParent:   t.ID,
		classNext:  t.ID,
		classSize:  1,
		explParent: noNode,
	}
	if t.Kind == term.KindApp {
		s.registerSignature(t.ID)
		for _, a := range t.Args {
			root := s.node(s.Find(a.ID))
			root.parentApps = append(root.parentApps, t.ID)
			idx := len(root.parentApps) - 1
			s.j.Record(func() {
				if idx < len(root.parentApps) {
					root.parentApps = root.parentApps[:idx]
				}
			})
		}
	}
	for _, f := range s.onNewTerm {
		f(t)
	}
	return s.drainPending()
}

// Find returns the representative e-node id of n's class. Path
// compression is intentionally omitted, trading O(log n) amortized find
// for never needing to journal a compression step.
func (s *Store) Find(n term.ID) term.ID {
	for {
		nd := s.node(n)
		if nd.ufParent == n {
			return n
		}
		n = nd.ufParent
	}
}

// FindTerm is Find, looking the e-node up by term.
func (s *Store) FindTerm(t *term.Term) term.ID { return s.Find(t.ID) }

// Same reports whether a and b are currently in the same class.
func (s *Store) Same(a, b term.ID) bool { return s.Find(a) == s.Find(b) }

// ClassMembers walks the circular "next" list to return every term
// currently in n's equivalence class.
func (s *Store) ClassMembers(n term.ID) []term.ID {
	out := []term.ID{n}
	for cur := s.node(n).classNext; cur != n; cur = s.node(cur).classNext {
		out = append(out, cur)
	}
	return out
}

// RepTerm returns the term.Term carried by e-node id.
func (s *Store) RepTerm(id term.ID) *term.Term { return s.node(id).t }

func sigKey(sym string, argReps []term.ID) string {
	key := sym
	for _, r := range argReps {
		key += fmt.Sprintf(":%d", r)
	}
	return key
}

func (s *Store) signatureOf(appID term.ID) string {
	nd := s.node(appID)
	reps := make([]term.ID, len(nd.t.Args))
	for i, a := range nd.t.Args {
		reps[i] = s.Find(a.ID)
	}
	return sigKey(nd.t.Sym, reps)
}

// registerSignature records appID's current signature as canonical,
// unless an existing entry disagrees, in which case it schedules a
// congruence merge between the two (this is how a freshly-added term
// that already matches a known signature gets unioned in).
func (s *Store) registerSignature(appID term.ID) {
	key := s.signatureOf(appID)
	if existing, ok := s.sig.Get(key); ok {
		if s.Find(existing) != s.Find(appID) {
			s.queueCongruence(appID, existing)
		}
		return
	}
	s.sig.Set(key, appID)
}

func (s *Store) queueCongruence(n1, n2 term.ID) {
	args1, args2 := s.node(n1).t.Args, s.node(n2).t.Args
	pairs := make([][2]term.ID, len(args1))
	for i := range args1 {
		pairs[i] = [2]term.ID{args1[i].ID, args2[i].ID}
	}
	s.pending = append(s.pending, pendingMerge{n1: n1, n2: n2, expl: &Explanation{Kind: ExplCongruence, Pairs: pairs}})
}

// Merge unions the classes of n1 and n2, attributing the merge to expl.
// If a registered OnPreMerge hook vetoes it, Merge returns that conflict
// and makes no change. A no-op (returns nil) if n1 and n2 are
// already in the same class.
func (s *Store) Merge(n1, n2 term.ID, expl *Explanation) *Conflict {
	s.pending = append(s.pending, pendingMerge{n1: n1, n2: n2, expl: expl})
	return s.drainPending()
}

func (s *Store) drainPending() *Conflict {
	for len(s.pending) > 0 {
		pm := s.pending[len(s.pending)-1]
		s.pending = s.pending[:len(s.pending)-1]
		if conflict := s.mergeOne(pm.n1, pm.n2, pm.expl); conflict != nil {
			s.pending = s.pending[:0]
			return conflict
		}
	}
	return nil
}

func (s *Store) mergeOne(n1, n2 term.ID, expl *Explanation) *Conflict {
	r1, r2 := s.Find(n1), s.Find(n2)
	if r1 == r2 {
		return nil
	}
	for _, hook := range s.onPreMerge {
		if c := hook(r1, r2, expl); c != nil {
			return c
		}
	}
	s.link(n1, n2, expl)

	small, large := r1, r2
	if s.node(small).classSize > s.node(large).classSize {
		small, large = large, small
	}
	s.union(small, large)

	for _, hook := range s.onMerge {
		hook(r1, r2)
	}

	for _, appID := range s.node(large).parentApps {
		key := s.signatureOf(appID)
		if existing, ok := s.sig.Get(key); ok {
			if s.Find(existing) != s.Find(appID) {
				s.queueCongruence(appID, existing)
			}
		} else {
			s.sig.Set(key, appID)
		}
	}
	s.traceMerge(n1, n2, expl)
	return nil
}

// traceMerge records why n1 and n2 were just merged, so a caller with a
// Tracer attached gets one step per congruence-closure inference, not
// just per theory-level conflict.
func (s *Store) traceMerge(n1, n2 term.ID, expl *Explanation) {
	rule := "assume"
	var concludes []literal.Literal
	switch expl.Kind {
	case ExplCongruence:
		rule = "congruence"
	case ExplTheory:
		rule = expl.Rule
	default:
		concludes = []literal.Literal{expl.Lit}
	}
	s.tracer.Step(rule, nil, concludes, []*term.Term{s.node(n1).t, s.node(n2).t})
}

// union performs the union-find union of small's class into large's,
// recording undo actions for every mutated field.
func (s *Store) union(small, large term.ID) {
	sn, ln := s.node(small), s.node(large)

	oldParent := sn.ufParent
	sn.ufParent = large
	s.j.Record(func() { sn.ufParent = oldParent })

	oldSize := ln.classSize
	ln.classSize += sn.classSize
	s.j.Record(func() { ln.classSize = oldSize })

	oldRank := ln.ufRank
	if sn.ufRank >= ln.ufRank {
		ln.ufRank = sn.ufRank + 1
	}
	s.j.Record(func() { ln.ufRank = oldRank })

	oldParents := ln.parentApps
	ln.parentApps = append(append([]term.ID(nil), ln.parentApps...), sn.parentApps...)
	s.j.Record(func() { ln.parentApps = oldParents })

	oldSmallNext, oldLargeNext := sn.classNext, ln.classNext
	sn.classNext, ln.classNext = oldLargeNext, oldSmallNext
	s.j.Record(func() {
		sn.classNext = oldSmallNext
		ln.classNext = oldLargeNext
	})
}
