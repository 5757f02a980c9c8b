package cc

import (
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
)

// ExplKind discriminates a proof-forest edge's label.
type ExplKind byte

const (
	// ExplLit means the merge was caused directly by a trail literal.
	ExplLit ExplKind = iota
	// ExplCongruence means f(a...) = f(b...) because each a_i = b_i;
	// Pairs holds those argument pairs, each explained recursively.
	ExplCongruence
	// ExplTheory means a theory plugin asserted the merge; Subs holds any
	// sub-explanations it cited and Rule names the inference.
	ExplTheory
)

// Explanation labels one edge of the proof forest.
type Explanation struct {
	Kind  ExplKind
	Lit   literal.Literal // ExplLit
	Pairs [][2]term.ID    // ExplCongruence
	Subs  []*Explanation  // ExplTheory
	Rule  string          // ExplTheory
}

// link adds the proof-forest edge n1 --expl--> n2, first rerooting n1's
// proof tree so n1 becomes its root (the classic reroot-then-link step
// that keeps path-to-root lookups cheap without ever needing to rebuild
// the whole tree).
func (s *Store) link(n1, n2 term.ID, expl *Explanation) {
	s.reroot(n1)
	nd := s.node(n1)
	oldParent, oldLabel := nd.explParent, nd.explLabel
	nd.explParent = n2
	nd.explLabel = expl
	s.j.Record(func() {
		nd.explParent = oldParent
		nd.explLabel = oldLabel
	})
}

// reroot reverses every edge on the path from n to its proof-tree root,
// so that n becomes the root. Each reversed edge is individually
// journaled, so popping undoes exactly this operation.
func (s *Store) reroot(n term.ID) {
	var parent term.ID = noNode
	var label *Explanation
	cur := n
	for cur != noNode {
		nd := s.node(cur)
		nextParent, nextLabel := nd.explParent, nd.explLabel
		oldParent, oldLabel := nd.explParent, nd.explLabel
		nd.explParent, nd.explLabel = parent, label
		s.j.Record(func() {
			nd.explParent, nd.explLabel = oldParent, oldLabel
		})
		parent, label = cur, nextLabel
		cur = nextParent
	}
}

// Explain returns a set of currently-true literals that together imply
// a == b, or nil if they are not in the same class. Congruence edges
// expand into their argument pairs; theory edges expand into their
// stored sub-explanations.
func (s *Store) Explain(a, b term.ID) []literal.Literal {
	if s.Find(a) != s.Find(b) {
		return nil
	}
	if a == b {
		return nil
	}
	pathA := s.ancestors(a)
	ancestorSet := make(map[term.ID]int, len(pathA))
	for i, id := range pathA {
		ancestorSet[id] = i
	}
	pathB := []term.ID{b}
	cur := b
	for {
		if idx, ok := ancestorSet[cur]; ok {
			pathA = pathA[:idx+1]
			break
		}
		nd := s.node(cur)
		if nd.explParent == noNode {
			break
		}
		cur = nd.explParent
		pathB = append(pathB, cur)
	}
	var out []literal.Literal
	for i := 0; i+1 < len(pathA); i++ {
		out = append(out, s.explainEdge(pathA[i])...)
	}
	for i := 0; i+1 < len(pathB); i++ {
		out = append(out, s.explainEdge(pathB[i])...)
	}
	return out
}

// ancestors returns n, n's proof-forest parent, its parent, ... up to
// (and including) the tree root.
func (s *Store) ancestors(n term.ID) []term.ID {
	path := []term.ID{n}
	cur := n
	for {
		nd := s.node(cur)
		if nd.explParent == noNode {
			return path
		}
		cur = nd.explParent
		path = append(path, cur)
	}
}

// explainEdge expands the proof-forest edge from n to its explParent.
func (s *Store) explainEdge(n term.ID) []literal.Literal {
	return s.ExplainLabel(s.node(n).explLabel)
}

// ExplainLabel flattens an *Explanation into currently-true literals, the
// same traversal a committed proof-forest edge gets. Exposed so a theory
// building a conflict can explain the merge it just attempted (the expl
// an OnPreMerge hook is handed) even though that merge isn't part of the
// proof forest yet, since OnPreMerge runs before the edge is linked.
func (s *Store) ExplainLabel(expl *Explanation) []literal.Literal {
	if expl == nil {
		return nil
	}
	switch expl.Kind {
	case ExplLit:
		return []literal.Literal{expl.Lit}
	case ExplCongruence:
		var out []literal.Literal
		for _, p := range expl.Pairs {
			if p[0] != p[1] {
				out = append(out, s.Explain(p[0], p[1])...)
			}
		}
		return out
	case ExplTheory:
		var out []literal.Literal
		for _, sub := range expl.Subs {
			out = append(out, explainSub(sub)...)
		}
		return out
	default:
		return nil
	}
}

func explainSub(e *Explanation) []literal.Literal {
	if e == nil {
		return nil
	}
	if e.Kind == ExplLit {
		return []literal.Literal{e.Lit}
	}
	var out []literal.Literal
	for _, s := range e.Subs {
		out = append(out, explainSub(s)...)
	}
	return out
}
