package datatype

import (
	"github.com/crillab/gophersmt/cc"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
	"github.com/crillab/gophersmt/theory"
)

// onNewTerm implements the "On new CC term" rule: a fresh constructor
// application records its class's constructor; a fresh tester or
// selector application over a datatype-typed argument is filed as a
// parent of that argument's class and, if the class already knows its
// constructor, resolved immediately.
func (p *Plugin) onNewTerm(t *term.Term) {
	store := p.ccStore()

	if t.Kind == term.KindApp && t.Type != nil && t.Type.Kind == term.TypeDatatype {
		if ctor := t.Type.Constructor(t.Sym); ctor != nil && len(ctor.Selectors) == len(t.Args) {
			args := make([]term.ID, len(t.Args))
			for i, a := range t.Args {
				args[i] = a.ID
			}
			info := ctorInfo{ctor: ctor, dtType: t.Type, args: args, witness: t.ID}
			root := store.Find(t.ID)
			p.setCstor(root, info)
			p.propagateKnownCstor(info, root)
		}
	}

	if t.Kind == term.KindApp && len(t.Args) == 1 && t.Args[0].Type != nil && t.Args[0].Type.Kind == term.TypeDatatype {
		u := t.Args[0]
		dt := u.Type
		uRoot := store.Find(u.ID)
		if ctor := p.testerCtor(dt, t.Sym); ctor != nil {
			p.addParent(uRoot, parentRef{term: t.ID, kind: parentTester, ctor: ctor})
			if info, ok := p.cstors.Get(uRoot); ok {
				p.resolveTester(t.ID, ctor, info)
			}
		} else if ctor, idx, ok := p.selectorCtor(dt, t.Sym); ok {
			p.addParent(uRoot, parentRef{term: t.ID, kind: parentSelector, ctor: ctor, idx: idx})
			if info, ok := p.cstors.Get(uRoot); ok && info.ctor == ctor {
				store.Merge(t.ID, info.args[idx], &cc.Explanation{Kind: cc.ExplTheory, Rule: "datatype-selector"})
			}
		}
	}

	if t.Type != nil && t.Type.Kind == term.TypeDatatype && p.finite[t.Type] {
		p.toDecide.Set(store.Find(t.ID), true)
	}
}

func (p *Plugin) resolveTester(testerTerm term.ID, ctor *term.Constructor, info ctorInfo) {
	val := p.falseTerm()
	if info.ctor == ctor {
		val = p.trueTerm()
	}
	store := p.ccStore()
	store.AddTerm(val)
	store.Merge(testerTerm, val.ID, &cc.Explanation{Kind: cc.ExplTheory, Rule: "datatype-tester"})
}

// propagateKnownCstor resolves every tester/selector parent already
// filed against root now that root's constructor (info) is known,
// implementing the "on pre-merge" propagation rule reactively for the
// case where the constructor becomes known after the parents were
// filed rather than before.
func (p *Plugin) propagateKnownCstor(info ctorInfo, root term.ID) *theory.Conflict {
	store := p.ccStore()
	refs, _ := p.parents.Get(root)
	for _, ref := range refs {
		switch ref.kind {
		case parentTester:
			val := p.falseTerm()
			if info.ctor == ref.ctor {
				val = p.trueTerm()
			}
			store.AddTerm(val)
			if c := store.Merge(ref.term, val.ID, &cc.Explanation{Kind: cc.ExplTheory, Rule: "datatype-tester"}); c != nil {
				return c
			}
		case parentSelector:
			if ref.ctor == info.ctor {
				if c := store.Merge(ref.term, info.args[ref.idx], &cc.Explanation{Kind: cc.ExplTheory, Rule: "datatype-selector"}); c != nil {
					return c
				}
			}
		}
	}
	return nil
}

// onPreMerge implements "on merging two classes both with constructors"
// (injectivity/disjointness) and the "on pre-merge" tester/selector
// propagation, all before the union-find state actually changes so a
// disjointness conflict can veto the merge cleanly.
func (p *Plugin) onPreMerge(r1, r2 term.ID, expl *cc.Explanation) *theory.Conflict {
	store := p.ccStore()
	c1, ok1 := p.cstors.Get(r1)
	c2, ok2 := p.cstors.Get(r2)

	if ok1 && ok2 {
		if c1.ctor != c2.ctor {
			return p.disjointnessConflict(r1, r2, c1, c2, expl)
		}
		for i := range c1.args {
			if c1.args[i] == c2.args[i] {
				continue
			}
			if c := store.Merge(c1.args[i], c2.args[i], &cc.Explanation{Kind: cc.ExplTheory, Rule: "datatype-injectivity"}); c != nil {
				return c
			}
		}
	}

	if ok1 {
		if c := p.propagateKnownCstor(c1, r2); c != nil {
			return c
		}
	}
	if ok2 {
		if c := p.propagateKnownCstor(c2, r1); c != nil {
			return c
		}
	}
	return nil
}

// disjointnessConflict builds the reason two provably-different-shaped
// classes cannot be merged: how r1 came to have c1's shape, how r2 came
// to have c2's shape, and why the merge was attempted in the first
// place.
func (p *Plugin) disjointnessConflict(r1, r2 term.ID, c1, c2 ctorInfo, expl *cc.Explanation) *theory.Conflict {
	store := p.ccStore()
	var lits []literal.Literal
	if r1 != c1.witness {
		lits = append(lits, store.Explain(r1, c1.witness)...)
	}
	if r2 != c2.witness {
		lits = append(lits, store.Explain(r2, c2.witness)...)
	}
	lits = append(lits, store.ExplainLabel(expl)...)
	p.fw.Tracer().Step("datatype-disjointness", nil, lits, []*term.Term{store.RepTerm(c1.witness), store.RepTerm(c2.witness)})
	return &theory.Conflict{Lits: lits}
}

// onMerge migrates cstors/parents/toDecide/caseSplitDone from the two
// pre-union representatives to the surviving root.
func (p *Plugin) onMerge(r1, r2 term.ID) {
	store := p.ccStore()
	root := store.Find(r1)

	c1, ok1 := p.cstors.Get(r1)
	c2, ok2 := p.cstors.Get(r2)
	if ok1 {
		p.setCstor(root, c1)
	} else if ok2 {
		p.setCstor(root, c2)
	}

	p1, _ := p.parents.Get(r1)
	p2, _ := p.parents.Get(r2)
	if len(p1) > 0 || len(p2) > 0 {
		p.parents.Set(root, append(append([]parentRef(nil), p1...), p2...))
	}

	if v, _ := p.toDecide.Get(r1); v {
		p.toDecide.Set(root, true)
	}
	if v, _ := p.toDecide.Get(r2); v {
		p.toDecide.Set(root, true)
	}
	if v, _ := p.caseSplitDone.Get(r1); v {
		p.caseSplitDone.Set(root, true)
	}
	if v, _ := p.caseSplitDone.Get(r2); v {
		p.caseSplitDone.Set(root, true)
	}

	for _, stale := range []term.ID{r1, r2} {
		if stale == root {
			continue
		}
		p.cstors.Delete(stale)
		p.parents.Delete(stale)
		p.toDecide.Delete(stale)
		p.caseSplitDone.Delete(stale)
	}
}
