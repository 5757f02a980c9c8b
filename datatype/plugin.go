package datatype

import (
	"github.com/crillab/gophersmt/cc"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/term"
	"github.com/crillab/gophersmt/theory"
)

// OnAssume implements theory.Plugin. When a tester atom is-C(u) becomes
// true, u's class does not necessarily already contain a constructor
// application, so its shape is asserted directly as an equality
// u = C(sel_{C,0}(u), ..., sel_{C,k}(u)); the CC hooks in hooks.go then
// recognize the right-hand side as a fresh constructor application and
// take it from there (injectivity, disjointness, propagation to sibling
// testers/selectors already filed against u's class).
func (p *Plugin) OnAssume(fw *theory.Framework, engine sat.TheoryEngine, lit literal.Literal) {
	t := lit.Term
	if !lit.Sign || t.Kind != term.KindApp || len(t.Args) != 1 {
		return
	}
	u := t.Args[0]
	if u.Type == nil || u.Type.Kind != term.TypeDatatype {
		return
	}
	ctor := p.testerCtor(u.Type, t.Sym)
	if ctor == nil {
		return
	}

	store := fw.Store()
	ccs := p.ccStore()
	args := make([]*term.Term, len(ctor.Selectors))
	for i := range ctor.Selectors {
		args[i] = Sel(store, ctor, i, u)
	}
	rhs := store.App(ctor.Name, u.Type, args...)
	if conflict := ccs.AddTerm(rhs); conflict != nil {
		fw.Raise(engine, conflict)
		return
	}
	if conflict := ccs.Merge(u.ID, rhs.ID, &cc.Explanation{Kind: cc.ExplLit, Lit: lit}); conflict != nil {
		fw.Raise(engine, conflict)
	}
}

// PartialCheck implements theory.Plugin. Everything a partial check
// would otherwise scan the trail for (tester decomposition, injectivity,
// disjointness) is instead handled reactively as it happens, in
// OnAssume and the cc.Store hooks, so there is nothing left to do here.
func (p *Plugin) PartialCheck(fw *theory.Framework, engine sat.TheoryEngine) *theory.Conflict {
	return nil
}

// FinalCheck implements theory.Plugin: acyclicity of the constructor
// graph first (a genuine conflict, since a cycle is never satisfiable),
// then an exhaustive case-split for every finite-datatype class that
// still doesn't know its constructor.
func (p *Plugin) FinalCheck(fw *theory.Framework, engine sat.TheoryEngine) *theory.Conflict {
	if conflict := p.checkAcyclicity(); conflict != nil {
		return conflict
	}
	p.caseSplit(engine)
	return nil
}

// PushLevel implements theory.Plugin. All of the plugin's state
// (cstors, parents, toDecide, caseSplitDone) rides on the same journal
// as the CC store, so the Framework's own PushLevel/PopLevels fencing
// already covers it; there is nothing plugin-local to track.
func (p *Plugin) PushLevel() {}

// PopLevels implements theory.Plugin.
func (p *Plugin) PopLevels(n int) {}

type color byte

const (
	white color = iota
	gray
	black
)

// checkAcyclicity runs a three-color DFS over the graph where every
// class with a known constructor points, through that constructor's
// arguments, at their representatives' classes. A back-edge (an edge
// into a gray node) is a cycle, which can never be satisfied since it
// would require an infinitely-deep ground term.
func (p *Plugin) checkAcyclicity() *theory.Conflict {
	store := p.ccStore()
	colors := make(map[term.ID]color)
	var path []term.ID
	var found *theory.Conflict

	var visit func(root term.ID) bool
	visit = func(root term.ID) bool {
		switch colors[root] {
		case black:
			return false
		case gray:
			start := 0
			for i, r := range path {
				if r == root {
					start = i
					break
				}
			}
			found = p.cycleConflict(path[start:])
			return true
		}
		colors[root] = gray
		path = append(path, root)
		if info, ok := p.cstors.Get(root); ok {
			for _, argID := range info.args {
				if visit(store.Find(argID)) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		colors[root] = black
		return false
	}

	for _, root := range p.cstors.Keys() {
		if colors[store.Find(root)] == white {
			if visit(store.Find(root)) {
				return found
			}
		}
	}
	return nil
}

// cycleConflict builds the reason a constructor-graph cycle cannot be
// satisfied: for each class on the cycle, why it has the constructor it
// has, and why its cited argument lands in the next class on the cycle.
func (p *Plugin) cycleConflict(cycle []term.ID) *theory.Conflict {
	store := p.ccStore()
	var lits []literal.Literal
	n := len(cycle)
	for i, root := range cycle {
		info, ok := p.cstors.Get(root)
		if !ok {
			continue
		}
		if root != info.witness {
			lits = append(lits, store.Explain(root, info.witness)...)
		}
		next := cycle[(i+1)%n]
		for _, argID := range info.args {
			if store.Find(argID) == next {
				if argID != next {
					lits = append(lits, store.Explain(argID, next)...)
				}
				break
			}
		}
	}
	terms := make([]*term.Term, len(cycle))
	for i, root := range cycle {
		terms[i] = store.RepTerm(root)
	}
	p.fw.Tracer().Step("datatype-acyclicity", nil, lits, terms)
	return &theory.Conflict{Lits: lits}
}

// caseSplit adds, for every to_decide class that still has neither a
// known constructor nor a recorded case-split, the exhaustive clause
// over its datatype's testers plus every pairwise exclusion between
// them, then marks the class done so it is only ever split once.
func (p *Plugin) caseSplit(engine sat.TheoryEngine) {
	for _, root := range p.toDecide.Keys() {
		root = p.ccStore().Find(root)
		if _, has := p.cstors.Get(root); has {
			continue
		}
		if done, _ := p.caseSplitDone.Get(root); done {
			continue
		}
		p.emitCaseSplit(engine, root)
		p.caseSplitDone.Set(root, true)
	}
}

func (p *Plugin) emitCaseSplit(engine sat.TheoryEngine, root term.ID) {
	ccs := p.ccStore()
	store := p.fw.Store()
	reg := p.fw.Registry()

	t := ccs.RepTerm(root)
	dt := t.Type
	lits := make([]sat.Lit, len(dt.Constructors))
	for i, ctor := range dt.Constructors {
		atom := IsC(store, ctor, t)
		ccs.AddTerm(atom)
		lits[i] = reg.LitOf(engine, literal.Pos(atom))
	}
	engine.AddClause(sat.NewTheoryClause(lits))

	for i := range lits {
		for j := i + 1; j < len(lits); j++ {
			engine.AddClause(sat.NewTheoryClause([]sat.Lit{lits[i].Negation(), lits[j].Negation()}))
		}
	}
}
