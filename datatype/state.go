// Package datatype implements the illustrative theory.Plugin for
// algebraic datatypes: injectivity and disjointness of constructors,
// selector/tester reduction, acyclicity, and exhaustive case-split over
// a finite datatype's constructors.
package datatype

import (
	"fmt"

	"github.com/crillab/gophersmt/cc"
	"github.com/crillab/gophersmt/internal/journal"
	"github.com/crillab/gophersmt/term"
	"github.com/crillab/gophersmt/theory"
)

// ctorInfo is what is known about one CC class: it has constructor ctor
// applied to args (the e-node ids of the actual arguments), witnessed by
// the term witness — either the class's own representative (if the class
// root is itself a constructor application) or some other member merged
// into it, whichever term first supplied this fact.
type ctorInfo struct {
	ctor    *term.Constructor
	dtType  *term.Type
	args    []term.ID
	witness term.ID
}

type parentKind byte

const (
	parentTester parentKind = iota
	parentSelector
)

// parentRef is one is-C(u)/sel(u) application term that mentions a class
// as its single argument, kept so knowledge about the class's
// constructor (discovered later) can be propagated to it.
type parentRef struct {
	term term.ID
	kind parentKind
	ctor *term.Constructor
	idx  int // valid only for parentSelector
}

// selEntry names one selector's owning constructor and argument index.
type selEntry struct {
	ctor *term.Constructor
	idx  int
}

// Plugin is the datatype theory.Plugin.
type Plugin struct {
	fw *theory.Framework

	types   []*term.Type
	finite  map[*term.Type]bool
	base    map[*term.Type]*term.Constructor
	testers map[*term.Type]map[string]*term.Constructor // dtType -> "is-C" -> C
	selOf   map[*term.Type]map[string]selEntry           // dtType -> selector name -> (ctor, idx)

	cstors        *journal.Map[term.ID, ctorInfo]
	parents       *journal.Map[term.ID, []parentRef]
	toDecide      *journal.Map[term.ID, bool]
	caseSplitDone *journal.Map[term.ID, bool]

	// freshCounter names synthesized model arguments; not backtracked,
	// since model building happens only after the solver reports Sat.
	freshCounter int
}

// New returns a datatype Plugin that knows about exactly the datatypes
// in types (every datatype the caller intends to reason about must be
// listed, so cardinality and base-constructor selection can be computed
// once up front).
func New(types []*term.Type) *Plugin {
	finite := cardinalities(types)
	p := &Plugin{
		types:   types,
		finite:  finite,
		base:    baseConstructors(types, finite),
		testers: make(map[*term.Type]map[string]*term.Constructor),
		selOf:   make(map[*term.Type]map[string]selEntry),
	}
	for _, t := range types {
		if t.Kind != term.TypeDatatype {
			continue
		}
		testers := make(map[string]*term.Constructor, len(t.Constructors))
		sels := make(map[string]selEntry)
		for _, c := range t.Constructors {
			testers[isName(c.Name)] = c
			for i, sel := range c.Selectors {
				sels[sel] = selEntry{ctor: c, idx: i}
			}
		}
		p.testers[t] = testers
		p.selOf[t] = sels
	}
	return p
}

// isName returns the reserved tester symbol for constructor name.
func isName(name string) string { return fmt.Sprintf("is-%s", name) }

// IsC builds the tester term is-C(u) through the given store.
func IsC(store *term.Store, ctor *term.Constructor, u *term.Term) *term.Term {
	return store.App(isName(ctor.Name), term.BoolType, u)
}

// Sel builds the selector application sel_{C,i}(u) through store.
func Sel(store *term.Store, ctor *term.Constructor, idx int, u *term.Term) *term.Term {
	return store.App(ctor.Selectors[idx], ctor.ArgTypes[idx], u)
}

// Name implements theory.Plugin.
func (p *Plugin) Name() string { return "datatype" }

// Register implements theory.Plugin: subscribes to every cc.Store hook
// the datatype rules need.
func (p *Plugin) Register(fw *theory.Framework) {
	p.fw = fw
	j := fw.Journal()
	p.cstors = journal.NewMap[term.ID, ctorInfo](j)
	p.parents = journal.NewMap[term.ID, []parentRef](j)
	p.toDecide = journal.NewMap[term.ID, bool](j)
	p.caseSplitDone = journal.NewMap[term.ID, bool](j)

	fw.CC().OnNewTerm(p.onNewTerm)
	fw.CC().OnPreMerge(p.onPreMerge)
	fw.CC().OnMerge(p.onMerge)
}

func (p *Plugin) testerCtor(dt *term.Type, sym string) *term.Constructor {
	return p.testers[dt][sym]
}

func (p *Plugin) selectorCtor(dt *term.Type, sym string) (*term.Constructor, int, bool) {
	e, ok := p.selOf[dt][sym]
	if !ok {
		return nil, 0, false
	}
	return e.ctor, e.idx, true
}

func (p *Plugin) addParent(root term.ID, ref parentRef) {
	existing, _ := p.parents.Get(root)
	p.parents.Set(root, append(append([]parentRef(nil), existing...), ref))
}

func (p *Plugin) setCstor(root term.ID, info ctorInfo) {
	p.cstors.Set(root, info)
}

func (p *Plugin) trueTerm() *term.Term  { return p.fw.Store().True() }
func (p *Plugin) falseTerm() *term.Term { return p.fw.Store().False() }

func (p *Plugin) ccStore() *cc.Store { return p.fw.CC() }
