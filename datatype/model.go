package datatype

import (
	"fmt"

	"github.com/crillab/gophersmt/term"
)

// Model builds a concrete ground term for the class rep belongs to: if
// the class has a known constructor, that constructor applied to the
// recursively-built models of its arguments; otherwise (a finite
// datatype class that satisfiability didn't force a shape onto) the
// datatype's base constructor, with fresh, freely-named arguments.
func (p *Plugin) Model(store *term.Store, rep *term.Term) *term.Term {
	return p.modelFor(store, p.ccStore().FindTerm(rep), make(map[term.ID]bool))
}

func (p *Plugin) modelFor(store *term.Store, root term.ID, visiting map[term.ID]bool) *term.Term {
	if info, ok := p.cstors.Get(root); ok {
		if visiting[root] {
			// A class visited while still building its own model can only
			// happen if checkAcyclicity missed a cycle; fall back to the
			// class's own representative rather than recurse forever.
			return p.ccStore().RepTerm(root)
		}
		visiting[root] = true
		args := make([]*term.Term, len(info.args))
		for i, argID := range info.args {
			args[i] = p.modelFor(store, p.ccStore().Find(argID), visiting)
		}
		delete(visiting, root)
		return store.App(info.ctor.Name, info.dtType, args...)
	}

	t := p.ccStore().RepTerm(root)
	dt := t.Type
	ctor, ok := p.base[dt]
	if !ok {
		return t
	}
	args := make([]*term.Term, len(ctor.ArgTypes))
	for i, at := range ctor.ArgTypes {
		args[i] = store.Const(p.freshName(), at)
	}
	return store.App(ctor.Name, dt, args...)
}

func (p *Plugin) freshName() string {
	p.freshCounter++
	return fmt.Sprintf("$dt%d", p.freshCounter)
}
