// Package smt is the top-level entry point: it wires the boolean
// sat.Solver, the theory.Framework, and a term.Store together behind a
// single incremental API, generalizing gophersat's one-shot
// New(problem)/Solve/Model construction into assert/solve/push/pop-style
// use with zero or more theory.Plugins attached.
package smt

import (
	"github.com/crillab/gophersmt/internal/journal"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/term"
	"github.com/crillab/gophersmt/theory"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ModelBuilder is implemented by a theory.Plugin that can expand a class
// representative into an explicit value term, instead of the bare
// representative congruence closure alone would pick. The datatype
// plugin's constructor-tree expansion is the only one this module ships;
// a Solver skips any plugin that doesn't implement it.
type ModelBuilder interface {
	Model(store *term.Store, rep *term.Term) *term.Term
}

// Solver is a sat.Solver driven by a theory.Framework, with term-level
// Assert/Solve/Value replacing the boolean core's raw clause interface.
type Solver struct {
	Log *logrus.Logger

	sat      *sat.Solver
	fw       *theory.Framework
	store    *term.Store
	theories []theory.Plugin
	pre      *theory.Preprocessor
}

// New builds a Solver whose every asserted or evaluated term must come
// from store.
func New(store *term.Store, opts ...Option) *Solver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	fw := theory.NewFramework(journal.New(), store, cfg.tracer)
	fw.Log = cfg.logger
	for _, p := range cfg.theories {
		fw.AddPlugin(p)
	}

	core := sat.New()
	core.Log = logrus.NewEntry(cfg.logger)
	if cfg.hasSeed {
		core.SetSeed(cfg.seed)
	}
	if cfg.restartAggressiveness > 0 {
		core.SetRestartAggressiveness(cfg.restartAggressiveness)
	}
	if cfg.reductionAggressiveness > 0 {
		core.SetReductionAggressiveness(cfg.reductionAggressiveness)
	}
	if cfg.nbVarsHint > 0 {
		core.Reserve(cfg.nbVarsHint)
	}
	core.SetTheory(fw)

	return &Solver{
		Log:      cfg.logger,
		sat:      core,
		fw:       fw,
		store:    store,
		theories: cfg.theories,
		pre:      theory.NewPreprocessor(store),
	}
}

// Assert adds clauses — a list of clauses, each a list of literals — to
// the problem at the root level: the external "assume(clauses)" call.
// Every literal is run through the Preprocessor first, so boolean
// constant folding and single-constructor datatype unfolding apply
// uniformly to every asserted atom rather than only to whatever a plugin
// happens to see later.
func (s *Solver) Assert(clauses [][]literal.Literal) error {
	rewritten := make([][]literal.Literal, 0, len(clauses))
	for _, clause := range clauses {
		out := make([]literal.Literal, len(clause))
		for i, l := range clause {
			folded, sideAssertions := s.pre.Process(l.Term)
			out[i] = literal.Canon(folded, l.Sign)
			for _, sa := range sideAssertions {
				rewritten = append(rewritten, []literal.Literal{literal.Pos(sa)})
			}
		}
		rewritten = append(rewritten, out)
	}
	for _, clause := range rewritten {
		lits := make([]sat.Lit, 0, len(clause))
		for _, l := range clause {
			lits = append(lits, s.fw.Assert(s.sat, l))
		}
		if err := s.sat.AssertClause(lits); err != nil {
			return errors.Wrap(err, "cannot assert clause")
		}
	}
	return nil
}

// AssertOne asserts a single fact: the common case of a one-literal
// clause.
func (s *Solver) AssertOne(lit literal.Literal) error {
	return s.Assert([][]literal.Literal{{lit}})
}

// Solve decides the problem under assumptions, each behaving as a
// decision at levels 1..k; it returns Sat or Unsat exactly as the
// external "solve(assumptions)" call. Call UnsatCore after an Unsat
// result to retrieve the responsible assumption subset.
func (s *Solver) Solve(assumptions []literal.Literal) sat.Status {
	lits := make([]sat.Lit, 0, len(assumptions))
	for _, l := range assumptions {
		lits = append(lits, s.fw.Assert(s.sat, l))
	}
	status := s.sat.AssumeAndSolve(lits)
	if status == sat.Unsat {
		s.fw.Tracer().Step("unsat", nil, nil, nil)
	}
	return status
}

// UnsatCore returns the assumptions that the most recent Solve call to
// reach the SAT core pushed as decisions before it reported Unsat, up to
// and including the one that conflicted; assumptions already true when
// reached are left out. The result is a subset of the assumptions but is
// not minimized: it is not narrowed to the assumptions the conflict used,
// and it is not empty when the conflict needed no assumption at all.
func (s *Solver) UnsatCore() []literal.Literal {
	pushed := s.sat.Assumptions()
	out := make([]literal.Literal, 0, len(pushed))
	for _, l := range pushed {
		out = append(out, s.fw.Registry().LiteralOf(l))
	}
	return out
}

// Value evaluates t against the model found by the last Sat-returning
// Solve call: a boolean term reduces to true/false, a datatype term
// expands to an explicit constructor tree, and any other term reduces to
// its equivalence class's canonical member. Panics if Solve never
// returned Sat.
func (s *Solver) Value(t *term.Term) *term.Term {
	if s.sat.Status() != sat.Sat {
		panic("smt: Value called without a prior Sat result")
	}
	cc := s.fw.CC()
	if !cc.Has(t) {
		cc.AddTerm(t)
	}
	if t.Type != nil && t.Type.Kind == term.TypeDatatype {
		for _, p := range s.theories {
			if mb, ok := p.(ModelBuilder); ok {
				if v := mb.Model(s.store, t); v != nil {
					return v
				}
			}
		}
	}
	if t.IsBoolean() {
		switch {
		case cc.Same(t.ID, s.store.True().ID):
			return s.store.True()
		case cc.Same(t.ID, s.store.False().ID):
			return s.store.False()
		}
	}
	return cc.RepTerm(cc.Find(t.ID))
}

// PushLevel opens a new backtracking level at the solver boundary.
func (s *Solver) PushLevel() { s.sat.PushLevel() }

// PopLevels reverts n levels opened by PushLevel, or by a Solve call's
// own assumption decisions.
func (s *Solver) PopLevels(n int) { s.sat.PopLevels(n) }

// Store returns the term store every asserted or evaluated term must
// come from.
func (s *Solver) Store() *term.Store { return s.store }

// Tracer returns the proof tracer plugins record inferences to.
func (s *Solver) Tracer() theory.ProofTracer { return s.fw.Tracer() }

// Status returns the solver's current status.
func (s *Solver) Status() sat.Status { return s.sat.Status() }
