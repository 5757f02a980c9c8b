package theory

import (
	"github.com/crillab/gophersmt/cc"
	"github.com/crillab/gophersmt/internal/journal"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/term"
	"github.com/sirupsen/logrus"
)

// Framework is the sat.Theory attached to a sat.Solver once any term-level
// reasoning is needed: it owns the congruence closure store and a
// journal shared by every Plugin, and drives the fan-out order the
// SAT-theory loop needs: the CC store is updated first, then each Plugin
// runs in registration order.
type Framework struct {
	Log *logrus.Logger

	j       *journal.Journal
	cc      *cc.Store
	reg     *literal.Registry
	store   *term.Store
	plugins []Plugin
	tracer  ProofTracer

	// diseqs holds every equality atom asserted false, so PartialCheck and
	// FinalCheck can notice when the CC store later proves the two sides
	// equal anyway (a disequality becomes unsatisfiable, not just unsat
	// with its own class argument, the moment Same(a, b) goes true).
	diseqs []disequality
}

type disequality struct {
	a, b term.ID
	lit  literal.Literal
}

// NewFramework returns an empty Framework using j for all backtrackable
// state (both the CC store's and the Framework's own bookkeeping); j
// should be shared with nothing the Framework doesn't control, so a
// caller should build it and hand it straight in.
func NewFramework(j *journal.Journal, store *term.Store, tracer ProofTracer) *Framework {
	if tracer == nil {
		tracer = NopTracer{}
	}
	ccStore := cc.NewStore(j)
	ccStore.SetTracer(tracer)
	return &Framework{
		Log:    logrus.StandardLogger(),
		j:      j,
		cc:     ccStore,
		reg:    literal.NewRegistry(),
		store:  store,
		tracer: tracer,
	}
}

// CC returns the underlying congruence closure store, so a Plugin can
// register OnNewTerm/OnPreMerge/OnMerge hooks against it.
func (f *Framework) CC() *cc.Store { return f.cc }

// Store returns the term store every Plugin builds new terms through.
func (f *Framework) Store() *term.Store { return f.store }

// Registry returns the term<->SAT-variable bijection.
func (f *Framework) Registry() *literal.Registry { return f.reg }

// Journal returns the shared backtracking journal.
func (f *Framework) Journal() *journal.Journal { return f.j }

// Tracer returns the proof tracer plugins should record inferences to.
func (f *Framework) Tracer() ProofTracer { return f.tracer }

// AddPlugin attaches p, calling its Register hook immediately so it can
// subscribe to CC events. Plugins fire in the order they are added.
func (f *Framework) AddPlugin(p Plugin) {
	p.Register(f)
	f.plugins = append(f.plugins, p)
	f.Log.WithField("theory", p.Name()).Info("theory attached")
}

// Assert adds t (a boolean-typed term) to the CC store and registers its
// atom with the SAT core via the registry, returning the sat.Lit the SAT
// core should assert. Used by the top-level solver to turn an asserted
// formula into boolean clauses over theory atoms.
func (f *Framework) Assert(engine sat.TheoryEngine, l literal.Literal) sat.Lit {
	f.cc.AddTerm(l.Term)
	return f.reg.LitOf(engine, l)
}

// OnAssume implements sat.Theory.
func (f *Framework) OnAssume(engine sat.TheoryEngine, sl sat.Lit) {
	lit := f.reg.LiteralOf(sl)
	if lit.Term == nil {
		return
	}
	if conflict := f.handleAssume(lit); conflict != nil {
		f.raise(engine, conflict)
		return
	}
	for _, p := range f.plugins {
		p.OnAssume(f, engine, lit)
	}
}

// handleAssume folds an asserted atom straight into the CC store. An
// equality atom is merged (or, if negated, remembered as a disequality
// to recheck) directly between its two sides. Any other boolean atom is
// merged with the reserved true/false constant matching its sign, so
// that theories watching is-C(t)-shaped CC terms (the datatype plugin)
// see a case-split decision the moment the SAT core makes one.
func (f *Framework) handleAssume(lit literal.Literal) *Conflict {
	t := lit.Term
	if t.Kind == term.KindEq {
		a, b := t.Args[0], t.Args[1]
		f.cc.AddTerm(a)
		f.cc.AddTerm(b)
		if lit.Sign {
			return f.cc.Merge(a.ID, b.ID, &cc.Explanation{Kind: cc.ExplLit, Lit: lit})
		}
		f.diseqs = append(f.diseqs, disequality{a: a.ID, b: b.ID, lit: lit})
		idx := len(f.diseqs) - 1
		f.j.Record(func() {
			if idx < len(f.diseqs) {
				f.diseqs = f.diseqs[:idx]
			}
		})
		return f.checkDisequalities()
	}
	f.cc.AddTerm(t)
	val := f.store.False()
	if lit.Sign {
		val = f.store.True()
	}
	f.cc.AddTerm(val)
	return f.cc.Merge(t.ID, val.ID, &cc.Explanation{Kind: cc.ExplLit, Lit: lit})
}

// checkDisequalities scans every recorded disequality for one whose two
// sides the CC store has since proven equal, raising the corresponding
// conflict.
func (f *Framework) checkDisequalities() *Conflict {
	for _, d := range f.diseqs {
		if f.cc.Same(d.a, d.b) {
			lits := append([]literal.Literal{d.lit}, f.cc.Explain(d.a, d.b)...)
			return &Conflict{Lits: lits}
		}
	}
	return nil
}

// raise turns a term-level Conflict into a boolean clause (the negation
// of every currently-true literal cited) and hands it to the SAT core,
// exactly as if the SAT core's own propagation had discovered a
// falsified clause.
func (f *Framework) raise(engine sat.TheoryEngine, conflict *Conflict) {
	f.Log.WithFields(logrus.Fields{
		"level": engine.DecisionLevel(),
		"lits":  len(conflict.Lits),
	}).Debug("theory conflict")
	engine.AddClause(f.toClause(engine, conflict))
}

// Raise is the exported form of raise, for a Plugin's own callbacks
// (OnAssume in particular, which has no return path of its own for a
// conflict discovered while reacting to the assumed literal).
func (f *Framework) Raise(engine sat.TheoryEngine, conflict *Conflict) {
	f.raise(engine, conflict)
}

// PartialCheck implements sat.Theory.
func (f *Framework) PartialCheck(engine sat.TheoryEngine) *sat.Clause {
	if conflict := f.checkDisequalities(); conflict != nil {
		f.Log.WithField("level", engine.DecisionLevel()).Debug("disequality conflict")
		return f.toClause(engine, conflict)
	}
	for _, p := range f.plugins {
		if conflict := p.PartialCheck(f, engine); conflict != nil {
			f.Log.WithFields(logrus.Fields{
				"theory": p.Name(),
				"level":  engine.DecisionLevel(),
			}).Debug("theory conflict")
			return f.toClause(engine, conflict)
		}
	}
	return nil
}

// FinalCheck implements sat.Theory.
func (f *Framework) FinalCheck(engine sat.TheoryEngine) *sat.Clause {
	if conflict := f.checkDisequalities(); conflict != nil {
		f.Log.WithField("level", engine.DecisionLevel()).Debug("disequality conflict")
		return f.toClause(engine, conflict)
	}
	for _, p := range f.plugins {
		if conflict := p.FinalCheck(f, engine); conflict != nil {
			f.Log.WithFields(logrus.Fields{
				"theory": p.Name(),
				"level":  engine.DecisionLevel(),
			}).Debug("theory conflict")
			return f.toClause(engine, conflict)
		}
	}
	return nil
}

func (f *Framework) toClause(engine sat.TheoryEngine, conflict *Conflict) *sat.Clause {
	lits := make([]sat.Lit, 0, len(conflict.Lits))
	for _, l := range conflict.Lits {
		lits = append(lits, f.reg.LitOf(engine, l.Negation()))
	}
	return sat.NewTheoryClause(lits)
}

// PushLevel implements sat.Theory: the journal fence is opened first so
// plugins can journal their own pre-decision state too.
func (f *Framework) PushLevel() {
	f.j.Push()
	for _, p := range f.plugins {
		p.PushLevel()
	}
}

// PopLevels implements sat.Theory.
func (f *Framework) PopLevels(n int) {
	for _, p := range f.plugins {
		p.PopLevels(n)
	}
	f.j.Pop(n)
}
