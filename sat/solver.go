package sat

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	initNbMaxClauses  = 2000  // Initial max number of learned clauses.
	incrNbMaxClauses  = 300   // Growth of the learned-clause budget per reduction.
	incrPostponeNbMax = 1000  // Extra growth when reduction is postponed.
	clauseDecay       = 0.999 // Clause activity decay factor.
	defaultVarDecay   = 0.8   // Initial variable activity decay factor.
)

// Stats reports information about the resolution process, for
// observability only; nothing in the core depends on these values.
type Stats struct {
	NbRestarts      int
	NbConflicts     int
	NbDecisions     int
	NbUnitLearned   int
	NbBinaryLearned int
	NbLearned       int
	NbDeleted       int
}

// assignment maps each Var to its current signedLevel (0 = unassigned).
type assignment []signedLevel

// Solver is the CDCL core: propagation, conflict analysis, learning,
// restarts, reduction, and decisions, driven to a fixpoint by Solve, and
// kept in lockstep with an attached Theory via the callbacks in theory.go.
type Solver struct {
	Log *logrus.Entry // Structured logger; defaults to a discarding entry.

	nbVars     int
	status     Status
	wl         watcherList
	trail      []Lit
	assignment assignment
	lastModel  assignment

	activity    []float64
	polarity    []bool
	reason      []*Clause
	reasonExplain []func() *Clause

	varQueue  varQueue
	varInc    float64
	clauseInc float32
	varDecay  float64

	lbdStats lbdStats
	Stats    Stats

	level    Level // current push/decision depth; 0 is the permanent root.
	trailLvl []int // trail length recorded at each PushLevel, for PopLevels.

	theory Theory

	// restartK and reductionGrowth are the tunable forms of
	// triggerRestartK and incrNbMaxClauses: how eagerly the Glucose
	// restart heuristic fires, and how fast the learned-clause budget
	// grows between reductions. Both default to the package's fixed
	// constants; SetRestartAggressiveness/SetReductionAggressiveness
	// let an embedder trade search stability for memory.
	restartK       float64
	reductionGrowth int

	// rng drives initial phase selection when SetSeed has been called;
	// nil (the default) keeps every variable's initial guess false, the
	// teacher's own deterministic behavior.
	rng *rand.Rand

	// pendingConflict carries a conflict discovered while running a theory
	// callback (via TheoryPropagate or AddClause), so control can return
	// to the search loop before it is folded into the callback's own
	// return value by checkTheory.
	pendingConflict *Clause

	trailBuf []int

	// lastAssumptions is the prefix of the most recent AssumeAndSolve
	// call's assumptions that actually reached the SAT core, kept as a
	// sound (if not minimal) unsat core when that call reports Unsat.
	lastAssumptions []Lit
}

// New creates an empty Solver with no clauses and no theory attached.
// Clauses can be added with AddClause; call Reserve first if the number
// of variables is known ahead of time.
func New() *Solver {
	s := &Solver{
		varInc:          1.0,
		clauseInc:       1.0,
		varDecay:        defaultVarDecay,
		restartK:        triggerRestartK,
		reductionGrowth: incrNbMaxClauses,
		theory:          NopTheory{},
		Log:             logrus.NewEntry(logrus.StandardLogger()),
	}
	s.wl = watcherList{nbMax: initNbMaxClauses, idxReduce: 1}
	return s
}

// SetSeed seeds the decision heuristic's initial-phase guesses; the same
// seed always reproduces the same search on an unchanged problem. A
// Solver that never calls SetSeed guesses every variable's phase false,
// the package's own deterministic default.
func (s *Solver) SetSeed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// SetRestartAggressiveness rescales the Glucose restart trigger: higher k
// restarts more eagerly (at k >= 1, recent learned clauses need to be only
// marginally worse than average to trigger one), lower k restarts more
// conservatively. The teacher's fixed 0.8 is the default.
func (s *Solver) SetRestartAggressiveness(k float64) {
	if k > 0 {
		s.restartK = k
	}
}

// SetReductionAggressiveness rescales how fast the learned-clause budget
// grows between database reductions: a smaller increment reduces more
// often (lower memory, more relearning), a larger one less often. The
// teacher's fixed 300 is the default.
func (s *Solver) SetReductionAggressiveness(growth int) {
	if growth > 0 {
		s.reductionGrowth = growth
	}
}

// SetTheory attaches the Theory the core will drive at assume/check
// points. It must be called before any clause is asserted.
func (s *Solver) SetTheory(t Theory) {
	if t == nil {
		t = NopTheory{}
	}
	s.theory = t
}

// NbVars returns the number of SAT variables currently allocated.
func (s *Solver) NbVars() int { return s.nbVars }

// NewVar allocates a fresh boolean variable and returns it, growing every
// per-variable array. Implements TheoryEngine.
func (s *Solver) NewVar() Var {
	v := Var(s.nbVars)
	s.nbVars++
	s.assignment = append(s.assignment, 0)
	s.activity = append(s.activity, 0)
	initPolarity := false
	if s.rng != nil {
		initPolarity = s.rng.Intn(2) == 1
	}
	s.polarity = append(s.polarity, initPolarity)
	s.reason = append(s.reason, nil)
	s.reasonExplain = append(s.reasonExplain, nil)
	s.trailBuf = append(s.trailBuf, 0)
	s.growWatchList()
	s.varQueue.activity = s.activity
	s.varQueue.insert(int(v))
	return v
}

// Reserve preallocates storage for nbVars variables. It is optional but
// avoids repeated growth when the variable count is known up front.
func (s *Solver) Reserve(nbVars int) {
	for s.nbVars < nbVars {
		s.NewVar()
	}
}

func (s *Solver) litStatus(l Lit) Status {
	assign := s.assignment[l.Var()]
	if assign == 0 {
		return Indet
	}
	if (assign > 0) == l.IsPositive() {
		return Sat
	}
	return Unsat
}

// LitStatus implements TheoryEngine.
func (s *Solver) LitStatus(l Lit) Status { return s.litStatus(l) }

// Trail implements TheoryEngine.
func (s *Solver) Trail() []Lit { return s.trail }

// DecisionLevel implements TheoryEngine.
func (s *Solver) DecisionLevel() Level { return s.level }

// TheoryPropagate implements TheoryEngine: it enqueues l immediately and
// runs boolean propagation to fixpoint, stashing any resulting conflict
// for the caller (PartialCheck/FinalCheck) to observe as its own
// conflict clause once it returns control to the core.
func (s *Solver) TheoryPropagate(l Lit, explain func() *Clause) {
	if s.pendingConflict != nil {
		return
	}
	if s.litStatus(l) == Sat {
		return
	}
	if s.litStatus(l) == Unsat {
		s.pendingConflict = explain()
		return
	}
	ptr := len(s.trail)
	s.enqueue(l, s.level, nil, explain)
	s.pendingConflict = s.drainPropagation(ptr)
}

// AddClause implements TheoryEngine: c is installed exactly like a
// learned/theory clause discovered by the core itself.
func (s *Solver) AddClause(c *Clause) {
	if s.pendingConflict != nil {
		return
	}
	if conflict := s.installClause(c); conflict != nil {
		s.pendingConflict = conflict
	}
}

func (s *Solver) varDecayActivity() { s.varInc *= 1 / s.varDecay }

func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 {
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.varQueue.contains(int(v)) {
		s.varQueue.decrease(int(v))
	}
}

func (s *Solver) clauseDecayActivity() { s.clauseInc *= 1 / clauseDecay }

func (s *Solver) clauseBumpActivity(c *Clause) {
	if !c.Learned() {
		return
	}
	c.activity += s.clauseInc
	if c.activity > 1e30 {
		for _, c2 := range s.wl.clauses[s.wl.nbOriginal:] {
			c2.activity *= 1e-30
		}
		s.clauseInc *= 1e-30
	}
}

// chooseLit picks the next unbound variable by activity, or returns -1 if
// every variable is bound.
func (s *Solver) chooseLit() Lit {
	v := Var(-1)
	for v == -1 && !s.varQueue.empty() {
		if v2 := Var(s.varQueue.removeMin()); s.assignment[v2] == 0 {
			v = v2
		}
	}
	if v == -1 {
		return Lit(-1)
	}
	s.Stats.NbDecisions++
	return v.SignedLit(!s.polarity[v])
}

// cleanupBindings unwinds the trail (and model/reason/polarity arrays)
// down to decision level lvl, reinserting freed variables into the
// decision heap.
func (s *Solver) cleanupBindings(lvl Level) {
	i := 0
	for i < len(s.trail) && absLevel(s.assignment[s.trail[i].Var()]) <= lvl {
		i++
	}
	toInsert := s.trailBuf[:0]
	for j := i; j < len(s.trail); j++ {
		lit := s.trail[j]
		v := lit.Var()
		s.assignment[v] = 0
		if s.reason[v] != nil {
			s.reason[v].unlock()
			s.reason[v] = nil
		}
		s.reasonExplain[v] = nil
		s.polarity[v] = lit.IsPositive()
		if !s.varQueue.contains(int(v)) {
			toInsert = append(toInsert, int(v))
			s.varQueue.insert(int(v))
		}
	}
	s.trail = s.trail[:i]
	for i := len(toInsert) - 1; i >= 0; i-- {
		s.varQueue.insert(toInsert[i])
	}
}

func backtrackData(c *Clause, a assignment) (btLevel Level, lit Lit) {
	return absLevel(a[c.Get(1).Var()]), c.Get(0)
}

func (s *Solver) rebuildOrderHeap() {
	ints := make([]int, 0, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.assignment[v] == 0 {
			ints = append(ints, v)
		}
	}
	s.varQueue.build(ints)
}

// drainPropagation continues the watch-list scan starting at trail index
// ptr, without re-enqueueing lit (used when a literal was already
// appended by the caller, e.g. TheoryPropagate).
func (s *Solver) drainPropagation(ptr int) *Clause {
	for ptr < len(s.trail) {
		cur := s.trail[ptr]
		lvl := absLevel(s.assignment[cur.Var()])
		for _, w := range s.wl.wlistBin[cur] {
			v2 := w.other.Var()
			if assign := s.assignment[v2]; assign == 0 {
				s.enqueue(w.other, lvl, w.clause, nil)
			} else if (assign > 0) != w.other.IsPositive() {
				return w.clause
			}
		}
		for _, c := range s.wl.wlist[cur] {
			status, unit := s.simplifyClause(c)
			switch status {
			case Unsat:
				return c
			case Unit:
				s.enqueue(unit, lvl, c, nil)
			}
		}
		ptr++
	}
	return nil
}

// installClause installs c's watches (or, for a unit clause, enqueues it),
// returning a conflict if one was met immediately.
func (s *Solver) installClause(c *Clause) *Clause {
	if c.Len() == 0 {
		return c
	}
	if c.Len() == 1 {
		lit := c.First()
		switch s.litStatus(lit) {
		case Unsat:
			return c
		case Indet:
			ptr := len(s.trail)
			s.enqueue(lit, s.level, c, nil)
			return s.drainPropagation(ptr)
		}
		return nil
	}
	nbTrue, nbFalse, nbUnb := 0, 0, 0
	for i := 0; i < c.Len(); i++ {
		switch s.litStatus(c.Get(i)) {
		case Sat:
			nbTrue++
		case Unsat:
			nbFalse++
		default:
			nbUnb++
		}
	}
	if nbTrue > 0 {
		s.addClause(c)
		return nil
	}
	if nbUnb == 0 {
		return c
	}
	if nbUnb == 1 {
		var unit Lit
		for i := 0; i < c.Len(); i++ {
			if s.litStatus(c.Get(i)) == Indet {
				unit = c.Get(i)
				break
			}
		}
		s.addClause(c)
		ptr := len(s.trail)
		s.enqueue(unit, s.level, c, nil)
		return s.drainPropagation(ptr)
	}
	s.addClause(c)
	return nil
}

// AssertClause adds an input clause to the problem at the root level. It
// is the entry point for the external "assume(clauses)" call.
func (s *Solver) AssertClause(lits []Lit) error {
	if len(lits) == 0 {
		return errors.New("sat: empty clause is trivially unsatisfiable")
	}
	for _, l := range lits {
		if int(l.Var()) >= s.nbVars {
			return errors.Errorf("sat: literal %d refers to an unallocated variable", l.Int())
		}
	}
	c := NewClause(append([]Lit(nil), lits...))
	if conflict := s.installClause(c); conflict != nil {
		s.status = Unsat
	}
	return nil
}

// PushLevel opens a new push/decision level and notifies the theory.
func (s *Solver) PushLevel() {
	s.level++
	s.trailLvl = append(s.trailLvl, len(s.trail))
	s.theory.PushLevel()
}

// PopLevels reverts n push/decision levels, restoring trail, assignment,
// reason, and theory state to what they were right after the matching
// PushLevel calls.
func (s *Solver) PopLevels(n int) {
	if n <= 0 {
		return
	}
	target := s.level - Level(n)
	s.cleanupBindings(target)
	s.trailLvl = s.trailLvl[:len(s.trailLvl)-n]
	s.level = target
	s.theory.PopLevels(n)
	s.rebuildOrderHeap()
	if s.status == Unsat {
		s.status = Indet
	}
}

// checkTheory runs a theory callback and folds any conflict it raised
// (directly or via a pending TheoryPropagate/AddClause) into a single
// return value.
func (s *Solver) checkTheory(final bool) *Clause {
	s.pendingConflict = nil
	var conflict *Clause
	if final {
		conflict = s.theory.FinalCheck(s)
	} else {
		conflict = s.theory.PartialCheck(s)
	}
	if conflict == nil {
		conflict = s.pendingConflict
	}
	s.pendingConflict = nil
	if conflict != nil {
		conflict.header = conflict.header&^originMask | uint32(OriginTheory)<<25
	}
	return conflict
}

// propagateAndSearch binds lit at lvl, propagates, and drives the search
// (including theory checks and conflict analysis) until Sat, Unsat, or a
// restart is due.
func (s *Solver) propagateAndSearch(lit Lit, lvl Level) Status {
	for lit != -1 {
		conflict := s.unifyLiteral(lit, lvl)
		if conflict == nil {
			conflict = s.checkTheory(false)
		}
		if conflict == nil {
			if s.lbdStats.mustRestart(s.restartK) {
				s.Log.WithFields(logrus.Fields{
					"level":     lvl,
					"conflicts": s.Stats.NbConflicts,
				}).Debug("restart triggered")
				s.lbdStats.clear()
				s.PopLevels(int(s.level))
				return Indet
			}
			if s.Stats.NbConflicts >= s.wl.idxReduce*s.wl.nbMax {
				s.wl.idxReduce = s.Stats.NbConflicts/s.wl.nbMax + 1
				s.Log.WithFields(logrus.Fields{
					"nbMax":   s.wl.nbMax,
					"learned": s.Stats.NbLearned,
				}).Debug("reducing clause database")
				s.reduceLearned()
				s.bumpNbMax()
			}
			lvl++
			s.level = lvl
			s.theory.PushLevel()
			s.trailLvl = append(s.trailLvl, len(s.trail))
			lit = s.chooseLit()
			if lit == -1 {
				if fconflict := s.checkTheory(true); fconflict != nil {
					conflict = fconflict
				} else if lit = s.chooseLit(); lit == -1 {
					return Sat
				}
			}
			if conflict == nil {
				continue
			}
		}
		s.Stats.NbConflicts++
		if s.Stats.NbConflicts%5000 == 0 && s.varDecay < 0.95 {
			s.varDecay += 0.01
		}
		s.lbdStats.addConflict(len(s.trail))
		s.Log.WithFields(logrus.Fields{
			"level":     lvl,
			"conflicts": s.Stats.NbConflicts,
		}).Debug("conflict")
		if lvl == 0 {
			s.status = Unsat
			return Unsat
		}
		learnt, unit := s.learnClause(conflict, lvl)
		if learnt == nil {
			if unit == -1 || (absLevel(s.assignment[unit.Var()]) == 1 && s.litStatus(unit) == Unsat) {
				s.status = Unsat
				return Unsat
			}
			s.Stats.NbUnitLearned++
			s.lbdStats.addLbd(1)
			s.Log.WithField("conflicts", s.Stats.NbConflicts).Debug("learned unit clause")
			s.PopLevels(int(s.level))
			s.enqueue(unit, 1, nil, nil)
			if conflict = s.drainPropagation(len(s.trail) - 1); conflict != nil {
				s.status = Unsat
				return Unsat
			}
			s.rebuildOrderHeap()
			lvl = 1
			s.level = 1
			lit = s.chooseLit()
			lvl++
		} else {
			if learnt.Len() == 2 {
				s.Stats.NbBinaryLearned++
			}
			s.Stats.NbLearned++
			s.lbdStats.addLbd(learnt.lbd())
			s.Log.WithFields(logrus.Fields{
				"lbd":  learnt.lbd(),
				"size": learnt.Len(),
			}).Debug("learned clause")
			s.addClause(learnt)
			var btLevel Level
			btLevel, lit = backtrackData(learnt, s.assignment)
			s.PopLevels(int(s.level - btLevel))
			s.reason[lit.Var()] = learnt
			learnt.lock()
			lvl = btLevel
		}
	}
	return Sat
}

func (s *Solver) search() Status {
	lvl := s.level + 1
	s.level = lvl
	s.theory.PushLevel()
	s.trailLvl = append(s.trailLvl, len(s.trail))
	s.status = s.propagateAndSearch(s.chooseLit(), lvl)
	return s.status
}

// Solve runs the CDCL loop to completion (Sat or Unsat), restarting as
// needed, and returns the final status.
func (s *Solver) Solve() Status {
	if s.status == Unsat {
		return s.status
	}
	s.status = Indet
	for s.status == Indet {
		s.search()
		if s.status == Indet {
			s.Stats.NbRestarts++
			s.rebuildOrderHeap()
		}
	}
	if s.status == Sat {
		s.lastModel = make(assignment, len(s.assignment))
		copy(s.lastModel, s.assignment)
	}
	s.Log.WithFields(logrus.Fields{
		"status":    s.status,
		"conflicts": s.Stats.NbConflicts,
		"restarts":  s.Stats.NbRestarts,
		"learned":   s.Stats.NbLearned,
	}).Info("solve finished")
	return s.status
}

// AssumeAndSolve forces each of assumptions true as a decision at levels
// 1..len(assumptions), in order, then continues exactly as Solve would.
// An assumption that contradicts the model so far (or a root-level fact)
// reports Unsat immediately, without pushing any assumption after it;
// Assumptions then returns the pushed prefix as an unsat core.
func (s *Solver) AssumeAndSolve(assumptions []Lit) Status {
	if s.status == Unsat {
		return s.status
	}
	s.status = Indet
	s.lastAssumptions = s.lastAssumptions[:0]
	for _, lit := range assumptions {
		switch s.litStatus(lit) {
		case Sat:
			continue
		case Unsat:
			s.lastAssumptions = append(s.lastAssumptions, lit)
			s.status = Unsat
			s.Log.WithField("assumptions", len(s.lastAssumptions)).Info("solve finished")
			return s.status
		}
		s.level++
		s.trailLvl = append(s.trailLvl, len(s.trail))
		s.theory.PushLevel()
		s.lastAssumptions = append(s.lastAssumptions, lit)
		conflict := s.unifyLiteral(lit, s.level)
		if conflict == nil {
			conflict = s.checkTheory(false)
		}
		if conflict != nil {
			s.status = Unsat
			s.Log.WithField("assumptions", len(s.lastAssumptions)).Info("solve finished")
			return s.status
		}
	}
	return s.Solve()
}

// Assumptions returns the assumption prefix forced by the most recent
// AssumeAndSolve call that actually reached the SAT core. On Unsat, this
// is a sound, though not necessarily minimal, unsat core.
func (s *Solver) Assumptions() []Lit {
	return s.lastAssumptions
}

// Model returns, for each variable, whether it was bound true in the last
// satisfying assignment found. Panics if the solver never reported Sat.
func (s *Solver) Model() []bool {
	if s.lastModel == nil {
		panic("sat: Model called on a solver that never reported Sat")
	}
	res := make([]bool, s.nbVars)
	for i, lvl := range s.lastModel {
		res[i] = lvl > 0
	}
	return res
}

// Status returns the solver's current status.
func (s *Solver) Status() Status { return s.status }

