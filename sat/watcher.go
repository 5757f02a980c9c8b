package sat

import "sort"

// watcher is an entry in a binary-clause watch list: the clause plus the
// clause's other literal, cached as a "blocker" to skip a lookup when it
// is already true.
type watcher struct {
	other  Lit
	clause *Clause
}

// watcherList stores every clause plus, for each literal, the clauses
// that watch its negation.
type watcherList struct {
	nbOriginal int         // Original number of clauses.
	nbLearned  int         // Number of clauses registered through addClause (input ones included) still watched.
	nbMax      int         // Current max number of learned clauses allowed.
	idxReduce  int         // Number of calls to reduce, plus one.
	wlistBin   [][]watcher // Binary clauses watching ¬l, indexed by l.
	wlist      [][]*Clause // Longer clauses watching ¬l at position 0 or 1, indexed by l.
	clauses    []*Clause
}

func (s *Solver) initWatcherList(clauses []*Clause) {
	newClauses := make([]*Clause, len(clauses), len(clauses)*2)
	copy(newClauses, clauses)
	s.wl = watcherList{
		nbOriginal: len(clauses),
		nbMax:      initNbMaxClauses,
		idxReduce:  1,
		wlistBin:   make([][]watcher, s.nbVars*2),
		wlist:      make([][]*Clause, s.nbVars*2),
		clauses:    newClauses,
	}
	for _, c := range clauses {
		s.watchClause(c)
	}
}

// growWatchList extends the watch tables after new SAT variables were
// minted at runtime (e.g. by a theory's NewVar call during final check).
func (s *Solver) growWatchList() {
	for len(s.wl.wlistBin) < s.nbVars*2 {
		s.wl.wlistBin = append(s.wl.wlistBin, nil)
		s.wl.wlist = append(s.wl.wlist, nil)
	}
}

func (s *Solver) bumpNbMax()      { s.wl.nbMax += s.reductionGrowth }
func (s *Solver) postponeNbMax()  { s.wl.nbMax += incrPostponeNbMax }

func (wl *watcherList) Len() int { return wl.nbLearned }

func (wl *watcherList) Less(i, j int) bool {
	idxI, idxJ := i+wl.nbOriginal, j+wl.nbOriginal
	lbdI, lbdJ := wl.clauses[idxI].lbd(), wl.clauses[idxJ].lbd()
	return lbdI > lbdJ || (lbdI == lbdJ && wl.clauses[idxI].activity < wl.clauses[idxJ].activity)
}

func (wl *watcherList) Swap(i, j int) {
	idxI, idxJ := i+wl.nbOriginal, j+wl.nbOriginal
	wl.clauses[idxI], wl.clauses[idxJ] = wl.clauses[idxJ], wl.clauses[idxI]
}

// watchClause installs watches for c on its first two literals (or the
// dedicated binary-clause table, for len-2 clauses).
func (s *Solver) watchClause(c *Clause) {
	if c.Len() == 2 {
		first, second := c.First(), c.Second()
		neg0, neg1 := first.Negation(), second.Negation()
		s.wl.wlistBin[neg0] = append(s.wl.wlistBin[neg0], watcher{clause: c, other: second})
		s.wl.wlistBin[neg1] = append(s.wl.wlistBin[neg1], watcher{clause: c, other: first})
		return
	}
	for i := 0; i < 2; i++ {
		neg := c.Get(i).Negation()
		s.wl.wlist[neg] = append(s.wl.wlist[neg], c)
	}
}

// unwatchClause removes c from the (non-binary) watch tables. Only called
// on clauses with lbd() > 2, so c is guaranteed non-binary.
func (s *Solver) unwatchClause(c *Clause) {
	for i := 0; i < 2; i++ {
		neg := c.Get(i).Negation()
		lst := s.wl.wlist[neg]
		j := 0
		for lst[j] != c {
			j++
		}
		lst[j] = lst[len(lst)-1]
		s.wl.wlist[neg] = lst[:len(lst)-1]
	}
}

// reduceLearned sorts the registered clauses worst-first (highest LBD,
// then lowest activity) and, within the worse half, discards every clause
// that is neither locked as a trail reason nor of LBD 2 or less. Clauses
// whose LBD was never computed (input and theory clauses) carry LBD 0 and
// are never discarded.
func (s *Solver) reduceLearned() {
	sort.Sort(&s.wl)
	length := s.wl.nbLearned / 2
	if s.wl.clauses[s.wl.nbOriginal+length].lbd() <= 3 {
		s.postponeNbMax()
	}
	nbRemoved := 0
	for i := 0; i < length; i++ {
		idx := i + s.wl.nbOriginal
		c := s.wl.clauses[idx]
		if c.lbd() <= 2 || c.isLocked() {
			continue
		}
		nbRemoved++
		s.Stats.NbDeleted++
		s.wl.clauses[idx] = s.wl.clauses[len(s.wl.clauses)-nbRemoved]
		s.unwatchClause(c)
	}
	s.wl.clauses = s.wl.clauses[:len(s.wl.clauses)-nbRemoved]
	s.wl.nbLearned -= nbRemoved
}

// addClause registers a clause (input, learned or theory) with the watch
// tables and bumps its activity (a no-op for input clauses).
func (s *Solver) addClause(c *Clause) {
	s.wl.nbLearned++
	s.wl.clauses = append(s.wl.clauses, c)
	s.watchClause(c)
	s.clauseBumpActivity(c)
}

func lvlToSignedLvl(l Lit, lvl Level) signedLevel { return l.atLevel(lvl) }

func removeFrom(lst []*Clause, c *Clause) []*Clause {
	i := 0
	for lst[i] != c {
		i++
	}
	last := len(lst) - 1
	lst[i] = lst[last]
	return lst[:last]
}

// enqueue assigns lit at lvl with the given reason, appends it to the
// trail, and notifies the theory via OnAssume.
func (s *Solver) enqueue(lit Lit, lvl Level, reason *Clause, explain func() *Clause) {
	v := lit.Var()
	s.assignment[v] = lvlToSignedLvl(lit, lvl)
	s.reason[v] = reason
	s.reasonExplain[v] = explain
	if reason != nil {
		reason.lock()
	}
	s.trail = append(s.trail, lit)
	s.theory.OnAssume(s, lit)
}

// unifyLiteral binds lit at lvl and propagates to fixpoint, returning the
// conflict clause if one was found, or nil otherwise.
func (s *Solver) unifyLiteral(lit Lit, lvl Level) *Clause {
	ptr := len(s.trail)
	s.enqueue(lit, lvl, nil, nil)
	for ptr < len(s.trail) {
		cur := s.trail[ptr]
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
			case Sat, Many:
				// Nothing to propagate; watches were updated in place if Many.
			}
		}
		ptr++
	}
	return nil
}

// simplifyClause re-establishes clause's watch invariant given the newest
// assignment and reports Sat, Unsat, Many (still 2+ live watches), or Unit
// together with the single remaining unassigned literal.
func (s *Solver) simplifyClause(clause *Clause) (Status, Lit) {
	var freeIdx int
	found := false
	length := clause.Len()
	for i := 0; i < length; i++ {
		lit := clause.Get(i)
		if assign := s.assignment[lit.Var()]; assign == 0 {
			if found {
				switch freeIdx {
				case 0:
					n1 := &s.wl.wlist[clause.Second().Negation()]
					nf1 := &s.wl.wlist[clause.Get(i).Negation()]
					clause.swap(i, 1)
					*n1 = removeFrom(*n1, clause)
					*nf1 = append(*nf1, clause)
				case 1:
					n0 := &s.wl.wlist[clause.First().Negation()]
					nf1 := &s.wl.wlist[clause.Get(i).Negation()]
					clause.swap(i, 0)
					*n0 = removeFrom(*n0, clause)
					*nf1 = append(*nf1, clause)
				default:
					n0 := &s.wl.wlist[clause.First().Negation()]
					n1 := &s.wl.wlist[clause.Second().Negation()]
					nf0 := &s.wl.wlist[clause.Get(freeIdx).Negation()]
					nf1 := &s.wl.wlist[clause.Get(i).Negation()]
					clause.swap(freeIdx, 0)
					clause.swap(i, 1)
					*n0 = removeFrom(*n0, clause)
					*n1 = removeFrom(*n1, clause)
					*nf0 = append(*nf0, clause)
					*nf1 = append(*nf1, clause)
				}
				return Many, -1
			}
			freeIdx = i
			found = true
		} else if (assign > 0) == lit.IsPositive() {
			return Sat, -1
		}
	}
	if !found {
		return Unsat, -1
	}
	return Unit, clause.Get(freeIdx)
}
