package sat

// computeLbd sets c's LBD (Literal Block Distance): the number of
// distinct decision levels among its literals.
func (c *Clause) computeLbd(a assignment) {
	c.setLbd(1)
	curLvl := absLevel(a[c.Get(0).Var()])
	for i := 0; i < c.Len(); i++ {
		if lvl := absLevel(a[c.Get(i).Var()]); lvl != curLvl {
			curLvl = lvl
			c.incLbd()
		}
	}
}

// addClauseLits collects the literals of confl that are candidates for
// the learned clause, bumping their activity, and reports how many of
// them sit at the conflict level lvl.
func (s *Solver) addClauseLits(confl *Clause, lvl Level, met, metLvl []bool, lits *[]Lit) int {
	nbLvl := 0
	for i := 0; i < confl.Len(); i++ {
		l := confl.Get(i)
		v := l.Var()
		if s.litStatus(l) != Unsat {
			continue
		}
		met[v] = true
		s.varBumpActivity(v)
		if absLevel(s.assignment[v]) == lvl {
			metLvl[v] = true
			nbLvl++
		} else if absLevel(s.assignment[v]) != 1 {
			*lits = append(*lits, l)
		}
	}
	return nbLvl
}

var bufLits = make([]Lit, 10000) // Reused buffer to cut allocations in learnClause.

// learnClause runs First-UIP conflict analysis on confl (a clause falsified
// at level lvl) and returns either the learned clause (len >= 2) or a nil
// clause plus a unit literal to propagate at the root level.
func (s *Solver) learnClause(confl *Clause, lvl Level) (learned *Clause, unit Lit) {
	s.clauseBumpActivity(confl)
	lits := bufLits[:1]
	buf := make([]bool, s.nbVars*2)
	met := buf[:s.nbVars]
	metLvl := buf[s.nbVars:]
	nbLvl := s.addClauseLits(confl, lvl, met, metLvl, &lits)
	ptr := len(s.trail) - 1
	for nbLvl > 1 {
		for !metLvl[s.trail[ptr].Var()] {
			if absLevel(s.assignment[s.trail[ptr].Var()]) == lvl {
				met[s.trail[ptr].Var()] = true
			}
			ptr--
		}
		v := s.trail[ptr].Var()
		ptr--
		nbLvl--
		reason := s.reasonClause(v)
		if reason != nil {
			s.clauseBumpActivity(reason)
			for i := 0; i < reason.Len(); i++ {
				lit := reason.Get(i)
				if v2 := lit.Var(); !met[v2] {
					if s.litStatus(lit) != Unsat {
						continue
					}
					met[v2] = true
					s.varBumpActivity(v2)
					if absLevel(s.assignment[v2]) == lvl {
						metLvl[v2] = true
						nbLvl++
					} else if absLevel(s.assignment[v2]) != 1 {
						lits = append(lits, lit)
					}
				}
			}
		}
	}
	for _, l := range s.trail {
		if metLvl[l.Var()] {
			lits[0] = l.Negation()
			break
		}
	}
	s.varDecayActivity()
	s.clauseDecayActivity()
	sortLiterals(lits, s.assignment)
	sz := s.minimizeLearned(met, lits)
	if sz == 1 {
		return nil, lits[0]
	}
	learned = NewLearnedClause(alloc.newLits(lits[0:sz]...))
	learned.computeLbd(s.assignment)
	return learned, -1
}

// reasonClause materializes v's reason as a clause, resolving a lazy
// theory explanation on first use and caching the result so conflict
// analysis never re-invokes the same thunk twice.
func (s *Solver) reasonClause(v Var) *Clause {
	if s.reason[v] != nil {
		return s.reason[v]
	}
	if explain := s.reasonExplain[v]; explain != nil {
		c := explain()
		s.reason[v] = c
		s.reasonExplain[v] = nil
		return c
	}
	return nil
}

// minimizeLearned drops literals from learned whose whole reason clause is
// already implied by other met literals, and returns the new length.
func (s *Solver) minimizeLearned(met []bool, learned []Lit) int {
	sz := 1
	for i := 1; i < len(learned); i++ {
		reason := s.reasonClause(learned[i].Var())
		if reason == nil {
			learned[sz] = learned[i]
			sz++
			continue
		}
		for k := 0; k < reason.Len(); k++ {
			lit := reason.Get(k)
			if !met[lit.Var()] && absLevel(s.assignment[lit.Var()]) > 1 {
				learned[sz] = learned[i]
				sz++
				break
			}
		}
	}
	return sz
}
