package sat

import "sort"

// clauseSorter sorts a learned clause's literals by decreasing decision
// level, so that lits[0] ends up at the current (conflict) level and
// lits[1] at the second-highest level below it — exactly the two literals
// that need to become the new watches.
type clauseSorter struct {
	lits       []Lit
	assignment assignment
}

func (cs *clauseSorter) Len() int { return len(cs.lits) }
func (cs *clauseSorter) Less(i, j int) bool {
	return absLevel(cs.assignment[cs.lits[i].Var()]) > absLevel(cs.assignment[cs.lits[j].Var()])
}
func (cs *clauseSorter) Swap(i, j int) { cs.lits[i], cs.lits[j] = cs.lits[j], cs.lits[i] }

func sortLiterals(lits []Lit, m assignment) {
	sort.Sort(&clauseSorter{lits, m})
}
