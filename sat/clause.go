package sat

import "fmt"

// Origin tags where a clause came from, so statistics and the proof
// tracer can distinguish CDCL-learned clauses from ones a theory handed
// back as a conflict explanation.
type Origin byte

const (
	// OriginInput means the clause was part of the original problem.
	OriginInput Origin = iota
	// OriginLearned means the clause was derived by conflict analysis.
	OriginLearned
	// OriginTheory means the clause was handed back by a Theory as a
	// conflict explanation; conflict analysis treats it exactly like a
	// clause discovered by ordinary propagation.
	OriginTheory
)

// A Clause is a non-empty, ordered, distinct-literal disjunction. The two
// head positions (0 and 1) are, by convention, its watched literals.
type Clause struct {
	lits []Lit
	// header packs: leftmost bit = locked flag; next 6 bits = origin;
	// remaining 25 bits = LBD value. Locked clauses are currently used as
	// a trail reason and must not be deleted by reduction.
	header   uint32
	activity float32
	proofID  int64 // proof-step id, or 0 if proofs are disabled
}

const (
	lockedMask uint32 = 1 << 31
	originMask uint32 = 0x3F << 25
	lbdMask    uint32 = (1 << 25) - 1
)

// NewClause returns an input clause over the given literals.
func NewClause(lits []Lit) *Clause {
	return &Clause{lits: lits, header: uint32(OriginInput) << 25}
}

// NewLearnedClause returns a clause marked as CDCL-learned.
func NewLearnedClause(lits []Lit) *Clause {
	return &Clause{lits: lits, header: uint32(OriginLearned) << 25}
}

// NewTheoryClause returns a clause marked as theory-originated (a theory
// conflict, lifted to a boolean clause for conflict analysis).
func NewTheoryClause(lits []Lit) *Clause {
	return &Clause{lits: lits, header: uint32(OriginTheory) << 25}
}

// Origin reports where the clause came from.
func (c *Clause) Origin() Origin {
	return Origin((c.header & originMask) >> 25)
}

// Learned is true for clauses that were not part of the original input
// (CDCL-learned or theory-originated), i.e. clauses reduction is allowed
// to delete once they are not locked.
func (c *Clause) Learned() bool {
	return c.Origin() != OriginInput
}

func (c *Clause) lock()          { c.header |= lockedMask }
func (c *Clause) unlock()        { c.header &^= lockedMask }
func (c *Clause) isLocked() bool { return c.header&lockedMask != 0 }

func (c *Clause) lbd() int         { return int(c.header & lbdMask) }
func (c *Clause) setLbd(lbd int)   { c.header = (c.header &^ lbdMask) | (uint32(lbd) & lbdMask) }
func (c *Clause) incLbd()          { c.setLbd(c.lbd() + 1) }

// ProofID returns the proof-step id that introduced this clause, or 0 if
// no proof tracer is attached.
func (c *Clause) ProofID() int64     { return c.proofID }
func (c *Clause) SetProofID(id int64) { c.proofID = id }

// Len returns the number of lits in the clause.
func (c *Clause) Len() int { return len(c.lits) }

// First returns the first (watched) lit.
func (c *Clause) First() Lit { return c.lits[0] }

// Second returns the second (watched) lit.
func (c *Clause) Second() Lit { return c.lits[1] }

// Get returns the ith literal.
func (c *Clause) Get(i int) Lit { return c.lits[i] }

// Set sets the ith literal.
func (c *Clause) Set(i int, l Lit) { c.lits[i] = l }

func (c *Clause) swap(i, j int) { c.lits[i], c.lits[j] = c.lits[j], c.lits[i] }

// Lits returns the clause's literals. Callers must not mutate the slice.
func (c *Clause) Lits() []Lit { return c.lits }

// CNF returns a DIMACS CNF representation of the clause.
func (c *Clause) CNF() string {
	res := ""
	for _, lit := range c.lits {
		res += fmt.Sprintf("%d ", lit.Int())
	}
	return fmt.Sprintf("%s0", res)
}

func (c *Clause) String() string {
	res := "["
	for i, l := range c.lits {
		if i > 0 {
			res += ", "
		}
		res += fmt.Sprintf("%d", l.Int())
	}
	return res + "]"
}
