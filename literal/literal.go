// Package literal implements the signed-atom layer over term.Term: a
// Literal is a (term, sign) pair under a canonical-sign rule, the same
// positive/negative split gophersat's solver.Lit applies to bare
// variables, generalized here to arbitrary boolean-typed terms.
package literal

import "github.com/crillab/gophersmt/term"

// Literal pairs a term with a sign. The invariant Canon (below)
// maintains is that Term is never itself a KindNot node: negation is
// folded into Sign instead, so Negation is a pure involution on Sign and
// equal atoms always compare equal regardless of how many times they
// were negated.
type Literal struct {
	Term *term.Term
	Sign bool // true: the literal holds when Term evaluates to true.
}

// Canon builds the canonical Literal for t with the given sign, folding
// away any leading KindNot wrapper.
func Canon(t *term.Term, sign bool) Literal {
	for t.Kind == term.KindNot {
		t = t.Args[0]
		sign = !sign
	}
	return Literal{Term: t, Sign: sign}
}

// Pos is the canonical positive literal for t.
func Pos(t *term.Term) Literal { return Canon(t, true) }

// Neg is the canonical negative literal for t.
func Neg(t *term.Term) Literal { return Canon(t, false) }

// Negation returns the negation of l. An involution: l.Negation().Negation() == l.
func (l Literal) Negation() Literal { return Literal{Term: l.Term, Sign: !l.Sign} }

// Abs forces l positive, discarding its sign.
func (l Literal) Abs() Literal { return Literal{Term: l.Term, Sign: true} }

// IsPositive reports l's sign.
func (l Literal) IsPositive() bool { return l.Sign }

func (l Literal) String() string {
	if l.Sign {
		return l.Term.String()
	}
	return "(not " + l.Term.String() + ")"
}
