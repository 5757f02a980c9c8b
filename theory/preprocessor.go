package theory

import "github.com/crillab/gophersmt/term"

// Preprocessor runs once per asserted top-level term, before it reaches
// the CC store, the way gophersat's Problem.simplify runs unit
// propagation over the clause set before the CDCL core ever starts.
// It applies two rewrites: boolean constant folding, and single-
// constructor datatype unfolding.
type Preprocessor struct {
	store *term.Store
}

// NewPreprocessor returns a Preprocessor building any new terms it needs
// (selector applications, constructor applications) through store, so
// they hash-cons against everything else built through it.
func NewPreprocessor(store *term.Store) *Preprocessor {
	return &Preprocessor{store: store}
}

// Process rewrites t by folding boolean constants, and returns t
// alongside any side assertions single-constructor unfolding requires
// (equalities of the form t = C(sel_0(t), ..., sel_k(t))) that the
// caller must assert alongside t.
func (p *Preprocessor) Process(t *term.Term) (rewritten *term.Term, sideAssertions []*term.Term) {
	rewritten = p.fold(t)
	sideAssertions = p.unfoldSingleConstructor(rewritten, make(map[term.ID]bool))
	return rewritten, sideAssertions
}

// fold recursively folds and/or/not nodes whose arguments are, or reduce
// to, the reserved true/false constants.
func (p *Preprocessor) fold(t *term.Term) *term.Term {
	switch t.Kind {
	case term.KindNot:
		arg := p.fold(t.Args[0])
		if v, ok := arg.BoolValue(); ok {
			return p.boolConst(!v)
		}
		return p.store.Not(arg)
	case term.KindAnd:
		args := make([]*term.Term, 0, len(t.Args))
		for _, a := range t.Args {
			fa := p.fold(a)
			if v, ok := fa.BoolValue(); ok {
				if !v {
					return p.boolConst(false)
				}
				continue
			}
			args = append(args, fa)
		}
		if len(args) == 0 {
			return p.boolConst(true)
		}
		if len(args) == 1 {
			return args[0]
		}
		return p.store.And(args...)
	case term.KindOr:
		args := make([]*term.Term, 0, len(t.Args))
		for _, a := range t.Args {
			fa := p.fold(a)
			if v, ok := fa.BoolValue(); ok {
				if v {
					return p.boolConst(true)
				}
				continue
			}
			args = append(args, fa)
		}
		if len(args) == 0 {
			return p.boolConst(false)
		}
		if len(args) == 1 {
			return args[0]
		}
		return p.store.Or(args...)
	case term.KindEq:
		return p.store.Eq(p.fold(t.Args[0]), p.fold(t.Args[1]))
	default:
		return t
	}
}

func (p *Preprocessor) boolConst(v bool) *term.Term {
	if v {
		return p.store.True()
	}
	return p.store.False()
}

// unfoldSingleConstructor walks t's subterms (memoized by seen, since the
// same subterm can be reached through several paths in a hash-consed
// DAG) and, for every one whose type is a datatype with exactly one
// constructor, builds the side assertion `t = C(sel_0(t), ..., sel_k(t))`
// once, so the datatype plugin never needs to case-split a class it
// already knows has exactly one possible shape.
func (p *Preprocessor) unfoldSingleConstructor(t *term.Term, seen map[term.ID]bool) []*term.Term {
	if seen[t.ID] {
		return nil
	}
	seen[t.ID] = true
	var out []*term.Term
	if t.Type != nil && t.Type.Kind == term.TypeDatatype && len(t.Type.Constructors) == 1 {
		c := t.Type.Constructors[0]
		args := make([]*term.Term, len(c.Selectors))
		for i, sel := range c.Selectors {
			args[i] = p.store.App(sel, c.ArgTypes[i], t)
		}
		ctorApp := p.store.App(c.Name, t.Type, args...)
		out = append(out, p.store.Eq(t, ctorApp))
	}
	for _, a := range t.Args {
		out = append(out, p.unfoldSingleConstructor(a, seen)...)
	}
	return out
}
