package term

import (
	"fmt"

	"github.com/pkg/errors"
)

// Store owns every Term and Type ever built and is the sole authority on
// their identity: two calls that would build structurally equal terms
// return the exact same *Term, the hash-consing discipline gophersat
// applies to Var/Lit numbering, generalized to a first-order signature.
type Store struct {
	terms    map[string]*Term
	nextTerm ID

	types    map[string]*Type
	nextType int32
}

// NewStore returns an empty store seeded with the builtin Bool type.
func NewStore() *Store {
	s := &Store{
		terms:    make(map[string]*Term),
		types:    map[string]*Type{"Bool": BoolType},
		nextType: 1,
	}
	return s
}

// UninterpretedType interns a fresh opaque sort by name.
func (s *Store) UninterpretedType(name string) *Type {
	if t, ok := s.types[name]; ok {
		return t
	}
	t := &Type{ID: s.nextType, Name: name, Kind: TypeUninterpreted}
	s.nextType++
	s.types[name] = t
	return t
}

// DeclareDatatype forward-declares an algebraic datatype with no
// constructors yet, so a constructor built afterwards can reference the
// datatype itself (direct recursion, e.g. `cons(head: Int, tail: List)`).
// Call FinalizeDatatype once every constructor is built.
func (s *Store) DeclareDatatype(name string) (*Type, error) {
	if _, ok := s.types[name]; ok {
		return nil, errors.Errorf("term: type %q already declared", name)
	}
	t := &Type{ID: s.nextType, Name: name, Kind: TypeDatatype}
	s.nextType++
	s.types[name] = t
	return t, nil
}

// FinalizeDatatype attaches cstors to t (previously returned by
// DeclareDatatype), setting each constructor's Recursive flag (true if
// any of its argument types is t itself).
func (s *Store) FinalizeDatatype(t *Type, cstors []*Constructor) error {
	if t.Kind != TypeDatatype || t.Constructors != nil {
		return errors.Errorf("term: %q is not a freshly declared datatype", t.Name)
	}
	for _, c := range cstors {
		if len(c.Selectors) != len(c.ArgTypes) {
			return errors.Errorf("term: constructor %q has %d selectors but %d argument types", c.Name, len(c.Selectors), len(c.ArgTypes))
		}
		for _, at := range c.ArgTypes {
			if at == t {
				c.Recursive = true
			}
		}
	}
	t.Constructors = cstors
	return nil
}

// DatatypeType is a convenience for non-recursive datatypes: it declares
// and finalizes t in one call.
func (s *Store) DatatypeType(name string, cstors []*Constructor) (*Type, error) {
	t, err := s.DeclareDatatype(name)
	if err != nil {
		return nil, err
	}
	if err := s.FinalizeDatatype(t, cstors); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) intern(key string, build func(id ID) *Term) *Term {
	if t, ok := s.terms[key]; ok {
		return t
	}
	t := build(s.nextTerm)
	s.nextTerm++
	s.terms[key] = t
	return t
}

// Const interns a fresh (or existing) 0-arity symbol of the given type.
func (s *Store) Const(sym string, typ *Type) *Term {
	key := fmt.Sprintf("c:%s:%d", sym, typ.ID)
	return s.intern(key, func(id ID) *Term {
		return &Term{ID: id, Kind: KindConst, Type: typ, Sym: sym, Name: sym}
	})
}

// True and False are the two reserved boolean constants, interned like
// any other Const but recognized by Term.BoolValue for constant folding.
func (s *Store) True() *Term  { return s.Const("true", BoolType) }
func (s *Store) False() *Term { return s.Const("false", BoolType) }

// App interns the application of sym to args, with result type resTyp.
// The store does not itself check a function-symbol signature is used
// consistently across calls; callers (the theory layer) own that.
func (s *Store) App(sym string, resTyp *Type, args ...*Term) *Term {
	key := fmt.Sprintf("a:%s:%d:%s", sym, resTyp.ID, argKey(args))
	return s.intern(key, func(id ID) *Term {
		return &Term{ID: id, Kind: KindApp, Type: resTyp, Sym: sym, Args: append([]*Term(nil), args...)}
	})
}

// Eq interns the equality of a and b, ordering the pair canonically by
// ID so `Eq(a,b)` and `Eq(b,a)` intern to the same term, matching the
// canonical-sign rule the literal package's Literal type relies on.
func (s *Store) Eq(a, b *Term) *Term {
	if a.ID > b.ID {
		a, b = b, a
	}
	key := fmt.Sprintf("=:%d:%d", a.ID, b.ID)
	return s.intern(key, func(id ID) *Term {
		return &Term{ID: id, Kind: KindEq, Type: BoolType, Args: []*Term{a, b}}
	})
}

// Not interns the negation of t.
func (s *Store) Not(t *Term) *Term {
	key := fmt.Sprintf("!:%d", t.ID)
	return s.intern(key, func(id ID) *Term {
		return &Term{ID: id, Kind: KindNot, Type: BoolType, Args: []*Term{t}}
	})
}

// And interns the conjunction of args (at least 2).
func (s *Store) And(args ...*Term) *Term {
	key := "&:" + argKey(args)
	return s.intern(key, func(id ID) *Term {
		return &Term{ID: id, Kind: KindAnd, Type: BoolType, Args: append([]*Term(nil), args...)}
	})
}

// Or interns the disjunction of args (at least 2).
func (s *Store) Or(args ...*Term) *Term {
	key := "|:" + argKey(args)
	return s.intern(key, func(id ID) *Term {
		return &Term{ID: id, Kind: KindOr, Type: BoolType, Args: append([]*Term(nil), args...)}
	})
}

func argKey(args []*Term) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", a.ID)
	}
	return s
}

// NbTerms returns how many distinct terms have been interned.
func (s *Store) NbTerms() int { return len(s.terms) }
