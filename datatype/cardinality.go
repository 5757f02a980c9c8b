package datatype

import "github.com/crillab/gophersmt/term"

// cardinalities computes, for every type reachable from types (closed
// over argument types), whether it has finitely many ground terms: a
// least fixpoint starting from "every datatype is infinite" and
// repeatedly promoting a type to finite once every constructor's
// argument types are finite. A directly or indirectly self-referential
// datatype can never be promoted (one of its own argument types is
// always seeded/left infinite), so it stays infinite, matching the usual
// "a recursive algebraic datatype has unboundedly many terms" reading.
func cardinalities(types []*term.Type) map[*term.Type]bool {
	types = append([]*term.Type(nil), types...)
	seen := make(map[*term.Type]bool, len(types))
	for _, t := range types {
		seen[t] = true
	}
	for i := 0; i < len(types); i++ {
		for _, c := range types[i].Constructors {
			for _, at := range c.ArgTypes {
				if !seen[at] {
					seen[at] = true
					types = append(types, at)
				}
			}
		}
	}
	finite := make(map[*term.Type]bool, len(types))
	for _, t := range types {
		switch t.Kind {
		case term.TypeBool:
			finite[t] = true
		case term.TypeUninterpreted:
			finite[t] = false
		case term.TypeDatatype:
			finite[t] = false
		}
	}
	for changed := true; changed; {
		changed = false
		for _, t := range types {
			if t.Kind != term.TypeDatatype || finite[t] {
				continue
			}
			if allConstructorsFinite(t, finite) {
				finite[t] = true
				changed = true
			}
		}
	}
	return finite
}

func allConstructorsFinite(t *term.Type, finite map[*term.Type]bool) bool {
	for _, c := range t.Constructors {
		for _, at := range c.ArgTypes {
			if !finite[at] {
				return false
			}
		}
	}
	return true
}

// baseConstructors selects, for every datatype in types, the constructor
// model completion should use to synthesize a value for a class that
// never got a case-split: prefer one whose arguments are all finite,
// else any constructor that isn't directly self-referential, else (a
// degenerate datatype with only directly-recursive constructors) the
// first constructor, since there is no better answer.
func baseConstructors(types []*term.Type, finite map[*term.Type]bool) map[*term.Type]*term.Constructor {
	base := make(map[*term.Type]*term.Constructor, len(types))
	for _, t := range types {
		if t.Kind != term.TypeDatatype || len(t.Constructors) == 0 {
			continue
		}
		var nonRecursive *term.Constructor
		for _, c := range t.Constructors {
			if finiteArgs(c, finite) {
				base[t] = c
				break
			}
			if !c.Recursive && nonRecursive == nil {
				nonRecursive = c
			}
		}
		if base[t] != nil {
			continue
		}
		if nonRecursive != nil {
			base[t] = nonRecursive
			continue
		}
		base[t] = t.Constructors[0]
	}
	return base
}

func finiteArgs(c *term.Constructor, finite map[*term.Type]bool) bool {
	for _, at := range c.ArgTypes {
		if !finite[at] {
			return false
		}
	}
	return true
}
