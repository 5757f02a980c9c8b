package term

// TypeKind discriminates a type's shape.
type TypeKind byte

const (
	// TypeBool is the single boolean sort.
	TypeBool TypeKind = iota
	// TypeUninterpreted is an opaque sort with no constructors: any two
	// ground terms of this sort may or may not be equal, decided only by
	// congruence closure and explicit (dis)equalities.
	TypeUninterpreted
	// TypeDatatype is an algebraic datatype: a closed set of constructors,
	// each with named, typed selectors.
	TypeDatatype
)

// Constructor is one alternative of a datatype: a name, and for each
// argument a selector name and type.
type Constructor struct {
	Name      string
	Selectors []string
	ArgTypes  []*Type
	// Recursive is true if any ArgType is the datatype itself, directly
	// (not through another datatype) — used by the cardinality oracle's
	// direct-recursion cut and by base-constructor selection.
	Recursive bool
}

// Type is a hash-consed sort.
type Type struct {
	ID           int32
	Name         string
	Kind         TypeKind
	Constructors []*Constructor // non-nil only for TypeDatatype
}

// BoolType is the single, shared boolean type.
var BoolType = &Type{ID: 0, Name: "Bool", Kind: TypeBool}

// Constructor looks up a datatype's constructor by name, or returns nil.
func (t *Type) Constructor(name string) *Constructor {
	for _, c := range t.Constructors {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Selector looks up the (constructor, index) pair for a selector name
// across t's constructors.
func (t *Type) Selector(name string) (c *Constructor, idx int) {
	for _, c := range t.Constructors {
		for i, s := range c.Selectors {
			if s == name {
				return c, i
			}
		}
	}
	return nil, -1
}
