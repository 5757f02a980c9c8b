// Package theory implements the framework that sits between the SAT
// core and the congruence closure engine: it fans sat.Theory's
// assume/check/push/pop callbacks out to the CC store and to every
// registered Plugin, and translates between sat.Lit and term-level
// literal.Literal via a literal.Registry, lifting the SAT-theory
// interaction loop from raw booleans to first-order atoms.
package theory

import (
	"github.com/crillab/gophersmt/cc"
	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/sat"
)

// Conflict is a theory-raised conflict: a set of currently-true literals
// whose conjunction is unsatisfiable. The SAT core wants its negation as
// a clause; toClause performs that translation.
type Conflict = cc.Conflict

// Plugin is a first-order theory client of the Framework: the datatype
// theory is the one concrete Plugin this module builds out; uninterpreted
// functions need no Plugin at all (the Framework's own CC wiring already
// gives them congruence closure), and linear arithmetic would be another
// Plugin slot, left unimplemented here.
type Plugin interface {
	// Name identifies the plugin for logging and registration order.
	Name() string

	// Register is called once, at attachment time, so the plugin can
	// subscribe to cc.Store hooks (OnNewTerm, OnPreMerge, OnMerge).
	Register(fw *Framework)

	// OnAssume, PartialCheck, FinalCheck, PushLevel, and PopLevels mirror
	// sat.Theory's callbacks one-for-one, lifted to literal.Literal. engine
	// is the same sat.TheoryEngine the Framework itself was handed, so a
	// plugin can allocate fresh SAT variables (case-split atoms) or add
	// clauses directly.
	OnAssume(fw *Framework, engine sat.TheoryEngine, lit literal.Literal)
	PartialCheck(fw *Framework, engine sat.TheoryEngine) *Conflict
	FinalCheck(fw *Framework, engine sat.TheoryEngine) *Conflict
	PushLevel()
	PopLevels(n int)
}
