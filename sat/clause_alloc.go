package sat

// This file implements a small bump allocator for clause literal slices.
// Lots of short learned clauses are created (and sometimes later deleted)
// during search; pooling their backing arrays relaxes the GC's work.

const (
	nbLitsAlloc = 5000000 // How many literals are preallocated at once.
)

type allocator struct {
	lits    []Lit // A pool of lits, sliced out to callers.
	ptrFree int   // Index of the first free item in lits.
}

var alloc allocator

// newLits returns a slice containing the given literals, taken from the
// preallocated pool when there's room, or freshly allocated otherwise.
func (a *allocator) newLits(lits ...Lit) []Lit {
	if a.ptrFree+len(lits) > len(a.lits) {
		a.lits = make([]Lit, nbLitsAlloc)
		copy(a.lits, lits)
		a.ptrFree = len(lits)
		return a.lits[:len(lits)]
	}
	copy(a.lits[a.ptrFree:], lits)
	a.ptrFree += len(lits)
	return a.lits[a.ptrFree-len(lits) : a.ptrFree]
}
