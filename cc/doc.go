/*
Package cc implements congruence closure: a union-find over e-nodes
(one per interned term.Term) that additionally maintains a signature
table for automatic congruence discovery and a proof forest for
generating explanations, all backtracked through internal/journal.

A Store starts empty; terms are added with AddTerm (recursively adding
their subterms), and asserted equal with Merge:

    j := journal.New()
    s := cc.NewStore(j)
    s.AddTerm(a)
    s.AddTerm(b)
    j.Push()
    if conflict := s.Merge(a.ID, b.ID, &cc.Explanation{Kind: cc.ExplLit, Lit: eqLit}); conflict != nil {
        // a theory vetoed the merge; conflict.Lits is the reason.
    }

Find(n) returns the current representative of n's class; Same(a, b)
reports whether two e-nodes are currently unified; Explain(a, b) returns
the currently-true literals labelling the proof-forest path between them,
whose conjunction implies the equality, expanding congruence and theory
edges recursively. The result is not minimized.

Theories observe and veto merges via OnNewTerm, OnPreMerge, and OnMerge
hooks, registered once at construction (see the theory and datatype
packages): OnPreMerge fires before the union-find state changes and can
return a *Conflict to abort the merge, which propagates up through Merge
so the caller can hand it to the SAT core; OnMerge fires immediately
after.
*/
package cc
