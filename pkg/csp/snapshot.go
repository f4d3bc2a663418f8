package csp

import "cmp"

// snapshot is a deep copy of every currently-unassigned variable's domain,
// keyed by variable, other than the one variable the caller is about to
// branch on. LoadState is the exact inverse of SaveState provided the set
// of assigned variables hasn't changed between the two calls.
type snapshot[V cmp.Ordered] map[*Variable[V]]*orderedSet[V]

// SaveState captures the domains of every unassigned variable other than
// except.
func (g *ConstraintGraph[V]) SaveState(except *Variable[V]) snapshot[V] {
	s := make(snapshot[V], len(g.variables))
	for _, v := range g.variables {
		if v == except || v.IsAssigned() {
			continue
		}
		s[v] = v.snapshot()
	}
	return s
}

// LoadState replaces each variable's domain with its previously captured copy.
func (g *ConstraintGraph[V]) LoadState(s snapshot[V]) {
	for v, dom := range s {
		v.restore(dom)
	}
}
