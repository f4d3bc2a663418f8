// Package csp implements a finite-domain constraint satisfaction solver:
// named, discrete-domain Variables, a small family of built-in Constraint
// kinds plus a pluggable Satisfiable predicate, and a CSP search engine
// offering plain backtracking (DFS), forward checking (FC), and AC-3
// arc-consistency propagation. The engine is strictly single-threaded and
// synchronous; there is no cancellation primitive beyond what a caller
// wraps around a Solve* call.
package csp

import (
	"cmp"

	"github.com/gitrdm/gocsp/internal/tracelog"
)

// CSP drives backtracking search over a ConstraintGraph. It owns no domain
// state of its own beyond its counters and the AC-3 worklist: all mutation
// happens on Variables through the graph, via the snapshot/restore
// protocol for rollback.
type CSP[V cmp.Ordered] struct {
	graph *ConstraintGraph[V]
	trace *tracelog.Tracer

	solutionCounter      int
	recursiveCallCounter int
	iterationCounter     int
}

// Option configures a CSP at construction time.
type Option[V cmp.Ordered] func(*CSP[V])

// WithTracer attaches a tracelog.Tracer for structured step tracing. A nil
// tracer disables tracing entirely, as does the default, a Tracer with no
// logger.
func WithTracer[V cmp.Ordered](t *tracelog.Tracer) Option[V] {
	return func(c *CSP[V]) { c.trace = t }
}

// New builds a CSP over graph. graph should already have had PreProcess
// called on it; New does not call it implicitly, since repeated
// InsertConstraint calls may follow construction in some call patterns.
func New[V cmp.Ordered](graph *ConstraintGraph[V], opts ...Option[V]) *CSP[V] {
	c := &CSP[V]{graph: graph, trace: tracelog.New(nil)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SolutionCounter returns the number of complete satisfying assignments
// found so far. Only SolveFCCount increments it; SolveDFS, SolveFC and
// SolveARC leave it unchanged.
func (c *CSP[V]) SolutionCounter() int { return c.solutionCounter }

// RecursiveCallCounter returns the number of Solve* entries made so far.
func (c *CSP[V]) RecursiveCallCounter() int { return c.recursiveCallCounter }

// IterationCounter returns the number of candidate-value attempts made so far.
func (c *CSP[V]) IterationCounter() int { return c.iterationCounter }

// ResetCounters zeroes all three counters, for reuse of a CSP across
// independent top-level Solve* invocations.
func (c *CSP[V]) ResetCounters() {
	c.solutionCounter = 0
	c.recursiveCallCounter = 0
	c.iterationCounter = 0
}

// MinRemValue returns the unassigned variable with the smallest domain
// size (MRV). Ties are broken by insertion order, i.e. position in
// GetAllVariables. Behavior is unspecified if every variable is assigned;
// callers must check AllVariablesAssigned first.
func (c *CSP[V]) MinRemValue() *Variable[V] {
	var best *Variable[V]
	for _, v := range c.graph.GetAllVariables() {
		if v.IsAssigned() {
			continue
		}
		if best == nil || v.SizeDomain() < best.SizeDomain() {
			best = v
		}
	}
	return best
}

// MaxDegreeHeuristic returns the unassigned variable with the most
// unassigned neighbors, a secondary tie-breaking heuristic not used by the
// required Solve* algorithms but available for callers building their own
// ordering.
func (c *CSP[V]) MaxDegreeHeuristic() *Variable[V] {
	var best *Variable[V]
	bestDegree := -1
	for _, v := range c.graph.GetAllVariables() {
		if v.IsAssigned() {
			continue
		}
		degree := 0
		for _, n := range c.graph.GetNeighbors(v) {
			if !n.IsAssigned() {
				degree++
			}
		}
		if best == nil || degree > bestDegree {
			best = v
			bestDegree = degree
		}
	}
	return best
}

// AssignmentIsConsistent reports whether every active constraint incident
// to v is currently Satisfiable. It is not used by the engine itself
// during search; it exists for callers and tests that want to probe
// consistency directly.
func (c *CSP[V]) AssignmentIsConsistent(v *Variable[V]) bool {
	for _, con := range c.graph.GetConstraints(v) {
		if con.IsActive() && !con.Satisfiable() {
			return false
		}
	}
	return true
}

// incidentSatisfiable reports whether every constraint incident to v
// reports Satisfiable, regardless of active state. This is the check
// SolveDFS performs after assigning v: only constraints touching the
// freshly assigned variable are re-examined. SolveFC and SolveARC do not
// call it; they prune through forwardCheck and CheckArcConsistency.
func incidentSatisfiable[V cmp.Ordered](g *ConstraintGraph[V], v *Variable[V]) bool {
	for _, con := range g.GetConstraints(v) {
		if !con.Satisfiable() {
			return false
		}
	}
	return true
}

// SolveDFS performs plain chronological backtracking: no domain pruning,
// so no snapshotting is needed. level is unused by the algorithm itself
// beyond being threaded through recursive calls, matching the reference
// signature.
func (c *CSP[V]) SolveDFS(level int) bool {
	c.recursiveCallCounter++
	if c.graph.AllVariablesAssigned() {
		return true
	}
	x := c.MinRemValue()
	c.trace.VariableSelected(x.Name(), x.SizeDomain())
	for _, d := range x.Domain() {
		c.iterationCounter++
		x.Assign(d)
		if incidentSatisfiable(c.graph, x) {
			if c.SolveDFS(level + 1) {
				return true
			}
		}
		_ = x.Unassign()
		c.trace.Backtrack(x.Name(), d)
	}
	return false
}

// SolveFC performs backtracking with forward checking: after assigning x,
// prunes the domains of x's unassigned neighbors down to values still
// individually consistent with x's new value, abandoning the value
// immediately if any neighbor's domain becomes empty.
func (c *CSP[V]) SolveFC(level int) bool {
	c.recursiveCallCounter++
	if c.graph.AllVariablesAssigned() {
		return true
	}
	x := c.MinRemValue()
	c.trace.VariableSelected(x.Name(), x.SizeDomain())

	snap := c.graph.SaveState(x)
	for _, d := range x.Domain() {
		c.iterationCounter++
		x.Assign(d)

		if c.forwardCheck(x) {
			if c.SolveFC(level + 1) {
				return true
			}
		}

		_ = x.Unassign()
		c.graph.LoadState(snap)
		c.trace.Backtrack(x.Name(), d)
	}
	return false
}

// forwardCheck prunes the domains of x's unassigned neighbors to values
// consistent with x's current assignment. It returns false (meaning:
// abandon this value of x) if any neighbor's domain becomes empty.
func (c *CSP[V]) forwardCheck(x *Variable[V]) bool {
	for _, y := range c.graph.GetNeighbors(x) {
		if y.IsAssigned() {
			continue
		}
		for _, e := range append([]V(nil), y.Domain()...) {
			y.Assign(e)
			for _, con := range c.graph.GetConnectingConstraints(x, y) {
				if !con.Satisfiable() {
					_ = y.RemoveValue(e)
					c.trace.ValuePruned(y.Name(), e, "forward_check")
					break
				}
			}
			_ = y.Unassign()
		}
		if y.IsImpossible() {
			return false
		}
	}
	return true
}

// SolveARC performs backtracking with AC-3 arc-consistency propagation in
// place of FC's simple neighborhood scan.
func (c *CSP[V]) SolveARC(level int) bool {
	c.recursiveCallCounter++
	if c.graph.AllVariablesAssigned() {
		return true
	}
	x := c.MinRemValue()
	c.trace.VariableSelected(x.Name(), x.SizeDomain())

	snap := c.graph.SaveState(x)
	for _, d := range x.Domain() {
		c.iterationCounter++
		x.Assign(d)

		if c.CheckArcConsistency(x) {
			if c.SolveARC(level + 1) {
				return true
			}
		}

		_ = x.Unassign()
		c.graph.LoadState(snap)
		c.trace.Backtrack(x.Name(), d)
	}
	return false
}

// SolveFCCount runs forward checking without returning on the first
// success: it continues exploring every branch, incrementing
// SolutionCounter on each complete assignment it reaches, and returns true
// iff at least one was found.
func (c *CSP[V]) SolveFCCount(level int) bool {
	c.recursiveCallCounter++
	if c.graph.AllVariablesAssigned() {
		c.solutionCounter++
		return true
	}
	x := c.MinRemValue()
	c.trace.VariableSelected(x.Name(), x.SizeDomain())

	snap := c.graph.SaveState(x)
	found := false
	for _, d := range x.Domain() {
		c.iterationCounter++
		x.Assign(d)

		if c.forwardCheck(x) {
			if c.SolveFCCount(level + 1) {
				found = true
			}
		}

		_ = x.Unassign()
		c.graph.LoadState(snap)
		c.trace.Backtrack(x.Name(), d)
	}
	return found
}
