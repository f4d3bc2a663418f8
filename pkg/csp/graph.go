package csp

import (
	"cmp"
	"fmt"

	"github.com/gitrdm/gocsp/pkg/csp/csperr"
	"github.com/kr/pretty"
)

// arcKey identifies an ordered pair of variables for the connecting index.
type arcKey[V cmp.Ordered] struct {
	x, y *Variable[V]
}

// ConstraintGraph owns constraints (cloned on insertion) and borrows
// variables (the caller retains ownership). PreProcess materializes, from
// the incident lists built at insertion, the derived adjacency indices the
// engine's hot loops need in O(1): neighbors and connecting.
type ConstraintGraph[V cmp.Ordered] struct {
	variables   []*Variable[V]
	nameIndex   map[string]*Variable[V]
	nextID      int
	constraints []Constraint[V]
	incident    map[*Variable[V]][]Constraint[V]
	neighbors   map[*Variable[V]]map[*Variable[V]]struct{}
	connecting  map[arcKey[V]]map[Constraint[V]]struct{}
}

// NewConstraintGraph creates an empty graph.
func NewConstraintGraph[V cmp.Ordered]() *ConstraintGraph[V] {
	return &ConstraintGraph[V]{
		nameIndex:  make(map[string]*Variable[V]),
		incident:   make(map[*Variable[V]][]Constraint[V]),
		neighbors:  make(map[*Variable[V]]map[*Variable[V]]struct{}),
		connecting: make(map[arcKey[V]]map[Constraint[V]]struct{}),
	}
}

// InsertVariable registers v, assigning it the next per-graph id. It
// returns csperr.ErrDuplicateName if a variable with v's name is already
// registered.
func (g *ConstraintGraph[V]) InsertVariable(v *Variable[V]) error {
	if _, dup := g.nameIndex[v.name]; dup {
		return fmt.Errorf("ConstraintGraph.InsertVariable(%s): %w", v.name, csperr.ErrDuplicateName)
	}
	g.nextID++
	v.id = g.nextID
	g.variables = append(g.variables, v)
	g.nameIndex[v.name] = v
	g.incident[v] = nil
	return nil
}

// InsertConstraint deep-clones c, resolves every variable the clone
// references against the graph's name index, and on success stores the
// clone, appending it to each referenced variable's incident list.
//
// If the clone references a variable this graph has never seen,
// InsertConstraint returns csperr.ErrUnknownVariable and leaves the graph
// unchanged: the clone is discarded before any mutation is committed.
func (g *ConstraintGraph[V]) InsertConstraint(c Constraint[V]) error {
	clone := c.Clone()
	for _, v := range clone.Vars() {
		if g.nameIndex[v.name] != v {
			return fmt.Errorf("ConstraintGraph.InsertConstraint: variable %q: %w", v.name, csperr.ErrUnknownVariable)
		}
	}
	g.constraints = append(g.constraints, clone)
	for _, v := range clone.Vars() {
		g.incident[v] = append(g.incident[v], clone)
	}
	return nil
}

// PreProcess rebuilds neighbors and connecting from incident. It is
// idempotent: calling it again after further InsertConstraint calls simply
// recomputes both indices from scratch.
func (g *ConstraintGraph[V]) PreProcess() {
	g.neighbors = make(map[*Variable[V]]map[*Variable[V]]struct{}, len(g.variables))
	g.connecting = make(map[arcKey[V]]map[Constraint[V]]struct{})
	for _, v := range g.variables {
		g.neighbors[v] = make(map[*Variable[V]]struct{})
	}
	for _, v := range g.variables {
		for _, c := range g.incident[v] {
			for _, w := range c.Vars() {
				if w == v {
					continue
				}
				g.neighbors[v][w] = struct{}{}
				key := arcKey[V]{v, w}
				if g.connecting[key] == nil {
					g.connecting[key] = make(map[Constraint[V]]struct{})
				}
				g.connecting[key][c] = struct{}{}
			}
		}
	}
}

// GetNeighbors returns the variables sharing at least one constraint with v.
func (g *ConstraintGraph[V]) GetNeighbors(v *Variable[V]) []*Variable[V] {
	out := make([]*Variable[V], 0, len(g.neighbors[v]))
	for w := range g.neighbors[v] {
		out = append(out, w)
	}
	return out
}

// GetConstraints returns the constraints incident to v, in insertion order.
func (g *ConstraintGraph[V]) GetConstraints(v *Variable[V]) []Constraint[V] {
	return g.incident[v]
}

// GetConnectingConstraints returns the constraints whose variable list
// contains both x and y.
func (g *ConstraintGraph[V]) GetConnectingConstraints(x, y *Variable[V]) []Constraint[V] {
	set := g.connecting[arcKey[V]{x, y}]
	out := make([]Constraint[V], 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// GetAllVariables returns every variable in insertion order.
func (g *ConstraintGraph[V]) GetAllVariables() []*Variable[V] {
	return g.variables
}

// AllVariablesAssigned reports whether every variable in the graph is assigned.
func (g *ConstraintGraph[V]) AllVariablesAssigned() bool {
	for _, v := range g.variables {
		if !v.IsAssigned() {
			return false
		}
	}
	return true
}

// CheckActivity calls SetActive on every constraint in the graph.
func (g *ConstraintGraph[V]) CheckActivity() {
	for _, c := range g.constraints {
		c.SetActive()
	}
}

// Constraints returns every constraint owned by the graph, in insertion order.
func (g *ConstraintGraph[V]) Constraints() []Constraint[V] {
	return g.constraints
}

// String renders the graph's variables and constraints for debugging.
func (g *ConstraintGraph[V]) String() string {
	var b []byte
	b = append(b, "ConstraintGraph{\n"...)
	for _, v := range g.variables {
		b = append(b, "  "...)
		b = append(b, v.String()...)
		b = append(b, '\n')
	}
	for _, c := range g.constraints {
		b = append(b, "  "...)
		b = append(b, c.String()...)
		b = append(b, '\n')
	}
	b = append(b, '}')
	return string(b)
}

// Dump returns a verbose, field-level rendering of the graph's adjacency
// indices, for interactive debugging of larger problems where String's
// summary is too coarse.
func (g *ConstraintGraph[V]) Dump() string {
	return fmt.Sprintf("%# v", pretty.Formatter(struct {
		Variables  int
		Constraints int
		Neighbors  map[string][]string
		Connecting int
	}{
		Variables:   len(g.variables),
		Constraints: len(g.constraints),
		Neighbors:   g.neighborNames(),
		Connecting:  len(g.connecting),
	}))
}

func (g *ConstraintGraph[V]) neighborNames() map[string][]string {
	out := make(map[string][]string, len(g.neighbors))
	for v, ns := range g.neighbors {
		names := make([]string, 0, len(ns))
		for w := range ns {
			names = append(names, w.Name())
		}
		out[v.Name()] = names
	}
	return out
}
