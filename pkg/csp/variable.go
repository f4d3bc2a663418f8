package csp

import (
	"cmp"
	"fmt"

	"github.com/gitrdm/gocsp/pkg/csp/csperr"
)

// Variable is a named, discrete-domain decision variable over an ordered
// scalar type V. A Variable never narrows its own domain on Assign: the
// domain and the assigned value are tracked independently, so that
// unassigning a variable always recovers its prior domain without needing
// a copy on every assignment.
type Variable[V cmp.Ordered] struct {
	name          string
	id            int
	domain        *orderedSet[V]
	assignedValue V
	isAssigned    bool
}

// NewVariable creates a Variable with the given name and a domain that is
// the sorted, deduplicated set of initialValues. The variable starts
// unassigned. id is assigned by the ConstraintGraph at insertion time, not
// here, so a Variable is usable (e.g. in tests) before it is ever inserted
// into a graph.
func NewVariable[V cmp.Ordered](name string, initialValues []V) *Variable[V] {
	return &Variable[V]{
		name:   name,
		domain: newOrderedSet(initialValues),
	}
}

// Name returns the variable's name.
func (v *Variable[V]) Name() string { return v.name }

// ID returns the variable's per-graph identifier. Zero until the variable
// has been inserted into a ConstraintGraph.
func (v *Variable[V]) ID() int { return v.id }

// Domain returns an ascending, read-only view of the variable's domain.
func (v *Variable[V]) Domain() []V { return v.domain.Values() }

// SizeDomain returns the number of values remaining in the domain.
func (v *Variable[V]) SizeDomain() int { return v.domain.Count() }

// IsImpossible reports whether the domain is empty.
func (v *Variable[V]) IsImpossible() bool { return v.domain.Count() == 0 }

// IsAssigned reports whether the variable currently carries an assignment.
func (v *Variable[V]) IsAssigned() bool { return v.isAssigned }

// SetDomain replaces the domain with exactly the sorted, deduplicated set
// of vs.
func (v *Variable[V]) SetDomain(vs []V) {
	v.domain.SetAll(vs)
}

// RemoveValue removes val from the domain. It returns csperr.ErrDomainError
// if val is not present.
func (v *Variable[V]) RemoveValue(val V) error {
	if !v.domain.Remove(val) {
		return fmt.Errorf("Variable(%s).RemoveValue(%v): %w", v.name, val, csperr.ErrDomainError)
	}
	return nil
}

// Assign marks the variable assigned with value val. val need not be a
// member of the domain: assignment and domain membership are independent,
// per the data model.
func (v *Variable[V]) Assign(val V) {
	v.assignedValue = val
	v.isAssigned = true
}

// AssignSmallest assigns the smallest value currently in the domain. It
// returns csperr.ErrDomainError if the domain is empty.
func (v *Variable[V]) AssignSmallest() error {
	val, ok := v.domain.First()
	if !ok {
		return fmt.Errorf("Variable(%s).AssignSmallest: %w", v.name, csperr.ErrDomainError)
	}
	v.Assign(val)
	return nil
}

// Unassign clears the assigned flag. It returns csperr.ErrStateError if the
// variable is already unassigned. The domain itself is left untouched;
// callers needing domain rollback use the engine's snapshot protocol.
func (v *Variable[V]) Unassign() error {
	if !v.isAssigned {
		return fmt.Errorf("Variable(%s).Unassign: %w", v.name, csperr.ErrStateError)
	}
	v.isAssigned = false
	var zero V
	v.assignedValue = zero
	return nil
}

// GetValue returns the assigned value. It returns csperr.ErrStateError if
// the variable is unassigned.
func (v *Variable[V]) GetValue() (V, error) {
	if !v.isAssigned {
		var zero V
		return zero, fmt.Errorf("Variable(%s).GetValue: %w", v.name, csperr.ErrStateError)
	}
	return v.assignedValue, nil
}

// GetMinValue returns the assigned value if assigned, else the smallest
// domain value. It returns csperr.ErrDomainError if unassigned with an
// empty domain.
func (v *Variable[V]) GetMinValue() (V, error) {
	if v.isAssigned {
		return v.assignedValue, nil
	}
	val, ok := v.domain.First()
	if !ok {
		var zero V
		return zero, fmt.Errorf("Variable(%s).GetMinValue: %w", v.name, csperr.ErrDomainError)
	}
	return val, nil
}

// GetMaxValue returns the assigned value if assigned, else the largest
// domain value. It returns csperr.ErrDomainError if unassigned with an
// empty domain.
func (v *Variable[V]) GetMaxValue() (V, error) {
	if v.isAssigned {
		return v.assignedValue, nil
	}
	val, ok := v.domain.Last()
	if !ok {
		var zero V
		return zero, fmt.Errorf("Variable(%s).GetMaxValue: %w", v.name, csperr.ErrDomainError)
	}
	return val, nil
}

// String renders the variable for debugging, e.g. "x=3" or "y in [1 2 3]".
func (v *Variable[V]) String() string {
	if v.isAssigned {
		return fmt.Sprintf("%s=%v", v.name, v.assignedValue)
	}
	return fmt.Sprintf("%s in %v", v.name, v.domain.Values())
}

// snapshot captures a deep copy of v's domain, for the engine's save/load
// protocol (snapshot.go). Assigned variables need no snapshot: they carry
// no domain mutation risk while assigned.
func (v *Variable[V]) snapshot() *orderedSet[V] {
	return v.domain.Clone()
}

// restore replaces v's domain with a copy of a previously captured
// snapshot, so the snapshot itself stays intact for later restores.
func (v *Variable[V]) restore(s *orderedSet[V]) {
	v.domain = s.Clone()
}
