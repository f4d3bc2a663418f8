package csp

import (
	"cmp"
	"fmt"
	"strings"
)

// Numeric restricts the constraint kinds (SumEqual, DifferenceNotEqual)
// that need arithmetic, as opposed to the kinds (AllDiff, AllDiff2) that
// only need ordering and equality. Value stays generically ordered at the
// Variable/Domain layer; only these two constraint kinds narrow it.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Constraint is the pluggable predicate every constraint kind implements.
// Satisfiable is a necessary, not sufficient, condition: false means no
// completion of the current partial assignment can satisfy the
// constraint; true only means no contradiction is yet forced.
type Constraint[V cmp.Ordered] interface {
	// Vars returns the ordered list of variables this constraint references.
	Vars() []*Variable[V]
	// AddVariable appends v to the constraint's variable list.
	AddVariable(v *Variable[V])
	// IsActive reports whether at least one referenced variable is unassigned.
	IsActive() bool
	// SetActive recomputes the active flag from current variable state.
	SetActive()
	// Clone returns a deep copy of the constraint, sharing variable references.
	Clone() Constraint[V]
	// Satisfiable reports whether the current (possibly partial) assignment
	// leaves the constraint satisfiable.
	Satisfiable() bool
	// Check reports whether every variable is assigned and Satisfiable holds.
	Check() bool
	fmt.Stringer
}

func allAssigned[V cmp.Ordered](vars []*Variable[V]) bool {
	for _, v := range vars {
		if !v.IsAssigned() {
			return false
		}
	}
	return true
}

func varNames[V cmp.Ordered](vars []*Variable[V]) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name()
	}
	return names
}

// check implements the Check() capability shared by every kind: all
// variables assigned and Satisfiable holds.
func check[V cmp.Ordered](c Constraint[V]) bool {
	return allAssigned(c.Vars()) && c.Satisfiable()
}

// --- AllDiff ---------------------------------------------------------------

// AllDiff requires that, among currently assigned variables, no two share a
// value. Unassigned variables impose no restriction yet.
type AllDiff[V cmp.Ordered] struct {
	vars   []*Variable[V]
	active bool
}

// NewAllDiff builds an AllDiff constraint over vars.
func NewAllDiff[V cmp.Ordered](vars ...*Variable[V]) *AllDiff[V] {
	c := &AllDiff[V]{vars: append([]*Variable[V](nil), vars...)}
	c.SetActive()
	return c
}

func (c *AllDiff[V]) Vars() []*Variable[V]    { return c.vars }
func (c *AllDiff[V]) AddVariable(v *Variable[V]) { c.vars = append(c.vars, v) }
func (c *AllDiff[V]) IsActive() bool          { return c.active }

func (c *AllDiff[V]) SetActive() {
	for _, v := range c.vars {
		if !v.IsAssigned() {
			c.active = true
			return
		}
	}
	c.active = false
}

func (c *AllDiff[V]) Clone() Constraint[V] {
	return &AllDiff[V]{vars: append([]*Variable[V](nil), c.vars...), active: c.active}
}

func (c *AllDiff[V]) Satisfiable() bool {
	seen := make(map[V]struct{}, len(c.vars))
	for _, v := range c.vars {
		if !v.IsAssigned() {
			continue
		}
		val, _ := v.GetValue()
		if _, dup := seen[val]; dup {
			return false
		}
		seen[val] = struct{}{}
	}
	return true
}

func (c *AllDiff[V]) Check() bool { return check[V](c) }

func (c *AllDiff[V]) String() string {
	return fmt.Sprintf("all different of %s", strings.Join(varNames(c.vars), ", "))
}

// --- AllDiff2 ----------------------------------------------------------------

// AllDiff2 is the binary specialization: trivially true if either variable
// is unassigned, else requires the two assigned values to differ.
type AllDiff2[V cmp.Ordered] struct {
	vars   []*Variable[V]
	active bool
}

// NewAllDiff2 builds an AllDiff2 constraint over exactly v1, v2.
func NewAllDiff2[V cmp.Ordered](v1, v2 *Variable[V]) *AllDiff2[V] {
	c := &AllDiff2[V]{vars: []*Variable[V]{v1, v2}}
	c.SetActive()
	return c
}

func (c *AllDiff2[V]) Vars() []*Variable[V]    { return c.vars }
func (c *AllDiff2[V]) AddVariable(v *Variable[V]) { c.vars = append(c.vars, v) }
func (c *AllDiff2[V]) IsActive() bool          { return c.active }

func (c *AllDiff2[V]) SetActive() {
	for _, v := range c.vars {
		if !v.IsAssigned() {
			c.active = true
			return
		}
	}
	c.active = false
}

func (c *AllDiff2[V]) Clone() Constraint[V] {
	return &AllDiff2[V]{vars: append([]*Variable[V](nil), c.vars...), active: c.active}
}

func (c *AllDiff2[V]) Satisfiable() bool {
	v1, v2 := c.vars[0], c.vars[1]
	if !v1.IsAssigned() || !v2.IsAssigned() {
		return true
	}
	a, _ := v1.GetValue()
	b, _ := v2.GetValue()
	return a != b
}

func (c *AllDiff2[V]) Check() bool { return check[V](c) }

func (c *AllDiff2[V]) String() string {
	return fmt.Sprintf("all different of %s", strings.Join(varNames(c.vars), ", "))
}

// --- SumEqual ----------------------------------------------------------------

// SumEqual requires that the sum of every variable's current value equal K.
// Because unassigned variables may still move, it is implemented via
// bounds: satisfiable iff the sum of minimum possible values is at most K
// and the sum of maximum possible values is at least K.
type SumEqual[V Numeric] struct {
	vars   []*Variable[V]
	k      V
	active bool
}

// NewSumEqual builds a SumEqual constraint over vars with target sum k.
func NewSumEqual[V Numeric](k V, vars ...*Variable[V]) *SumEqual[V] {
	c := &SumEqual[V]{vars: append([]*Variable[V](nil), vars...), k: k}
	c.SetActive()
	return c
}

func (c *SumEqual[V]) Vars() []*Variable[V]    { return c.vars }
func (c *SumEqual[V]) AddVariable(v *Variable[V]) { c.vars = append(c.vars, v) }
func (c *SumEqual[V]) IsActive() bool          { return c.active }

func (c *SumEqual[V]) SetActive() {
	for _, v := range c.vars {
		if !v.IsAssigned() {
			c.active = true
			return
		}
	}
	c.active = false
}

func (c *SumEqual[V]) Clone() Constraint[V] {
	return &SumEqual[V]{vars: append([]*Variable[V](nil), c.vars...), k: c.k, active: c.active}
}

func (c *SumEqual[V]) Satisfiable() bool {
	var lo, hi V
	for _, v := range c.vars {
		min, err := v.GetMinValue()
		if err != nil {
			// Empty domain on an unassigned variable: no completion exists.
			return false
		}
		max, err := v.GetMaxValue()
		if err != nil {
			return false
		}
		lo += min
		hi += max
	}
	return lo <= c.k && c.k <= hi
}

func (c *SumEqual[V]) Check() bool { return check[V](c) }

func (c *SumEqual[V]) String() string {
	return fmt.Sprintf("sum of %s is %v", strings.Join(varNames(c.vars), ", "), c.k)
}

// --- DifferenceNotEqual --------------------------------------------------------

// DifferenceNotEqual is the binary constraint |v1 - v2| != |k|. Trivially
// true if either variable is unassigned.
type DifferenceNotEqual[V Numeric] struct {
	vars   []*Variable[V]
	k      V
	active bool
}

// NewDifferenceNotEqual builds a DifferenceNotEqual constraint over exactly
// v1, v2 with forbidden absolute difference k.
func NewDifferenceNotEqual[V Numeric](k V, v1, v2 *Variable[V]) *DifferenceNotEqual[V] {
	c := &DifferenceNotEqual[V]{vars: []*Variable[V]{v1, v2}, k: absV(k)}
	c.SetActive()
	return c
}

func (c *DifferenceNotEqual[V]) Vars() []*Variable[V]    { return c.vars }
func (c *DifferenceNotEqual[V]) AddVariable(v *Variable[V]) { c.vars = append(c.vars, v) }
func (c *DifferenceNotEqual[V]) IsActive() bool          { return c.active }

func (c *DifferenceNotEqual[V]) SetActive() {
	for _, v := range c.vars {
		if !v.IsAssigned() {
			c.active = true
			return
		}
	}
	c.active = false
}

func (c *DifferenceNotEqual[V]) Clone() Constraint[V] {
	return &DifferenceNotEqual[V]{vars: append([]*Variable[V](nil), c.vars...), k: c.k, active: c.active}
}

func (c *DifferenceNotEqual[V]) Satisfiable() bool {
	v1, v2 := c.vars[0], c.vars[1]
	if !v1.IsAssigned() || !v2.IsAssigned() {
		return true
	}
	a, _ := v1.GetValue()
	b, _ := v2.GetValue()
	return absV(a-b) != c.k
}

func (c *DifferenceNotEqual[V]) Check() bool { return check[V](c) }

func (c *DifferenceNotEqual[V]) String() string {
	return fmt.Sprintf("abs of difference of %s is NOT %v", strings.Join(varNames(c.vars), ", "), c.k)
}

func absV[V Numeric](v V) V {
	if v < 0 {
		return -v
	}
	return v
}
