package csp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllDiffSatisfiable(t *testing.T) {
	x := NewVariable("x", []int{1, 2, 3})
	y := NewVariable("y", []int{1, 2, 3})
	z := NewVariable("z", []int{1, 2, 3})
	c := NewAllDiff(x, y, z)

	require.True(t, c.Satisfiable(), "no assignments yet: trivially satisfiable")

	x.Assign(1)
	y.Assign(2)
	require.True(t, c.Satisfiable())

	z.Assign(1)
	require.False(t, c.Satisfiable())
	require.False(t, c.Check())
}

func TestAllDiffActive(t *testing.T) {
	x := NewVariable("x", []int{1, 2})
	y := NewVariable("y", []int{1, 2})
	c := NewAllDiff(x, y)
	require.True(t, c.IsActive())

	x.Assign(1)
	c.SetActive()
	require.True(t, c.IsActive(), "y still unassigned")

	y.Assign(2)
	c.SetActive()
	require.False(t, c.IsActive())
}

func TestAllDiff2(t *testing.T) {
	x := NewVariable("x", []int{1, 2})
	y := NewVariable("y", []int{1, 2})
	c := NewAllDiff2(x, y)

	require.True(t, c.Satisfiable(), "unassigned is trivially true")

	x.Assign(1)
	require.True(t, c.Satisfiable(), "y still unassigned")

	y.Assign(1)
	require.False(t, c.Satisfiable())

	require.NoError(t, y.Unassign())
	y.Assign(2)
	require.True(t, c.Satisfiable())
	require.True(t, c.Check())
}

func TestSumEqualBounds(t *testing.T) {
	x := NewVariable("x", []int{0, 1, 2, 3})
	y := NewVariable("y", []int{0, 1, 2, 3})
	z := NewVariable("z", []int{0, 1, 2, 3})
	c := NewSumEqual(8, x, y, z)

	require.True(t, c.Satisfiable(), "lo=0 hi=9, 8 is within bounds")

	x.Assign(0)
	y.Assign(0)
	// z in [0,3]: lo=0 hi=3, but target is 8.
	require.False(t, c.Satisfiable())
}

func TestSumEqualCheck(t *testing.T) {
	x := NewVariable("x", []int{0, 1, 2, 3})
	y := NewVariable("y", []int{0, 1, 2, 3})
	z := NewVariable("z", []int{0, 1, 2, 3})
	c := NewSumEqual(8, x, y, z)

	x.Assign(2)
	y.Assign(3)
	z.Assign(3)
	require.True(t, c.Check())

	require.NoError(t, z.Unassign())
	z.Assign(2)
	require.False(t, c.Check())
}

func TestDifferenceNotEqual(t *testing.T) {
	x := NewVariable("x", []int{0, 1, 2, 3})
	y := NewVariable("y", []int{0, 1, 2, 3})
	c := NewDifferenceNotEqual(2, x, y)

	require.True(t, c.Satisfiable())

	x.Assign(0)
	y.Assign(2)
	require.False(t, c.Satisfiable())

	require.NoError(t, y.Unassign())
	y.Assign(3)
	require.True(t, c.Satisfiable())
}

func TestConstraintClone(t *testing.T) {
	x := NewVariable("x", []int{1, 2})
	y := NewVariable("y", []int{1, 2})
	c := NewAllDiff2(x, y)
	clone := c.Clone().(*AllDiff2[int])

	require.Equal(t, c.vars, clone.vars, "clone shares variable references")

	x.Assign(1)
	c.SetActive()
	require.True(t, c.IsActive())
	// Clone's active flag was snapshotted at Clone() time (both variables
	// unassigned, so true) and is independent.
	require.True(t, clone.active)
}

func TestConstraintStrings(t *testing.T) {
	x := NewVariable("x", []int{1, 2})
	y := NewVariable("y", []int{1, 2})
	z := NewVariable("z", []int{1, 2})

	require.Contains(t, NewAllDiff(x, y, z).String(), "all different of")
	require.Contains(t, NewSumEqual(5, x, y).String(), "sum of")
	require.Contains(t, NewDifferenceNotEqual(1, x, y).String(), "abs of difference of")
}
