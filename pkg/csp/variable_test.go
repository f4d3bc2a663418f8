package csp

import (
	"errors"
	"testing"

	"github.com/gitrdm/gocsp/pkg/csp/csperr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewVariableSortsAndDedupes(t *testing.T) {
	v := NewVariable("x", []int{3, 1, 2, 1, 3})
	if diff := cmp.Diff([]int{1, 2, 3}, v.Domain()); diff != "" {
		t.Fatalf("domain mismatch (-want +got):\n%s", diff)
	}
	require.False(t, v.IsAssigned())
	require.False(t, v.IsImpossible())
}

func TestVariableAssignUnassign(t *testing.T) {
	v := NewVariable("x", []int{1, 2, 3})

	require.False(t, v.IsAssigned())
	v.Assign(5) // assignment need not be a domain member
	require.True(t, v.IsAssigned())
	val, err := v.GetValue()
	require.NoError(t, err)
	require.Equal(t, 5, val)

	require.NoError(t, v.Unassign())
	require.False(t, v.IsAssigned())

	_, err = v.GetValue()
	require.ErrorIs(t, err, csperr.ErrStateError)

	err = v.Unassign()
	require.ErrorIs(t, err, csperr.ErrStateError)
}

func TestVariableAssignSmallest(t *testing.T) {
	v := NewVariable("x", []int{5, 3, 9})
	require.NoError(t, v.AssignSmallest())
	val, _ := v.GetValue()
	require.Equal(t, 3, val)

	empty := NewVariable[int]("y", nil)
	err := empty.AssignSmallest()
	require.ErrorIs(t, err, csperr.ErrDomainError)
}

func TestVariableRemoveValue(t *testing.T) {
	v := NewVariable("x", []int{1, 2, 3})
	require.NoError(t, v.RemoveValue(2))
	require.Equal(t, []int{1, 3}, v.Domain())

	err := v.RemoveValue(2)
	require.ErrorIs(t, err, csperr.ErrDomainError)
	require.True(t, errors.Is(err, csperr.ErrDomainError))
}

func TestVariableMinMax(t *testing.T) {
	v := NewVariable("x", []int{1, 2, 3})
	min, err := v.GetMinValue()
	require.NoError(t, err)
	require.Equal(t, 1, min)

	max, err := v.GetMaxValue()
	require.NoError(t, err)
	require.Equal(t, 3, max)

	v.Assign(99)
	min, err = v.GetMinValue()
	require.NoError(t, err)
	require.Equal(t, 99, min)

	empty := NewVariable[int]("y", nil)
	_, err = empty.GetMinValue()
	require.ErrorIs(t, err, csperr.ErrDomainError)
	_, err = empty.GetMaxValue()
	require.ErrorIs(t, err, csperr.ErrDomainError)
}

func TestVariableIsImpossible(t *testing.T) {
	v := NewVariable("x", []int{1})
	require.False(t, v.IsImpossible())
	require.NoError(t, v.RemoveValue(1))
	require.True(t, v.IsImpossible())
}

// TestSnapshotInverse checks the quantified "snapshot inverse" property:
// SaveState then arbitrary mutation then LoadState restores every domain
// exactly, for the set of unassigned variables other than except.
func TestSnapshotInverse(t *testing.T) {
	g := NewConstraintGraph[int]()
	x := NewVariable("x", []int{1, 2, 3})
	y := NewVariable("y", []int{4, 5, 6})
	z := NewVariable("z", []int{7, 8})
	require.NoError(t, g.InsertVariable(x))
	require.NoError(t, g.InsertVariable(y))
	require.NoError(t, g.InsertVariable(z))

	snap := g.SaveState(x)

	require.NoError(t, y.RemoveValue(5))
	require.NoError(t, z.RemoveValue(7))
	require.NoError(t, z.RemoveValue(8))

	g.LoadState(snap)

	if diff := cmp.Diff([]int{4, 5, 6}, y.Domain()); diff != "" {
		t.Fatalf("y domain not restored (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{7, 8}, z.Domain()); diff != "" {
		t.Fatalf("z domain not restored (-want +got):\n%s", diff)
	}
}

func TestSnapshotInverseSkipsExceptAndAssigned(t *testing.T) {
	g := NewConstraintGraph[int]()
	x := NewVariable("x", []int{1, 2, 3})
	y := NewVariable("y", []int{4, 5, 6})
	require.NoError(t, g.InsertVariable(x))
	require.NoError(t, g.InsertVariable(y))
	y.Assign(4)

	snap := g.SaveState(x)
	require.NotContains(t, snap, x)
	require.NotContains(t, snap, y)
}
