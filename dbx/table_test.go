package dbx

import (
	"testing"

	"github.com/quintans/toolkit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.Register("/", log.ERROR)
}

type record struct {
	Name  string
	Value int
}

func TestEnsureCapacityPreservesExistingSlots(t *testing.T) {
	table := NewTable[record]("records", nil)
	require.NoError(t, table.EnsureCapacity(3))
	require.Equal(t, 3, table.Allocated())

	for i := 0; i < 3; i++ {
		table.At(i).Name = "slot"
		table.At(i).Value = i + 1
	}

	require.NoError(t, table.EnsureCapacity(7))
	require.Equal(t, 7, table.Allocated())
	for i := 0; i < 3; i++ {
		assert.Equal(t, record{Name: "slot", Value: i + 1}, *table.At(i))
	}
	for i := 3; i < 7; i++ {
		assert.Equal(t, record{}, *table.At(i))
	}
}

func TestEnsureCapacityIsMonotonic(t *testing.T) {
	table := NewTable[record]("records", nil)
	require.NoError(t, table.EnsureCapacity(5))
	table.At(4).Value = 42

	for _, n := range []int{0, 1, 4, 5} {
		require.NoError(t, table.EnsureCapacity(n))
		assert.Equal(t, 5, table.Allocated())
	}
	assert.Equal(t, 42, table.At(4).Value)
}

func TestGrowthFailureEmptiesTable(t *testing.T) {
	resets := 0
	table := NewTable("records", func(r *record) {
		resets++
		*r = record{}
	}, TableWithLimit(4))
	require.NoError(t, table.EnsureCapacity(4))
	table.At(0).Value = 1

	err := table.EnsureCapacity(5)
	require.Error(t, err)
	assert.Equal(t, 0, table.Allocated())
	assert.Nil(t, table.At(0))
	assert.Equal(t, 4, resets)

	// the table can be grown again after the failure
	require.NoError(t, table.EnsureCapacity(2))
	assert.Equal(t, record{}, *table.At(0))
}

func TestResetSlot(t *testing.T) {
	table := NewTable[record]("records", nil)
	require.NoError(t, table.EnsureCapacity(2))
	table.At(0).Value = 1
	table.At(1).Value = 2

	table.ResetSlot(1)
	table.ResetSlot(-1)
	table.ResetSlot(2)

	assert.Equal(t, 1, table.At(0).Value)
	assert.Equal(t, 0, table.At(1).Value)
}

func TestFreeAll(t *testing.T) {
	table := NewTable[record]("records", nil)
	require.NoError(t, table.EnsureCapacity(10))
	table.FreeAll()
	assert.Equal(t, 0, table.Allocated())
	assert.Nil(t, table.At(0))
}

func TestShrinkTo(t *testing.T) {
	var order []int
	table := NewShrinkable("records", func(r *record) {
		order = append(order, r.Value)
		*r = record{}
	})
	require.NoError(t, table.EnsureCapacity(4))
	for i := 0; i < 4; i++ {
		table.At(i).Value = i
	}

	table.ShrinkTo(2)
	assert.Equal(t, 2, table.Allocated())
	assert.Equal(t, []int{3, 2}, order)
	assert.Equal(t, 1, table.At(1).Value)

	// slots given back come back zero valued
	require.NoError(t, table.EnsureCapacity(3))
	assert.Equal(t, record{}, *table.At(2))

	table.ShrinkTo(5)
	assert.Equal(t, 3, table.Allocated())

	table.ShrinkTo(0)
	assert.Equal(t, 0, table.Allocated())
}
