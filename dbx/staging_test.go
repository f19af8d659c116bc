package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagingAccumulates(t *testing.T) {
	table := NewStagingTable("getdata")
	require.NoError(t, table.EnsureCapacity(2))

	b := table.At(1)
	assert.Equal(t, NotStarted, b.Remaining())
	assert.False(t, b.Started())

	require.NoError(t, table.Append(1, []byte("hello ")))
	require.NoError(t, table.SetRemaining(1, 5))
	require.NoError(t, table.Append(1, []byte("world")))
	require.NoError(t, table.SetRemaining(1, 0))

	assert.Equal(t, "hello world", string(b.Data()))
	assert.Equal(t, 11, b.Used())
	assert.Equal(t, int64(0), b.Remaining())
	assert.Equal(t, 1, table.Live())

	table.ResetSlot(1)
	assert.Equal(t, NotStarted, b.Remaining())
	assert.Empty(t, b.Data())
	assert.Equal(t, 0, table.Live())
	assert.Equal(t, 1, table.Released())
}

func TestStagingOutOfRange(t *testing.T) {
	table := NewStagingTable("putdata")
	assert.Error(t, table.Append(0, []byte("x")))
	assert.Error(t, table.AppendExec(3, []byte("x")))
	assert.Error(t, table.SetRemaining(0, 1))
	// releasing what does not exist is harmless
	table.ReleaseExec(7)
	table.ResetSlot(7)
	assert.Equal(t, 0, table.Released())
}

func TestStagingExecReleasedOnce(t *testing.T) {
	table := NewStagingTable("putdata")
	require.NoError(t, table.EnsureCapacity(1))

	for round := 1; round <= 3; round++ {
		require.NoError(t, table.AppendExec(0, []byte("abc")))
		require.NoError(t, table.AppendExec(0, []byte("def")))
		assert.Equal(t, "abcdef", string(table.At(0).Exec()))
		assert.Equal(t, 1, table.Live())

		table.ReleaseExec(0)
		table.ReleaseExec(0)
		assert.False(t, table.At(0).HasExec())
		assert.Equal(t, 0, table.Live())
		assert.Equal(t, round, table.Released())
	}
}

func TestStagingBookmarkSlot(t *testing.T) {
	table := NewStagingTable("getdata")
	require.NoError(t, table.Append(BookmarkSlot, []byte{1, 2, 3, 4}))
	assert.Equal(t, []byte{1, 2, 3, 4}, table.At(BookmarkSlot).Data())
	assert.Equal(t, 0, table.Allocated())

	table.ResetAll()
	assert.Empty(t, table.At(BookmarkSlot).Data())
	assert.Equal(t, 0, table.Live())
}

func TestStagingShrinkReleasesTail(t *testing.T) {
	table := NewStagingTable("getdata")
	require.NoError(t, table.EnsureCapacity(4))
	for i := 0; i < 4; i++ {
		require.NoError(t, table.Append(i, []byte("v")))
	}
	require.NoError(t, table.AppendExec(3, []byte("p")))
	assert.Equal(t, 5, table.Live())

	table.ShrinkTo(2)
	assert.Equal(t, 2, table.Allocated())
	assert.Equal(t, 2, table.Live())
	assert.Equal(t, 3, table.Released())

	table.FreeAll()
	assert.Equal(t, 0, table.Allocated())
	assert.Equal(t, 0, table.Live())
}

func TestStagingGrowthFailureReleasesBuffers(t *testing.T) {
	table := NewStagingTable("putdata", TableWithLimit(2))
	require.NoError(t, table.EnsureCapacity(2))
	require.NoError(t, table.AppendExec(1, []byte("p")))

	require.Error(t, table.EnsureCapacity(3))
	assert.Equal(t, 0, table.Allocated())
	assert.Equal(t, 0, table.Live())
	assert.Equal(t, 1, table.Released())
}

func TestStagingRewindKeepsData(t *testing.T) {
	table := NewStagingTable("getdata")
	require.NoError(t, table.EnsureCapacity(1))
	require.NoError(t, table.Append(0, []byte("ab")))
	require.NoError(t, table.SetRemaining(0, 3))

	table.Rewind(0)
	b := table.At(0)
	assert.Equal(t, NotStarted, b.Remaining())
	assert.Equal(t, "ab", string(b.Data()))
	assert.Equal(t, 1, table.Live())
	assert.Equal(t, 0, table.Released())
}

func TestLenRef(t *testing.T) {
	ind := []int64{1, 2, 3}
	ref := BorrowLen(ind)
	v, ok := ref.Get(0)
	require.True(t, ok)
	assert.Equal(t, int64(1), v)

	shifted := ref.Shift(1)
	assert.Equal(t, 1, shifted.Offset())
	require.True(t, shifted.Set(1, 30))
	assert.Equal(t, int64(30), ind[2])
	_, ok = shifted.Get(2)
	assert.False(t, ok)

	var none LenRef
	assert.True(t, none.IsNil())
	assert.True(t, none.Shift(3).IsNil())
	assert.False(t, none.Set(0, 1))
}
