package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mkVersion(n int, content string) Version {
	return Version{Content: content, CreatedAt: time.Now().UTC(), Number: n}
}

func TestStoreAppendNumbering(t *testing.T) {
	var st Store
	require.NoError(t, st.Append(mkVersion(1, "one")))
	require.NoError(t, st.Append(mkVersion(2, "two")))
	require.NoError(t, st.Append(mkVersion(3, "three")))

	for i, v := range st.Versions() {
		require.Equal(t, i+1, v.Number)
	}
}

func TestStoreAppendRejectsGap(t *testing.T) {
	var st Store
	require.NoError(t, st.Append(mkVersion(1, "one")))
	require.Error(t, st.Append(mkVersion(3, "three")))
	require.Error(t, st.Append(mkVersion(1, "dup")))
	require.Equal(t, 1, st.Len())
}

func TestUndoRedoBoundaries(t *testing.T) {
	var st Store
	for i := 1; i <= 3; i++ {
		require.NoError(t, st.Append(mkVersion(i, "v")))
	}

	_, err := st.Undo(0)
	require.ErrorIs(t, err, ErrAtBoundary)

	_, err = st.Redo(2)
	require.ErrorIs(t, err, ErrAtBoundary)

	c, err := st.Undo(2)
	require.NoError(t, err)
	require.Equal(t, 1, c)

	c, err = st.Redo(c)
	require.NoError(t, err)
	require.Equal(t, 2, c)
}

func TestUndoThenRedoRestoresCursor(t *testing.T) {
	var st Store
	for i := 1; i <= 5; i++ {
		require.NoError(t, st.Append(mkVersion(i, "v")))
	}
	for cursor := 1; cursor < st.Len(); cursor++ {
		back, err := st.Undo(cursor)
		require.NoError(t, err)
		forward, err := st.Redo(back)
		require.NoError(t, err)
		require.Equal(t, cursor, forward)
	}
}

func TestJumpTo(t *testing.T) {
	var st Store
	for i := 1; i <= 4; i++ {
		require.NoError(t, st.Append(mkVersion(i, "v")))
	}

	c, moved, err := st.JumpTo(0, 3)
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, 3, c)

	// Same index is a no-op, not an error.
	c, moved, err = st.JumpTo(2, 2)
	require.NoError(t, err)
	require.False(t, moved)
	require.Equal(t, 2, c)

	_, _, err = st.JumpTo(0, -1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, _, err = st.JumpTo(0, 4)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestStoreAt(t *testing.T) {
	var st Store
	require.NoError(t, st.Append(mkVersion(1, "hello")))

	v, err := st.At(0)
	require.NoError(t, err)
	require.Equal(t, "hello", v.Content)

	_, err = st.At(1)
	require.ErrorIs(t, err, ErrOutOfRange)
}
