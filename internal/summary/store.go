package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrAtBoundary is returned by Undo at the first version and Redo at the last.
	ErrAtBoundary = errors.New("summary: cursor at history boundary")
	// ErrOutOfRange is returned by JumpTo and At for indices outside the sequence.
	ErrOutOfRange = errors.New("summary: version index out of range")
)

// Store maintains the append-only version sequence and answers navigation
// requests. It never performs remote I/O. The cursor is owned by the caller
// and passed in explicitly; Append never moves it.
type Store struct {
	versions []Version
}

// Append adds a version to the sequence. The version number must continue the
// sequence exactly (len+1).
func (s *Store) Append(v Version) error {
	if want := len(s.versions) + 1; v.Number != want {
		return fmt.Errorf("summary: version number %d does not continue sequence (want %d)", v.Number, want)
	}
	s.versions = append(s.versions, v)
	return nil
}

func (s *Store) Len() int { return len(s.versions) }

// At returns the version at index i.
func (s *Store) At(i int) (Version, error) {
	if i < 0 || i >= len(s.versions) {
		return Version{}, ErrOutOfRange
	}
	return s.versions[i], nil
}

// Versions returns a copy of the sequence in order.
func (s *Store) Versions() []Version {
	out := make([]Version, len(s.versions))
	copy(out, s.versions)
	return out
}

// Latest returns the most recently appended version.
func (s *Store) Latest() (Version, bool) {
	if len(s.versions) == 0 {
		return Version{}, false
	}
	return s.versions[len(s.versions)-1], true
}

// Undo moves the cursor one version back.
func (s *Store) Undo(cursor int) (int, error) {
	if cursor <= 0 {
		return cursor, ErrAtBoundary
	}
	return cursor - 1, nil
}

// Redo moves the cursor one version forward.
func (s *Store) Redo(cursor int) (int, error) {
	if cursor >= len(s.versions)-1 {
		return cursor, ErrAtBoundary
	}
	return cursor + 1, nil
}

// JumpTo moves the cursor to target. Jumping to the current position is a
// no-op, reported via moved=false rather than an error.
func (s *Store) JumpTo(cursor, target int) (newCursor int, moved bool, err error) {
	if target < 0 || target >= len(s.versions) {
		return cursor, false, ErrOutOfRange
	}
	if target == cursor {
		return cursor, false, nil
	}
	return target, true, nil
}
