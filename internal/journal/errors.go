package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a title or content is blank after trimming.
	ErrValidation = errors.New("journal: title and content are required")

	ErrDuplicateID = errors.New("journal: duplicate entry id")
)

// MalformedError reports persisted data that could not be used as-is. The raw
// value is copied to BackupKey before anything overwrites it.
type MalformedError struct {
	BackupKey string
	Dropped   int   // entries discarded for breaking an invariant
	Err       error // decode error, nil when only entries were dropped
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("journal: stored entries are unreadable (backup in %q): %v", e.BackupKey, e.Err)
	}
	return fmt.Sprintf("journal: dropped %d invalid stored entr%s (backup in %q)", e.Dropped, pluralY(e.Dropped), e.BackupKey)
}

func (e *MalformedError) Unwrap() error { return e.Err }

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
