package data

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors the service layer translates into its own taxonomy.
var (
	// ErrNotFound is returned when a row the caller asked for does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// isDuplicateErr reports whether err is a uniqueness violation from one of
// the supported drivers. Neither driver exposes a stable error type for
// this, so the error text is matched instead.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "constraint failed") || // modernc sqlite
		strings.Contains(msg, "Duplicate entry") // mysql 1062
}

// translateErr maps driver-level errors to the package sentinels, leaving
// anything unrecognized untouched. The original error text is preserved so
// integrity failures can be logged in full.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case isDuplicateErr(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
