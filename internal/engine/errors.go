package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// Error taxonomy. Every validation failure returned by this package wraps one of
// these sentinels, so callers can branch with errors.Is.
var (
	// ErrInvalidArgument reports a malformed period, label, or person entry.
	ErrInvalidArgument = errors.New(config.ErrInvalidArgument)

	// ErrImportFailure reports a malformed snapshot or bulk-import row.
	// The state being imported into is never modified when it is returned.
	ErrImportFailure = errors.New(config.ErrImportFailure)

	// ErrDuplicateMilestone is returned when a catalog already holds the same year count.
	// It also matches ErrInvalidArgument.
	ErrDuplicateMilestone = fmt.Errorf("%s: %w", config.ErrDuplicate, ErrInvalidArgument)
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}
