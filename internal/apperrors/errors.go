package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the acting coach is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrStoreUnavailable indicates the backing row store could not be reached
// or rejected the call for connectivity/auth reasons.
var ErrStoreUnavailable = errors.New("row store unavailable")

// PartialWriteError reports a multi-entry submission where some derived
// entries were appended before one failed. There is no transactional
// wrapping across the row store's individual appends, so the caller is told
// exactly which sub-entries landed.
type PartialWriteError struct {
	LandedIDs []string // entry IDs that were appended successfully
	FailedID  string   // entry ID whose append failed
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: %d entries landed (%s), append of %s failed: %v",
		len(e.LandedIDs), strings.Join(e.LandedIDs, ","), e.FailedID, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// StaleDeleteTargetError reports a position-based delete that no longer
// points at the intended row because the underlying listing changed since
// the position was computed. The delete is aborted rather than removing the
// wrong row.
type StaleDeleteTargetError struct {
	EntryID string
	Row     int
}

func (e *StaleDeleteTargetError) Error() string {
	return fmt.Sprintf("stale delete target: row %d no longer holds entry %s", e.Row, e.EntryID)
}
