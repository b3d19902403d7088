/*
errors.go - Centralized error types for the workforce engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers branch with errors.Is(); structured types carry the detail the
  report layer surfaces to users (which period, which check failed).

ERROR CATEGORIES:
  1. Snapshot-state errors - missing, duplicate, or mutated snapshot data
  2. Reconciliation errors - report sections disagreeing on a total
  3. Input errors          - malformed periods

None of these are transient: they are data-state problems, not I/O
flakiness, so nothing here is retried.

SEE ALSO:
  - generator.go: Raises duplicate errors via the store
  - report/reconcile.go: Wraps ErrReconciliationMismatch with detail
*/
package workforce

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrSnapshotUnavailable is returned when a period has zero snapshot rows.
	// Aggregation never falls back to live employee data.
	ErrSnapshotUnavailable = errors.New("snapshot unavailable for period")

	// ErrSnapshotDuplicate is returned when a second snapshot is created for
	// the same (employee, period) outside of force-regeneration.
	ErrSnapshotDuplicate = errors.New("snapshot already exists for employee and period")

	// ErrSnapshotImmutable is returned on any attempt to modify fact fields
	// of an existing snapshot row.
	ErrSnapshotImmutable = errors.New("snapshot facts are immutable")

	// ErrReconciliationMismatch is returned when independently computed report
	// sections disagree on a total. Always fatal to assembly.
	ErrReconciliationMismatch = errors.New("reconciliation mismatch between report sections")

	// ErrInvalidPeriod is returned for months outside 1-12 or years outside
	// 2000-2100.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrEmployeeSourceRequired is returned when generation is attempted
	// without a live employee store wired in.
	ErrEmployeeSourceRequired = errors.New("employee source required")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnavailableError reports which period lacked snapshot data.
type UnavailableError struct {
	Period Period
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("snapshot for %s is not available; generate it before reporting", e.Period)
}

func (e *UnavailableError) Unwrap() error { return ErrSnapshotUnavailable }

// DuplicateError identifies the employee and period that collided.
type DuplicateError struct {
	Employee EmployeeRef
	Period   Period
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("snapshot for employee %s already exists in %s", e.Employee, e.Period)
}

func (e *DuplicateError) Unwrap() error { return ErrSnapshotDuplicate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input or
// a precondition the caller can fix (e.g. generating the missing snapshot).
func IsClientError(err error) bool {
	return errors.Is(err, ErrSnapshotUnavailable) ||
		errors.Is(err, ErrSnapshotDuplicate) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsFatalReportError returns true if the error must abort report assembly
// with no partial output.
func IsFatalReportError(err error) bool {
	return errors.Is(err, ErrReconciliationMismatch)
}
