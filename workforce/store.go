/*
store.go - Persistence interfaces for snapshots and live employees

PURPOSE:
  Defines the boundary between the domain logic and the database. Snapshot
  persistence is write-once-per-period: rows are bulk-inserted at generation
  time and read forever after. Different implementations can use SQLite,
  PostgreSQL, or in-memory storage.

KEY INTERFACES:
  SnapshotStore:  Period-scoped reads + bulk insert (no update method exists)
  PeriodTxStore:  Atomic delete-and-recreate for force regeneration
  EmployeeSource: The external live HR store (read-only collaborator)

IMMUTABILITY CONTRACT:
  SnapshotStore has InsertPeriod and ReplacePeriod. There is NO UpdateSnapshot
  and NO per-row delete. The only way facts for a period change is
  ReplacePeriod, which discards and recreates the whole period atomically.

UNIQUENESS:
  Implementations enforce one row per (employee, year, month) and surface
  violations as ErrSnapshotDuplicate (wrapped in *DuplicateError where the
  colliding employee is known).

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - workforce/store/memory.go: In-memory for testing

SEE ALSO:
  - generator.go: The only writer
  - analytics/service.go: The only reader beyond admin listings
*/
package workforce

import "context"

// =============================================================================
// SNAPSHOT STORE
// =============================================================================

// PeriodCount reports how many snapshot rows exist for one period.
type PeriodCount struct {
	Period Period
	Count  int
}

// SnapshotStore handles snapshot persistence. Write-once per period.
type SnapshotStore interface {
	// InsertPeriod bulk-inserts a period's snapshots. All rows must belong to
	// the given period. Fails with ErrSnapshotDuplicate if any (employee,
	// period) pair already exists; on failure nothing is written.
	InsertPeriod(ctx context.Context, period Period, snapshots []Snapshot) error

	// ByPeriod returns the period's snapshot rows. activeOnly restricts to
	// rows whose active flag was true at snapshot time. Returns an empty
	// slice (not an error) when the period has no rows; callers that require
	// data use CountPeriod first.
	ByPeriod(ctx context.Context, period Period, activeOnly bool) ([]Snapshot, error)

	// CountPeriod returns the number of rows for a period (active and
	// inactive). Zero means the snapshot was never generated.
	CountPeriod(ctx context.Context, period Period) (int, error)

	// AvailablePeriods lists periods that have data, newest first.
	AvailablePeriods(ctx context.Context, limit int) ([]PeriodCount, error)
}

// PeriodTxStore extends SnapshotStore with the atomic replace used by force
// regeneration. Concurrent ReplacePeriod calls for the same period must
// serialize; readers never observe a partially-deleted period.
type PeriodTxStore interface {
	SnapshotStore

	// ReplacePeriod deletes every existing row for the period and inserts the
	// new set in one transaction.
	ReplacePeriod(ctx context.Context, period Period, snapshots []Snapshot) error
}

// =============================================================================
// EMPLOYEE SOURCE - external live HR store (read-only)
// =============================================================================

// EmployeeFilter selects which live employees to list.
type EmployeeFilter struct {
	// IncludeInactive includes terminated employees. The generator always
	// sets this: dropping them would silently erase history.
	IncludeInactive bool
}

// EmployeeSource is the external employee store boundary. The engine only
// reads from it; it never writes.
type EmployeeSource interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeRecord, error)
}
