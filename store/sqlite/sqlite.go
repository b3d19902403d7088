/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements snapshot persistence (workforce.PeriodTxStore) and the live
  employee store (workforce.EmployeeSource) using SQLite. In production, the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  workforce.SnapshotStore:  Period-scoped snapshot reads + bulk insert
  workforce.PeriodTxStore:  Atomic delete-and-recreate per period
  workforce.EmployeeSource: Live HR employee records (read side)

IMMUTABILITY ENFORCEMENT:
  There is NO UPDATE statement for the employee_snapshots table anywhere in
  this package. Snapshot facts change only through ReplacePeriod, which
  deletes and recreates a whole period inside one transaction.

KEY TABLES:
  employee_snapshots: Immutable monthly facts; UNIQUE(employee_ref,
                      snapshot_year, snapshot_month); CHECK on month/year
  employees:          Live HR records, including the raw classification
                      source fields the generator consumes

INDEXES:
  - idx_snapshots_period: (year, month) - every aggregation's hot path
  - idx_snapshots_unit:   unit grouping
  - idx_unique_employee_period: enforces one snapshot per employee per month

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's WAL mode. The
  mutex plus the transactional ReplacePeriod guarantee readers never see a
  half-replaced period.

USAGE:
  store, err := sqlite.New("./data/workforce.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - workforce/store.go: Interface definitions
  - workforce/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yhc/workforce-engine/workforce"
)

// Store implements the snapshot and employee storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Monthly snapshots (immutable facts; no UPDATE path exists)
	CREATE TABLE IF NOT EXISTS employee_snapshots (
		id TEXT PRIMARY KEY,
		employee_ref TEXT NOT NULL,
		unit_ref TEXT NOT NULL,
		unit_name TEXT NOT NULL,
		employment_type TEXT NOT NULL,
		employment_status TEXT NOT NULL,
		snapshot_month INTEGER NOT NULL CHECK(snapshot_month BETWEEN 1 AND 12),
		snapshot_year INTEGER NOT NULL CHECK(snapshot_year BETWEEN 2000 AND 2100),
		is_active BOOLEAN NOT NULL,
		gender TEXT NOT NULL,
		captured_at TEXT NOT NULL
	);

	-- CRITICAL: one snapshot per employee per period
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_employee_period
		ON employee_snapshots(employee_ref, snapshot_year, snapshot_month);

	-- Aggregation hot path: every report query filters by period
	CREATE INDEX IF NOT EXISTS idx_snapshots_period
		ON employee_snapshots(snapshot_year, snapshot_month);

	-- Unit grouping
	CREATE INDEX IF NOT EXISTS idx_snapshots_unit
		ON employee_snapshots(unit_ref);

	-- Live HR employees (the generator's read source, and demo seeding)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		unit_ref TEXT,
		unit_name TEXT,
		gender TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		type_name TEXT,
		category_name TEXT,
		custom_type TEXT,
		custom_status TEXT,
		has_contract BOOLEAN NOT NULL DEFAULT FALSE,
		contract_end TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_unit
		ON employees(unit_ref);
	CREATE INDEX IF NOT EXISTS idx_employees_active
		ON employees(active);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOT STORE (workforce.PeriodTxStore interface)
// =============================================================================

// InsertPeriod bulk-inserts a period's snapshots atomically.
func (s *Store) InsertPeriod(ctx context.Context, period workforce.Period, snapshots []workforce.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.insertSnapshots(ctx, tx, period, snapshots); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplacePeriod deletes every row for the period and inserts the new set in
// one transaction: the full-replace semantics of force regeneration.
func (s *Store) ReplacePeriod(ctx context.Context, period workforce.Period, snapshots []workforce.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM employee_snapshots WHERE snapshot_year = ? AND snapshot_month = ?",
		period.Year, period.Month,
	); err != nil {
		return fmt.Errorf("failed to clear period %s: %w", period, err)
	}

	if err := s.insertSnapshots(ctx, tx, period, snapshots); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) insertSnapshots(ctx context.Context, tx *sql.Tx, period workforce.Period, snapshots []workforce.Snapshot) error {
	query := `
		INSERT INTO employee_snapshots
		(id, employee_ref, unit_ref, unit_name, employment_type, employment_status,
		 snapshot_month, snapshot_year, is_active, gender, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, snap := range snapshots {
		if snap.Period() != period {
			return fmt.Errorf("snapshot for %s does not belong to batch period %s", snap.Period(), period)
		}
		_, err := tx.ExecContext(ctx, query,
			snap.ID(),
			string(snap.Employee()),
			string(snap.Unit()),
			snap.UnitName(),
			string(snap.EmploymentType()),
			string(snap.EmploymentStatus()),
			snap.Period().Month,
			snap.Period().Year,
			snap.Active(),
			string(snap.Gender()),
			snap.CapturedAt().Format(time.RFC3339),
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return &workforce.DuplicateError{Employee: snap.Employee(), Period: snap.Period()}
			}
			return fmt.Errorf("failed to insert snapshot for employee %s: %w", snap.Employee(), err)
		}
	}
	return nil
}

// ByPeriod returns a period's snapshot rows ordered by unit then employee.
func (s *Store) ByPeriod(ctx context.Context, period workforce.Period, activeOnly bool) ([]workforce.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_ref, unit_ref, unit_name, employment_type, employment_status,
		       snapshot_month, snapshot_year, is_active, gender, captured_at
		FROM employee_snapshots
		WHERE snapshot_year = ? AND snapshot_month = ?
	`
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY unit_name ASC, employee_ref ASC"

	rows, err := s.db.QueryContext(ctx, query, period.Year, period.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []workforce.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// CountPeriod returns the number of rows (active and inactive) for a period.
func (s *Store) CountPeriod(ctx context.Context, period workforce.Period) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM employee_snapshots WHERE snapshot_year = ? AND snapshot_month = ?",
		period.Year, period.Month,
	).Scan(&count)
	return count, err
}

// AvailablePeriods lists periods with data, newest first.
func (s *Store) AvailablePeriods(ctx context.Context, limit int) ([]workforce.PeriodCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 24
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT snapshot_year, snapshot_month, COUNT(id)
		FROM employee_snapshots
		GROUP BY snapshot_year, snapshot_month
		ORDER BY snapshot_year DESC, snapshot_month DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []workforce.PeriodCount
	for rows.Next() {
		var pc workforce.PeriodCount
		if err := rows.Scan(&pc.Period.Year, &pc.Period.Month, &pc.Count); err != nil {
			return nil, err
		}
		periods = append(periods, pc)
	}
	return periods, rows.Err()
}

func scanSnapshot(rows *sql.Rows) (workforce.Snapshot, error) {
	var (
		id, employee, unit, unitName string
		empType, empStatus, gender   string
		month, year                  int
		active                       bool
		capturedAt                   string
	)

	if err := rows.Scan(&id, &employee, &unit, &unitName, &empType, &empStatus,
		&month, &year, &active, &gender, &capturedAt); err != nil {
		return workforce.Snapshot{}, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	captured, _ := time.Parse(time.RFC3339, capturedAt)
	snap, err := workforce.Rehydrate(
		id,
		workforce.EmployeeRef(employee),
		workforce.UnitRef(unit),
		unitName,
		workforce.EmploymentType(empType),
		workforce.EmploymentStatus(empStatus),
		workforce.Period{Year: year, Month: month},
		active,
		workforce.Gender(gender),
		captured,
	)
	if err != nil {
		return workforce.Snapshot{}, fmt.Errorf("corrupt snapshot row %s: %w", id, err)
	}
	return snap, nil
}

// =============================================================================
// EMPLOYEE STORE (workforce.EmployeeSource interface + admin writes)
// =============================================================================

// SaveEmployee inserts or updates a live employee record. This is the seed/
// admin side of the boundary; the snapshot engine itself only reads.
func (s *Store) SaveEmployee(ctx context.Context, emp workforce.EmployeeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees
		(id, name, unit_ref, unit_name, gender, active, type_name, category_name,
		 custom_type, custom_status, has_contract, contract_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			unit_ref = excluded.unit_ref,
			unit_name = excluded.unit_name,
			gender = excluded.gender,
			active = excluded.active,
			type_name = excluded.type_name,
			category_name = excluded.category_name,
			custom_type = excluded.custom_type,
			custom_status = excluded.custom_status,
			has_contract = excluded.has_contract,
			contract_end = excluded.contract_end
	`

	var contractEnd *string
	if emp.HasContractEnd {
		marker := "fixed-term"
		contractEnd = &marker
	}

	_, err := s.db.ExecContext(ctx, query,
		string(emp.ID), emp.Name, string(emp.UnitID), emp.UnitName, emp.Gender,
		emp.Active, emp.TypeName, emp.CategoryName, emp.CustomType, emp.CustomStatus,
		emp.HasContract, contractEnd,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListEmployees returns live employee records ordered by name.
func (s *Store) ListEmployees(ctx context.Context, filter workforce.EmployeeFilter) ([]workforce.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, unit_ref, unit_name, gender, active, type_name,
		       category_name, custom_type, custom_status, has_contract, contract_end
		FROM employees
	`
	if !filter.IncludeInactive {
		query += " WHERE active = TRUE"
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []workforce.EmployeeRecord
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// GetEmployee retrieves one employee by ID. Returns nil when not found.
func (s *Store) GetEmployee(ctx context.Context, id workforce.EmployeeRef) (*workforce.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, unit_ref, unit_name, gender, active, type_name,
		       category_name, custom_type, custom_status, has_contract, contract_end
		FROM employees WHERE id = ?
	`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	emp, err := scanEmployee(rows)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// DeleteEmployee removes a live employee record. Snapshot history is kept.
func (s *Store) DeleteEmployee(ctx context.Context, id workforce.EmployeeRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", string(id))
	return err
}

func scanEmployee(rows *sql.Rows) (workforce.EmployeeRecord, error) {
	var (
		emp                      workforce.EmployeeRecord
		id, unitRef              string
		unitName, gender         sql.NullString
		typeName, categoryName   sql.NullString
		customType, customStatus sql.NullString
		contractEnd              sql.NullString
	)

	if err := rows.Scan(&id, &emp.Name, &unitRef, &unitName, &gender, &emp.Active,
		&typeName, &categoryName, &customType, &customStatus,
		&emp.HasContract, &contractEnd); err != nil {
		return emp, fmt.Errorf("failed to scan employee: %w", err)
	}

	emp.ID = workforce.EmployeeRef(id)
	emp.UnitID = workforce.UnitRef(unitRef)
	emp.UnitName = unitName.String
	emp.Gender = gender.String
	emp.TypeName = typeName.String
	emp.CategoryName = categoryName.String
	emp.CustomType = customType.String
	emp.CustomStatus = customStatus.String
	emp.HasContractEnd = contractEnd.Valid

	return emp, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"employee_snapshots", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
