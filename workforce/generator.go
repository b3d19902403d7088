/*
generator.go - Monthly snapshot generation

PURPOSE:
  Materializes one snapshot row per employee for a target period from the
  live HR store. Runs at or after month-end; the snapshot set is immutable
  once written.

CONTRACT:
  Generate(ctx, period, force) -> (Result, error)
  - Existing period + force=false: no-op, Result.Created == 0. The caller
    must not assume data was written.
  - force=true: the existing period is discarded and recreated atomically -
    a full replace, never a merge.
  - Employees with no resolvable unit are skipped and counted, never written
    with an empty unit.
  - Ambiguous classifications (documented default applied) are collected for
    audit, not silently absorbed.

CONCURRENCY:
  A per-period mutex serializes concurrent generation for the same period so
  two force regenerations cannot interleave delete and insert. The store's
  ReplacePeriod is additionally transactional, so readers never observe a
  half-replaced period.

SEE ALSO:
  - classify.go: Classification rules
  - store.go:    PeriodTxStore contract
*/
package workforce

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// =============================================================================
// RESULT
// =============================================================================

// AmbiguousEmployee records an employee whose raw attributes did not clearly
// map to an employment type/status, for later manual review.
type AmbiguousEmployee struct {
	Employee EmployeeRef
	Name     string
	Type     EmploymentType
	Status   EmploymentStatus
}

// Result summarizes one generation run. Created is the contract count: the
// number of snapshot rows actually written.
type Result struct {
	Period        Period
	Created       int
	SkippedNoUnit int
	Ambiguous     []AmbiguousEmployee
	Replaced      bool // true when force discarded an existing period
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator writes monthly snapshots. It is the only writer of the snapshot
// store.
type Generator struct {
	Snapshots  PeriodTxStore
	Employees  EmployeeSource
	Classifier Classifier

	// Now is injected for reproducible tests; defaults to time.Now.
	Now func() time.Time

	mu      sync.Mutex
	periods map[Period]*sync.Mutex
}

func NewGenerator(snapshots PeriodTxStore, employees EmployeeSource) *Generator {
	return &Generator{
		Snapshots:  snapshots,
		Employees:  employees,
		Classifier: DefaultClassifier(),
		Now:        time.Now,
		periods:    make(map[Period]*sync.Mutex),
	}
}

// periodLock returns the mutex guarding one period's generation.
func (g *Generator) periodLock(p Period) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.periods == nil {
		g.periods = make(map[Period]*sync.Mutex)
	}
	if _, ok := g.periods[p]; !ok {
		g.periods[p] = &sync.Mutex{}
	}
	return g.periods[p]
}

// Generate creates the snapshot set for one period.
func (g *Generator) Generate(ctx context.Context, period Period, force bool) (Result, error) {
	if err := period.Validate(); err != nil {
		return Result{}, err
	}
	if g.Employees == nil {
		return Result{}, ErrEmployeeSourceRequired
	}

	lock := g.periodLock(period)
	lock.Lock()
	defer lock.Unlock()

	existing, err := g.Snapshots.CountPeriod(ctx, period)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check existing snapshots: %w", err)
	}
	if existing > 0 && !force {
		return Result{Period: period}, nil
	}

	employees, err := g.Employees.ListEmployees(ctx, EmployeeFilter{IncludeInactive: true})
	if err != nil {
		return Result{}, fmt.Errorf("failed to list employees: %w", err)
	}

	result := Result{Period: period, Replaced: existing > 0}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	capturedAt := now()

	snapshots := make([]Snapshot, 0, len(employees))
	for _, emp := range employees {
		if emp.UnitID == "" {
			result.SkippedNoUnit++
			continue
		}

		cls := g.Classifier.Classify(emp)
		if cls.Ambiguous() {
			result.Ambiguous = append(result.Ambiguous, AmbiguousEmployee{
				Employee: emp.ID,
				Name:     emp.Name,
				Type:     cls.Type,
				Status:   cls.Status,
			})
		}

		snap, err := NewSnapshot(
			emp.ID, emp.UnitID, emp.UnitName,
			cls.Type, cls.Status,
			period, emp.Active, NormalizeGender(emp.Gender), capturedAt,
		)
		if err != nil {
			return Result{}, fmt.Errorf("failed to build snapshot for employee %s: %w", emp.ID, err)
		}
		snapshots = append(snapshots, snap)
	}

	if existing > 0 {
		err = g.Snapshots.ReplacePeriod(ctx, period, snapshots)
	} else {
		err = g.Snapshots.InsertPeriod(ctx, period, snapshots)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to write snapshots for %s: %w", period, err)
	}

	result.Created = len(snapshots)
	return result, nil
}
