// Package store provides SnapshotStore implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yhc/workforce-engine/workforce"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	snapshots map[workforce.Period][]workforce.Snapshot
	seen      map[memKey]bool
}

type memKey struct {
	Employee workforce.EmployeeRef
	Period   workforce.Period
}

func NewMemory() *Memory {
	return &Memory{
		snapshots: make(map[workforce.Period][]workforce.Snapshot),
		seen:      make(map[memKey]bool),
	}
}

// InsertPeriod bulk-inserts a period's snapshots, enforcing uniqueness.
// All-or-nothing: a duplicate anywhere in the batch writes nothing.
func (m *Memory) InsertPeriod(_ context.Context, period workforce.Period, snapshots []workforce.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	batch := make(map[memKey]bool, len(snapshots))
	for _, s := range snapshots {
		if s.Period() != period {
			return fmt.Errorf("snapshot for %s does not belong to batch period %s", s.Period(), period)
		}
		k := memKey{s.Employee(), s.Period()}
		if m.seen[k] || batch[k] {
			return &workforce.DuplicateError{Employee: s.Employee(), Period: s.Period()}
		}
		batch[k] = true
	}

	for _, s := range snapshots {
		m.seen[memKey{s.Employee(), s.Period()}] = true
		m.snapshots[s.Period()] = append(m.snapshots[s.Period()], s)
	}
	return nil
}

// ReplacePeriod atomically discards and recreates one period.
func (m *Memory) ReplacePeriod(_ context.Context, period workforce.Period, snapshots []workforce.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate before touching state so a bad batch leaves the old period
	// intact. Every row belongs to this period, so the only possible
	// collisions are within the batch itself.
	batch := make(map[memKey]bool, len(snapshots))
	for _, s := range snapshots {
		if s.Period() != period {
			return fmt.Errorf("snapshot for %s does not belong to batch period %s", s.Period(), period)
		}
		k := memKey{s.Employee(), s.Period()}
		if batch[k] {
			return &workforce.DuplicateError{Employee: s.Employee(), Period: s.Period()}
		}
		batch[k] = true
	}

	for _, s := range m.snapshots[period] {
		delete(m.seen, memKey{s.Employee(), period})
	}
	delete(m.snapshots, period)

	for _, s := range snapshots {
		m.seen[memKey{s.Employee(), s.Period()}] = true
		m.snapshots[s.Period()] = append(m.snapshots[s.Period()], s)
	}
	return nil
}

// ByPeriod returns a period's rows, ordered by unit name then employee.
func (m *Memory) ByPeriod(_ context.Context, period workforce.Period, activeOnly bool) ([]workforce.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []workforce.Snapshot
	for _, s := range m.snapshots[period] {
		if activeOnly && !s.Active() {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitName() != out[j].UnitName() {
			return out[i].UnitName() < out[j].UnitName()
		}
		return out[i].Employee() < out[j].Employee()
	})
	return out, nil
}

func (m *Memory) CountPeriod(_ context.Context, period workforce.Period) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snapshots[period]), nil
}

// AvailablePeriods lists periods with data, newest first.
func (m *Memory) AvailablePeriods(_ context.Context, limit int) ([]workforce.PeriodCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]workforce.PeriodCount, 0, len(m.snapshots))
	for p, rows := range m.snapshots {
		if len(rows) == 0 {
			continue
		}
		out = append(out, workforce.PeriodCount{Period: p, Count: len(rows)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period.Year != out[j].Period.Year {
			return out[i].Period.Year > out[j].Period.Year
		}
		return out[i].Period.Month > out[j].Period.Month
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
