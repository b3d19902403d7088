package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhc/workforce-engine/workforce"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot(t *testing.T, emp, unit, unitName string, period workforce.Period, active bool) workforce.Snapshot {
	t.Helper()
	s, err := workforce.NewSnapshot(
		workforce.EmployeeRef(emp), workforce.UnitRef(unit), unitName,
		workforce.TypePayroll, workforce.StatusTetap,
		period, active, workforce.GenderFemale,
		time.Date(2025, 4, 1, 7, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return s
}

// =============================================================================
// SNAPSHOT STORE TESTS
// =============================================================================

func TestInsertPeriod_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	p := workforce.Period{Year: 2025, Month: 3}

	err := store.InsertPeriod(ctx, p, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", p, true),
		testSnapshot(t, "emp-2", "u-fin", "Finance", p, true),
	})
	require.NoError(t, err)

	rows, err := store.ByPeriod(ctx, p, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by unit name: Finance first
	assert.Equal(t, workforce.EmployeeRef("emp-2"), rows[0].Employee())
	assert.Equal(t, "Finance", rows[0].UnitName())
	assert.Equal(t, workforce.TypePayroll, rows[0].EmploymentType())
	assert.Equal(t, workforce.StatusTetap, rows[0].EmploymentStatus())
	assert.Equal(t, workforce.GenderFemale, rows[0].Gender())
	assert.Equal(t, p, rows[0].Period())
	assert.True(t, rows[0].CapturedAt().Equal(time.Date(2025, 4, 1, 7, 30, 0, 0, time.UTC)))
}

func TestInsertPeriod_UniqueConstraint(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	p := workforce.Period{Year: 2025, Month: 3}

	require.NoError(t, store.InsertPeriod(ctx, p, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", p, true),
	}))

	err := store.InsertPeriod(ctx, p, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", p, true),
	})
	assert.ErrorIs(t, err, workforce.ErrSnapshotDuplicate)

	var dup *workforce.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, workforce.EmployeeRef("emp-1"), dup.Employee)
	assert.Equal(t, p, dup.Period)

	// The failed batch must not have written anything
	count, err := store.CountPeriod(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertPeriod_SameEmployeeAcrossMonths(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	march := workforce.Period{Year: 2025, Month: 3}
	april := workforce.Period{Year: 2025, Month: 4}

	require.NoError(t, store.InsertPeriod(ctx, march, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", march, true),
	}))
	assert.NoError(t, store.InsertPeriod(ctx, april, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", april, true),
	}), "one snapshot per month per employee is the constraint, not one ever")
}

func TestReplacePeriod_FullSwap(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	p := workforce.Period{Year: 2025, Month: 3}

	require.NoError(t, store.InsertPeriod(ctx, p, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", p, true),
		testSnapshot(t, "emp-2", "u-ops", "Operations", p, true),
	}))

	require.NoError(t, store.ReplacePeriod(ctx, p, []workforce.Snapshot{
		testSnapshot(t, "emp-3", "u-fin", "Finance", p, true),
	}))

	rows, err := store.ByPeriod(ctx, p, false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, workforce.EmployeeRef("emp-3"), rows[0].Employee())

	// The unique index must accept the replaced employees again
	assert.NoError(t, store.InsertPeriod(ctx, p, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", p, true),
	}))
}

func TestReplacePeriod_OtherPeriodsUntouched(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	march := workforce.Period{Year: 2025, Month: 3}
	april := workforce.Period{Year: 2025, Month: 4}

	require.NoError(t, store.InsertPeriod(ctx, march, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", march, true),
	}))
	require.NoError(t, store.InsertPeriod(ctx, april, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", april, true),
	}))

	require.NoError(t, store.ReplacePeriod(ctx, march, nil))

	marchCount, _ := store.CountPeriod(ctx, march)
	aprilCount, _ := store.CountPeriod(ctx, april)
	assert.Equal(t, 0, marchCount)
	assert.Equal(t, 1, aprilCount, "replacing March must never touch April")
}

func TestByPeriod_ActiveOnlyFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	p := workforce.Period{Year: 2025, Month: 3}

	require.NoError(t, store.InsertPeriod(ctx, p, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", p, true),
		testSnapshot(t, "emp-2", "u-ops", "Operations", p, false),
	}))

	all, err := store.ByPeriod(ctx, p, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := store.ByPeriod(ctx, p, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, workforce.EmployeeRef("emp-1"), active[0].Employee())
}

func TestAvailablePeriods_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, p := range []workforce.Period{
		{Year: 2024, Month: 12},
		{Year: 2025, Month: 2},
		{Year: 2025, Month: 1},
	} {
		require.NoError(t, store.InsertPeriod(ctx, p, []workforce.Snapshot{
			testSnapshot(t, "emp-1", "u-ops", "Operations", p, true),
		}))
	}

	periods, err := store.AvailablePeriods(ctx, 0)
	require.NoError(t, err)
	require.Len(t, periods, 3)
	assert.Equal(t, workforce.Period{Year: 2025, Month: 2}, periods[0].Period)
	assert.Equal(t, workforce.Period{Year: 2025, Month: 1}, periods[1].Period)
	assert.Equal(t, workforce.Period{Year: 2024, Month: 12}, periods[2].Period)
	assert.Equal(t, 1, periods[0].Count)
}

// =============================================================================
// EMPLOYEE STORE TESTS
// =============================================================================

func TestEmployee_SaveListGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	emp := workforce.EmployeeRecord{
		ID: "emp-1", Name: "Citra Lestari",
		UnitID: "u-ops", UnitName: "Operations",
		Gender: "female", Active: true,
		CustomStatus: "Tetap",
		HasContract:  true,
	}
	require.NoError(t, store.SaveEmployee(ctx, emp))

	got, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, emp, *got)

	// Upsert: same ID updates in place
	emp.CustomStatus = "PKWT"
	emp.HasContractEnd = true
	require.NoError(t, store.SaveEmployee(ctx, emp))

	all, err := store.ListEmployees(ctx, workforce.EmployeeFilter{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "PKWT", all[0].CustomStatus)
	assert.True(t, all[0].HasContractEnd)
}

func TestEmployee_ListFiltersInactive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEmployee(ctx, workforce.EmployeeRecord{
		ID: "emp-1", Name: "Active One", UnitID: "u-ops", Active: true,
	}))
	require.NoError(t, store.SaveEmployee(ctx, workforce.EmployeeRecord{
		ID: "emp-2", Name: "Gone Two", UnitID: "u-ops", Active: false,
	}))

	active, err := store.ListEmployees(ctx, workforce.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, workforce.EmployeeRef("emp-1"), active[0].ID)

	all, err := store.ListEmployees(ctx, workforce.EmployeeFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEmployee_GetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetEmployee(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmployee_DeleteKeepsSnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	p := workforce.Period{Year: 2025, Month: 3}

	require.NoError(t, store.SaveEmployee(ctx, workforce.EmployeeRecord{
		ID: "emp-1", Name: "Leaver", UnitID: "u-ops", Active: true,
	}))
	require.NoError(t, store.InsertPeriod(ctx, p, []workforce.Snapshot{
		testSnapshot(t, "emp-1", "u-ops", "Operations", p, true),
	}))

	require.NoError(t, store.DeleteEmployee(ctx, "emp-1"))

	got, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	count, err := store.CountPeriod(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "snapshot history survives employee deletion")
}

// =============================================================================
// END-TO-END: GENERATOR OVER SQLITE
// =============================================================================

func TestGeneratorOverSQLite(t *testing.T) {
	// The store serves both sides of the generator: the employee source and
	// the snapshot sink.
	store := newTestStore(t)
	ctx := context.Background()
	p := workforce.Period{Year: 2025, Month: 3}

	require.NoError(t, store.SaveEmployee(ctx, workforce.EmployeeRecord{
		ID: "emp-1", Name: "Andi", UnitID: "u-ops", UnitName: "Operations",
		Gender: "male", Active: true, CustomStatus: "Tetap",
	}))
	require.NoError(t, store.SaveEmployee(ctx, workforce.EmployeeRecord{
		ID: "emp-2", Name: "Beni", UnitID: "", Active: true, CustomStatus: "Tetap",
	}))

	gen := workforce.NewGenerator(store, store)
	result, err := gen.Generate(ctx, p, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.SkippedNoUnit)

	rows, err := store.ByPeriod(ctx, p, true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, workforce.EmployeeRef("emp-1"), rows[0].Employee())
	assert.Equal(t, workforce.StatusTetap, rows[0].EmploymentStatus())
}
