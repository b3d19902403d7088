/*
snapshot.go - The immutable monthly snapshot record

PURPOSE:
  A Snapshot is one employee's workforce facts frozen for one calendar month.
  It is the ONLY input to report aggregation: reports never read live HR data.

IMMUTABILITY:
  All fact fields are unexported and reachable only through getters. The sole
  constructor validates the enums and period; after construction nothing can
  change a fact. The only way snapshot facts for a period ever change is the
  generator's delete-and-recreate (force regeneration) - never an in-place
  update, and no store implementation exposes one.

SEE ALSO:
  - generator.go: Bulk creation per period
  - store.go:     Persistence interfaces (no update method exists)
*/
package workforce

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot captures one employee's unit and employment classification for one
// period. Fact fields are frozen at construction.
type Snapshot struct {
	id         string
	employee   EmployeeRef
	unit       UnitRef
	unitName   string
	empType    EmploymentType
	empStatus  EmploymentStatus
	period     Period
	active     bool
	gender     Gender
	capturedAt time.Time
}

// NewSnapshot constructs a snapshot row, validating every fact. The row ID is
// assigned here; callers never choose it.
func NewSnapshot(employee EmployeeRef, unit UnitRef, unitName string,
	empType EmploymentType, empStatus EmploymentStatus,
	period Period, active bool, gender Gender, capturedAt time.Time) (Snapshot, error) {

	if employee == "" {
		return Snapshot{}, fmt.Errorf("snapshot requires an employee ref")
	}
	if unit == "" {
		return Snapshot{}, fmt.Errorf("snapshot requires a unit ref (employee %s)", employee)
	}
	if !empType.Valid() {
		return Snapshot{}, fmt.Errorf("invalid employment type %q (employee %s)", empType, employee)
	}
	if !empStatus.Valid() {
		return Snapshot{}, fmt.Errorf("invalid employment status %q (employee %s)", empStatus, employee)
	}
	if !gender.Valid() {
		return Snapshot{}, fmt.Errorf("invalid gender %q (employee %s)", gender, employee)
	}
	if err := period.Validate(); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		id:         uuid.NewString(),
		employee:   employee,
		unit:       unit,
		unitName:   unitName,
		empType:    empType,
		empStatus:  empStatus,
		period:     period,
		active:     active,
		gender:     gender,
		capturedAt: capturedAt.UTC(),
	}, nil
}

// Rehydrate rebuilds a snapshot from persisted fields. It is intended for
// store implementations only; it performs the same validation as NewSnapshot
// but preserves the stored row ID.
func Rehydrate(id string, employee EmployeeRef, unit UnitRef, unitName string,
	empType EmploymentType, empStatus EmploymentStatus,
	period Period, active bool, gender Gender, capturedAt time.Time) (Snapshot, error) {

	s, err := NewSnapshot(employee, unit, unitName, empType, empStatus, period, active, gender, capturedAt)
	if err != nil {
		return Snapshot{}, err
	}
	s.id = id
	return s, nil
}

// Getters. There are no setters: snapshot facts are immutable.

func (s Snapshot) ID() string                       { return s.id }
func (s Snapshot) Employee() EmployeeRef            { return s.employee }
func (s Snapshot) Unit() UnitRef                    { return s.unit }
func (s Snapshot) UnitName() string                 { return s.unitName }
func (s Snapshot) EmploymentType() EmploymentType   { return s.empType }
func (s Snapshot) EmploymentStatus() EmploymentStatus { return s.empStatus }
func (s Snapshot) Period() Period                   { return s.period }
func (s Snapshot) Active() bool                     { return s.active }
func (s Snapshot) Gender() Gender                   { return s.gender }
func (s Snapshot) CapturedAt() time.Time            { return s.capturedAt }

// SnapshotDate is the last calendar day of the snapshot month, derived from
// the period on every call.
func (s Snapshot) SnapshotDate() time.Time { return s.period.SnapshotDate() }

// DisplayName renders "Name - Mon Year" style labels for admin listings.
func (s Snapshot) DisplayName(employeeName string) string {
	return fmt.Sprintf("%s - %s %d", employeeName, MonthNameShort(s.period.Month), s.period.Year)
}
