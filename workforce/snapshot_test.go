package workforce

import (
	"testing"
	"time"
)

func validSnapshotArgs() (EmployeeRef, UnitRef, string, EmploymentType, EmploymentStatus, Period, bool, Gender, time.Time) {
	return "emp-1", "unit-1", "Operations", TypePayroll, StatusTetap,
		Period{Year: 2025, Month: 3}, true, GenderFemale,
		time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
}

func TestNewSnapshot_AssignsIDAndFreezesFacts(t *testing.T) {
	emp, unit, unitName, typ, status, period, active, gender, at := validSnapshotArgs()

	snap, err := NewSnapshot(emp, unit, unitName, typ, status, period, active, gender, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.ID() == "" {
		t.Error("expected a generated row ID")
	}
	if snap.Employee() != emp || snap.Unit() != unit || snap.UnitName() != unitName {
		t.Error("identity facts not preserved")
	}
	if snap.EmploymentType() != typ || snap.EmploymentStatus() != status {
		t.Error("classification facts not preserved")
	}
	if snap.Period() != period || !snap.Active() || snap.Gender() != gender {
		t.Error("period/active/gender facts not preserved")
	}
	if !snap.CapturedAt().Equal(at) {
		t.Errorf("captured at %v, want %v", snap.CapturedAt(), at)
	}
}

func TestNewSnapshot_UniqueIDs(t *testing.T) {
	emp, unit, unitName, typ, status, period, active, gender, at := validSnapshotArgs()

	a, _ := NewSnapshot(emp, unit, unitName, typ, status, period, active, gender, at)
	b, _ := NewSnapshot(emp, unit, unitName, typ, status, period, active, gender, at)
	if a.ID() == b.ID() {
		t.Error("two constructions must never share a row ID")
	}
}

func TestNewSnapshot_ValidatesEveryFact(t *testing.T) {
	emp, unit, unitName, typ, status, period, active, gender, at := validSnapshotArgs()

	cases := []struct {
		name string
		fn   func() error
	}{
		{"missing employee", func() error {
			_, err := NewSnapshot("", unit, unitName, typ, status, period, active, gender, at)
			return err
		}},
		{"missing unit", func() error {
			_, err := NewSnapshot(emp, "", unitName, typ, status, period, active, gender, at)
			return err
		}},
		{"invalid type", func() error {
			_, err := NewSnapshot(emp, unit, unitName, "casual", status, period, active, gender, at)
			return err
		}},
		{"invalid status", func() error {
			_, err := NewSnapshot(emp, unit, unitName, typ, "probation", period, active, gender, at)
			return err
		}},
		{"invalid gender", func() error {
			_, err := NewSnapshot(emp, unit, unitName, typ, status, period, active, "unknown", at)
			return err
		}},
		{"invalid period", func() error {
			_, err := NewSnapshot(emp, unit, unitName, typ, status, Period{Year: 2025, Month: 13}, active, gender, at)
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fn() == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestRehydrate_PreservesStoredID(t *testing.T) {
	emp, unit, unitName, typ, status, period, active, gender, at := validSnapshotArgs()

	snap, err := Rehydrate("row-42", emp, unit, unitName, typ, status, period, active, gender, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.ID() != "row-42" {
		t.Errorf("expected stored ID row-42, got %s", snap.ID())
	}
}

func TestSnapshot_SnapshotDateDerivedFromPeriod(t *testing.T) {
	emp, unit, unitName, typ, status, _, active, gender, at := validSnapshotArgs()

	snap, _ := NewSnapshot(emp, unit, unitName, typ, status,
		Period{Year: 2024, Month: 2}, active, gender, at)
	got := snap.SnapshotDate()
	if got.Day() != 29 || got.Month() != time.February {
		t.Errorf("expected 2024-02-29, got %v", got)
	}
}

func TestSnapshot_DisplayName(t *testing.T) {
	emp, unit, unitName, typ, status, period, active, gender, at := validSnapshotArgs()

	snap, _ := NewSnapshot(emp, unit, unitName, typ, status, period, active, gender, at)
	if got := snap.DisplayName("Citra Lestari"); got != "Citra Lestari - Mar 2025" {
		t.Errorf("unexpected display name %q", got)
	}
}
