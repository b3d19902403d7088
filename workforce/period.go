package workforce

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - The (year, month) key every snapshot query is scoped to
// =============================================================================

// Period identifies one calendar month of snapshot data. All aggregations are
// keyed on a Period; there is no finer or coarser snapshot granularity.
type Period struct {
	Year  int
	Month int
}

func NewPeriod(year, month int) (Period, error) {
	p := Period{Year: year, Month: month}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate enforces the storage constraints: month 1-12, year 2000-2100.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d outside 1-12", ErrInvalidPeriod, p.Month)
	}
	if p.Year < 2000 || p.Year > 2100 {
		return fmt.Errorf("%w: year %d outside 2000-2100", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// SnapshotDate returns the last calendar day of the period's month. It is a
// pure function of (Year, Month) and is never stored independently, so it can
// never drift from them.
func (p Period) SnapshotDate() time.Time {
	return time.Date(p.Year, time.Month(p.Month)+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// Previous returns the preceding calendar month.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// PreviousMonth returns the period for the month before today. This is the
// default generation target: snapshots are taken at or after month-end.
func PreviousMonth(now time.Time) Period {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := firstOfMonth.AddDate(0, 0, -1)
	return Period{Year: last.Year(), Month: int(last.Month())}
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", MonthName(p.Month), p.Year)
}

// =============================================================================
// MONTH NAMES - report display labels (Indonesian)
// =============================================================================

var monthNames = [13]string{"",
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var monthNamesShort = [13]string{"",
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d", month)
	}
	return monthNames[month]
}

func MonthNameShort(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d", month)
	}
	return monthNamesShort[month]
}
