/*
trend.go - Time-axis aggregations: monthly matrix and dashboard trend

PURPOSE:
  The official report's section 4 is a per-unit month-by-month table for one
  calendar year; the dashboard additionally shows a trailing-months line
  chart. Both distinguish "no snapshot collected" from "zero after
  collection": months without data are listed outside AvailableMonths and
  excluded from averages.

SEE ALSO:
  - service.go: Period-scoped sections
*/
package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yhc/workforce-engine/workforce"
)

// =============================================================================
// SECTION 4: MONTHLY WORKFORCE MATRIX (Jan-Dec)
// =============================================================================

// MatrixRow is one unit's headcount across months 1..12. Months outside
// AvailableMonths are zero because no snapshot was collected, not because
// the unit was empty.
type MatrixRow struct {
	UnitName string          `json:"unit_name"`
	Months   [13]int         `json:"months"` // index 1..12; index 0 unused
	Average  decimal.Decimal `json:"average"`
}

// MonthlyMatrix is the Jan-Dec table for one year.
type MonthlyMatrix struct {
	Year            int             `json:"year"`
	Headers         []string        `json:"headers"`
	Rows            []MatrixRow     `json:"rows"`
	TotalMonths     [13]int         `json:"total_months"`
	TotalAverage    decimal.Decimal `json:"total_average"`
	AvailableMonths []int           `json:"available_months"`
}

// MonthlyWorkforceMatrix builds the per-unit monthly headcount table for one
// year. Averages divide by the available months where the value is non-zero
// only, never by a flat 12.
func (s *Service) MonthlyWorkforceMatrix(ctx context.Context, year int, units []workforce.UnitRef) (*MonthlyMatrix, error) {
	matrix := &MonthlyMatrix{Year: year, TotalAverage: decimal.Zero}

	allowed := make(map[workforce.UnitRef]bool, len(units))
	for _, u := range units {
		allowed[u] = true
	}

	byUnit := make(map[string]*MatrixRow)
	for month := 1; month <= 12; month++ {
		period := workforce.Period{Year: year, Month: month}
		if err := period.Validate(); err != nil {
			return nil, err
		}
		rows, err := s.snapshots.ByPeriod(ctx, period, true)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			continue
		}
		matrix.AvailableMonths = append(matrix.AvailableMonths, month)
		for _, snap := range rows {
			if len(units) > 0 && !allowed[snap.Unit()] {
				continue
			}
			row, ok := byUnit[snap.UnitName()]
			if !ok {
				row = &MatrixRow{UnitName: snap.UnitName(), Average: decimal.Zero}
				byUnit[snap.UnitName()] = row
			}
			row.Months[month]++
		}
	}

	if len(matrix.AvailableMonths) == 0 {
		return nil, &workforce.UnavailableError{Period: workforce.Period{Year: year, Month: 1}}
	}

	names := make([]string, 0, len(byUnit))
	for name := range byUnit {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		row := byUnit[name]
		row.Average = averageOverAvailable(row.Months, matrix.AvailableMonths)
		matrix.Rows = append(matrix.Rows, *row)
		for m := 1; m <= 12; m++ {
			matrix.TotalMonths[m] += row.Months[m]
		}
	}
	matrix.TotalAverage = averageOverAvailable(matrix.TotalMonths, matrix.AvailableMonths)

	matrix.Headers = append(matrix.Headers, "Unit")
	for m := 1; m <= 12; m++ {
		matrix.Headers = append(matrix.Headers, workforce.MonthNameShort(m))
	}
	matrix.Headers = append(matrix.Headers, "Rata-rata")

	return matrix, nil
}

// averageOverAvailable averages the non-zero values among available months,
// rounded to one decimal place. All-zero rows average to zero.
func averageOverAvailable(months [13]int, available []int) decimal.Decimal {
	sum := 0
	n := 0
	for _, m := range available {
		if months[m] > 0 {
			sum += months[m]
			n++
		}
	}
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(n))).Round(1)
}

// =============================================================================
// DASHBOARD TREND - trailing months line chart
// =============================================================================

// TrendPoint is one month on the dashboard trend line.
type TrendPoint struct {
	Period     workforce.Period `json:"period"`
	Label      string           `json:"label"`
	Total      int              `json:"total"`
	Payroll    int              `json:"payroll"`
	NonPayroll int              `json:"non_payroll"`
	Available  bool             `json:"available"`
}

// Trend is the trailing-months headcount movement, oldest first.
type Trend struct {
	ChartType string       `json:"chart_type"`
	Points    []TrendPoint `json:"points"`
	Total     int          `json:"total"`
}

// WorkforceTrend walks the trailing `months` periods ending at `end`,
// optionally scoped to one unit. Missing periods are zero points with
// Available=false so the chart can distinguish "not collected" from empty.
func (s *Service) WorkforceTrend(ctx context.Context, end workforce.Period, months int, unit workforce.UnitRef) (*Trend, error) {
	if err := end.Validate(); err != nil {
		return nil, err
	}
	if months <= 0 {
		months = 12
	}

	periods := make([]workforce.Period, months)
	p := end
	for i := months - 1; i >= 0; i-- {
		periods[i] = p
		p = p.Previous()
	}

	trend := &Trend{ChartType: "line"}
	for _, period := range periods {
		rows, err := s.snapshots.ByPeriod(ctx, period, true)
		if err != nil {
			return nil, err
		}
		point := TrendPoint{
			Period:    period,
			Label:     workforce.MonthNameShort(period.Month),
			Available: len(rows) > 0,
		}
		for _, snap := range rows {
			if unit != "" && snap.Unit() != unit {
				continue
			}
			point.Total++
			if snap.EmploymentType() == workforce.TypePayroll {
				point.Payroll++
			} else {
				point.NonPayroll++
			}
		}
		trend.Points = append(trend.Points, point)
		trend.Total += point.Total
	}
	return trend, nil
}
