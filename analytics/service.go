/*
Package analytics provides snapshot aggregation for reports and dashboards.

PURPOSE:
  Pure, side-effect-free transformations from one period's snapshot rows into
  the summary shapes the official report and the dashboard consume: the
  payroll-vs-non-payroll table, per-unit totals, the monthly matrix/trend,
  and the employment status distribution.

PRINCIPLES (NON-NEGOTIABLE):
  1. All data comes from snapshots - no live employee queries in this package
  2. A period with zero snapshot rows is an error (ErrSnapshotUnavailable),
     never an empty report
  3. Results are reproducible: same snapshot data in, same output out
  4. Counts are integers; averages and percentages use decimal to keep
     report output free of float drift

OUTPUT SHAPES:
  Every chart-bound result carries labels, data, colors, a total and
  metadata, mirroring what the renderer collaborator expects.

SEE ALSO:
  - report/assembler.go: Fixed-order document assembly over this service
  - workforce/store.go:  SnapshotStore interface this reads from
*/
package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yhc/workforce-engine/workforce"
)

// Service aggregates snapshot rows. It holds no mutable state beyond its
// dependencies and is safe for concurrent use.
type Service struct {
	snapshots workforce.SnapshotStore
	catalog   workforce.StatusCatalog
}

func NewService(snapshots workforce.SnapshotStore, catalog workforce.StatusCatalog) *Service {
	return &Service{snapshots: snapshots, catalog: catalog}
}

// =============================================================================
// PRECONDITION - snapshot must exist before any aggregation
// =============================================================================

// ValidateSnapshotExists fails with *workforce.UnavailableError when the
// period has zero snapshot rows. Aggregations call this before reading;
// there is no fallback to live data.
func (s *Service) ValidateSnapshotExists(ctx context.Context, period workforce.Period) error {
	count, err := s.snapshots.CountPeriod(ctx, period)
	if err != nil {
		return err
	}
	if count == 0 {
		return &workforce.UnavailableError{Period: period}
	}
	return nil
}

// activeSnapshots loads the period's active rows after the existence check,
// optionally restricted to a unit filter.
func (s *Service) activeSnapshots(ctx context.Context, period workforce.Period, units []workforce.UnitRef) ([]workforce.Snapshot, error) {
	if err := s.ValidateSnapshotExists(ctx, period); err != nil {
		return nil, err
	}
	rows, err := s.snapshots.ByPeriod(ctx, period, true)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return rows, nil
	}
	allowed := make(map[workforce.UnitRef]bool, len(units))
	for _, u := range units {
		allowed[u] = true
	}
	filtered := rows[:0:0]
	for _, r := range rows {
		if allowed[r.Unit()] {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// =============================================================================
// SECTION 1: PAYROLL VS NON-PAYROLL TABLE (primary report table)
// =============================================================================

// TableRow is one unit's gender/type breakdown. The derived totals hold
// payroll_total = payroll_male + payroll_female and
// total = payroll_total + non_payroll_total by construction.
type TableRow struct {
	UnitName         string `json:"unit_name"`
	PayrollMale      int    `json:"payroll_male"`
	PayrollFemale    int    `json:"payroll_female"`
	PayrollTotal     int    `json:"payroll_total"`
	NonPayrollMale   int    `json:"non_payroll_male"`
	NonPayrollFemale int    `json:"non_payroll_female"`
	NonPayrollTotal  int    `json:"non_payroll_total"`
	Total            int    `json:"total"`
}

// TableMetadata annotates a table with its period context.
type TableMetadata struct {
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	PeriodName    string `json:"period_name"`
	UnitCount     int    `json:"unit_count"`
	SnapshotCount int    `json:"snapshot_count"`
}

// PayrollTable is the primary report section.
type PayrollTable struct {
	Rows     []TableRow    `json:"rows"`
	Totals   TableRow      `json:"totals"`
	Metadata TableMetadata `json:"metadata"`
}

// PayrollVsNonPayrollTable groups the period's active snapshots by unit with
// a gender breakdown per employment type. Units are ordered by name.
func (s *Service) PayrollVsNonPayrollTable(ctx context.Context, period workforce.Period, units []workforce.UnitRef) (*PayrollTable, error) {
	rows, err := s.activeSnapshots(ctx, period, units)
	if err != nil {
		return nil, err
	}

	type counts struct{ pm, pf, nm, nf int }
	byUnit := make(map[string]*counts)
	for _, snap := range rows {
		c, ok := byUnit[snap.UnitName()]
		if !ok {
			c = &counts{}
			byUnit[snap.UnitName()] = c
		}
		// The report has two gender columns; "other" counts in female per the
		// original report layout.
		female := snap.Gender() != workforce.GenderMale
		switch {
		case snap.EmploymentType() == workforce.TypePayroll && !female:
			c.pm++
		case snap.EmploymentType() == workforce.TypePayroll:
			c.pf++
		case !female:
			c.nm++
		default:
			c.nf++
		}
	}

	names := make([]string, 0, len(byUnit))
	for name := range byUnit {
		names = append(names, name)
	}
	sort.Strings(names)

	table := &PayrollTable{Rows: make([]TableRow, 0, len(names))}
	table.Totals.UnitName = "Total"
	for _, name := range names {
		c := byUnit[name]
		row := TableRow{
			UnitName:         name,
			PayrollMale:      c.pm,
			PayrollFemale:    c.pf,
			PayrollTotal:     c.pm + c.pf,
			NonPayrollMale:   c.nm,
			NonPayrollFemale: c.nf,
			NonPayrollTotal:  c.nm + c.nf,
		}
		row.Total = row.PayrollTotal + row.NonPayrollTotal
		table.Rows = append(table.Rows, row)

		table.Totals.PayrollMale += row.PayrollMale
		table.Totals.PayrollFemale += row.PayrollFemale
		table.Totals.PayrollTotal += row.PayrollTotal
		table.Totals.NonPayrollMale += row.NonPayrollMale
		table.Totals.NonPayrollFemale += row.NonPayrollFemale
		table.Totals.NonPayrollTotal += row.NonPayrollTotal
		table.Totals.Total += row.Total
	}

	table.Metadata = TableMetadata{
		Year:          period.Year,
		Month:         period.Month,
		PeriodName:    period.String(),
		UnitCount:     len(table.Rows),
		SnapshotCount: len(rows),
	}
	return table, nil
}

// =============================================================================
// SECTION 2: PAYROLL VS NON-PAYROLL CHART
// =============================================================================

// Dataset is one chart series.
type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
	Color string `json:"color,omitempty"`
}

// PayrollChart is the bar-chart companion of the payroll table. Its values
// are derived from the table so they can never diverge from it.
type PayrollChart struct {
	ChartType       string        `json:"chart_type"`
	Title           string        `json:"title"`
	Labels          []string      `json:"labels"`
	Datasets        []Dataset     `json:"datasets"`
	PayrollTotal    int           `json:"payroll_total"`
	NonPayrollTotal int           `json:"non_payroll_total"`
	Metadata        TableMetadata `json:"metadata"`
}

// PayrollVsNonPayrollChart renders the table as two bar series per unit.
func (s *Service) PayrollVsNonPayrollChart(ctx context.Context, period workforce.Period, units []workforce.UnitRef) (*PayrollChart, error) {
	table, err := s.PayrollVsNonPayrollTable(ctx, period, units)
	if err != nil {
		return nil, err
	}

	chart := &PayrollChart{
		ChartType:       "bar",
		Title:           "Perbandingan Payroll vs Non-Payroll per Unit",
		Labels:          make([]string, len(table.Rows)),
		PayrollTotal:    table.Totals.PayrollTotal,
		NonPayrollTotal: table.Totals.NonPayrollTotal,
		Metadata:        table.Metadata,
	}
	payroll := make([]int, len(table.Rows))
	nonPayroll := make([]int, len(table.Rows))
	for i, row := range table.Rows {
		chart.Labels[i] = row.UnitName
		payroll[i] = row.PayrollTotal
		nonPayroll[i] = row.NonPayrollTotal
	}
	chart.Datasets = []Dataset{
		{Label: "Payroll", Data: payroll, Color: "#714B67"},
		{Label: "Non-Payroll", Data: nonPayroll, Color: "#017E84"},
	}
	return chart, nil
}

// =============================================================================
// SECTION 3: TOTAL WORKFORCE PER UNIT
// =============================================================================

// UnitDetail breaks a unit's total down by type and status.
type UnitDetail struct {
	Payroll    int                                `json:"payroll"`
	NonPayroll int                                `json:"non_payroll"`
	ByStatus   map[workforce.EmploymentStatus]int `json:"by_status"`
}

// UnitTotals is the total-per-unit chart, sorted descending by total.
type UnitTotals struct {
	ChartType string                `json:"chart_type"`
	Title     string                `json:"title"`
	Labels    []string              `json:"labels"`
	Data      []int                 `json:"data"`
	Total     int                   `json:"total"`
	Details   map[string]UnitDetail `json:"details"`
	Metadata  TableMetadata         `json:"metadata"`
}

// TotalWorkforcePerUnit collapses each unit to one headcount, all statuses
// included, sorted descending by total (ties broken by unit name so output
// is reproducible).
func (s *Service) TotalWorkforcePerUnit(ctx context.Context, period workforce.Period, units []workforce.UnitRef) (*UnitTotals, error) {
	rows, err := s.activeSnapshots(ctx, period, units)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	details := make(map[string]UnitDetail)
	for _, snap := range rows {
		name := snap.UnitName()
		totals[name]++
		d, ok := details[name]
		if !ok {
			d = UnitDetail{ByStatus: make(map[workforce.EmploymentStatus]int)}
			for _, st := range s.catalog.Order() {
				d.ByStatus[st] = 0
			}
		}
		if snap.EmploymentType() == workforce.TypePayroll {
			d.Payroll++
		} else {
			d.NonPayroll++
		}
		d.ByStatus[snap.EmploymentStatus()]++
		details[name] = d
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	out := &UnitTotals{
		ChartType: "bar",
		Title:     "JUMLAH KARYAWAN (TERMASUK STATUS KHUSUS)",
		Labels:    names,
		Data:      make([]int, len(names)),
		Details:   details,
		Metadata: TableMetadata{
			Year:          period.Year,
			Month:         period.Month,
			PeriodName:    period.String(),
			UnitCount:     len(names),
			SnapshotCount: len(rows),
		},
	}
	for i, name := range names {
		out.Data[i] = totals[name]
		out.Total += totals[name]
	}
	return out, nil
}

// =============================================================================
// SECTION 5: EMPLOYMENT STATUS DISTRIBUTION
// =============================================================================

// StatusSlice is one status's share of the distribution.
type StatusSlice struct {
	Status     workforce.EmploymentStatus `json:"status"`
	Label      string                     `json:"label"`
	Color      string                     `json:"color"`
	Count      int                        `json:"count"`
	Percentage decimal.Decimal            `json:"percentage"`
}

// StatusDistribution covers the fixed six-category set in canonical order.
type StatusDistribution struct {
	ChartType string        `json:"chart_type"`
	Title     string        `json:"title"`
	Slices    []StatusSlice `json:"slices"`
	Total     int           `json:"total"`
	Metadata  TableMetadata `json:"metadata"`
}

// EmploymentStatusDistribution counts the period's active snapshots per
// status. The official report keeps the catalog's canonical order, never a
// count sort; percentages are computed against the six-category total and
// rounded to one decimal place.
func (s *Service) EmploymentStatusDistribution(ctx context.Context, period workforce.Period, units []workforce.UnitRef) (*StatusDistribution, error) {
	rows, err := s.activeSnapshots(ctx, period, units)
	if err != nil {
		return nil, err
	}

	counts := make(map[workforce.EmploymentStatus]int)
	for _, snap := range rows {
		counts[snap.EmploymentStatus()]++
	}

	dist := &StatusDistribution{
		ChartType: "pie",
		Title:     "Distribusi Status Kepegawaian",
		Total:     len(rows),
		Metadata: TableMetadata{
			Year:          period.Year,
			Month:         period.Month,
			PeriodName:    period.String(),
			SnapshotCount: len(rows),
		},
	}

	hundred := decimal.NewFromInt(100)
	total := decimal.NewFromInt(int64(dist.Total))
	for _, status := range s.catalog.Order() {
		slice := StatusSlice{
			Status:     status,
			Label:      s.catalog.Label(status),
			Color:      s.catalog.Color(status),
			Count:      counts[status],
			Percentage: decimal.Zero,
		}
		if dist.Total > 0 {
			slice.Percentage = decimal.NewFromInt(int64(slice.Count)).Mul(hundred).Div(total).Round(1)
		}
		dist.Slices = append(dist.Slices, slice)
	}
	return dist, nil
}
