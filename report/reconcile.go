/*
reconcile.go - Cross-section reconciliation

PURPOSE:
  The report's sections are computed independently; a future change to one
  aggregation's filter or grouping could silently skew a single section.
  Before a document is emitted, every value that two sections both claim to
  represent the same total must be numerically identical. A mismatch is
  fatal: no partial or "mostly right" report ever leaves the assembler.
*/
package report

import (
	"fmt"

	"github.com/yhc/workforce-engine/analytics"
	"github.com/yhc/workforce-engine/workforce"
)

// MismatchError describes which sections disagreed and on what.
type MismatchError struct {
	Period   workforce.Period
	Left     string
	Right    string
	LeftVal  int
	RightVal int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("report totals for %s do not reconcile: %s=%d, %s=%d",
		e.Period, e.Left, e.LeftVal, e.Right, e.RightVal)
}

func (e *MismatchError) Unwrap() error { return workforce.ErrReconciliationMismatch }

// Reconcile cross-checks the grand totals of the independently computed
// sections against the payroll table's grand total:
//   - the payroll chart's payroll + non-payroll sum
//   - the per-unit chart sum
//   - the status distribution total
func Reconcile(period workforce.Period,
	table *analytics.PayrollTable,
	chart *analytics.PayrollChart,
	unitTotals *analytics.UnitTotals,
	statusDist *analytics.StatusDistribution) error {

	tableTotal := table.Totals.Total

	chartCombined := chart.PayrollTotal + chart.NonPayrollTotal
	if tableTotal != chartCombined {
		return &MismatchError{
			Period: period,
			Left:   "payroll_table.total", LeftVal: tableTotal,
			Right: "payroll_chart.combined", RightVal: chartCombined,
		}
	}

	if tableTotal != unitTotals.Total {
		return &MismatchError{
			Period: period,
			Left:   "payroll_table.total", LeftVal: tableTotal,
			Right: "unit_totals.total", RightVal: unitTotals.Total,
		}
	}

	if tableTotal != statusDist.Total {
		return &MismatchError{
			Period: period,
			Left:   "payroll_table.total", LeftVal: tableTotal,
			Right: "status_distribution.total", RightVal: statusDist.Total,
		}
	}

	return nil
}
