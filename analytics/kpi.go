/*
kpi.go - Dashboard KPI and executive summary

PURPOSE:
  Headline numbers for the dashboard: total/active/inactive counts, payroll
  share, gender share, plus the executive-summary bundle combining the
  per-unit chart, the payroll comparison, and the status distribution.
  Everything is snapshot-based; the dashboard shows the same numbers the
  official report reconciles.
*/
package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yhc/workforce-engine/workforce"
)

// KPISummary holds the dashboard headline numbers for one period.
type KPISummary struct {
	Period            workforce.Period `json:"period"`
	TotalEmployees    int              `json:"total_employees"`
	ActiveEmployees   int              `json:"active_employees"`
	InactiveEmployees int              `json:"inactive_employees"`
	PayrollCount      int              `json:"payroll_count"`
	NonPayrollCount   int              `json:"non_payroll_count"`
	PayrollPercentage decimal.Decimal  `json:"payroll_percentage"`
	MaleCount         int              `json:"male_count"`
	FemaleCount       int              `json:"female_count"`
	MalePercentage    decimal.Decimal  `json:"male_percentage"`
}

// KPI computes headline counts over the whole period (active rows drive the
// ratios; the inactive count comes from the full row set).
func (s *Service) KPI(ctx context.Context, period workforce.Period, units []workforce.UnitRef) (*KPISummary, error) {
	if err := s.ValidateSnapshotExists(ctx, period); err != nil {
		return nil, err
	}
	all, err := s.snapshots.ByPeriod(ctx, period, false)
	if err != nil {
		return nil, err
	}

	allowed := make(map[workforce.UnitRef]bool, len(units))
	for _, u := range units {
		allowed[u] = true
	}

	kpi := &KPISummary{
		Period:            period,
		PayrollPercentage: decimal.Zero,
		MalePercentage:    decimal.Zero,
	}
	for _, snap := range all {
		if len(units) > 0 && !allowed[snap.Unit()] {
			continue
		}
		kpi.TotalEmployees++
		if !snap.Active() {
			kpi.InactiveEmployees++
			continue
		}
		kpi.ActiveEmployees++
		if snap.EmploymentType() == workforce.TypePayroll {
			kpi.PayrollCount++
		} else {
			kpi.NonPayrollCount++
		}
		switch snap.Gender() {
		case workforce.GenderMale:
			kpi.MaleCount++
		case workforce.GenderFemale:
			kpi.FemaleCount++
		}
	}

	if kpi.ActiveEmployees > 0 {
		active := decimal.NewFromInt(int64(kpi.ActiveEmployees))
		hundred := decimal.NewFromInt(100)
		kpi.PayrollPercentage = decimal.NewFromInt(int64(kpi.PayrollCount)).Mul(hundred).Div(active).Round(1)
		kpi.MalePercentage = decimal.NewFromInt(int64(kpi.MaleCount)).Mul(hundred).Div(active).Round(1)
	}
	return kpi, nil
}

// ExecutiveSummary bundles the dashboard's mandatory charts with the KPI
// block, all computed from the same period's snapshots.
type ExecutiveSummary struct {
	Period             workforce.Period    `json:"period"`
	KPI                *KPISummary         `json:"kpi"`
	TotalPerUnit       *UnitTotals         `json:"total_per_unit"`
	PayrollComparison  *PayrollChart       `json:"payroll_comparison"`
	StatusDistribution *StatusDistribution `json:"status_distribution"`
}

func (s *Service) ExecutiveSummary(ctx context.Context, period workforce.Period, units []workforce.UnitRef) (*ExecutiveSummary, error) {
	kpi, err := s.KPI(ctx, period, units)
	if err != nil {
		return nil, err
	}
	perUnit, err := s.TotalWorkforcePerUnit(ctx, period, units)
	if err != nil {
		return nil, err
	}
	comparison, err := s.PayrollVsNonPayrollChart(ctx, period, units)
	if err != nil {
		return nil, err
	}
	distribution, err := s.EmploymentStatusDistribution(ctx, period, units)
	if err != nil {
		return nil, err
	}
	return &ExecutiveSummary{
		Period:             period,
		KPI:                kpi,
		TotalPerUnit:       perUnit,
		PayrollComparison:  comparison,
		StatusDistribution: distribution,
	}, nil
}
