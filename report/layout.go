/*
Package report assembles the official workforce structural report.

PURPOSE:
  Orchestrates validation, the five fixed aggregation sections, and the
  cross-section reconciliation check into one document for the renderer
  collaborator. The structure is FIXED by the system: period selection is
  the only input, and a document is emitted only when every internally
  computed total agrees.

THIS IS NOT:
  - Dashboard analytics (see analytics.ExecutiveSummary)
  - An export feature with options
  - A flexible reporting tool

SEE ALSO:
  - reconcile.go: The cross-section total check
  - assembler.go: Document assembly
*/
package report

// SectionID names one of the report's fixed sections.
type SectionID string

const (
	SectionPayrollTable  SectionID = "payroll_table"
	SectionPayrollChart  SectionID = "payroll_chart"
	SectionUnitTotals    SectionID = "unit_totals"
	SectionMonthlyMatrix SectionID = "monthly_matrix"
	SectionStatusDist    SectionID = "status_distribution"
)

// Section describes one layout slot: its position, identity and title.
type Section struct {
	ID    SectionID
	Title string
}

// Layout is the constructed, immutable section ordering. It replaces the
// ambient registry the report definitions used to live in: the assembler
// receives it at construction, and tests can construct their own.
type Layout struct {
	sections []Section
}

// DefaultLayout returns the official report structure. The order is part of
// the report contract and is not user-configurable.
func DefaultLayout() Layout {
	return Layout{sections: []Section{
		{ID: SectionPayrollTable, Title: "Payroll vs Non-Payroll per Unit"},
		{ID: SectionPayrollChart, Title: "Perbandingan Payroll vs Non-Payroll"},
		{ID: SectionUnitTotals, Title: "Jumlah Karyawan per Unit"},
		{ID: SectionMonthlyMatrix, Title: "Snapshot Bulanan per Unit"},
		{ID: SectionStatusDist, Title: "Distribusi Status Kepegawaian"},
	}}
}

// Sections returns the ordered sections as a defensive copy.
func (l Layout) Sections() []Section {
	out := make([]Section, len(l.sections))
	copy(out, l.sections)
	return out
}

func (l Layout) Title(id SectionID) string {
	for _, s := range l.sections {
		if s.ID == id {
			return s.Title
		}
	}
	return string(id)
}
