/*
Package workforce provides the core workforce snapshot engine.

PURPOSE:
  This package contains the domain types and algorithms for monthly workforce
  snapshots: immutable per-employee-per-month fact records, the classification
  rules that derive employment type/status from raw HR data, and the generator
  that materializes a full period from the live employee store.

KEY CONCEPTS IN THIS FILE (types.go):
  - EmploymentType:   payroll vs non-payroll compensation
  - EmploymentStatus: the fixed six-category contractual standing
  - StatusCatalog:    constructed, immutable ordering/labels/colors for reports
  - EmployeeRef/UnitRef: type-safe identifiers

DESIGN PRINCIPLES:
  1. Immutability: snapshot facts are never modified, only replaced per period
  2. Closed sets: employment status is a fixed enum; no other values permitted
  3. Type Safety: strong typing for refs prevents mixing employee/unit IDs
  4. Explicit config: report ordering and labels come from a constructed
     catalog, never from package-level mutable state

USAGE:
  catalog := workforce.DefaultStatusCatalog()
  for _, st := range catalog.Order() {
      fmt.Println(catalog.Label(st))
  }

SEE ALSO:
  - snapshot.go: The immutable Snapshot record
  - classify.go: Classification rules
  - period.go:   Report period math
*/
package workforce

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeRef string
type UnitRef string

// =============================================================================
// EMPLOYMENT TYPE - payroll vs non-payroll
// =============================================================================

type EmploymentType string

const (
	TypePayroll    EmploymentType = "payroll"     // Compensation through standard payroll
	TypeNonPayroll EmploymentType = "non_payroll" // Outsource, intern, freelance, daily workers
)

func (t EmploymentType) Valid() bool {
	return t == TypePayroll || t == TypeNonPayroll
}

// =============================================================================
// EMPLOYMENT STATUS - fixed, closed six-category set
// =============================================================================

type EmploymentStatus string

const (
	StatusTetap  EmploymentStatus = "tetap"   // Permanent
	StatusPKWT   EmploymentStatus = "pkwt"    // Fixed-term contract
	StatusSPK    EmploymentStatus = "spk"     // Work order agreement
	StatusTHL    EmploymentStatus = "thl"     // Daily casual worker
	StatusHJU    EmploymentStatus = "hju"     // Honorarium
	StatusPNSDPK EmploymentStatus = "pns_dpk" // Seconded civil servant
)

func (s EmploymentStatus) Valid() bool {
	switch s {
	case StatusTetap, StatusPKWT, StatusSPK, StatusTHL, StatusHJU, StatusPNSDPK:
		return true
	}
	return false
}

// =============================================================================
// GENDER
// =============================================================================

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// NormalizeGender maps unknown/empty raw values to GenderOther.
func NormalizeGender(raw string) Gender {
	g := Gender(raw)
	if g.Valid() {
		return g
	}
	return GenderOther
}

// =============================================================================
// STATUS CATALOG - canonical order, labels, chart colors
// =============================================================================

// StatusCatalog carries the canonical presentation of the six employment
// statuses: report order, display labels, and chart colors. It is constructed
// once and passed to the aggregation/report layers explicitly so the fixed
// report structure is testable and cannot be mutated through ambient state.
type StatusCatalog struct {
	order  []EmploymentStatus
	labels map[EmploymentStatus]string
	colors map[EmploymentStatus]string
}

// DefaultStatusCatalog returns the system-owned catalog used by the official
// report. The order is fixed and is NOT a popularity sort.
func DefaultStatusCatalog() StatusCatalog {
	return StatusCatalog{
		order: []EmploymentStatus{
			StatusTetap, StatusPKWT, StatusSPK, StatusTHL, StatusHJU, StatusPNSDPK,
		},
		labels: map[EmploymentStatus]string{
			StatusTetap:  "Tetap",
			StatusPKWT:   "PKWT",
			StatusSPK:    "SPK",
			StatusTHL:    "THL",
			StatusHJU:    "HJU",
			StatusPNSDPK: "PNS DPK",
		},
		colors: map[EmploymentStatus]string{
			StatusTetap:  "#27AE60",
			StatusPKWT:   "#3498DB",
			StatusSPK:    "#F39C12",
			StatusTHL:    "#E74C3C",
			StatusHJU:    "#9B59B6",
			StatusPNSDPK: "#1ABC9C",
		},
	}
}

// Order returns the canonical status order as a defensive copy.
func (c StatusCatalog) Order() []EmploymentStatus {
	out := make([]EmploymentStatus, len(c.order))
	copy(out, c.order)
	return out
}

func (c StatusCatalog) Label(s EmploymentStatus) string {
	if l, ok := c.labels[s]; ok {
		return l
	}
	return string(s)
}

func (c StatusCatalog) Color(s EmploymentStatus) string {
	if col, ok := c.colors[s]; ok {
		return col
	}
	return "#714B67"
}

// =============================================================================
// EMPLOYEE RECORD - normalized input from the live HR store
// =============================================================================

// EmployeeRecord is the normalized shape of a live HR employee as exposed by
// the EmployeeSource collaborator. The classification rules read ONLY from
// this struct; there is no attribute probing against a live ORM object.
type EmployeeRecord struct {
	ID       EmployeeRef
	Name     string
	UnitID   UnitRef // empty when the employee has no resolvable unit
	UnitName string
	Gender   string // raw value; normalized at snapshot time
	Active   bool

	// Classification sources, in the priority order the Classifier consumes
	// them. All free text; empty string means the source is absent.
	TypeName     string // explicit employee type reference (e.g. "PKWT Kontrak")
	CategoryName string // employee category reference
	CustomType   string // free-text custom employment type field
	CustomStatus string // free-text custom employment status field

	// HasContractEnd reports whether the employee's current contract carries
	// an end date (fixed-term). Only meaningful when HasContract is true.
	HasContract    bool
	HasContractEnd bool
}
