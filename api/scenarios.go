/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates employees across
	organizational units and captures snapshot periods so the report
	endpoints answer immediately.

AVAILABLE SCENARIOS:

	small-office:     One unit, all permanent payroll staff
	regional-bank:    Multi-unit bank with the full status vocabulary
	mixed-workforce:  Payroll plus outsourced/intern staff, some ambiguous
	year-history:     Twelve captured months for trend and matrix views

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Seed live employee records
 3. Generate snapshots for one or more periods

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "regional-bank"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - workforce/generator.go: Snapshot capture
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yhc/workforce-engine/workforce"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-office",
		Name:        "Small Office",
		Description: "One unit, all permanent payroll staff",
		Category:    "basic",
	},
	{
		ID:          "regional-bank",
		Name:        "Regional Bank",
		Description: "Multi-unit organization exercising every employment status",
		Category:    "reporting",
	},
	{
		ID:          "mixed-workforce",
		Name:        "Mixed Workforce",
		Description: "Payroll plus outsourced and intern staff, including ambiguous records",
		Category:    "classification",
	},
	{
		ID:          "year-history",
		Name:        "Year History",
		Description: "Twelve captured months for the monthly matrix and trend views",
		Category:    "trend",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "small-office":
		err = h.loadSmallOffice(ctx)
	case "regional-bank":
		err = h.loadRegionalBank(ctx)
	case "mixed-workforce":
		err = h.loadMixedWorkforce(ctx)
	case "year-history":
		err = h.loadYearHistory(ctx)
	default:
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadSmallOffice(ctx context.Context) error {
	staff := []workforce.EmployeeRecord{
		{ID: "emp-001", Name: "Andi Wijaya", UnitID: "unit-ops", UnitName: "Operations",
			Gender: "male", Active: true, TypeName: "Karyawan Tetap", CustomStatus: "Tetap"},
		{ID: "emp-002", Name: "Budi Santoso", UnitID: "unit-ops", UnitName: "Operations",
			Gender: "male", Active: true, TypeName: "Karyawan Tetap", CustomStatus: "Tetap"},
		{ID: "emp-003", Name: "Citra Lestari", UnitID: "unit-ops", UnitName: "Operations",
			Gender: "female", Active: true, TypeName: "Karyawan Tetap", CustomStatus: "Permanent"},
	}
	if err := h.seed(ctx, staff); err != nil {
		return err
	}
	return h.capture(ctx, workforce.PreviousMonth(time.Now()))
}

func (h *Handler) loadRegionalBank(ctx context.Context) error {
	staff := []workforce.EmployeeRecord{
		// Head office: every status in the canonical order
		{ID: "emp-101", Name: "Dewi Anggraini", UnitID: "unit-ho", UnitName: "Kantor Pusat",
			Gender: "female", Active: true, CustomStatus: "Tetap"},
		{ID: "emp-102", Name: "Eko Prasetyo", UnitID: "unit-ho", UnitName: "Kantor Pusat",
			Gender: "male", Active: true, CustomStatus: "PKWT", HasContract: true, HasContractEnd: true},
		{ID: "emp-103", Name: "Fajar Nugroho", UnitID: "unit-ho", UnitName: "Kantor Pusat",
			Gender: "male", Active: true, TypeName: "SPK", CustomStatus: "SPK"},
		{ID: "emp-104", Name: "Gita Permata", UnitID: "unit-ho", UnitName: "Kantor Pusat",
			Gender: "female", Active: true, TypeName: "Tenaga Harian Lepas", CustomStatus: "THL"},
		{ID: "emp-105", Name: "Hartono", UnitID: "unit-ho", UnitName: "Kantor Pusat",
			Gender: "male", Active: true, CustomStatus: "Honorer"},
		{ID: "emp-106", Name: "Indah Sari", UnitID: "unit-ho", UnitName: "Kantor Pusat",
			Gender: "female", Active: true, CustomStatus: "PNS DPK"},
		// Branches
		{ID: "emp-111", Name: "Joko Susilo", UnitID: "unit-br1", UnitName: "Cabang Bandung",
			Gender: "male", Active: true, CustomStatus: "Tetap"},
		{ID: "emp-112", Name: "Kartika Dewi", UnitID: "unit-br1", UnitName: "Cabang Bandung",
			Gender: "female", Active: true, CustomStatus: "Kontrak", HasContract: true, HasContractEnd: true},
		{ID: "emp-121", Name: "Lukman Hakim", UnitID: "unit-br2", UnitName: "Cabang Surabaya",
			Gender: "male", Active: true, CustomStatus: "Tetap"},
		{ID: "emp-122", Name: "Maya Puspita", UnitID: "unit-br2", UnitName: "Cabang Surabaya",
			Gender: "female", Active: false, CustomStatus: "Tetap"},
	}
	if err := h.seed(ctx, staff); err != nil {
		return err
	}
	return h.capture(ctx, workforce.PreviousMonth(time.Now()))
}

func (h *Handler) loadMixedWorkforce(ctx context.Context) error {
	staff := []workforce.EmployeeRecord{
		{ID: "emp-201", Name: "Nina Kurnia", UnitID: "unit-it", UnitName: "Teknologi Informasi",
			Gender: "female", Active: true, CustomStatus: "Tetap"},
		{ID: "emp-202", Name: "Oscar Pratama", UnitID: "unit-it", UnitName: "Teknologi Informasi",
			Gender: "male", Active: true, TypeName: "Outsource Security", CustomStatus: "Kontrak"},
		{ID: "emp-203", Name: "Putri Handayani", UnitID: "unit-it", UnitName: "Teknologi Informasi",
			Gender: "female", Active: true, CategoryName: "Magang"},
		{ID: "emp-204", Name: "Rudi Setiawan", UnitID: "unit-ga", UnitName: "General Affairs",
			Gender: "male", Active: true, TypeName: "Freelance Driver"},
		// No classification signals: the generator flags this record ambiguous
		{ID: "emp-205", Name: "Sri Mulyani", UnitID: "unit-ga", UnitName: "General Affairs",
			Gender: "female", Active: true},
		// No unit: skipped by the generator
		{ID: "emp-206", Name: "Taufik Rahman", UnitID: "", UnitName: "",
			Gender: "male", Active: true, CustomStatus: "Tetap"},
	}
	if err := h.seed(ctx, staff); err != nil {
		return err
	}
	return h.capture(ctx, workforce.PreviousMonth(time.Now()))
}

func (h *Handler) loadYearHistory(ctx context.Context) error {
	staff := []workforce.EmployeeRecord{
		{ID: "emp-301", Name: "Umar Said", UnitID: "unit-ops", UnitName: "Operations",
			Gender: "male", Active: true, CustomStatus: "Tetap"},
		{ID: "emp-302", Name: "Vina Oktaviani", UnitID: "unit-ops", UnitName: "Operations",
			Gender: "female", Active: true, CustomStatus: "PKWT", HasContract: true, HasContractEnd: true},
		{ID: "emp-303", Name: "Wawan Kurniawan", UnitID: "unit-fin", UnitName: "Finance",
			Gender: "male", Active: true, CustomStatus: "Tetap"},
	}
	if err := h.seed(ctx, staff); err != nil {
		return err
	}

	// Capture every completed month of the most recent reporting year.
	end := workforce.PreviousMonth(time.Now())
	for month := 1; month <= end.Month; month++ {
		if err := h.capture(ctx, workforce.Period{Year: end.Year, Month: month}); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) seed(ctx context.Context, staff []workforce.EmployeeRecord) error {
	for _, emp := range staff {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", emp.ID, err)
		}
	}
	return nil
}

func (h *Handler) capture(ctx context.Context, period workforce.Period) error {
	_, err := h.Generator.Generate(ctx, period, true)
	return err
}
