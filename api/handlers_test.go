/*
handlers_test.go - HTTP-level tests for the snapshot and reporting endpoints

Tests for:
- Snapshot generation (including the force/no-force contract)
- Report assembly and its error statuses
- Employee record management
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yhc/workforce-engine/store/sqlite"
)

func newTestServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store)
	return h, NewRouter(h)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedStaff(t *testing.T, router http.Handler) {
	t.Helper()
	staff := []CreateEmployeeRequest{
		{ID: "emp-1", Name: "Andi Wijaya", UnitID: "u-ops", UnitName: "Operations",
			Gender: "male", CustomStatus: "Tetap"},
		{ID: "emp-2", Name: "Citra Lestari", UnitID: "u-ops", UnitName: "Operations",
			Gender: "female", CustomStatus: "PKWT", HasContract: true, HasContractEnd: true},
		{ID: "emp-3", Name: "Budi Santoso", UnitID: "u-fin", UnitName: "Finance",
			Gender: "male", CustomStatus: "Tetap"},
	}
	for _, s := range staff {
		rec := doJSON(t, router, http.MethodPost, "/api/employees/", s)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed employee %s: status %d: %s", s.ID, rec.Code, rec.Body.String())
		}
	}
}

func generateMarch(t *testing.T, router http.Handler) GenerateResultDTO {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/snapshots/generate",
		GenerateSnapshotRequest{Year: 2025, Month: 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status %d: %s", rec.Code, rec.Body.String())
	}
	var result GenerateResultDTO
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	return result
}

// =============================================================================
// SNAPSHOT ENDPOINT TESTS
// =============================================================================

func TestGenerateSnapshots_CreatesPeriod(t *testing.T) {
	_, router := newTestServer(t)
	seedStaff(t, router)

	result := generateMarch(t, router)
	if result.Created != 3 {
		t.Errorf("expected 3 created, got %d", result.Created)
	}
	if result.Period != "Maret 2025" {
		t.Errorf("unexpected period label %q", result.Period)
	}

	// Periods endpoint now lists March 2025
	rec := doJSON(t, router, http.MethodGet, "/api/snapshots/periods", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("periods: status %d", rec.Code)
	}
	var periods []PeriodDTO
	json.NewDecoder(rec.Body).Decode(&periods)
	if len(periods) != 1 || periods[0].Year != 2025 || periods[0].Month != 3 || periods[0].Count != 3 {
		t.Errorf("unexpected periods payload: %+v", periods)
	}
}

func TestGenerateSnapshots_SecondRunIsNoOp(t *testing.T) {
	_, router := newTestServer(t)
	seedStaff(t, router)
	generateMarch(t, router)

	result := generateMarch(t, router)
	if result.Created != 0 || result.Replaced {
		t.Errorf("second run without force must be a no-op: %+v", result)
	}
}

func TestGenerateSnapshots_ForceReplaces(t *testing.T) {
	_, router := newTestServer(t)
	seedStaff(t, router)
	generateMarch(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/snapshots/generate",
		GenerateSnapshotRequest{Year: 2025, Month: 3, Force: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("force generate: status %d: %s", rec.Code, rec.Body.String())
	}
	var result GenerateResultDTO
	json.NewDecoder(rec.Body).Decode(&result)
	if result.Created != 3 || !result.Replaced {
		t.Errorf("expected a full replace, got %+v", result)
	}
}

func TestGenerateSnapshots_InvalidMonthRejected(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/snapshots/generate",
		GenerateSnapshotRequest{Year: 2025, Month: 13})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for month 13, got %d", rec.Code)
	}
}

func TestGenerateSnapshots_FlagsAmbiguous(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/employees/", CreateEmployeeRequest{
		ID: "emp-x", Name: "No Signals", UnitID: "u-ops", UnitName: "Operations", Gender: "male",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed: status %d", rec.Code)
	}

	result := generateMarch(t, router)
	if len(result.Ambiguous) != 1 || result.Ambiguous[0].EmployeeID != "emp-x" {
		t.Errorf("expected emp-x flagged ambiguous, got %+v", result.Ambiguous)
	}
}

// =============================================================================
// REPORT ENDPOINT TESTS
// =============================================================================

func TestGetWorkforceReport_RequiresSnapshot(t *testing.T) {
	// GIVEN: No snapshot for the requested period
	// THEN: 409 - the caller can fix this by generating first
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/reports/workforce?year=2025&month=3", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for a missing snapshot, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetWorkforceReport_FullDocument(t *testing.T) {
	_, router := newTestServer(t)
	seedStaff(t, router)
	generateMarch(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/reports/workforce?year=2025&month=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("report: status %d: %s", rec.Code, rec.Body.String())
	}

	var doc map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}
	for _, section := range []string{
		"header", "payroll_table", "payroll_chart", "unit_totals",
		"monthly_matrix", "status_distribution", "section_order", "footer", "validation",
	} {
		if _, ok := doc[section]; !ok {
			t.Errorf("document missing %q", section)
		}
	}

	var validation struct {
		Passed         bool `json:"passed"`
		TotalEmployees int  `json:"total_employees"`
	}
	json.Unmarshal(doc["validation"], &validation)
	if !validation.Passed || validation.TotalEmployees != 3 {
		t.Errorf("unexpected validation block: %+v", validation)
	}
}

func TestGetWorkforceReport_InvalidPeriodQuery(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/reports/workforce?year=2025&month=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed month, got %d", rec.Code)
	}
}

// =============================================================================
// ANALYTICS ENDPOINT TESTS
// =============================================================================

func TestAnalyticsEndpoints_PeriodScoped(t *testing.T) {
	_, router := newTestServer(t)
	seedStaff(t, router)
	generateMarch(t, router)

	endpoints := []string{
		"/api/analytics/payroll-table",
		"/api/analytics/payroll-chart",
		"/api/analytics/unit-totals",
		"/api/analytics/status-distribution",
		"/api/analytics/kpi",
		"/api/analytics/summary",
	}
	for _, ep := range endpoints {
		rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("%s?year=2025&month=3", ep), nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d: %s", ep, rec.Code, rec.Body.String())
		}

		// The same endpoint without data answers 409
		rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("%s?year=2024&month=1", ep), nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("%s (empty period): expected 409, got %d", ep, rec.Code)
		}
	}
}

func TestAnalyticsMatrix_And_Trend(t *testing.T) {
	_, router := newTestServer(t)
	seedStaff(t, router)
	generateMarch(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/analytics/monthly-matrix?year=2025", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("matrix: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/analytics/trend?year=2025&month=3&months=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("trend: status %d: %s", rec.Code, rec.Body.String())
	}
	var trend struct {
		Points []struct {
			Available bool `json:"available"`
			Total     int  `json:"total"`
		} `json:"points"`
	}
	json.NewDecoder(rec.Body).Decode(&trend)
	if len(trend.Points) != 3 {
		t.Fatalf("expected 3 trend points, got %d", len(trend.Points))
	}
	if trend.Points[0].Available || !trend.Points[2].Available || trend.Points[2].Total != 3 {
		t.Errorf("unexpected trend shape: %+v", trend.Points)
	}
}

func TestAnalytics_UnitFilter(t *testing.T) {
	_, router := newTestServer(t)
	seedStaff(t, router)
	generateMarch(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/analytics/unit-totals?year=2025&month=3&units=u-fin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unit totals: status %d", rec.Code)
	}
	var totals struct {
		Labels []string `json:"labels"`
		Total  int      `json:"total"`
	}
	json.NewDecoder(rec.Body).Decode(&totals)
	if totals.Total != 1 || len(totals.Labels) != 1 || totals.Labels[0] != "Finance" {
		t.Errorf("unit filter not applied: %+v", totals)
	}
}

// =============================================================================
// EMPLOYEE ENDPOINT TESTS
// =============================================================================

func TestEmployees_CreateGetDelete(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/employees/", CreateEmployeeRequest{
		ID: "emp-1", Name: "Andi Wijaya", UnitID: "u-ops", UnitName: "Operations", Gender: "male",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/employees/emp-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	var emp EmployeeDTO
	json.NewDecoder(rec.Body).Decode(&emp)
	if emp.Name != "Andi Wijaya" || !emp.Active {
		t.Errorf("unexpected employee payload: %+v", emp)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/employees/emp-1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/employees/emp-1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestEmployees_CreateRequiresIDAndName(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/employees/", CreateEmployeeRequest{Name: "No ID"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without an id, got %d", rec.Code)
	}
}

// =============================================================================
// SCENARIO ENDPOINT TESTS
// =============================================================================

func TestScenarios_LoadAndReport(t *testing.T) {
	h, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "regional-bank"})
	if rec.Code != http.StatusOK {
		t.Fatalf("load scenario: status %d: %s", rec.Code, rec.Body.String())
	}
	if h.currentScenario != "regional-bank" {
		t.Errorf("current scenario not tracked: %q", h.currentScenario)
	}

	// The scenario captured the previous month, so the default-period report
	// answers without query parameters.
	rec = doJSON(t, router, http.MethodGet, "/api/reports/workforce", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("report after scenario: status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestScenarios_UnknownIDRejected(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown scenario, got %d", rec.Code)
	}
}
