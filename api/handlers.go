/*
handlers.go - HTTP API handlers for the workforce snapshot engine

PURPOSE:
  Exposes the snapshot and reporting engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Snapshots:
    POST   /api/snapshots/generate       Capture one monthly period
    GET    /api/snapshots/periods        Periods with data, newest first

  Reports:
    GET    /api/reports/workforce        Full reconciled report document

  Analytics (section-level access for dashboards):
    GET    /api/analytics/payroll-table
    GET    /api/analytics/payroll-chart
    GET    /api/analytics/unit-totals
    GET    /api/analytics/status-distribution
    GET    /api/analytics/monthly-matrix
    GET    /api/analytics/trend
    GET    /api/analytics/kpi
    GET    /api/analytics/summary

  Employees:
    GET    /api/employees                List live employee records
    POST   /api/employees                Create/update employee
    GET    /api/employees/{id}           Get employee
    DELETE /api/employees/{id}           Remove employee (history kept)

  Scenarios:
    GET    /api/scenarios                List demo scenarios
    POST   /api/scenarios/load           Load a demo scenario

PERIOD SELECTION:
  Period-scoped endpoints read ?year= and ?month= query parameters and
  default to the previous calendar month, the standard reporting period.
  Unit filters use ?units=u1,u2.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Snapshot unavailable or duplicate period
  - 500: Internal errors, reconciliation failures

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yhc/workforce-engine/analytics"
	"github.com/yhc/workforce-engine/report"
	"github.com/yhc/workforce-engine/store/sqlite"
	"github.com/yhc/workforce-engine/workforce"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Generator *workforce.Generator
	Analytics *analytics.Service
	Assembler *report.Assembler

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler wires the engine around the given store.
func NewHandler(store *sqlite.Store) *Handler {
	svc := analytics.NewService(store, workforce.DefaultStatusCatalog())
	return &Handler{
		Store:     store,
		Generator: workforce.NewGenerator(store, store),
		Analytics: svc,
		Assembler: report.NewAssembler(svc, "Workforce Engine"),
	}
}

// =============================================================================
// SNAPSHOT HANDLERS
// =============================================================================

// GenerateSnapshots captures one monthly period.
func (h *Handler) GenerateSnapshots(w http.ResponseWriter, r *http.Request) {
	var req GenerateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period := workforce.Period{Year: req.Year, Month: req.Month}
	if req.Year == 0 && req.Month == 0 {
		period = workforce.PreviousMonth(time.Now())
	}

	result, err := h.Generator.Generate(r.Context(), period, req.Force)
	if err != nil {
		writeDomainError(w, "Failed to generate snapshots", err)
		return
	}

	ambiguous := make([]AmbiguousEmployeeDTO, len(result.Ambiguous))
	for i, a := range result.Ambiguous {
		ambiguous[i] = AmbiguousEmployeeDTO{
			EmployeeID: string(a.Employee),
			Name:       a.Name,
			Type:       string(a.Type),
			Status:     string(a.Status),
		}
	}

	writeJSON(w, http.StatusOK, GenerateResultDTO{
		Year:          result.Period.Year,
		Month:         result.Period.Month,
		Period:        result.Period.String(),
		Created:       result.Created,
		SkippedNoUnit: result.SkippedNoUnit,
		Replaced:      result.Replaced,
		Ambiguous:     ambiguous,
	})
}

// ListPeriods returns periods with snapshot data, newest first.
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	periods, err := h.Store.AvailablePeriods(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list periods", err)
		return
	}

	dtos := make([]PeriodDTO, len(periods))
	for i, pc := range periods {
		dtos[i] = PeriodDTO{
			Year:  pc.Period.Year,
			Month: pc.Period.Month,
			Label: pc.Period.String(),
			Count: pc.Count,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetWorkforceReport assembles the full reconciled report document.
func (h *Handler) GetWorkforceReport(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	doc, err := h.Assembler.Assemble(r.Context(), period)
	if err != nil {
		writeDomainError(w, "Failed to assemble report", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// =============================================================================
// ANALYTICS HANDLERS
// =============================================================================

// GetPayrollTable returns the payroll vs non-payroll per-unit breakdown.
func (h *Handler) GetPayrollTable(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(p workforce.Period, units []workforce.UnitRef) (any, error) {
		return h.Analytics.PayrollVsNonPayrollTable(r.Context(), p, units)
	})
}

// GetPayrollChart returns the grouped-bar dataset derived from the table.
func (h *Handler) GetPayrollChart(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(p workforce.Period, units []workforce.UnitRef) (any, error) {
		return h.Analytics.PayrollVsNonPayrollChart(r.Context(), p, units)
	})
}

// GetUnitTotals returns headcount per unit, largest first.
func (h *Handler) GetUnitTotals(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(p workforce.Period, units []workforce.UnitRef) (any, error) {
		return h.Analytics.TotalWorkforcePerUnit(r.Context(), p, units)
	})
}

// GetStatusDistribution returns headcount per employment status.
func (h *Handler) GetStatusDistribution(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(p workforce.Period, units []workforce.UnitRef) (any, error) {
		return h.Analytics.EmploymentStatusDistribution(r.Context(), p, units)
	})
}

// GetKPI returns the headline numbers for a period.
func (h *Handler) GetKPI(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(p workforce.Period, units []workforce.UnitRef) (any, error) {
		return h.Analytics.KPI(r.Context(), p, units)
	})
}

// GetExecutiveSummary bundles the KPI block with the main section payloads.
func (h *Handler) GetExecutiveSummary(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(p workforce.Period, units []workforce.UnitRef) (any, error) {
		return h.Analytics.ExecutiveSummary(r.Context(), p, units)
	})
}

// GetMonthlyMatrix returns the month-by-month per-unit headcount for a year.
func (h *Handler) GetMonthlyMatrix(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	matrix, err := h.Analytics.MonthlyWorkforceMatrix(r.Context(), year, unitsFromQuery(r))
	if err != nil {
		writeDomainError(w, "Failed to build monthly matrix", err)
		return
	}
	writeJSON(w, http.StatusOK, matrix)
}

// GetTrend returns a trailing headcount series ending at the given period.
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	months, _ := strconv.Atoi(r.URL.Query().Get("months"))
	if months <= 0 {
		months = 12
	}
	unit := workforce.UnitRef(r.URL.Query().Get("unit"))

	trend, err := h.Analytics.WorkforceTrend(r.Context(), period, months, unit)
	if err != nil {
		writeDomainError(w, "Failed to build trend", err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

// section runs one period-scoped aggregation with shared parsing and error
// mapping.
func (h *Handler) section(w http.ResponseWriter, r *http.Request,
	fn func(workforce.Period, []workforce.UnitRef) (any, error)) {

	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	payload, err := fn(period, unitsFromQuery(r))
	if err != nil {
		writeDomainError(w, "Failed to aggregate", err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns live employee records.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	employees, err := h.Store.ListEmployees(r.Context(), workforce.EmployeeFilter{
		IncludeInactive: includeInactive,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := workforce.EmployeeRef(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates or updates a live employee record.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	emp := workforce.EmployeeRecord{
		ID:             workforce.EmployeeRef(req.ID),
		Name:           req.Name,
		UnitID:         workforce.UnitRef(req.UnitID),
		UnitName:       req.UnitName,
		Gender:         req.Gender,
		Active:         active,
		TypeName:       req.TypeName,
		CategoryName:   req.CategoryName,
		CustomType:     req.CustomType,
		CustomStatus:   req.CustomStatus,
		HasContract:    req.HasContract,
		HasContractEnd: req.HasContractEnd,
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// DeleteEmployee removes a live employee record. Snapshot history is kept.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := workforce.EmployeeRef(chi.URLParam(r, "id"))

	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toEmployeeDTO(e workforce.EmployeeRecord) EmployeeDTO {
	return EmployeeDTO{
		ID:             string(e.ID),
		Name:           e.Name,
		UnitID:         string(e.UnitID),
		UnitName:       e.UnitName,
		Gender:         e.Gender,
		Active:         e.Active,
		TypeName:       e.TypeName,
		CategoryName:   e.CategoryName,
		CustomType:     e.CustomType,
		CustomStatus:   e.CustomStatus,
		HasContract:    e.HasContract,
		HasContractEnd: e.HasContractEnd,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// periodFromQuery reads ?year= and ?month=, defaulting to the previous
// calendar month when both are absent.
func periodFromQuery(r *http.Request) (workforce.Period, error) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	if yearStr == "" && monthStr == "" {
		return workforce.PreviousMonth(time.Now()), nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return workforce.Period{}, workforce.ErrInvalidPeriod
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return workforce.Period{}, workforce.ErrInvalidPeriod
	}
	return workforce.NewPeriod(year, month)
}

func unitsFromQuery(r *http.Request) []workforce.UnitRef {
	raw := r.URL.Query().Get("units")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	units := make([]workforce.UnitRef, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			units = append(units, workforce.UnitRef(p))
		}
	}
	return units
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, workforce.ErrSnapshotUnavailable),
		errors.Is(err, workforce.ErrSnapshotDuplicate):
		writeError(w, http.StatusConflict, message, err)
	case workforce.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		// Reconciliation mismatches land here: they are server-side data
		// integrity failures, never a client problem.
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
