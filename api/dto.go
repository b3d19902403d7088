/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Snapshots:
    GenerateSnapshotRequest, GenerateResultDTO, PeriodDTO

  Employees:
    EmployeeDTO, CreateEmployeeRequest

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

  Report and analytics payloads are returned as the analytics/report domain
  types directly: they already carry stable json tags and exist precisely to
  be serialized.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - analytics/service.go: Section payload types
*/
package api

// =============================================================================
// SNAPSHOT TYPES
// =============================================================================

// GenerateSnapshotRequest asks the engine to capture one monthly period.
type GenerateSnapshotRequest struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Force bool `json:"force"`
}

// AmbiguousEmployeeDTO flags an employee whose classification fell back to
// defaults, for operator review.
type AmbiguousEmployeeDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Type       string `json:"employment_type"`
	Status     string `json:"employment_status"`
}

// GenerateResultDTO reports the outcome of one generation run.
type GenerateResultDTO struct {
	Year          int                    `json:"year"`
	Month         int                    `json:"month"`
	Period        string                 `json:"period"`
	Created       int                    `json:"created"`
	SkippedNoUnit int                    `json:"skipped_no_unit"`
	Replaced      bool                   `json:"replaced"`
	Ambiguous     []AmbiguousEmployeeDTO `json:"ambiguous"`
}

// PeriodDTO is one month with snapshot data.
type PeriodDTO struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int    `json:"snapshot_count"`
}

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// EmployeeDTO represents a live employee record in API responses.
type EmployeeDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	UnitID         string `json:"unit_id"`
	UnitName       string `json:"unit_name"`
	Gender         string `json:"gender"`
	Active         bool   `json:"active"`
	TypeName       string `json:"type_name,omitempty"`
	CategoryName   string `json:"category_name,omitempty"`
	CustomType     string `json:"custom_type,omitempty"`
	CustomStatus   string `json:"custom_status,omitempty"`
	HasContract    bool   `json:"has_contract"`
	HasContractEnd bool   `json:"has_contract_end"`
}

// CreateEmployeeRequest is the request to create or update an employee.
type CreateEmployeeRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	UnitID         string `json:"unit_id"`
	UnitName       string `json:"unit_name"`
	Gender         string `json:"gender"`
	Active         *bool  `json:"active"`
	TypeName       string `json:"type_name"`
	CategoryName   string `json:"category_name"`
	CustomType     string `json:"custom_type"`
	CustomStatus   string `json:"custom_status"`
	HasContract    bool   `json:"has_contract"`
	HasContractEnd bool   `json:"has_contract_end"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
