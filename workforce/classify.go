/*
classify.go - Employment classification rules

PURPOSE:
  Derives (employment_type, employment_status) from the messy raw attributes
  HR systems actually carry: an explicit type reference, a category reference,
  free-text custom fields, and finally contract end-date presence.

DESIGN:
  The precedence is a POLICY decision, not a derived algorithm. It is
  expressed as an explicit, ordered list of (source, extractor) rules
  evaluated against the normalized EmployeeRecord. Free text is matched
  case-insensitively by substring against vocab tables supplied at
  construction. First matching rule wins. If nothing matches, the documented
  default applies (payroll / tetap) and the employee is flagged ambiguous so
  the generator can surface it for audit instead of silently absorbing it.

  Integrating organizations construct their own Classifier with different
  vocab or ordering; DefaultClassifier reproduces the stock mapping.

SEE ALSO:
  - generator.go: Collects ambiguous classifications into Result.Ambiguous
*/
package workforce

import (
	"sort"
	"strings"
)

// =============================================================================
// CLASSIFICATION RESULT
// =============================================================================

// Classification is the outcome for one employee. Ambiguous is true when a
// default was applied because no rule matched that dimension.
type Classification struct {
	Type            EmploymentType
	Status          EmploymentStatus
	TypeSource      string // rule source that decided Type ("" when defaulted)
	StatusSource    string // rule source that decided Status ("" when defaulted)
	TypeAmbiguous   bool
	StatusAmbiguous bool
}

func (c Classification) Ambiguous() bool { return c.TypeAmbiguous || c.StatusAmbiguous }

// =============================================================================
// RULES
// =============================================================================

// textSource extracts one free-text classification source from an employee.
type textSource struct {
	name    string
	extract func(EmployeeRecord) string
}

// Classifier holds the ordered rule configuration.
type Classifier struct {
	sources []textSource

	// nonPayrollTokens mark a type/category text as non-payroll.
	nonPayrollTokens []string

	// statusVocab maps tokens to statuses; order matters because matching is
	// by substring and the first hit wins.
	statusVocab []statusToken

	defaultType   EmploymentType
	defaultStatus EmploymentStatus
}

type statusToken struct {
	token  string
	status EmploymentStatus
}

// DefaultClassifier returns the stock rule set: type name, then category
// name, then the custom type/status fields, then contract end-date presence.
func DefaultClassifier() Classifier {
	return Classifier{
		sources: []textSource{
			{name: "type_name", extract: func(e EmployeeRecord) string { return e.TypeName }},
			{name: "category_name", extract: func(e EmployeeRecord) string { return e.CategoryName }},
			{name: "custom_type", extract: func(e EmployeeRecord) string { return e.CustomType }},
			{name: "custom_status", extract: func(e EmployeeRecord) string { return e.CustomStatus }},
		},
		nonPayrollTokens: []string{
			"outsource", "intern", "freelance", "contractor", "magang", "harian",
			"thl", "hju", "spk",
		},
		statusVocab: []statusToken{
			{"pns dpk", StatusPNSDPK},
			{"pns_dpk", StatusPNSDPK},
			{"pns", StatusPNSDPK},
			{"tetap", StatusTetap},
			{"permanent", StatusTetap},
			{"pkwt", StatusPKWT},
			{"kontrak", StatusPKWT},
			{"contract", StatusPKWT},
			{"spk", StatusSPK},
			{"thl", StatusTHL},
			{"hju", StatusHJU},
			{"honorer", StatusHJU},
		},
		defaultType:   TypePayroll,
		defaultStatus: StatusTetap,
	}
}

// NewClassifier builds a classifier with caller-supplied vocab. Sources keep
// the default extraction order; organizations that need a different order
// can assemble the struct directly.
func NewClassifier(nonPayrollTokens []string, statusVocab map[string]EmploymentStatus) Classifier {
	c := DefaultClassifier()
	if len(nonPayrollTokens) > 0 {
		c.nonPayrollTokens = nonPayrollTokens
	}
	if len(statusVocab) > 0 {
		vocab := make([]statusToken, 0, len(statusVocab))
		for token, status := range statusVocab {
			vocab = append(vocab, statusToken{strings.ToLower(token), status})
		}
		// Longer tokens first so "pns dpk" beats "pns"; ties alphabetical so
		// classification is deterministic across map iteration orders.
		sort.Slice(vocab, func(i, j int) bool {
			if len(vocab[i].token) != len(vocab[j].token) {
				return len(vocab[i].token) > len(vocab[j].token)
			}
			return vocab[i].token < vocab[j].token
		})
		c.statusVocab = vocab
	}
	return c
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classify derives employment type and status for one employee. It is pure:
// same record in, same classification out.
func (c Classifier) Classify(e EmployeeRecord) Classification {
	result := Classification{
		Type:            c.defaultType,
		Status:          c.defaultStatus,
		TypeAmbiguous:   true,
		StatusAmbiguous: true,
	}

	for _, src := range c.sources {
		text := strings.ToLower(strings.TrimSpace(src.extract(e)))
		if text == "" {
			continue
		}

		if result.TypeAmbiguous && c.matchesNonPayroll(text) {
			result.Type = TypeNonPayroll
			result.TypeSource = src.name
			result.TypeAmbiguous = false
		}

		if result.StatusAmbiguous {
			if status, ok := c.matchStatus(text); ok {
				result.Status = status
				result.StatusSource = src.name
				result.StatusAmbiguous = false
			}
		}

		if !result.TypeAmbiguous && !result.StatusAmbiguous {
			return result
		}
	}

	// Last resort for status: contract end-date presence. A fixed end date
	// means a fixed-term contract; an open contract means permanent.
	if result.StatusAmbiguous && e.HasContract {
		if e.HasContractEnd {
			result.Status = StatusPKWT
		} else {
			result.Status = StatusTetap
		}
		result.StatusSource = "contract_end"
		result.StatusAmbiguous = false
	}

	// A type source was found for none of the text fields: a matched status
	// still settles the type (thl/hju/spk are non-payroll by definition).
	if result.TypeAmbiguous && !result.StatusAmbiguous {
		switch result.Status {
		case StatusTHL, StatusHJU, StatusSPK:
			result.Type = TypeNonPayroll
			result.TypeSource = result.StatusSource
			result.TypeAmbiguous = false
		}
	}

	return result
}

func (c Classifier) matchesNonPayroll(text string) bool {
	for _, token := range c.nonPayrollTokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

func (c Classifier) matchStatus(text string) (EmploymentStatus, bool) {
	for _, entry := range c.statusVocab {
		if strings.Contains(text, entry.token) {
			return entry.status, true
		}
	}
	return "", false
}
