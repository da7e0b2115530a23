package shared

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"sitewatch/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validator collects issues across a request so one response can report
// all of them.
type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{Field: strings.TrimSpace(field), Reason: reason})
}

// Enum checks a query value against a typed set. Empty means "no filter"
// and passes; the returned value is normalized to lower case.
func Enum[T ~string](v *Validator, field, raw string, allowed []T) T {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return ""
	}
	names := make([]string, len(allowed))
	for i, candidate := range allowed {
		if string(candidate) == value {
			return candidate
		}
		names[i] = string(candidate)
	}
	v.Add(field, "must be one of "+strings.Join(names, ", "))
	return ""
}

// TimeBound parses an optional range bound; see ParseTimeBound.
func (v *Validator) TimeBound(field, raw string, endOfDay bool) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	parsed, err := ParseTimeBound(raw, endOfDay)
	if err != nil {
		v.Add(field, "must be an RFC3339 timestamp or a YYYY-MM-DD date")
		return time.Time{}
	}
	return parsed
}

func (v *Validator) TimeOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

// Issues returns the collected issues ordered by field then reason.
func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Reject writes a 400 with every issue and reports whether it did.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
		map[string]any{"fields": issues}, requestID)
}
