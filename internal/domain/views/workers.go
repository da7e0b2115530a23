package views

import (
	"strings"

	"sitewatch/internal/domain/dashboard"
)

type WorkerFilter struct {
	Department string
	Query      string
}

// Workers filters in insertion order. Department matches exactly
// (case-insensitive); Query matches names and employee id as a substring.
func Workers(state dashboard.State, filter WorkerFilter) []dashboard.Worker {
	dept := strings.TrimSpace(filter.Department)
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]dashboard.Worker, 0, len(state.Workers))
	for _, w := range state.Workers {
		if dept != "" && !strings.EqualFold(w.Department, dept) {
			continue
		}
		if query != "" && !matchesWorker(w, query) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func matchesWorker(w dashboard.Worker, query string) bool {
	fullName := strings.ToLower(w.FirstName + " " + w.LastName)
	return strings.Contains(fullName, query) ||
		strings.Contains(strings.ToLower(w.EmployeeID), query)
}

// ViolationsForWorker lists the violations that reference workerID.
func ViolationsForWorker(state dashboard.State, workerID string) []dashboard.SafetyViolation {
	var out []dashboard.SafetyViolation
	for _, v := range state.SafetyViolations {
		if v.WorkerID != nil && *v.WorkerID == workerID {
			out = append(out, v)
		}
	}
	return out
}
