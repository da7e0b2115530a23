package reports

import (
	"sort"

	"sitewatch/internal/domain/dashboard"
)

type Summary struct {
	Workers             int            `json:"workers"`
	WorkersByDepartment map[string]int `json:"workersByDepartment"`
	Sites               int            `json:"sites"`
	SitesByStatus       map[string]int `json:"sitesByStatus"`
	AverageCompliance   float64        `json:"averageCompliance"`
	Violations          int            `json:"violations"`
	ViolationsBySev     map[string]int `json:"violationsBySeverity"`
	DanglingViolations  []string       `json:"danglingViolations"`
	SelectedSite        *string        `json:"selectedSite"`
	SelectedSiteMissing bool           `json:"selectedSiteMissing"`
}

// BuildSummary tallies the dashboard. DanglingViolations lists violation
// ids whose worker reference no longer resolves.
func BuildSummary(state dashboard.State) Summary {
	s := Summary{
		Workers:             len(state.Workers),
		WorkersByDepartment: map[string]int{},
		Sites:               len(state.Sites),
		SitesByStatus:       map[string]int{},
		Violations:          len(state.SafetyViolations),
		ViolationsBySev:     map[string]int{},
		DanglingViolations:  []string{},
		SelectedSite:        state.SelectedSite,
	}
	for _, w := range state.Workers {
		s.WorkersByDepartment[w.Department]++
	}
	total := 0.0
	for _, site := range state.Sites {
		s.SitesByStatus[string(site.SiteStatus)]++
		total += site.SafetyCompliance
	}
	if len(state.Sites) > 0 {
		s.AverageCompliance = total / float64(len(state.Sites))
	}
	for _, v := range state.SafetyViolations {
		s.ViolationsBySev[string(v.Severity)]++
		if v.WorkerID == nil {
			continue
		}
		if _, ok := state.WorkerByID(*v.WorkerID); !ok {
			s.DanglingViolations = append(s.DanglingViolations, v.ID)
		}
	}
	sort.Strings(s.DanglingViolations)
	if state.SelectedSite != nil {
		_, ok := state.SiteByID(*state.SelectedSite)
		s.SelectedSiteMissing = !ok
	}
	return s
}
