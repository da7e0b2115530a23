package dashboard

import "slices"

// State is the full dashboard state. SelectedSite is a soft reference to a
// site id and is not checked against Sites.
type State struct {
	Workers          []Worker          `json:"workers"`
	Sites            []SiteInfo        `json:"sites"`
	SafetyViolations []SafetyViolation `json:"safetyViolations"`
	SelectedSite     *string           `json:"selectedSite"`
}

func EmptyState() State {
	return State{
		Workers:          []Worker{},
		Sites:            []SiteInfo{},
		SafetyViolations: []SafetyViolation{},
	}
}

// Clone returns a deep copy. Nil slices stay nil so a cloned state encodes
// to the same bytes as the original.
func (s State) Clone() State {
	out := State{
		SelectedSite: cloneString(s.SelectedSite),
	}
	if s.Workers != nil {
		out.Workers = make([]Worker, len(s.Workers))
		for i, w := range s.Workers {
			out.Workers[i] = w.Clone()
		}
	}
	if s.Sites != nil {
		out.Sites = make([]SiteInfo, len(s.Sites))
		for i, site := range s.Sites {
			out.Sites[i] = site.Clone()
		}
	}
	if s.SafetyViolations != nil {
		out.SafetyViolations = make([]SafetyViolation, len(s.SafetyViolations))
		for i, v := range s.SafetyViolations {
			out.SafetyViolations[i] = v.Clone()
		}
	}
	return out
}

func (s State) WorkerByID(id string) (Worker, bool) {
	for _, w := range s.Workers {
		if w.ID == id {
			return w, true
		}
	}
	return Worker{}, false
}

func (s State) SiteByID(id string) (SiteInfo, bool) {
	for _, site := range s.Sites {
		if site.ID == id {
			return site, true
		}
	}
	return SiteInfo{}, false
}

func (w Worker) Clone() Worker {
	w.Qualifications = slices.Clone(w.Qualifications)
	w.Certifications = slices.Clone(w.Certifications)
	w.WorkSchedule.DaysOff = slices.Clone(w.WorkSchedule.DaysOff)
	w.Documents = slices.Clone(w.Documents)
	return w
}

func (s SiteInfo) Clone() SiteInfo {
	s.EmergencyContacts = slices.Clone(s.EmergencyContacts)
	s.WorkHours.BreakTimes = slices.Clone(s.WorkHours.BreakTimes)
	s.Equipment = slices.Clone(s.Equipment)
	s.Permits = slices.Clone(s.Permits)
	return s
}

func (v SafetyViolation) Clone() SafetyViolation {
	v.WorkerID = cloneString(v.WorkerID)
	return v
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
