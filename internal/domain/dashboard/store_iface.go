package dashboard

// StoreAPI is the complete sanctioned surface for reading and mutating
// dashboard state.
type StoreAPI interface {
	State() State
	AddWorker(worker Worker)
	UpdateWorker(worker Worker) bool
	RemoveWorker(id string) bool
	AddSite(site SiteInfo)
	UpdateSite(site SiteInfo) bool
	RemoveSite(id string) bool
	AddSafetyViolation(violation SafetyViolation)
	SetSelectedSite(id *string)
}

var _ StoreAPI = (*Store)(nil)
