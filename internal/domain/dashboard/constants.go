package dashboard

// StorageKey is the fixed key the snapshot is stored under.
const StorageKey = "dashboard-storage"

// BackupKey holds the periodic copy of the last persisted snapshot.
const BackupKey = StorageKey + ".bak"

type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftNight     Shift = "night"
)

type SiteStatus string

const (
	SiteStatusActive    SiteStatus = "active"
	SiteStatusCompleted SiteStatus = "completed"
	SiteStatusOnHold    SiteStatus = "on-hold"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var (
	SiteStatuses = []SiteStatus{SiteStatusActive, SiteStatusCompleted, SiteStatusOnHold}
	Severities   = []Severity{SeverityLow, SeverityMedium, SeverityHigh}
)
