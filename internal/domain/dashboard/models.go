package dashboard

type Worker struct {
	ID               string           `json:"id" yaml:"id"`
	FirstName        string           `json:"firstName" yaml:"firstName"`
	LastName         string           `json:"lastName" yaml:"lastName"`
	EmployeeID       string           `json:"employeeId" yaml:"employeeId"`
	Department       string           `json:"department" yaml:"department"`
	Position         string           `json:"position" yaml:"position"`
	DateOfBirth      string           `json:"dateOfBirth" yaml:"dateOfBirth"`
	DateOfJoining    string           `json:"dateOfJoining" yaml:"dateOfJoining"`
	ContactNumber    string           `json:"contactNumber" yaml:"contactNumber"`
	Email            string           `json:"email" yaml:"email"`
	Address          string           `json:"address" yaml:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact" yaml:"emergencyContact"`
	Qualifications   []string         `json:"qualifications" yaml:"qualifications"`
	Certifications   []Certification  `json:"certifications" yaml:"certifications"`
	WorkSchedule     WorkSchedule     `json:"workSchedule" yaml:"workSchedule"`
	Salary           Salary           `json:"salary" yaml:"salary"`
	Attendance       Attendance       `json:"attendance" yaml:"attendance"`
	Performance      Performance      `json:"performance" yaml:"performance"`
	Documents        []Document       `json:"documents" yaml:"documents"`
}

type EmergencyContact struct {
	Name         string `json:"name" yaml:"name"`
	Relationship string `json:"relationship" yaml:"relationship"`
	Phone        string `json:"phone" yaml:"phone"`
}

type Certification struct {
	Name             string `json:"name" yaml:"name"`
	IssuedDate       string `json:"issuedDate" yaml:"issuedDate"`
	ExpiryDate       string `json:"expiryDate" yaml:"expiryDate"`
	IssuingAuthority string `json:"issuingAuthority" yaml:"issuingAuthority"`
}

type WorkSchedule struct {
	Shift        Shift    `json:"shift" yaml:"shift"`
	WorkingHours string   `json:"workingHours" yaml:"workingHours"`
	DaysOff      []string `json:"daysOff" yaml:"daysOff"`
}

type Salary struct {
	Basic      float64 `json:"basic" yaml:"basic"`
	Allowances float64 `json:"allowances" yaml:"allowances"`
	Deductions float64 `json:"deductions" yaml:"deductions"`
	NetSalary  float64 `json:"netSalary" yaml:"netSalary"`
}

type Attendance struct {
	TotalDays int `json:"totalDays" yaml:"totalDays"`
	Present   int `json:"present" yaml:"present"`
	Absent    int `json:"absent" yaml:"absent"`
	Late      int `json:"late" yaml:"late"`
}

type Performance struct {
	LastReviewDate string  `json:"lastReviewDate" yaml:"lastReviewDate"`
	Rating         float64 `json:"rating" yaml:"rating"`
	Feedback       string  `json:"feedback" yaml:"feedback"`
}

type Document struct {
	Type             string `json:"type" yaml:"type"`
	Number           string `json:"number" yaml:"number"`
	ExpiryDate       string `json:"expiryDate" yaml:"expiryDate"`
	IssuingAuthority string `json:"issuingAuthority" yaml:"issuingAuthority"`
}

type SiteInfo struct {
	ID                     string                 `json:"id" yaml:"id"`
	Name                   string                 `json:"name" yaml:"name"`
	Location               string                 `json:"location" yaml:"location"`
	ProjectType            string                 `json:"projectType" yaml:"projectType"`
	StartDate              string                 `json:"startDate" yaml:"startDate"`
	ExpectedCompletionDate string                 `json:"expectedCompletionDate" yaml:"expectedCompletionDate"`
	TotalWorkers           int                    `json:"totalWorkers" yaml:"totalWorkers"`
	SafetyCompliance       float64                `json:"safetyCompliance" yaml:"safetyCompliance"`
	LastUpdated            string                 `json:"lastUpdated" yaml:"lastUpdated"`
	SiteManager            SiteManager            `json:"siteManager" yaml:"siteManager"`
	EmergencyContacts      []SiteEmergencyContact `json:"emergencyContacts" yaml:"emergencyContacts"`
	SafetyOfficer          SafetyOfficer          `json:"safetyOfficer" yaml:"safetyOfficer"`
	SiteStatus             SiteStatus             `json:"siteStatus" yaml:"siteStatus"`
	WorkHours              WorkHours              `json:"workHours" yaml:"workHours"`
	SafetyMeasures         SafetyMeasures         `json:"safetyMeasures" yaml:"safetyMeasures"`
	Equipment              []Equipment            `json:"equipment" yaml:"equipment"`
	Permits                []Permit               `json:"permits" yaml:"permits"`
}

type SiteManager struct {
	Name          string `json:"name" yaml:"name"`
	ContactNumber string `json:"contactNumber" yaml:"contactNumber"`
}

type SiteEmergencyContact struct {
	Name          string `json:"name" yaml:"name"`
	Role          string `json:"role" yaml:"role"`
	ContactNumber string `json:"contactNumber" yaml:"contactNumber"`
}

type SafetyOfficer struct {
	Name                string `json:"name" yaml:"name"`
	ContactNumber       string `json:"contactNumber" yaml:"contactNumber"`
	CertificationNumber string `json:"certificationNumber" yaml:"certificationNumber"`
}

type WorkHours struct {
	Start      string   `json:"start" yaml:"start"`
	End        string   `json:"end" yaml:"end"`
	BreakTimes []string `json:"breakTimes" yaml:"breakTimes"`
}

type SafetyMeasures struct {
	FirstAidKits      int    `json:"firstAidKits" yaml:"firstAidKits"`
	FireExtinguishers int    `json:"fireExtinguishers" yaml:"fireExtinguishers"`
	EmergencyExits    int    `json:"emergencyExits" yaml:"emergencyExits"`
	SafetySigns       bool   `json:"safetySigns" yaml:"safetySigns"`
	LastSafetyAudit   string `json:"lastSafetyAudit" yaml:"lastSafetyAudit"`
}

type Equipment struct {
	Type            string `json:"type" yaml:"type"`
	Count           int    `json:"count" yaml:"count"`
	LastMaintenance string `json:"lastMaintenance" yaml:"lastMaintenance"`
	NextMaintenance string `json:"nextMaintenance" yaml:"nextMaintenance"`
}

type Permit struct {
	Type             string `json:"type" yaml:"type"`
	Number           string `json:"number" yaml:"number"`
	IssuedDate       string `json:"issuedDate" yaml:"issuedDate"`
	ExpiryDate       string `json:"expiryDate" yaml:"expiryDate"`
	IssuingAuthority string `json:"issuingAuthority" yaml:"issuingAuthority"`
}

// SafetyViolation is never updated or deleted once recorded. WorkerID is a
// soft reference and may point at a worker that does not exist.
type SafetyViolation struct {
	ID          string   `json:"id" yaml:"id"`
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	Timestamp   string   `json:"timestamp" yaml:"timestamp"`
	Severity    Severity `json:"severity" yaml:"severity"`
	WorkerID    *string  `json:"workerId,omitempty" yaml:"workerId,omitempty"`
}
