package reports

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"sitewatch/internal/domain/dashboard"
	"sitewatch/internal/domain/views"
)

var ErrSiteNotFound = errors.New("site not found")

// SiteSafetyReport renders a one-site safety summary as PDF. Violations
// carry no site reference, so the violation section covers the whole
// dashboard.
func SiteSafetyReport(state dashboard.State, siteID string) ([]byte, error) {
	site, ok := state.SiteByID(siteID)
	if !ok {
		return nil, ErrSiteNotFound
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Site Safety Report: %s", site.Name))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line(pdf, "Location: %s", site.Location)
	line(pdf, "Project type: %s", site.ProjectType)
	line(pdf, "Status: %s", site.SiteStatus)
	line(pdf, "Schedule: %s to %s", site.StartDate, site.ExpectedCompletionDate)
	line(pdf, "Workers on site: %d", site.TotalWorkers)
	line(pdf, "Safety compliance: %.1f%%", site.SafetyCompliance)
	line(pdf, "Site manager: %s (%s)", site.SiteManager.Name, site.SiteManager.ContactNumber)
	line(pdf, "Safety officer: %s (%s, cert %s)", site.SafetyOfficer.Name, site.SafetyOfficer.ContactNumber, site.SafetyOfficer.CertificationNumber)
	pdf.Ln(4)

	heading(pdf, "Safety measures")
	m := site.SafetyMeasures
	line(pdf, "First aid kits: %d", m.FirstAidKits)
	line(pdf, "Fire extinguishers: %d", m.FireExtinguishers)
	line(pdf, "Emergency exits: %d", m.EmergencyExits)
	line(pdf, "Safety signs posted: %s", yesNo(m.SafetySigns))
	line(pdf, "Last safety audit: %s", m.LastSafetyAudit)
	pdf.Ln(4)

	heading(pdf, "Emergency contacts")
	if len(site.EmergencyContacts) == 0 {
		line(pdf, "None recorded")
	}
	for _, c := range site.EmergencyContacts {
		line(pdf, "%s, %s: %s", c.Name, c.Role, c.ContactNumber)
	}
	pdf.Ln(4)

	heading(pdf, "Permits")
	if len(site.Permits) == 0 {
		line(pdf, "None recorded")
	}
	for _, p := range site.Permits {
		line(pdf, "%s #%s issued %s, expires %s (%s)", p.Type, p.Number, p.IssuedDate, p.ExpiryDate, p.IssuingAuthority)
	}
	pdf.Ln(4)

	heading(pdf, "Equipment")
	if len(site.Equipment) == 0 {
		line(pdf, "None recorded")
	}
	for _, e := range site.Equipment {
		line(pdf, "%s x%d, last maintenance %s, next %s", e.Type, e.Count, e.LastMaintenance, e.NextMaintenance)
	}
	pdf.Ln(4)

	heading(pdf, "Safety violations (all sites)")
	counts := views.SeverityCounts(state.SafetyViolations)
	line(pdf, "High: %d  Medium: %d  Low: %d",
		counts[dashboard.SeverityHigh], counts[dashboard.SeverityMedium], counts[dashboard.SeverityLow])
	for _, entry := range views.LiveFeed(state, views.FeedFilter{}) {
		v := entry.Violation
		who := "unassigned"
		if entry.Worker != nil {
			who = entry.Worker.FirstName + " " + entry.Worker.LastName
		} else if v.WorkerID != nil {
			who = "unknown worker " + *v.WorkerID
		}
		line(pdf, "[%s] %s %s: %s (%s)", v.Severity, v.Timestamp, v.Type, v.Description, who)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render site report: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func line(pdf *gofpdf.Fpdf, format string, args ...any) {
	pdf.MultiCell(0, 6, fmt.Sprintf(format, args...), "", "L", false)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
