// Package alerts mails a notice for every safety violation at or above a
// configured severity. Mail goes out on the job queue so adding a violation
// never waits on SMTP.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sitewatch/internal/domain/dashboard"
	"sitewatch/internal/platform/email"
	"sitewatch/internal/platform/jobs"
)

const sendTimeout = 30 * time.Second

type Queue interface {
	Enqueue(jobType string, run func(context.Context) error) bool
}

type Notifier struct {
	store  dashboard.StoreAPI
	mailer email.Mailer
	queue  Queue
	from   string
	to     string
	min    dashboard.Severity
}

func New(store dashboard.StoreAPI, mailer email.Mailer, queue Queue, from, to string, min dashboard.Severity) *Notifier {
	if min == "" {
		min = dashboard.SeverityHigh
	}
	return &Notifier{store: store, mailer: mailer, queue: queue, from: from, to: to, min: min}
}

func (n *Notifier) ViolationAdded(v dashboard.SafetyViolation) {
	if strings.TrimSpace(n.to) == "" || rank(v.Severity) < rank(n.min) {
		return
	}
	subject, body := compose(n.store.State(), v)
	n.queue.Enqueue(jobs.JobViolationAlert, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()
		if err := n.mailer.Send(ctx, n.from, n.to, subject, body); err != nil {
			return fmt.Errorf("send alert for %s: %w", v.ID, err)
		}
		return nil
	})
}

// rank orders severities; unknown values rank below low.
func rank(s dashboard.Severity) int {
	switch s {
	case dashboard.SeverityLow:
		return 1
	case dashboard.SeverityMedium:
		return 2
	case dashboard.SeverityHigh:
		return 3
	}
	return 0
}

func compose(state dashboard.State, v dashboard.SafetyViolation) (string, string) {
	subject := fmt.Sprintf("[%s] safety violation: %s", strings.ToUpper(string(v.Severity)), v.Type)

	who := "unassigned"
	if v.WorkerID != nil {
		who = "unknown worker " + *v.WorkerID
		if w, ok := state.WorkerByID(*v.WorkerID); ok {
			who = fmt.Sprintf("%s %s (%s, %s)", w.FirstName, w.LastName, w.EmployeeID, w.Department)
		}
	}
	site := "none selected"
	if state.SelectedSite != nil {
		site = *state.SelectedSite
		if s, ok := state.SiteByID(*state.SelectedSite); ok {
			site = fmt.Sprintf("%s, %s", s.Name, s.Location)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Violation: %s\n", v.ID)
	fmt.Fprintf(&b, "Type: %s\n", v.Type)
	fmt.Fprintf(&b, "Severity: %s\n", v.Severity)
	fmt.Fprintf(&b, "Reported: %s\n", v.Timestamp)
	fmt.Fprintf(&b, "Worker: %s\n", who)
	fmt.Fprintf(&b, "Selected site: %s\n\n", site)
	b.WriteString(v.Description)
	b.WriteString("\n")
	return subject, b.String()
}
