package alerts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitewatch/internal/domain/dashboard"
)

type sentMail struct {
	from, to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, from, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{from, to, subject, body})
	return f.err
}

// inlineQueue runs jobs immediately.
type inlineQueue struct {
	types []string
	errs  []error
}

func (q *inlineQueue) Enqueue(jobType string, run func(context.Context) error) bool {
	q.types = append(q.types, jobType)
	q.errs = append(q.errs, run(context.Background()))
	return true
}

func strPtr(s string) *string { return &s }

func setup(t *testing.T, min dashboard.Severity) (*dashboard.Service, *fakeMailer, *inlineQueue) {
	t.Helper()
	store := dashboard.NewStore(dashboard.EmptyState(), nil)
	svc := dashboard.NewService(store)
	require.NoError(t, svc.AddWorker(dashboard.Worker{ID: "w1", FirstName: "Ana", LastName: "Mason", EmployeeID: "EMP-001", Department: "Concrete"}))
	require.NoError(t, svc.AddSite(dashboard.SiteInfo{ID: "s1", Name: "Harbour Tower", Location: "Pier 4"}))
	svc.SetSelectedSite(strPtr("s1"))

	mailer := &fakeMailer{}
	queue := &inlineQueue{}
	svc.Observe(New(store, mailer, queue, "alerts@site.local", "ops@site.local", min))
	return svc, mailer, queue
}

func TestHighSeverityViolationSendsAlert(t *testing.T) {
	svc, mailer, queue := setup(t, "")

	require.NoError(t, svc.AddSafetyViolation(dashboard.SafetyViolation{
		ID: "v1", Type: "Fall protection", Description: "harness not clipped on level 9",
		Timestamp: "2025-07-01T09:30:00Z", Severity: dashboard.SeverityHigh, WorkerID: strPtr("w1"),
	}))

	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, "alerts@site.local", mail.from)
	assert.Equal(t, "ops@site.local", mail.to)
	assert.Equal(t, "[HIGH] safety violation: Fall protection", mail.subject)
	assert.Contains(t, mail.body, "Ana Mason (EMP-001, Concrete)")
	assert.Contains(t, mail.body, "Harbour Tower, Pier 4")
	assert.True(t, strings.HasSuffix(mail.body, "harness not clipped on level 9\n"))
	assert.Equal(t, []string{"violation_alert"}, queue.types)
}

func TestLowerSeveritiesAreFiltered(t *testing.T) {
	svc, mailer, _ := setup(t, dashboard.SeverityMedium)

	require.NoError(t, svc.AddSafetyViolation(dashboard.SafetyViolation{ID: "v1", Severity: dashboard.SeverityLow}))
	require.NoError(t, svc.AddSafetyViolation(dashboard.SafetyViolation{ID: "v2", Severity: dashboard.SeverityMedium, WorkerID: strPtr("gone")}))
	require.NoError(t, svc.AddSafetyViolation(dashboard.SafetyViolation{ID: "v3", Severity: "unknown"}))

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].body, "Violation: v2")
	assert.Contains(t, mailer.sent[0].body, "unknown worker gone")
}

func TestRejectedViolationDoesNotAlert(t *testing.T) {
	svc, mailer, _ := setup(t, dashboard.SeverityLow)

	require.NoError(t, svc.AddSafetyViolation(dashboard.SafetyViolation{ID: "v1", Severity: dashboard.SeverityHigh}))
	assert.ErrorIs(t, svc.AddSafetyViolation(dashboard.SafetyViolation{ID: "v1", Severity: dashboard.SeverityHigh}), dashboard.ErrDuplicateID)
	assert.Len(t, mailer.sent, 1)
}

func TestSendFailureSurfacesOnJob(t *testing.T) {
	svc, mailer, queue := setup(t, "")
	mailer.err = errors.New("smtp down")

	require.NoError(t, svc.AddSafetyViolation(dashboard.SafetyViolation{ID: "v1", Severity: dashboard.SeverityHigh}))
	require.Len(t, queue.errs, 1)
	assert.ErrorContains(t, queue.errs[0], "send alert for v1")
	assert.Len(t, svc.State().SafetyViolations, 1)
}

func TestNoRecipientDisablesAlerts(t *testing.T) {
	store := dashboard.NewStore(dashboard.EmptyState(), nil)
	mailer := &fakeMailer{}
	n := New(store, mailer, &inlineQueue{}, "alerts@site.local", " ", "")
	n.ViolationAdded(dashboard.SafetyViolation{ID: "v1", Severity: dashboard.SeverityHigh})
	assert.Empty(t, mailer.sent)
}
