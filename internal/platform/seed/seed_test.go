package seed

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitewatch/internal/domain/dashboard"
)

func TestLoadFileParsesFixture(t *testing.T) {
	fx, err := LoadFile(filepath.Join("testdata", "harbour.yaml"))
	require.NoError(t, err)

	require.Len(t, fx.Workers, 2)
	assert.Equal(t, dashboard.ShiftMorning, fx.Workers[0].WorkSchedule.Shift)
	assert.Equal(t, []string{"sunday"}, fx.Workers[0].WorkSchedule.DaysOff)
	require.Len(t, fx.Sites, 1)
	assert.Equal(t, dashboard.SiteStatusActive, fx.Sites[0].SiteStatus)
	assert.InDelta(t, 91.5, fx.Sites[0].SafetyCompliance, 0.001)
	require.Len(t, fx.SafetyViolations, 2)
	require.NotNil(t, fx.SafetyViolations[0].WorkerID)
	assert.Equal(t, "w-ana", *fx.SafetyViolations[0].WorkerID)
	assert.Nil(t, fx.SafetyViolations[1].WorkerID)
	require.NotNil(t, fx.SelectedSite)
	assert.Equal(t, "s-harbour", *fx.SelectedSite)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("workers: [unterminated"))
	assert.Error(t, err)
}

func TestApplyIsIdempotent(t *testing.T) {
	fx, err := LoadFile(filepath.Join("testdata", "harbour.yaml"))
	require.NoError(t, err)
	svc := dashboard.NewService(dashboard.NewStore(dashboard.EmptyState(), nil))

	res, err := Apply(svc, fx)
	require.NoError(t, err)
	assert.Equal(t, Result{Workers: 2, Sites: 1, Violations: 2}, res)

	st := svc.State()
	require.Len(t, st.Workers, 2)
	assert.Equal(t, "w-ana", st.Workers[0].ID)
	_, err = uuid.Parse(st.Workers[1].ID)
	assert.NoError(t, err, "worker without id gets a generated uuid")
	require.NotNil(t, st.SelectedSite)
	assert.Equal(t, "s-harbour", *st.SelectedSite)

	fx.Workers = fx.Workers[:1]
	res, err = Apply(svc, fx)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 4}, res)
	assert.Len(t, svc.State().Workers, 2)
}

func TestApplyKeepsExistingSelection(t *testing.T) {
	fx, err := LoadFile(filepath.Join("testdata", "harbour.yaml"))
	require.NoError(t, err)
	svc := dashboard.NewService(dashboard.NewStore(dashboard.EmptyState(), nil))

	_, err = Apply(svc, fx)
	require.NoError(t, err)
	other := "s-depot"
	svc.SetSelectedSite(&other)

	_, err = Apply(svc, fx)
	require.NoError(t, err)
	sel := svc.State().SelectedSite
	require.NotNil(t, sel)
	assert.Equal(t, "s-depot", *sel, "reapplying the fixture must not override a chosen site")

	svc.SetSelectedSite(nil)
	_, err = Apply(svc, fx)
	require.NoError(t, err)
	sel = svc.State().SelectedSite
	require.NotNil(t, sel)
	assert.Equal(t, "s-harbour", *sel)
}
