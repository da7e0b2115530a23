package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"sitewatch/internal/domain/dashboard"
)

// Fixture is the YAML document accepted by cmd/seed and SEED_FILE.
type Fixture struct {
	Workers          []dashboard.Worker          `yaml:"workers"`
	Sites            []dashboard.SiteInfo        `yaml:"sites"`
	SafetyViolations []dashboard.SafetyViolation `yaml:"safetyViolations"`
	SelectedSite     *string                     `yaml:"selectedSite"`
}

type Result struct {
	Workers    int `json:"workers"`
	Sites      int `json:"sites"`
	Violations int `json:"violations"`
	Skipped    int `json:"skipped"`
}

func LoadFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixture{}, fmt.Errorf("parse seed file: %w", err)
	}
	return fx, nil
}

// Apply adds every fixture entity through the service. Entities without an
// id get a generated one; entities whose id already exists are skipped, and
// the fixture selection only fills an empty one, so applying the same
// fixture twice is harmless.
func Apply(svc *dashboard.Service, fx Fixture) (Result, error) {
	var res Result
	for _, w := range fx.Workers {
		if strings.TrimSpace(w.ID) == "" {
			w.ID = uuid.NewString()
		}
		ok, err := ensure(svc.AddWorker(w))
		if err != nil {
			return res, fmt.Errorf("seed worker %s: %w", w.ID, err)
		}
		if ok {
			res.Workers++
		} else {
			res.Skipped++
		}
	}
	for _, s := range fx.Sites {
		if strings.TrimSpace(s.ID) == "" {
			s.ID = uuid.NewString()
		}
		ok, err := ensure(svc.AddSite(s))
		if err != nil {
			return res, fmt.Errorf("seed site %s: %w", s.ID, err)
		}
		if ok {
			res.Sites++
		} else {
			res.Skipped++
		}
	}
	for _, v := range fx.SafetyViolations {
		if strings.TrimSpace(v.ID) == "" {
			v.ID = uuid.NewString()
		}
		ok, err := ensure(svc.AddSafetyViolation(v))
		if err != nil {
			return res, fmt.Errorf("seed violation %s: %w", v.ID, err)
		}
		if ok {
			res.Violations++
		} else {
			res.Skipped++
		}
	}
	if fx.SelectedSite != nil && svc.State().SelectedSite == nil {
		svc.SetSelectedSite(fx.SelectedSite)
	}
	slog.Info("seed applied", "workers", res.Workers, "sites", res.Sites, "violations", res.Violations, "skipped", res.Skipped)
	return res, nil
}

func ensure(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, dashboard.ErrDuplicateID) {
		return false, nil
	}
	return false, err
}
