package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"sitewatch/internal/platform/kv"
)

// CurrentVersion is written into every snapshot envelope. Version 0 is the
// unversioned layout written before envelopes carried a schema version.
const CurrentVersion = 1

// Snapshot is the persisted envelope.
type Snapshot struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

type rawSnapshot struct {
	State   json.RawMessage `json:"state"`
	Version *int            `json:"version"`
}

// upgrades[n] converts a state decoded at version n into version n+1.
var upgrades = map[int]func(State) State{
	0: upgradeV0,
}

func upgradeV0(st State) State {
	if st.Workers == nil {
		st.Workers = []Worker{}
	}
	if st.Sites == nil {
		st.Sites = []SiteInfo{}
	}
	if st.SafetyViolations == nil {
		st.SafetyViolations = []SafetyViolation{}
	}
	return st
}

func EncodeSnapshot(state State) ([]byte, error) {
	data, err := json.Marshal(Snapshot{State: state, Version: CurrentVersion})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (State, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if len(raw.State) == 0 || string(raw.State) == "null" {
		return State{}, fmt.Errorf("%w: missing state", ErrSnapshotCorrupt)
	}

	version := 0
	if raw.Version != nil {
		version = *raw.Version
	}
	if version < 0 || version > CurrentVersion {
		return State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var st State
	if err := json.Unmarshal(raw.State, &st); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	for v := version; v < CurrentVersion; v++ {
		upgrade, ok := upgrades[v]
		if !ok {
			return State{}, fmt.Errorf("%w: no upgrade from %d", ErrUnsupportedVersion, v)
		}
		st = upgrade(st)
	}
	return st, nil
}

// Load reads the snapshot under StorageKey. It never fails: a missing,
// unreadable or corrupt snapshot yields EmptyState.
func Load(ctx context.Context, storage kv.Store) State {
	if storage == nil {
		return EmptyState()
	}
	data, err := storage.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			slog.Warn("snapshot load failed, starting empty", "key", StorageKey, "err", err)
		}
		return EmptyState()
	}
	st, err := DecodeSnapshot(data)
	if err != nil {
		slog.Warn("snapshot decode failed, starting empty", "key", StorageKey, "err", err)
		return EmptyState()
	}
	return st
}
