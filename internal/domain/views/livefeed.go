package views

import (
	"sort"
	"time"

	"sitewatch/internal/domain/dashboard"
)

type FeedEntry struct {
	Violation dashboard.SafetyViolation `json:"violation"`
	Worker    *dashboard.Worker         `json:"worker,omitempty"`
}

// FeedFilter narrows the feed. Zero Since/Until are open bounds; violations
// with an unparseable timestamp are never excluded by the time window.
type FeedFilter struct {
	Severity dashboard.Severity
	Since    time.Time
	Until    time.Time
}

func (f FeedFilter) match(v dashboard.SafetyViolation) bool {
	if f.Severity != "" && v.Severity != f.Severity {
		return false
	}
	if f.Since.IsZero() && f.Until.IsZero() {
		return true
	}
	ts, err := time.Parse(time.RFC3339, v.Timestamp)
	if err != nil {
		return true
	}
	if !f.Since.IsZero() && ts.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && ts.After(f.Until) {
		return false
	}
	return true
}

// LiveFeed lists violations newest first; timestamps that do not parse sort
// last. Each entry resolves its worker reference; a dangling reference
// leaves Worker nil.
func LiveFeed(state dashboard.State, filter FeedFilter) []FeedEntry {
	out := make([]FeedEntry, 0, len(state.SafetyViolations))
	for _, v := range state.SafetyViolations {
		if !filter.match(v) {
			continue
		}
		entry := FeedEntry{Violation: v}
		if v.WorkerID != nil {
			if w, ok := state.WorkerByID(*v.WorkerID); ok {
				entry.Worker = &w
			}
		}
		out = append(out, entry)
	}
	sortNewestFirst(out)
	return out
}

// sortNewestFirst orders entries with an RFC3339 timestamp by instant,
// newest first, followed by the unparseable ones in descending string order.
func sortNewestFirst(entries []FeedEntry) {
	order := feedOrder{entries: entries, at: make([]time.Time, len(entries)), ok: make([]bool, len(entries))}
	for i, e := range entries {
		at, err := time.Parse(time.RFC3339, e.Violation.Timestamp)
		order.at[i], order.ok[i] = at, err == nil
	}
	sort.Stable(order)
}

type feedOrder struct {
	entries []FeedEntry
	at      []time.Time
	ok      []bool
}

func (o feedOrder) Len() int { return len(o.entries) }

func (o feedOrder) Less(i, j int) bool {
	switch {
	case o.ok[i] && o.ok[j]:
		return o.at[i].Compare(o.at[j]) > 0
	case o.ok[i] != o.ok[j]:
		return o.ok[i]
	default:
		return o.entries[i].Violation.Timestamp > o.entries[j].Violation.Timestamp
	}
}

func (o feedOrder) Swap(i, j int) {
	o.entries[i], o.entries[j] = o.entries[j], o.entries[i]
	o.at[i], o.at[j] = o.at[j], o.at[i]
	o.ok[i], o.ok[j] = o.ok[j], o.ok[i]
}

// SeverityCounts tallies violations per severity tier.
func SeverityCounts(violations []dashboard.SafetyViolation) map[dashboard.Severity]int {
	out := make(map[dashboard.Severity]int, 3)
	for _, v := range violations {
		out[v.Severity]++
	}
	return out
}
