package views

import "sitewatch/internal/domain/dashboard"

type SiteEntry struct {
	dashboard.SiteInfo
	Selected bool `json:"selected"`
}

type SiteFilter struct {
	Status dashboard.SiteStatus
}

func Sites(state dashboard.State, filter SiteFilter) []SiteEntry {
	selected := ""
	if state.SelectedSite != nil {
		selected = *state.SelectedSite
	}
	out := make([]SiteEntry, 0, len(state.Sites))
	for _, s := range state.Sites {
		if filter.Status != "" && s.SiteStatus != filter.Status {
			continue
		}
		out = append(out, SiteEntry{SiteInfo: s, Selected: s.ID == selected})
	}
	return out
}

// SelectedSite resolves the selection. It returns nil when nothing is
// selected or the selection no longer matches a site.
func SelectedSite(state dashboard.State) *dashboard.SiteInfo {
	if state.SelectedSite == nil {
		return nil
	}
	site, ok := state.SiteByID(*state.SelectedSite)
	if !ok {
		return nil
	}
	return &site
}
