package views

const Title = "Construction Monitor"

const (
	PathLiveFeed = "/live-feed"
	PathWorkers  = "/workers"
	PathSites    = "/sites"
)

type NavItem struct {
	Title  string `json:"title"`
	Href   string `json:"href"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

type Navigation struct {
	Title string    `json:"title"`
	Items []NavItem `json:"items"`
}

var navItems = []NavItem{
	{Title: "Live Feed", Href: PathLiveFeed, Icon: "alert-triangle"},
	{Title: "Workers", Href: PathWorkers, Icon: "users"},
	{Title: "Sites", Href: PathSites, Icon: "building-2"},
}

// BuildNavigation marks the item whose href equals currentPath as active.
// Prefix matches do not count.
func BuildNavigation(currentPath string) Navigation {
	items := make([]NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = item.Href == currentPath
		items[i] = item
	}
	return Navigation{Title: Title, Items: items}
}
