package models

// TrackedTitle is a title identifier from static configuration.
type TrackedTitle struct {
	Category Category
	ID       string
}

// NewTrackedTitles tags every id with category, keeping the configured order.
func NewTrackedTitles(category Category, ids []string) []TrackedTitle {
	titles := make([]TrackedTitle, 0, len(ids))
	for _, id := range ids {
		titles = append(titles, TrackedTitle{Category: category, ID: id})
	}
	return titles
}

// FetchResult holds what the remote lookup returned for one title during a run.
// It is never persisted.
type FetchResult struct {
	TitleID        string
	Name           string
	CurrentVersion string
	Region         string // empty when the remote side reports none
	IconURL        string
	Link           string
}

// ChangeEvent pairs a title with the version recorded in history and the
// version just observed. PastVersion is empty for a title never seen before.
type ChangeEvent struct {
	Category       Category
	TitleID        string
	Name           string
	Region         string
	IconURL        string
	Link           string
	PastVersion    string
	CurrentVersion string
}

// NewChangeEvent builds the event for a fetched title against its recorded version.
func NewChangeEvent(category Category, result *FetchResult, past string) ChangeEvent {
	return ChangeEvent{
		Category:       category,
		TitleID:        result.TitleID,
		Name:           result.Name,
		Region:         result.Region,
		IconURL:        result.IconURL,
		Link:           result.Link,
		PastVersion:    past,
		CurrentVersion: result.CurrentVersion,
	}
}

// PlatformPresentation carries how a category's notifications look.
type PlatformPresentation struct {
	Color        string // six hex digits, no leading '#'
	LogoURL      string
	LinkTemplate string // fmt template taking the title id
}
