package domain

import (
	"strings"
	"time"
)

// ViewMode selects how the board list is rendered.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

// ViewModeKey is the preference-store key the board view choice persists under.
const ViewModeKey = "boardsView"

// ParseViewMode maps a stored preference value to a ViewMode. Anything that
// is not the grid mode falls back to the list default.
func ParseViewMode(s string) ViewMode {
	if ViewMode(s) == ViewGrid {
		return ViewGrid
	}
	return ViewList
}

// ContainerClass returns the CSS class applied to the boards container for
// the mode.
func (v ViewMode) ContainerClass() string {
	return string(v) + "-view"
}

// BoardItem is a read-only projection of one rendered board row. It carries
// the explicit fields the server renders as data attributes; it is never the
// source of truth for a mutation.
type BoardItem struct {
	ID        string
	Name      string
	OwnerName string
	IsOwner   bool
	CreatedAt time.Time

	// Hidden marks rows filtered out by the live search. Hidden rows stay in
	// the list so clearing the query restores them.
	Hidden bool
}

// Label reproduces the rendered row text the duplicate check and search
// historically matched against.
func (b BoardItem) Label() string {
	if b.OwnerName == "" {
		return b.Name
	}
	return b.Name + " Owner: " + b.OwnerName
}

// AccessLevel returns the badge shown next to the row.
func (b BoardItem) AccessLevel() string {
	if b.IsOwner {
		return "owner"
	}
	return "member"
}

// ParseBoardLabel recovers a board name from a rendered row label by cutting
// the text at the "Owner" marker. The rendered label format is the only
// contract here; rows without the marker pass through trimmed.
func ParseBoardLabel(label string) string {
	if i := strings.Index(label, "Owner"); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(label)
}

// BoardStats are the counters shown above the board list, recomputed from
// the currently rendered items.
type BoardStats struct {
	Owned  int
	Member int
	Total  int
}
