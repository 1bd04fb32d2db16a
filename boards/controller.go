// Package boards drives the board list page: create-form validation, live
// search, sorting, the list/grid view preference, statistics, and the
// post-redirect flash banners. All state here is a projection of what the
// server rendered; the server re-validates every mutation on its own.
package boards

import (
	"context"
	"net/url"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Dsnks-19/Task-management-system/domain"
	"github.com/Dsnks-19/Task-management-system/storage"
)

const maxBoardNameLen = 50

// Validation copy shown in the error banner.
const (
	msgNameEmpty     = "Board name cannot be empty"
	msgNameDuplicate = "A board with this name already exists"
	msgNameTooLong   = "Board name cannot exceed 50 characters"
)

// ValidationError is a create-form rejection. The message is user-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

const deleteBoardPrompt = "Are you sure you want to delete this board? This action cannot be undone."

// Controller owns the board list page state.
type Controller struct {
	items   []domain.BoardItem
	prefs   storage.KV
	view    domain.ViewMode
	banners []domain.Banner
	modals  map[string]bool
	log     *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger overrides the controller's logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.log = logger }
}

// New creates a controller over the rendered board items. prefs persists the
// view preference across page loads.
func New(items []domain.BoardItem, prefs storage.KV, opts ...Option) *Controller {
	c := &Controller{
		items: items,
		prefs: prefs,
		view:  domain.ViewList,
		log:   log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ItemsFromLabels builds board items from rendered row labels, recovering
// each name by cutting the label at the "Owner" marker.
func ItemsFromLabels(labels []string) []domain.BoardItem {
	items := make([]domain.BoardItem, 0, len(labels))
	for _, label := range labels {
		name := domain.ParseBoardLabel(label)
		owner := ""
		if i := strings.Index(label, "Owner"); i >= 0 {
			owner = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(label[i:]), "Owner:"))
		}
		items = append(items, domain.BoardItem{Name: name, OwnerName: owner})
	}
	return items
}

// Items returns the current view model.
func (c *Controller) Items() []domain.BoardItem { return c.items }

// Banners returns the banners queued since the last call and clears the
// queue.
func (c *Controller) Banners() []domain.Banner {
	b := c.banners
	c.banners = nil
	return b
}

// ValidateCreate checks a new board name against the create-form rules:
// non-empty after trimming, no duplicate among the rendered items
// (case-sensitive), and at most 50 characters. Check order matches the form.
func (c *Controller) ValidateCreate(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Message: msgNameEmpty}
	}
	for _, item := range c.items {
		if domain.ParseBoardLabel(item.Label()) == name {
			return &ValidationError{Message: msgNameDuplicate}
		}
	}
	if len(name) > maxBoardNameLen {
		return &ValidationError{Message: msgNameTooLong}
	}
	return nil
}

// SubmitCreate gates the create-form submission. A validation failure queues
// an error banner and blocks the submit; true means the form may proceed.
func (c *Controller) SubmitCreate(name string) bool {
	if err := c.ValidateCreate(name); err != nil {
		c.banners = append(c.banners, domain.ErrorBanner(err.Error()))
		return false
	}
	return true
}

// Search applies the live filter: rows whose label does not contain the
// query (case-insensitive) are hidden, never removed.
func (c *Controller) Search(query string) {
	q := strings.ToLower(query)
	for i := range c.items {
		label := strings.ToLower(c.items[i].Label())
		c.items[i].Hidden = !strings.Contains(label, q)
	}
}

// Visible returns the rows the current search leaves showing.
func (c *Controller) Visible() []domain.BoardItem {
	out := make([]domain.BoardItem, 0, len(c.items))
	for _, item := range c.items {
		if !item.Hidden {
			out = append(out, item)
		}
	}
	return out
}

// Sort reorders the list in place: "name" sorts lexicographically by label,
// "date" sorts by creation time, newest first. Unknown keys leave the order
// untouched.
func (c *Controller) Sort(by string) {
	switch by {
	case "name":
		sort.SliceStable(c.items, func(i, j int) bool {
			return c.items[i].Label() < c.items[j].Label()
		})
	case "date":
		sort.SliceStable(c.items, func(i, j int) bool {
			return c.items[i].CreatedAt.After(c.items[j].CreatedAt)
		})
	}
}

// SetView switches the container between list and grid rendering and
// persists the choice.
func (c *Controller) SetView(ctx context.Context, mode domain.ViewMode) error {
	mode = domain.ParseViewMode(string(mode))
	c.view = mode
	if err := c.prefs.Set(ctx, domain.ViewModeKey, string(mode)); err != nil {
		c.log.WithField("error", err.Error()).Warn("persist view preference")
		return err
	}
	return nil
}

// RestoreView applies the saved view preference on page load by driving the
// same path a toggle click takes. Defaults to the list view.
func (c *Controller) RestoreView(ctx context.Context) domain.ViewMode {
	saved, ok, err := c.prefs.Get(ctx, domain.ViewModeKey)
	if err != nil {
		c.log.WithField("error", err.Error()).Warn("read view preference")
	}
	mode := domain.ViewList
	if ok {
		mode = domain.ParseViewMode(saved)
	}
	_ = c.SetView(ctx, mode)
	return mode
}

// View returns the active view mode.
func (c *Controller) View() domain.ViewMode { return c.view }

// ConfirmDelete gates the delete-form submission behind a blocking
// confirmation prompt.
func (c *Controller) ConfirmDelete(confirm Confirmer) bool {
	return confirm.Confirm(deleteBoardPrompt)
}

// Stats recomputes the owned/member/total counters from the rendered items.
func (c *Controller) Stats() domain.BoardStats {
	var s domain.BoardStats
	for _, item := range c.items {
		if item.IsOwner {
			s.Owned++
		} else {
			s.Member++
		}
	}
	s.Total = s.Owned + s.Member
	return s
}

// FlashFromQuery converts post-redirect query parameters into banners:
// message becomes a success banner, error an error banner. The URL itself is
// left alone.
func (c *Controller) FlashFromQuery(query url.Values) []domain.Banner {
	var banners []domain.Banner
	if msg := query.Get("message"); msg != "" {
		banners = append(banners, domain.SuccessBanner(msg))
	}
	if msg := query.Get("error"); msg != "" {
		banners = append(banners, domain.ErrorBanner(msg))
	}
	c.banners = append(c.banners, banners...)
	return banners
}
