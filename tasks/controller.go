// Package tasks drives the task list page: add/edit/delete form handling,
// field validation, the completion toggle, and the task counters. Mutations
// go through the server client; a successful mutation triggers the injected
// refresher, which re-derives the view model from the server's state (the
// typed replacement for the historical full-page reload).
package tasks

import (
	"context"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Dsnks-19/Task-management-system/domain"
)

const maxTitleLen = 100

// Validation copy, joined into banners and inline error text.
const (
	msgTitleEmpty   = "Task title cannot be empty"
	msgTitleTooLong = "Task title cannot exceed 100 characters"
	msgDueRequired  = "Due date is required"
	msgDuePast      = "Due date cannot be in the past"

	msgDuplicateTitle = "A task with this name already exists"
	msgToggleFailed   = "Failed to update task status"
)

// Submit control labels for the two async modals.
const (
	editSubmitLabel   = "Save Changes"
	editBusyLabel     = "Saving..."
	deleteSubmitLabel = "Delete Task"
	deleteBusyLabel   = "Deleting..."
)

// dueDateLayout matches the datetime-local input format the server parses.
const dueDateLayout = "2006-01-02T15:04"

// Validate applies the shared add/edit rules: title required and at most
// 100 characters, due date required and not strictly before now. A missing
// due date short-circuits the past check.
func Validate(title string, due, now time.Time) []string {
	var errs []string
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		errs = append(errs, msgTitleEmpty)
	}
	if len(trimmed) > maxTitleLen {
		errs = append(errs, msgTitleTooLong)
	}
	if due.IsZero() {
		errs = append(errs, msgDueRequired)
		return errs
	}
	if due.Before(now) {
		errs = append(errs, msgDuePast)
	}
	return errs
}

// API is the slice of the server client the controller needs.
type API interface {
	EditTask(ctx context.Context, boardID, taskID string, form url.Values) error
	DeleteTask(ctx context.Context, boardID, taskID string) error
	ToggleComplete(ctx context.Context, action string, form url.Values) error
}

// Refresher re-derives the page state from the server after a successful
// mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts a function to the Refresher interface.
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

// SubmitControl mirrors the state of a modal's submit button.
type SubmitControl struct {
	Disabled bool
	Label    string
}

// EditForm is the edit modal's state.
type EditForm struct {
	Open        bool
	TaskID      string
	Title       string
	Description string
	DueDate     time.Time
	Assignees   []string
	ErrorText   string
	Submit      SubmitControl
}

// DeleteForm is the delete modal's state.
type DeleteForm struct {
	Open      bool
	TaskID    string
	Title     string
	ErrorText string
	Submit    SubmitControl
}

// DateInput models a datetime-local widget.
type DateInput struct {
	Value time.Time
	Min   time.Time
}

// Config carries the page context the template used to inject as globals.
type Config struct {
	BoardID string
}

// Controller owns the task list page state.
type Controller struct {
	cfg     Config
	items   []domain.TaskItem
	api     API
	refresh Refresher
	log     *log.Logger
	now     func() time.Time

	banners []domain.Banner
	edit    EditForm
	del     DeleteForm
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger overrides the controller's logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.log = logger }
}

// WithClock overrides the controller's clock. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a controller for the board identified by cfg.BoardID over the
// rendered task items.
func New(cfg Config, items []domain.TaskItem, api API, refresh Refresher, opts ...Option) *Controller {
	c := &Controller{
		cfg:     cfg,
		items:   items,
		api:     api,
		refresh: refresh,
		log:     log.StandardLogger(),
		now:     time.Now,
		edit:    EditForm{Submit: SubmitControl{Label: editSubmitLabel}},
		del:     DeleteForm{Submit: SubmitControl{Label: deleteSubmitLabel}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Items returns the current view model.
func (c *Controller) Items() []domain.TaskItem { return c.items }

// SetItems replaces the view model, typically from a refresher.
func (c *Controller) SetItems(items []domain.TaskItem) { c.items = items }

// Banners returns the banners queued since the last call and clears the
// queue.
func (c *Controller) Banners() []domain.Banner {
	b := c.banners
	c.banners = nil
	return b
}

// Edit exposes the edit modal state.
func (c *Controller) Edit() *EditForm { return &c.edit }

// Delete exposes the delete modal state.
func (c *Controller) Delete() *DeleteForm { return &c.del }

// Counters recomputes the active/completed/total counts from the items.
func (c *Controller) Counters() domain.TaskStats {
	return domain.CountTasks(c.items)
}

// DefaultDateInputs pre-fills empty datetime inputs with the current time
// and bounds every input at now so past dates cannot be picked. The bound is
// a widget nicety only; the server re-checks the date.
func (c *Controller) DefaultDateInputs(inputs []*DateInput) {
	now := c.now()
	for _, in := range inputs {
		if in.Value.IsZero() {
			in.Value = now
		}
		in.Min = now
	}
}

// SubmitAdd gates the add form's native submission: validation failures and
// duplicate titles queue an error banner and block the submit; true lets
// the full-page form submission proceed.
func (c *Controller) SubmitAdd(title string, due time.Time) bool {
	if errs := Validate(title, due, c.now()); len(errs) > 0 {
		c.banners = append(c.banners, domain.ErrorBanner(strings.Join(errs, "\n")))
		return false
	}
	trimmed := strings.TrimSpace(title)
	for _, item := range c.items {
		if strings.TrimSpace(item.Title) == trimmed {
			c.banners = append(c.banners, domain.ErrorBanner(msgDuplicateTitle))
			return false
		}
	}
	return true
}

// OpenEdit populates the edit modal from the task's rendered fields. The
// serialized assignee list is decoded here; a malformed list is logged and
// leaves the selection untouched.
func (c *Controller) OpenEdit(taskID string) bool {
	item, ok := c.find(taskID)
	if !ok {
		c.log.WithField("task_id", taskID).Error("task card not found")
		return false
	}
	c.edit = EditForm{
		Open:        true,
		TaskID:      item.ID,
		Title:       item.Title,
		Description: item.Description,
		DueDate:     item.DueDate,
		Assignees:   c.edit.Assignees,
		Submit:      SubmitControl{Label: editSubmitLabel},
	}
	ids, err := domain.DecodeAssignees([]byte(item.AssignedTo))
	if err != nil {
		c.log.WithFields(log.Fields{"task_id": taskID, "error": err.Error()}).
			Error("parsing assigned users")
		return true
	}
	c.edit.Assignees = ids
	return true
}

// SubmitEdit validates the edit form and posts it. Success closes the modal
// and refreshes the page state; failure keeps the modal open with the
// server's message inline. The submit control is disabled for the duration
// and restored either way.
func (c *Controller) SubmitEdit(ctx context.Context) error {
	f := &c.edit
	if errs := Validate(f.Title, f.DueDate, c.now()); len(errs) > 0 {
		f.ErrorText = strings.Join(errs, "\n")
		return &ValidationError{Message: f.ErrorText}
	}

	f.Submit = SubmitControl{Disabled: true, Label: editBusyLabel}
	defer func() {
		f.Submit = SubmitControl{Disabled: false, Label: editSubmitLabel}
	}()

	form := url.Values{}
	form.Set("title", f.Title)
	form.Set("description", f.Description)
	form.Set("due_date", f.DueDate.Format(dueDateLayout))
	for _, id := range f.Assignees {
		form.Add("assigned_to", id)
	}

	if err := c.api.EditTask(ctx, c.cfg.BoardID, f.TaskID, form); err != nil {
		f.ErrorText = err.Error()
		return err
	}

	f.Open = false
	f.ErrorText = ""
	return c.doRefresh(ctx)
}

// OpenDelete binds the delete modal to a task and exposes its title for the
// confirmation copy.
func (c *Controller) OpenDelete(taskID, title string) {
	c.del = DeleteForm{
		Open:   true,
		TaskID: taskID,
		Title:  title,
		Submit: SubmitControl{Label: deleteSubmitLabel},
	}
}

// SubmitDelete posts the deletion. Same success/failure contract as
// SubmitEdit.
func (c *Controller) SubmitDelete(ctx context.Context) error {
	f := &c.del
	f.Submit = SubmitControl{Disabled: true, Label: deleteBusyLabel}
	defer func() {
		f.Submit = SubmitControl{Disabled: false, Label: deleteSubmitLabel}
	}()

	if err := c.api.DeleteTask(ctx, c.cfg.BoardID, f.TaskID); err != nil {
		f.ErrorText = err.Error()
		return err
	}

	f.Open = false
	f.ErrorText = ""
	return c.doRefresh(ctx)
}

// Toggle posts a completion toggle to its rendered action path. Success
// refreshes the page state; failure surfaces a transient banner.
func (c *Controller) Toggle(ctx context.Context, action string, form url.Values) error {
	if err := c.api.ToggleComplete(ctx, action, form); err != nil {
		c.banners = append(c.banners, domain.ErrorBanner(msgToggleFailed))
		return err
	}
	return c.doRefresh(ctx)
}

func (c *Controller) doRefresh(ctx context.Context) error {
	if c.refresh == nil {
		return nil
	}
	if err := c.refresh.Refresh(ctx); err != nil {
		c.log.WithField("error", err.Error()).Error("refresh page state")
		return err
	}
	return nil
}

func (c *Controller) find(taskID string) (domain.TaskItem, bool) {
	for _, item := range c.items {
		if item.ID == taskID {
			return item, true
		}
	}
	return domain.TaskItem{}, false
}

// ValidationError is a pre-submit rejection of the edit form. The message is
// the inline error text, one rule per line.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
