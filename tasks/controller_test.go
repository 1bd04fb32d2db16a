package tasks

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Dsnks-19/Task-management-system/client"
	"github.com/Dsnks-19/Task-management-system/domain"
)

type fakeAPI struct {
	editErr   error
	deleteErr error
	toggleErr error

	editCalls   int
	lastBoardID string
	lastTaskID  string
	lastForm    url.Values
	lastAction  string
}

func (f *fakeAPI) EditTask(_ context.Context, boardID, taskID string, form url.Values) error {
	f.editCalls++
	f.lastBoardID = boardID
	f.lastTaskID = taskID
	f.lastForm = form
	return f.editErr
}

func (f *fakeAPI) DeleteTask(_ context.Context, boardID, taskID string) error {
	f.lastBoardID = boardID
	f.lastTaskID = taskID
	return f.deleteErr
}

func (f *fakeAPI) ToggleComplete(_ context.Context, action string, form url.Values) error {
	f.lastAction = action
	f.lastForm = form
	return f.toggleErr
}

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return r.err
}

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestController(items []domain.TaskItem, api *fakeAPI, refresh *countingRefresher) *Controller {
	return New(Config{BoardID: "board-1"}, items, api, refresh,
		WithClock(func() time.Time { return testNow }))
}

func TestValidate(t *testing.T) {
	future := testNow.Add(time.Hour)
	cases := []struct {
		name  string
		title string
		due   time.Time
		want  []string
	}{
		{"valid", "Write docs", future, nil},
		{"empty title", "", future, []string{msgTitleEmpty}},
		{"whitespace title", "   ", future, []string{msgTitleEmpty}},
		{"title too long", strings.Repeat("x", 101), future, []string{msgTitleTooLong}},
		{"title exactly 100", strings.Repeat("x", 100), future, nil},
		{"missing due date", "Write docs", time.Time{}, []string{msgDueRequired}},
		{"due one second ago", "Write docs", testNow.Add(-time.Second), []string{msgDuePast}},
		{"due exactly now", "Write docs", testNow, nil},
		{"empty title and past due", "", testNow.Add(-time.Hour), []string{msgTitleEmpty, msgDuePast}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.title, tc.due, testNow)
			if len(got) != len(tc.want) {
				t.Fatalf("Validate() = %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("Validate() = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestSubmitAddBlocksOnValidation(t *testing.T) {
	ctl := newTestController(nil, &fakeAPI{}, nil)

	if ctl.SubmitAdd("", testNow.Add(time.Hour)) {
		t.Fatal("expected invalid task to block submission")
	}
	banners := ctl.Banners()
	if len(banners) != 1 || !strings.Contains(banners[0].Message, "cannot be empty") {
		t.Fatalf("unexpected banners %+v", banners)
	}
}

func TestSubmitAddBlocksDuplicates(t *testing.T) {
	items := []domain.TaskItem{{ID: "1", Title: "Ship release"}}
	ctl := newTestController(items, &fakeAPI{}, nil)

	if ctl.SubmitAdd("  Ship release  ", testNow.Add(time.Hour)) {
		t.Fatal("expected duplicate title to block submission")
	}
	banners := ctl.Banners()
	if len(banners) != 1 || banners[0].Message != msgDuplicateTitle {
		t.Fatalf("unexpected banners %+v", banners)
	}

	if !ctl.SubmitAdd("Ship release v2", testNow.Add(time.Hour)) {
		t.Fatal("expected fresh title to pass")
	}
}

func TestOpenEditPopulatesForm(t *testing.T) {
	due := testNow.Add(48 * time.Hour)
	items := []domain.TaskItem{{
		ID:          "t1",
		Title:       "Ship release",
		Description: "cut the tag",
		DueDate:     due,
		AssignedTo:  `["u1","u3"]`,
	}}
	ctl := newTestController(items, &fakeAPI{}, nil)

	if !ctl.OpenEdit("t1") {
		t.Fatal("expected edit modal to open")
	}
	f := ctl.Edit()
	if !f.Open || f.TaskID != "t1" || f.Title != "Ship release" || f.Description != "cut the tag" {
		t.Fatalf("form not populated: %+v", f)
	}
	if !f.DueDate.Equal(due) {
		t.Fatalf("unexpected due date %v", f.DueDate)
	}
	if len(f.Assignees) != 2 || f.Assignees[0] != "u1" || f.Assignees[1] != "u3" {
		t.Fatalf("assignees not restored: %v", f.Assignees)
	}
	if f.Submit.Disabled || f.Submit.Label != editSubmitLabel {
		t.Fatalf("unexpected submit state %+v", f.Submit)
	}
}

func TestOpenEditMalformedAssigneesLeavesSelection(t *testing.T) {
	items := []domain.TaskItem{{ID: "t1", Title: "a", AssignedTo: `{broken`}}
	ctl := newTestController(items, &fakeAPI{}, nil)
	ctl.Edit().Assignees = []string{"u9"}

	if !ctl.OpenEdit("t1") {
		t.Fatal("expected edit modal to open despite bad assignee data")
	}
	if got := ctl.Edit().Assignees; len(got) != 1 || got[0] != "u9" {
		t.Fatalf("selection must stay untouched on parse failure, got %v", got)
	}
}

func TestOpenEditUnknownTask(t *testing.T) {
	ctl := newTestController(nil, &fakeAPI{}, nil)
	if ctl.OpenEdit("missing") {
		t.Fatal("expected unknown task id to be rejected")
	}
}

func TestSubmitEditSuccess(t *testing.T) {
	api := &fakeAPI{}
	refresh := &countingRefresher{}
	items := []domain.TaskItem{{ID: "t1", Title: "old", AssignedTo: `["u1"]`}}
	ctl := newTestController(items, api, refresh)

	ctl.OpenEdit("t1")
	f := ctl.Edit()
	f.Title = "new title"
	f.Description = "updated"
	f.DueDate = testNow.Add(time.Hour)

	if err := ctl.SubmitEdit(context.Background()); err != nil {
		t.Fatalf("submit edit: %v", err)
	}
	if api.lastBoardID != "board-1" || api.lastTaskID != "t1" {
		t.Fatalf("wrong target %s/%s", api.lastBoardID, api.lastTaskID)
	}
	if api.lastForm.Get("title") != "new title" || api.lastForm.Get("description") != "updated" {
		t.Fatalf("unexpected form %v", api.lastForm)
	}
	if api.lastForm.Get("due_date") != testNow.Add(time.Hour).Format("2006-01-02T15:04") {
		t.Fatalf("unexpected due_date %q", api.lastForm.Get("due_date"))
	}
	if got := api.lastForm["assigned_to"]; len(got) != 1 || got[0] != "u1" {
		t.Fatalf("unexpected assignees %v", got)
	}
	if f.Open {
		t.Fatal("modal must close on success")
	}
	if refresh.calls != 1 {
		t.Fatalf("expected one refresh, got %d", refresh.calls)
	}
}

func TestSubmitEditServerFailureKeepsModalOpen(t *testing.T) {
	api := &fakeAPI{editErr: &client.APIError{Status: 200, Message: "Title already used"}}
	refresh := &countingRefresher{}
	items := []domain.TaskItem{{ID: "t1", Title: "old"}}
	ctl := newTestController(items, api, refresh)

	ctl.OpenEdit("t1")
	f := ctl.Edit()
	f.Title = "new title"
	f.DueDate = testNow.Add(time.Hour)

	if err := ctl.SubmitEdit(context.Background()); err == nil {
		t.Fatal("expected submit failure")
	}
	if !f.Open {
		t.Fatal("modal must stay open on failure")
	}
	// The server's message shows inline, verbatim.
	if f.ErrorText != "Title already used" {
		t.Fatalf("unexpected inline error %q", f.ErrorText)
	}
	if f.Submit.Disabled || f.Submit.Label != editSubmitLabel {
		t.Fatalf("submit control must be re-enabled with its original label, got %+v", f.Submit)
	}
	if refresh.calls != 0 {
		t.Fatal("no refresh on failure")
	}
}

func TestSubmitEditValidationSkipsNetwork(t *testing.T) {
	api := &fakeAPI{}
	ctl := newTestController([]domain.TaskItem{{ID: "t1"}}, api, nil)

	ctl.OpenEdit("t1")
	f := ctl.Edit()
	f.Title = ""
	f.DueDate = testNow.Add(time.Hour)

	err := ctl.SubmitEdit(context.Background())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(f.ErrorText, "cannot be empty") {
		t.Fatalf("unexpected inline error %q", f.ErrorText)
	}
	if api.editCalls != 0 {
		t.Fatal("validation failures must not reach the network")
	}
}

func TestSubmitDelete(t *testing.T) {
	api := &fakeAPI{}
	refresh := &countingRefresher{}
	ctl := newTestController(nil, api, refresh)

	ctl.OpenDelete("t7", "Ship release")
	f := ctl.Delete()
	if !f.Open || f.TaskID != "t7" || f.Title != "Ship release" {
		t.Fatalf("delete modal not bound: %+v", f)
	}

	if err := ctl.SubmitDelete(context.Background()); err != nil {
		t.Fatalf("submit delete: %v", err)
	}
	if api.lastTaskID != "t7" {
		t.Fatalf("wrong task deleted: %s", api.lastTaskID)
	}
	if f.Open {
		t.Fatal("modal must close on success")
	}
	if refresh.calls != 1 {
		t.Fatalf("expected one refresh, got %d", refresh.calls)
	}
}

func TestSubmitDeleteFailure(t *testing.T) {
	api := &fakeAPI{deleteErr: &client.APIError{Status: 500, Message: "Failed to delete task"}}
	ctl := newTestController(nil, api, nil)

	ctl.OpenDelete("t7", "Ship release")
	if err := ctl.SubmitDelete(context.Background()); err == nil {
		t.Fatal("expected failure")
	}
	f := ctl.Delete()
	if !f.Open || f.ErrorText != "Failed to delete task" {
		t.Fatalf("unexpected state %+v", f)
	}
	if f.Submit.Disabled || f.Submit.Label != deleteSubmitLabel {
		t.Fatalf("submit control must be re-enabled, got %+v", f.Submit)
	}
}

func TestToggle(t *testing.T) {
	api := &fakeAPI{}
	refresh := &countingRefresher{}
	ctl := newTestController(nil, api, refresh)

	form := url.Values{"completed": {"true"}}
	if err := ctl.Toggle(context.Background(), "/boards/board-1/tasks/t1/toggle-complete", form); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if api.lastAction != "/boards/board-1/tasks/t1/toggle-complete" {
		t.Fatalf("unexpected action %q", api.lastAction)
	}
	if refresh.calls != 1 {
		t.Fatalf("expected one refresh, got %d", refresh.calls)
	}
}

func TestToggleFailureShowsBanner(t *testing.T) {
	api := &fakeAPI{toggleErr: errors.New("boom")}
	ctl := newTestController(nil, api, nil)

	if err := ctl.Toggle(context.Background(), "/x", nil); err == nil {
		t.Fatal("expected failure")
	}
	banners := ctl.Banners()
	if len(banners) != 1 || banners[0].Message != msgToggleFailed {
		t.Fatalf("unexpected banners %+v", banners)
	}
}

func TestDefaultDateInputs(t *testing.T) {
	ctl := newTestController(nil, &fakeAPI{}, nil)

	preset := testNow.Add(72 * time.Hour)
	empty := &DateInput{}
	filled := &DateInput{Value: preset}
	ctl.DefaultDateInputs([]*DateInput{empty, filled})

	if !empty.Value.Equal(testNow) {
		t.Fatalf("empty input not defaulted: %v", empty.Value)
	}
	if !filled.Value.Equal(preset) {
		t.Fatalf("preset value must survive: %v", filled.Value)
	}
	if !empty.Min.Equal(testNow) || !filled.Min.Equal(testNow) {
		t.Fatalf("all inputs must be bounded at now: %v, %v", empty.Min, filled.Min)
	}
}

func TestCountersRecomputeAfterRefresh(t *testing.T) {
	items := []domain.TaskItem{
		{ID: "1", Completed: true},
		{ID: "2"},
	}
	ctl := newTestController(items, &fakeAPI{}, nil)

	stats := ctl.Counters()
	if stats.Active != 1 || stats.Completed != 1 || stats.Total != 2 {
		t.Fatalf("unexpected counters %+v", stats)
	}

	ctl.SetItems([]domain.TaskItem{{ID: "1", Completed: true}, {ID: "2", Completed: true}})
	stats = ctl.Counters()
	if stats.Active != 0 || stats.Completed != 2 {
		t.Fatalf("counters not recomputed %+v", stats)
	}
}
