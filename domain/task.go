package domain

import (
	"time"

	"github.com/bytedance/sonic"
)

// TaskItem is a read-only projection of one rendered task card. AssignedTo
// stays in its serialized form until the edit flow needs it, matching the
// data attribute the server renders.
type TaskItem struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	AssignedTo  string
	Completed   bool
}

// TaskStats are the counters shown above the task list.
type TaskStats struct {
	Active    int
	Completed int
	Total     int
}

// CountTasks recomputes the counters from the items' completion flags.
func CountTasks(items []TaskItem) TaskStats {
	var s TaskStats
	for _, t := range items {
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
	}
	s.Total = s.Completed + s.Active
	return s
}

// DecodeAssignees parses the serialized assignee id list carried by a task
// item. An empty attribute decodes to no assignees.
func DecodeAssignees(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []string
	if err := sonic.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
