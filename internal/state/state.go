// Package state holds the in-memory task checklist: the committed view of
// the shared document plus scratch values for edits awaiting a patch.
// Mutations are copy-on-write; nothing touches the committed view until the
// orchestrator confirms the patch persisted.
package state

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"weekly/internal/document"
)

// TaskState owns the task config and completion table for one session.
// Not safe for concurrent use; the orchestrator serializes access.
type TaskState struct {
	config     []document.Task
	completion document.Completion

	// draft is the editor's scratch config, nil outside an edit session.
	draft []document.Task
}

// New initializes state from a fetched document, defaulting missing fields
// to empty.
func New(doc *document.Shared) *TaskState {
	s := &TaskState{completion: document.Completion{}}
	if doc != nil {
		s.config = append(s.config, doc.TaskConfig...)
		for wk, week := range doc.Completion {
			cp := make(document.Week, len(week))
			for id, row := range week {
				cp[id] = row
			}
			s.completion[wk] = cp
		}
	}
	return s
}

// Tasks returns the committed task config in display order.
func (s *TaskState) Tasks() []document.Task {
	out := make([]document.Task, len(s.config))
	copy(out, s.config)
	return out
}

// Row returns the completion row for a task in a week. A missing row is
// all-false, never an error.
func (s *TaskState) Row(weekKey, taskID string) document.Row {
	return s.completion[weekKey][taskID]
}

// ToggleCandidate is a scratch toggle result: the updated row and the copied
// week it belongs to. It becomes visible only through CommitToggle.
type ToggleCandidate struct {
	WeekKey string
	TaskID  string
	Row     document.Row
	week    document.Week
}

// Patch returns the smallest correct patch for the candidate: the single
// changed row under its week key.
func (c ToggleCandidate) Patch() document.Patch {
	return document.CompletionPatch(c.WeekKey, c.TaskID, c.Row)
}

// Toggle computes the candidate row for setting one cell, copying the week
// so the committed table stays untouched until the patch succeeds.
func (s *TaskState) Toggle(weekKey, taskID string, column int, value bool) (ToggleCandidate, error) {
	if column < 0 || column >= document.Columns {
		return ToggleCandidate{}, fmt.Errorf("column out of range: %d", column)
	}
	week := make(document.Week, len(s.completion[weekKey])+1)
	for id, row := range s.completion[weekKey] {
		week[id] = row
	}
	row := week[taskID]
	row[column] = value
	week[taskID] = row
	return ToggleCandidate{WeekKey: weekKey, TaskID: taskID, Row: row, week: week}, nil
}

// CommitToggle installs a candidate into the committed table.
func (s *TaskState) CommitToggle(c ToggleCandidate) {
	if c.week == nil {
		return
	}
	s.completion[c.WeekKey] = c.week
}

// AllDoneForColumn reports whether every configured task is complete for the
// column in the given week. An empty task list is never all done.
func (s *TaskState) AllDoneForColumn(weekKey string, column int) bool {
	if len(s.config) == 0 || column < 0 || column >= document.Columns {
		return false
	}
	week := s.completion[weekKey]
	for _, t := range s.config {
		if !week[t.ID][column] {
			return false
		}
	}
	return true
}

// editDraft returns the scratch config, starting an edit session from the
// committed config on first use.
func (s *TaskState) editDraft() []document.Task {
	if s.draft == nil {
		s.draft = make([]document.Task, len(s.config))
		copy(s.draft, s.config)
	}
	return s.draft
}

// AddTask appends a new task with an opaque unique id to the scratch config
// and returns it.
func (s *TaskState) AddTask(label string) document.Task {
	t := document.Task{ID: uuid.NewString(), Label: label}
	s.draft = append(s.editDraft(), t)
	return t
}

// RemoveTask drops a task from the scratch config by id. Historical
// completion rows for the id are retained; they become unreachable through
// the config and are harmless, though a long-lived document accumulates
// them without bound.
func (s *TaskState) RemoveTask(taskID string) bool {
	draft := s.editDraft()
	for i, t := range draft {
		if t.ID == taskID {
			s.draft = append(draft[:i:i], draft[i+1:]...)
			return true
		}
	}
	return false
}

// RenameTask edits a task's label in the scratch config.
func (s *TaskState) RenameTask(taskID, label string) bool {
	draft := s.editDraft()
	for i := range draft {
		if draft[i].ID == taskID {
			draft[i].Label = label
			return true
		}
	}
	return false
}

// CleanConfig returns the scratch config with labels trimmed and blank-label
// tasks dropped. Ids of surviving entries are preserved. This is the value a
// config save patches and, on success, commits.
func (s *TaskState) CleanConfig() []document.Task {
	draft := s.draft
	if draft == nil {
		draft = s.config
	}
	cleaned := make([]document.Task, 0, len(draft))
	for _, t := range draft {
		label := strings.TrimSpace(t.Label)
		if label == "" {
			continue
		}
		cleaned = append(cleaned, document.Task{ID: t.ID, Label: label})
	}
	return cleaned
}

// CommitConfig replaces the committed config and ends the edit session.
func (s *TaskState) CommitConfig(cleaned []document.Task) {
	s.config = make([]document.Task, len(cleaned))
	copy(s.config, cleaned)
	s.draft = nil
}

// DiscardEdits throws away the scratch config.
func (s *TaskState) DiscardEdits() { s.draft = nil }
