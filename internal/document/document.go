// Package document defines the shared remote document and the partial-update
// patches exchanged with the remote store.
package document

import "encoding/json"

// Columns is the number of weekday columns, Mon..Fri.
const Columns = 5

// Task is one checklist entry. The id is opaque and stable; insertion order
// in the config is the display and iteration order.
type Task struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Row is one task's completion vector for one week, indexed Mon=0..Fri=4.
// A missing row means all false.
type Row [Columns]bool

// Week maps task id to completion row within one week.
type Week map[string]Row

// Completion maps week key (the Monday's date) to that week's rows. Grows by
// one entry per week ever used; no pruning.
type Completion map[string]Week

// Shared is the remote root object. Fields this tool does not own (calendar
// data and anything else the host stores alongside) are held opaquely in
// Extra and are never written back: every write is a partial Patch, so
// unrelated fields cannot be clobbered.
type Shared struct {
	TaskConfig []Task     `json:"taskConfig"`
	Completion Completion `json:"completion"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the owned fields and retains everything else in
// Extra.
func (s *Shared) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["taskConfig"]; ok {
		if err := json.Unmarshal(v, &s.TaskConfig); err != nil {
			return err
		}
		delete(raw, "taskConfig")
	}
	if v, ok := raw["completion"]; ok {
		if err := json.Unmarshal(v, &s.Completion); err != nil {
			return err
		}
		delete(raw, "completion")
	}
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}

// CalendarSet is the calendar-tagging patch shape consumed by the host's
// calendar widget.
type CalendarSet struct {
	YM   string   `json:"ym"` // YYYY-MM
	Day  int      `json:"day"`
	Tags []string `json:"tags"`
}

// Patch is a partial document update. Only set fields are serialized; the
// remote store deep-merges by field path, so a completion patch carrying a
// single week/task row merges under that row's path instead of replacing the
// whole table.
//
// A nil TaskConfig is absent from the patch; an empty non-nil one is a valid
// "replace with no tasks" and is serialized.
type Patch struct {
	TaskConfig  []Task
	Completion  Completion
	CalendarSet *CalendarSet
}

// MarshalJSON serializes only the fields the patch sets.
func (p Patch) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 3)
	if p.TaskConfig != nil {
		m["taskConfig"] = p.TaskConfig
	}
	if p.Completion != nil {
		m["completion"] = p.Completion
	}
	if p.CalendarSet != nil {
		m["calendarSet"] = p.CalendarSet
	}
	return json.Marshal(m)
}

// CompletionPatch builds the smallest correct patch for one toggled row:
// one week key, one task id. Sending more would clobber concurrent edits to
// sibling rows under last-write-wins.
func CompletionPatch(weekKey, taskID string, row Row) Patch {
	return Patch{Completion: Completion{weekKey: Week{taskID: row}}}
}

// ConfigPatch builds the patch replacing the task config.
func ConfigPatch(tasks []Task) Patch {
	if tasks == nil {
		tasks = []Task{}
	}
	return Patch{TaskConfig: tasks}
}

// CalendarPatch builds the patch tagging one calendar day as done.
func CalendarPatch(ym string, day int) Patch {
	return Patch{CalendarSet: &CalendarSet{YM: ym, Day: day, Tags: []string{"done"}}}
}
