// Package sync coordinates mutations between the in-memory task state and
// the remote document store: authorize, build a scratch patch, submit, and
// commit locally only once the store acknowledged it.
package sync

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"weekly/internal/document"
	"weekly/internal/role"
	"weekly/internal/state"
	"weekly/internal/timekey"
)

// Remote is the document store the orchestrator writes through. Implemented
// by remote.Client; tests inject a fake.
type Remote interface {
	FetchDocument(ctx context.Context) (*document.Shared, error)
	SubmitPatch(ctx context.Context, token, who string, patch document.Patch) error
}

// Tokens holds the two per-role bearer tokens from host configuration.
type Tokens struct {
	Keyholder string
	Sub       string
}

// AuthorizationError rejects an action before any network call.
type AuthorizationError struct {
	Role    role.Role
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// Orchestrator runs the read-modify-patch protocol for one session. Each
// mutating action re-resolves the acting role from the session signals.
type Orchestrator struct {
	remote  Remote
	state   *state.TaskState
	signals role.Signals
	tokens  Tokens
	logger  *log.Logger

	// Now captures the calendar snapshot for an action. Overridable in
	// tests; each action calls it exactly once so every identifier it
	// uses comes from a single instant.
	Now func() timekey.Keys
}

// New creates an orchestrator over already-initialized state.
func New(rm Remote, st *state.TaskState, signals role.Signals, tokens Tokens, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{
		remote:  rm,
		state:   st,
		signals: signals,
		tokens:  tokens,
		logger:  logger,
		Now:     timekey.Now,
	}
}

// Role resolves the acting role from the session signals.
func (o *Orchestrator) Role() role.Role { return role.Resolve(o.signals) }

// CanShowEditor reports whether edit affordances may be rendered this
// session. Visibility only; mutations still re-check the role.
func (o *Orchestrator) CanShowEditor() bool { return role.CanShowEditor(o.signals) }

// Snapshot is the derived display state for one instant.
type Snapshot struct {
	Keys       timekey.Keys
	Role       role.Role
	ShowEditor bool
	Tasks      []document.Task
	Week       document.Week
}

// Snapshot projects the current state for rendering. All calendar
// identifiers come from a single captured instant.
func (o *Orchestrator) Snapshot() Snapshot {
	keys := o.Now()
	tasks := o.state.Tasks()
	week := make(document.Week, len(tasks))
	for _, t := range tasks {
		week[t.ID] = o.state.Row(keys.WeekKey, t.ID)
	}
	return Snapshot{
		Keys:       keys,
		Role:       o.Role(),
		ShowEditor: o.CanShowEditor(),
		Tasks:      tasks,
		Week:       week,
	}
}

// ToggleResult reports a completed toggle. CalendarErr carries a cascade
// failure; the toggle itself stands regardless.
type ToggleResult struct {
	Keys         timekey.Keys
	Row          document.Row
	AllDoneToday bool
	CalendarErr  error
}

// Toggle sets one completion cell for the current week, patches the store,
// and on success commits locally and evaluates the completion cascade: when
// every task is complete for today's column, a second independent patch tags
// today's calendar entry as done.
func (o *Orchestrator) Toggle(ctx context.Context, taskID string, column int, value bool) (ToggleResult, error) {
	keys := o.Now()
	r := o.Role()
	if !r.CanToggle() {
		return ToggleResult{}, &AuthorizationError{Role: r, Message: "choose a role"}
	}
	token := o.tokens.Keyholder
	if r == role.Sub {
		token = o.tokens.Sub
	}

	cand, err := o.state.Toggle(keys.WeekKey, taskID, column, value)
	if err != nil {
		return ToggleResult{}, err
	}

	if err := o.remote.SubmitPatch(ctx, token, string(r), cand.Patch()); err != nil {
		// Scratch copy never committed; live state reflects pre-toggle.
		return ToggleResult{}, err
	}
	o.state.CommitToggle(cand)
	o.logger.Debug("toggle committed", "task", taskID, "week", keys.WeekKey, "column", column, "value", value)

	res := ToggleResult{Keys: keys, Row: cand.Row}
	if keys.Column != timekey.NoColumn && o.state.AllDoneForColumn(keys.WeekKey, keys.Column) {
		res.AllDoneToday = true
		calPatch := document.CalendarPatch(keys.YearMonth, keys.MonthDay)
		if err := o.remote.SubmitPatch(ctx, token, string(r), calPatch); err != nil {
			// Reported, not rolled back: the completion toggle stands.
			o.logger.Warn("calendar tag failed", "day", keys.DayKey, "err", err)
			res.CalendarErr = err
		}
	}
	return res, nil
}

// AddTask drafts a new task. Keyholder only; no network until SaveConfig.
func (o *Orchestrator) AddTask(label string) (document.Task, error) {
	if r := o.Role(); !r.CanEditConfig() {
		return document.Task{}, &AuthorizationError{Role: r, Message: "keyholder mode required"}
	}
	return o.state.AddTask(label), nil
}

// RemoveTask drafts a task removal by id. Keyholder only.
func (o *Orchestrator) RemoveTask(taskID string) error {
	if r := o.Role(); !r.CanEditConfig() {
		return &AuthorizationError{Role: r, Message: "keyholder mode required"}
	}
	if !o.state.RemoveTask(taskID) {
		return fmt.Errorf("task not found: %s", taskID)
	}
	return nil
}

// RenameTask drafts a label edit by id. Keyholder only.
func (o *Orchestrator) RenameTask(taskID, label string) error {
	if r := o.Role(); !r.CanEditConfig() {
		return &AuthorizationError{Role: r, Message: "keyholder mode required"}
	}
	if !o.state.RenameTask(taskID, label) {
		return fmt.Errorf("task not found: %s", taskID)
	}
	return nil
}

// SaveConfig cleans the drafted config, patches it with the keyholder token,
// and commits on success. On failure the draft is kept and the committed
// config is unchanged.
func (o *Orchestrator) SaveConfig(ctx context.Context) ([]document.Task, error) {
	if r := o.Role(); !r.CanEditConfig() {
		return nil, &AuthorizationError{Role: r, Message: "keyholder mode required"}
	}
	cleaned := o.state.CleanConfig()
	if err := o.remote.SubmitPatch(ctx, o.tokens.Keyholder, string(role.Keyholder), document.ConfigPatch(cleaned)); err != nil {
		return nil, err
	}
	o.state.CommitConfig(cleaned)
	o.logger.Debug("config committed", "tasks", len(cleaned))
	return cleaned, nil
}
