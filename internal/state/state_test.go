package state

import (
	"reflect"
	"testing"

	"weekly/internal/document"
)

func newState(t *testing.T, body string) *TaskState {
	t.Helper()
	doc, err := document.Decode([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return New(doc)
}

func TestToggleCopyOnWrite(t *testing.T) {
	s := newState(t, `{
		"taskConfig": [{"id":"t1","label":"Wash"},{"id":"t2","label":"Dishes"}],
		"completion": {"2024-06-03": {"t2": [true,false,false,false,false]}}
	}`)

	cand, err := s.Toggle("2024-06-03", "t1", 2, true)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if cand.Row != (document.Row{false, false, true, false, false}) {
		t.Errorf("candidate row = %v", cand.Row)
	}

	// Nothing committed yet: the live table is untouched.
	if s.Row("2024-06-03", "t1") != (document.Row{}) {
		t.Error("live row mutated before commit")
	}

	s.CommitToggle(cand)
	if s.Row("2024-06-03", "t1") != (document.Row{false, false, true, false, false}) {
		t.Errorf("committed row = %v", s.Row("2024-06-03", "t1"))
	}
	// Sibling rows and other weeks are unaffected.
	if s.Row("2024-06-03", "t2") != (document.Row{true, false, false, false, false}) {
		t.Errorf("sibling row changed: %v", s.Row("2024-06-03", "t2"))
	}
	if s.Row("2024-05-27", "t1") != (document.Row{}) {
		t.Error("other week affected")
	}
}

func TestUncommittedToggleLeavesTableEqual(t *testing.T) {
	s := newState(t, `{
		"taskConfig": [{"id":"t1","label":"Wash"}],
		"completion": {"2024-06-03": {"t1": [true,true,false,false,false]}}
	}`)
	before := s.Row("2024-06-03", "t1")

	if _, err := s.Toggle("2024-06-03", "t1", 4, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	// Candidate deliberately dropped, as after a failed patch.
	if s.Row("2024-06-03", "t1") != before {
		t.Error("failed toggle changed committed state")
	}
}

func TestToggleColumnRange(t *testing.T) {
	s := newState(t, `{}`)
	for _, col := range []int{-1, 5, 99} {
		if _, err := s.Toggle("2024-06-03", "t1", col, true); err == nil {
			t.Errorf("column %d accepted", col)
		}
	}
}

func TestAllDoneForColumn(t *testing.T) {
	s := newState(t, `{
		"taskConfig": [{"id":"t1","label":"A"},{"id":"t2","label":"B"}],
		"completion": {"2024-06-03": {
			"t1": [true,false,false,false,false],
			"t2": [true,true,false,false,false]
		}}
	}`)
	if !s.AllDoneForColumn("2024-06-03", 0) {
		t.Error("column 0 should be all done")
	}
	if s.AllDoneForColumn("2024-06-03", 1) {
		t.Error("column 1 should not be all done")
	}
	if s.AllDoneForColumn("2024-05-27", 0) {
		t.Error("week with no rows should not be all done")
	}
}

func TestAllDoneEmptyConfigNeverDone(t *testing.T) {
	s := newState(t, `{
		"completion": {"2024-06-03": {"ghost": [true,true,true,true,true]}}
	}`)
	for col := 0; col < document.Columns; col++ {
		if s.AllDoneForColumn("2024-06-03", col) {
			t.Errorf("empty task list reported all done for column %d", col)
		}
	}
}

func TestDraftEditsInvisibleUntilCommit(t *testing.T) {
	s := newState(t, `{"taskConfig": [{"id":"t1","label":"Wash"}]}`)

	added := s.AddTask("Sweep")
	if added.ID == "" || added.ID == "t1" {
		t.Errorf("added id = %q", added.ID)
	}
	if len(s.Tasks()) != 1 {
		t.Error("draft add leaked into committed config")
	}

	cleaned := s.CleanConfig()
	if len(cleaned) != 2 {
		t.Fatalf("cleaned = %v", cleaned)
	}
	s.CommitConfig(cleaned)
	if got := s.Tasks(); len(got) != 2 || got[1].Label != "Sweep" {
		t.Errorf("committed config = %v", got)
	}
}

func TestCleanConfigTrimsAndDrops(t *testing.T) {
	s := newState(t, `{"taskConfig": [{"id":"t1","label":" Wash "},{"id":"t2","label":"   "}]}`)
	got := s.CleanConfig()
	want := []document.Task{{ID: "t1", Label: "Wash"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cleaned = %v, want %v", got, want)
	}
}

func TestRemoveTaskKeepsOrphanRows(t *testing.T) {
	s := newState(t, `{
		"taskConfig": [{"id":"t1","label":"Wash"}],
		"completion": {"2024-06-03": {"t1": [true,false,false,false,false]}}
	}`)
	if !s.RemoveTask("t1") {
		t.Fatal("remove failed")
	}
	s.CommitConfig(s.CleanConfig())
	if len(s.Tasks()) != 0 {
		t.Errorf("config = %v", s.Tasks())
	}
	if s.Row("2024-06-03", "t1") != (document.Row{true, false, false, false, false}) {
		t.Error("historical row purged; should be retained")
	}
}

func TestRemoveUnknownTask(t *testing.T) {
	s := newState(t, `{"taskConfig": [{"id":"t1","label":"Wash"}]}`)
	if s.RemoveTask("nope") {
		t.Error("remove of unknown id reported success")
	}
}

func TestRenameTask(t *testing.T) {
	s := newState(t, `{"taskConfig": [{"id":"t1","label":"Wash"}]}`)
	if !s.RenameTask("t1", "Wash up") {
		t.Fatal("rename failed")
	}
	s.CommitConfig(s.CleanConfig())
	if got := s.Tasks(); got[0].Label != "Wash up" || got[0].ID != "t1" {
		t.Errorf("renamed = %v", got[0])
	}
}

func TestDiscardEdits(t *testing.T) {
	s := newState(t, `{"taskConfig": [{"id":"t1","label":"Wash"}]}`)
	s.AddTask("Sweep")
	s.DiscardEdits()
	if got := s.CleanConfig(); len(got) != 1 {
		t.Errorf("after discard: %v", got)
	}
}
