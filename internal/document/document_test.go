package document

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeDefaultsEmpty(t *testing.T) {
	s, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.TaskConfig == nil || len(s.TaskConfig) != 0 {
		t.Errorf("task config = %v, want empty", s.TaskConfig)
	}
	if s.Completion == nil || len(s.Completion) != 0 {
		t.Errorf("completion = %v, want empty", s.Completion)
	}
}

func TestDecodePreservesUnrelatedFields(t *testing.T) {
	body := []byte(`{
		"taskConfig": [{"id":"t1","label":"Wash"}],
		"completion": {"2024-06-03": {"t1": [true,false,false,false,false]}},
		"calendar": {"2024-06": {"3": ["done"]}},
		"notes": "hello"
	}`)
	s, err := Decode(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(s.Extra) != 2 {
		t.Fatalf("extra fields = %d, want 2", len(s.Extra))
	}
	if string(s.Extra["notes"]) != `"hello"` {
		t.Errorf("notes = %s", s.Extra["notes"])
	}
	if _, ok := s.Extra["calendar"]; !ok {
		t.Error("calendar field not preserved")
	}
}

func TestDecodeShortRowZeroFills(t *testing.T) {
	body := []byte(`{"completion": {"2024-06-03": {"t1": [true,true]}}}`)
	s, err := Decode(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Row{true, true, false, false, false}
	if got := s.Completion["2024-06-03"]["t1"]; got != want {
		t.Errorf("row = %v, want %v", got, want)
	}
}

func TestDecodeRejectsWrongShapes(t *testing.T) {
	cases := map[string]string{
		"config not array":   `{"taskConfig": {"id":"t1"}}`,
		"row not array":      `{"completion": {"2024-06-03": {"t1": "yes"}}}`,
		"row not booleans":   `{"completion": {"2024-06-03": {"t1": [1,0,1,0,1]}}}`,
		"task without id":    `{"taskConfig": [{"label":"Wash"}]}`,
		"not json":           `{"taskConfig": [`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(body)); err == nil {
				t.Errorf("decode accepted %s", body)
			}
		})
	}
}

func TestCompletionPatchShape(t *testing.T) {
	p := CompletionPatch("2024-06-03", "t1", Row{false, false, true, false, false})
	got, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"completion":{"2024-06-03":{"t1":[false,false,true,false,false]}}}`
	if string(got) != want {
		t.Errorf("patch = %s, want %s", got, want)
	}
}

func TestCalendarPatchShape(t *testing.T) {
	got, err := json.Marshal(CalendarPatch("2024-06", 5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"calendarSet":{"ym":"2024-06","day":5,"tags":["done"]}}`
	if string(got) != want {
		t.Errorf("patch = %s, want %s", got, want)
	}
}

func TestConfigPatchSerializesEmptyConfig(t *testing.T) {
	got, err := json.Marshal(ConfigPatch(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"taskConfig":[]}` {
		t.Errorf("patch = %s, want {\"taskConfig\":[]}", got)
	}
}

func TestPatchOmitsUnsetFields(t *testing.T) {
	got, err := json.Marshal(Patch{Completion: Completion{"2024-06-03": Week{}}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(got), "taskConfig") || strings.Contains(string(got), "calendarSet") {
		t.Errorf("patch carries unset fields: %s", got)
	}
}
