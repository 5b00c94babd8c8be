package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"weekly/internal/document"
)

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestFetchDocument(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") == "" {
			t.Error("fetch request missing cache buster")
		}
		w.Write([]byte(`{"taskConfig":[{"id":"t1","label":"Wash"}],"completion":{}}`))
	})
	doc, err := c.FetchDocument(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(doc.TaskConfig) != 1 || doc.TaskConfig[0].ID != "t1" {
		t.Errorf("task config = %v", doc.TaskConfig)
	}
}

func TestFetchCacheBusterDistinctPerCall(t *testing.T) {
	seen := make(map[string]bool)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		v := r.URL.Query().Get("v")
		if seen[v] {
			t.Errorf("cache buster repeated: %s", v)
		}
		seen[v] = true
		w.Write([]byte(`{}`))
	})
	for i := 0; i < 3; i++ {
		if _, err := c.FetchDocument(context.Background()); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
}

func TestFetchNon2xxIsFetchError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	_, err := c.FetchDocument(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FetchError", err)
	}
	if fe.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", fe.Status)
	}
}

func TestFetchMalformedBodyIsFetchError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"taskConfig": "nope"}`))
	})
	_, err := c.FetchDocument(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FetchError", err)
	}
}

func TestSubmitPatchFormFields(t *testing.T) {
	var gotToken, gotWho, gotPatch string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotToken = r.PostFormValue("token")
		gotWho = r.PostFormValue("who")
		gotPatch = r.PostFormValue("patch")
		w.Write([]byte(`{"ok":true}`))
	})

	p := document.CompletionPatch("2024-06-03", "t1", document.Row{true})
	if err := c.SubmitPatch(context.Background(), "sekrit", "sub", p); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gotToken != "sekrit" || gotWho != "sub" {
		t.Errorf("token/who = %q/%q", gotToken, gotWho)
	}
	want := `{"completion":{"2024-06-03":{"t1":[true,false,false,false,false]}}}`
	if gotPatch != want {
		t.Errorf("patch = %s, want %s", gotPatch, want)
	}
}

func TestSubmitPatchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			"explicit failure marker with message",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok":false,"error":"bad token"}`))
			},
			"bad token",
		},
		{
			"non-2xx without body message",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			"save failed (HTTP 500)",
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			"save failed (HTTP 200)",
		},
		{
			"2xx body missing success marker",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
			"save failed (HTTP 200)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, tt.handler)
			err := c.SubmitPatch(context.Background(), "tok", "keyholder", document.CalendarPatch("2024-06", 3))
			var pe *PatchError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want PatchError", err)
			}
			if pe.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", pe.Message, tt.wantMsg)
			}
		})
	}
}

func TestNewRejectsEmptyURL(t *testing.T) {
	if _, err := New("  ", nil); err == nil {
		t.Error("expected error for empty url")
	}
}
