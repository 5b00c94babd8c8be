// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"weekly/internal/document"
)

// PatchCall records one SubmitPatch invocation.
type PatchCall struct {
	Token string
	Who   string
	Patch document.Patch
}

// FakeRemote is an in-memory implementation of the orchestrator's Remote
// interface with call recording and error injection.
type FakeRemote struct {
	mu sync.Mutex

	// Doc is returned by FetchDocument.
	Doc *document.Shared

	// FetchErr, when set, fails every fetch.
	FetchErr error
	// PatchErr, when set, fails every patch.
	PatchErr error
	// PatchErrOn fails specific patches by 1-based call number, e.g.
	// {2: err} lets the first patch through and fails the second.
	PatchErrOn map[int]error

	calls []PatchCall
}

// NewFakeRemote creates a fake serving an empty document.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		Doc: &document.Shared{
			TaskConfig: []document.Task{},
			Completion: document.Completion{},
		},
	}
}

// SetDocument decodes a raw JSON body into the served document; panics on
// malformed test fixtures.
func (f *FakeRemote) SetDocument(body string) *FakeRemote {
	doc, err := document.Decode([]byte(body))
	if err != nil {
		panic("testutil: bad document fixture: " + err.Error())
	}
	f.Doc = doc
	return f
}

// FetchDocument implements sync.Remote.
func (f *FakeRemote) FetchDocument(ctx context.Context) (*document.Shared, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	return f.Doc, nil
}

// SubmitPatch implements sync.Remote, recording the call before reporting
// any injected error.
func (f *FakeRemote) SubmitPatch(ctx context.Context, token, who string, patch document.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, PatchCall{Token: token, Who: who, Patch: patch})
	if err := f.PatchErrOn[len(f.calls)]; err != nil {
		return err
	}
	return f.PatchErr
}

// Calls returns the recorded patch calls in order.
func (f *FakeRemote) Calls() []PatchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]PatchCall, len(f.calls))
	copy(out, f.calls)
	return out
}
