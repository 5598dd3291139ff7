package state

import (
	"errors"
	"testing"
)

type widget struct {
	ID   string
	Name string
}

func newTestCollection() *Collection[widget] {
	return NewCollection(func(w widget) string { return w.ID })
}

func TestLifecycleTransitions(t *testing.T) {
	col := newTestCollection()
	if col.Phase() != PhaseIdle {
		t.Fatalf("expected idle, got %s", col.Phase())
	}

	token := col.Begin()
	if !col.Loading() {
		t.Fatal("expected loading after Begin")
	}

	if !col.Succeed(token, []widget{{ID: "1", Name: "a"}}) {
		t.Fatal("expected settlement to apply")
	}
	if col.Phase() != PhaseSucceeded {
		t.Fatalf("expected succeeded, got %s", col.Phase())
	}
	if col.Loading() {
		t.Fatal("loading must be false after settlement")
	}
	if col.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", col.Len())
	}
}

func TestFailureRetainsItems(t *testing.T) {
	col := newTestCollection()
	token := col.Begin()
	col.Succeed(token, []widget{{ID: "1"}, {ID: "2"}})

	token = col.Begin()
	if col.Err() != "" {
		t.Fatal("Begin must clear the previous error")
	}
	if !col.Fail(token, "backend exploded") {
		t.Fatal("expected failure to apply")
	}
	if col.Phase() != PhaseFailed {
		t.Fatalf("expected failed, got %s", col.Phase())
	}
	if col.Err() != "backend exploded" {
		t.Fatalf("unexpected error message %q", col.Err())
	}
	if col.Len() != 2 {
		t.Fatal("failed refresh must keep last-known-good items")
	}
}

func TestStaleSettlementDiscarded(t *testing.T) {
	col := newTestCollection()
	first := col.Begin()
	second := col.Begin()

	// The second (newer) request settles first.
	if !col.Succeed(second, []widget{{ID: "new"}}) {
		t.Fatal("latest token must settle")
	}
	// The first request's late completion must be discarded.
	if col.Succeed(first, []widget{{ID: "old"}}) {
		t.Fatal("stale token must be discarded")
	}
	items := col.Items()
	if len(items) != 1 || items[0].ID != "new" {
		t.Fatalf("expected latest-issued result to win, got %+v", items)
	}
	if col.Fail(first, "late failure") {
		t.Fatal("stale failure must be discarded")
	}
	if col.Err() != "" {
		t.Fatal("stale failure must not surface an error")
	}
}

func TestDiscardClearsLoadingWithoutError(t *testing.T) {
	col := newTestCollection()
	token := col.Begin()
	col.Discard(token)
	if col.Loading() {
		t.Fatal("discard must clear loading")
	}
	if col.Err() != "" {
		t.Fatal("discard must not record an error")
	}

	// Discarding a stale token is a no-op.
	old := col.Begin()
	fresh := col.Begin()
	col.Discard(old)
	if !col.Loading() {
		t.Fatal("stale discard must not clear the newer operation")
	}
	col.Settle(fresh)
}

func TestRemoveIsIdempotent(t *testing.T) {
	col := newTestCollection()
	token := col.Begin()
	col.Succeed(token, []widget{{ID: "1"}, {ID: "2"}})

	if !col.Remove("1") {
		t.Fatal("expected removal of cached id")
	}
	if col.Remove("1") {
		t.Fatal("second removal must be a no-op")
	}
	if col.Remove("missing") {
		t.Fatal("removing an absent id must be a no-op")
	}
	if col.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", col.Len())
	}
}

func TestRemoveClearsMatchingCurrent(t *testing.T) {
	col := newTestCollection()
	token := col.Begin()
	col.Succeed(token, []widget{{ID: "1"}, {ID: "2"}})
	col.SetCurrent(widget{ID: "2"})

	col.Remove("2")
	if _, ok := col.Current(); ok {
		t.Fatal("removing the current item must clear it")
	}
}

func TestReplaceSwapsInPlace(t *testing.T) {
	col := newTestCollection()
	token := col.Begin()
	col.Succeed(token, []widget{{ID: "1", Name: "old"}, {ID: "2"}})

	if !col.Replace(widget{ID: "1", Name: "new"}) {
		t.Fatal("expected replace to find the member")
	}
	items := col.Items()
	if items[0].Name != "new" {
		t.Fatalf("expected in-place update, got %+v", items[0])
	}
	if items[0].ID != "1" || items[1].ID != "2" {
		t.Fatal("replace must not reorder the collection")
	}
}

func TestModifyDoesNotCommit(t *testing.T) {
	col := newTestCollection()
	token := col.Begin()
	col.Succeed(token, []widget{{ID: "1", Name: "cached"}})

	merged, err := col.Modify("1", func(w widget) widget {
		w.Name = "merged"
		return w
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Name != "merged" {
		t.Fatalf("expected merged copy, got %+v", merged)
	}
	cached, _ := col.Get("1")
	if cached.Name != "cached" {
		t.Fatal("Modify must not mutate the collection before the server ack")
	}

	if _, err := col.Modify("missing", func(w widget) widget { return w }); !errors.Is(err, ErrNotCached) {
		t.Fatalf("expected ErrNotCached, got %v", err)
	}
}

func TestClearErrorLeavesItems(t *testing.T) {
	col := newTestCollection()
	token := col.Begin()
	col.Succeed(token, []widget{{ID: "1"}})
	token = col.Begin()
	col.Fail(token, "boom")

	col.ClearError()
	if col.Err() != "" {
		t.Fatal("expected error cleared")
	}
	if col.Phase() != PhaseIdle {
		t.Fatalf("expected idle after dismissal, got %s", col.Phase())
	}
	if col.Len() != 1 {
		t.Fatal("dismissing an error must not touch items")
	}
}
