package search

import (
	"errors"
	"testing"

	"github.com/cadencefm/cadence/internal/shared"
	tu "github.com/cadencefm/cadence/internal/testing"
)

func TestPageIndexOutOfRange(t *testing.T) {
	reg := newTestRegistry()
	backend := &tu.FakeBackend{OnCreate: loadedResource}

	s, err := New(reg, backend, Options{Query: "nevermind"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	call := backend.LastCall(t)
	call.Resource.SetLoaded(true)
	call.Complete(call.Key, call.Resource)

	tracks, err := s.Tracks()
	if err != nil {
		t.Fatalf("Tracks failed: %v", err)
	}
	defer tracks.Close()

	if _, err := tracks.At(tracks.Len()); !errors.Is(err, shared.ErrIndexOutOfRange) {
		t.Errorf("At(Len()) should be out of range, got %v", err)
	}
	if _, err := tracks.At(-1); !errors.Is(err, shared.ErrIndexOutOfRange) {
		t.Errorf("At(-1) should be out of range, got %v", err)
	}

	// Every index below Len materializes an element.
	for i := 0; i < tracks.Len(); i++ {
		if _, err := tracks.At(i); err != nil {
			t.Errorf("At(%d) failed: %v", i, err)
		}
	}
}

func TestPageHoldsOwnReference(t *testing.T) {
	reg := newTestRegistry()
	backend := &tu.FakeBackend{OnCreate: loadedResource}

	s, err := New(reg, backend, Options{Query: "nevermind"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	call := backend.LastCall(t)
	call.Resource.SetLoaded(true)
	call.Complete(call.Key, call.Resource)

	res := call.Resource
	if res.Refs() != 1 {
		t.Fatalf("expected handle to hold the only reference, got %d", res.Refs())
	}

	tracks, err := s.Tracks()
	if err != nil {
		t.Fatalf("Tracks failed: %v", err)
	}
	if res.Refs() != 2 {
		t.Errorf("page should take its own reference, got %d", res.Refs())
	}

	albums, err := s.Albums()
	if err != nil {
		t.Fatalf("Albums failed: %v", err)
	}
	if res.Refs() != 3 {
		t.Errorf("each page holds an independent reference, got %d", res.Refs())
	}

	// The page outlives the handle's own reference.
	s.Close()
	if res.Refs() != 2 {
		t.Errorf("handle close should not release page references, got %d", res.Refs())
	}

	tracks.Close()
	tracks.Close() // idempotent
	albums.Close()
	if res.Refs() != 0 {
		t.Errorf("expected all references released, got %d", res.Refs())
	}
}

func TestEmptyPageCloseIsNoOp(t *testing.T) {
	reg := newTestRegistry()
	backend := &tu.FakeBackend{}

	s, err := New(reg, backend, Options{Query: "pending"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	call := backend.LastCall(t)

	tracks, err := s.Tracks()
	if err != nil {
		t.Fatalf("Tracks failed: %v", err)
	}
	if call.Resource.Refs() != 1 {
		t.Errorf("empty page must not take a reference, got %d", call.Resource.Refs())
	}
	tracks.Close()
	if call.Resource.Refs() != 1 {
		t.Errorf("empty page close must not release anything, got %d", call.Resource.Refs())
	}
}

func TestPageItems(t *testing.T) {
	reg := newTestRegistry()
	backend := &tu.FakeBackend{OnCreate: loadedResource}

	s, err := New(reg, backend, Options{Query: "nevermind"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	call := backend.LastCall(t)
	call.Resource.SetLoaded(true)
	call.Complete(call.Key, call.Resource)

	tracks, err := s.Tracks()
	if err != nil {
		t.Fatalf("Tracks failed: %v", err)
	}
	defer tracks.Close()

	items := tracks.Items()
	if len(items) != tracks.Len() {
		t.Fatalf("Items length %d != Len %d", len(items), tracks.Len())
	}
	if items[1].Name != "Come as You Are" {
		t.Errorf("unexpected item order: %+v", items)
	}
}
