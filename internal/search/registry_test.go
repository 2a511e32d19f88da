package search

import (
	"testing"
	"time"

	tu "github.com/cadencefm/cadence/internal/testing"
	"github.com/google/uuid"
)

func TestDispatchDuplicateDeliversOnce(t *testing.T) {
	reg := newTestRegistry()
	backend := &tu.FakeBackend{}

	var callbackCount int
	s, err := New(reg, backend, Options{
		Query:    "duplicate",
		Callback: func(*Search) { callbackCount++ },
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	call := backend.LastCall(t)
	call.Resource.SetLoaded(true)

	call.Complete(call.Key, call.Resource)
	call.Complete(call.Key, call.Resource)

	if callbackCount != 1 {
		t.Errorf("duplicate dispatch must not re-invoke the callback, got %d", callbackCount)
	}
	if reg.Pending() != 0 {
		t.Errorf("expected registry drained, got %d pending", reg.Pending())
	}
}

func TestDispatchUnknownKeyIsNoOp(t *testing.T) {
	reg := newTestRegistry()

	res := tu.NewFakeResource()
	res.SetLoaded(true)

	// Must log and return, not panic or affect unrelated entries.
	reg.Dispatch(uuid.New(), res)

	backend := &tu.FakeBackend{}
	s, err := New(reg, backend, Options{Query: "unrelated"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	reg.Dispatch(uuid.New(), res)
	if reg.Pending() != 1 {
		t.Errorf("unknown-key dispatch must not touch other entries, got %d pending", reg.Pending())
	}
}

func TestDispatchNilKeyIsNoOp(t *testing.T) {
	reg := newTestRegistry()
	backend := &tu.FakeBackend{}

	var callbackCount int
	s, err := New(reg, backend, Options{
		Query:    "nilkey",
		Callback: func(*Search) { callbackCount++ },
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	call := backend.LastCall(t)
	reg.Dispatch(uuid.Nil, call.Resource)

	if callbackCount != 0 {
		t.Error("zero-key dispatch must not invoke any callback")
	}
	if reg.Pending() != 1 {
		t.Errorf("zero-key dispatch must leave the registry intact, got %d pending", reg.Pending())
	}
}

func TestDispatchSignalsBeforeCallback(t *testing.T) {
	reg := newTestRegistry()
	backend := &tu.FakeBackend{}

	observed := make(chan bool, 1)
	var s *Search
	var err error
	s, err = New(reg, backend, Options{
		Query: "ordering",
		Callback: func(completed *Search) {
			// The completion signal must already be set when the callback
			// runs, so a zero-timeout-free Load from inside it cannot hang.
			select {
			case <-completed.done:
				observed <- true
			default:
				observed <- false
			}
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	call := backend.LastCall(t)
	call.Resource.SetLoaded(true)
	call.Complete(call.Key, call.Resource)

	select {
	case signalled := <-observed:
		if !signalled {
			t.Error("completion signal must fire before the callback is invoked")
		}
	case <-time.After(time.Second):
		t.Fatal("callback was never invoked")
	}
}

func TestRegisterKeyCollision(t *testing.T) {
	reg := newTestRegistry()

	key := uuid.New()
	if err := reg.register(key, nil, nil); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := reg.register(key, nil, nil); err == nil {
		t.Fatal("second register with the same key must fail")
	}

	reg.remove(key)
	if err := reg.register(key, nil, nil); err != nil {
		t.Fatalf("register after remove failed: %v", err)
	}
}
