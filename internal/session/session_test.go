package session_test

import (
	"errors"
	"testing"

	"github.com/VoteScope/VS-Dashboards/internal/session"
)

func TestSession_LoadOnce(t *testing.T) {
	store := session.NewStore()
	s := store.Get("")

	calls := 0
	load := func() (interface{}, error) {
		calls++
		return "table", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.Load("results_2024", load)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if v != "table" {
			t.Fatalf("unexpected value: %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 load call, got %d", calls)
	}
}

func TestSession_InvalidateForcesReload(t *testing.T) {
	s := session.NewStore().Get("")

	calls := 0
	load := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	s.Load("d", load)
	s.Invalidate("d")
	v, _ := s.Load("d", load)

	if calls != 2 || v != 2 {
		t.Errorf("expected reload after invalidate, calls=%d v=%v", calls, v)
	}
}

func TestSession_LoadErrorNotCached(t *testing.T) {
	s := session.NewStore().Get("")

	fail := true
	load := func() (interface{}, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return "ok", nil
	}

	if _, err := s.Load("d", load); err == nil {
		t.Fatal("expected error from first load")
	}
	fail = false
	v, err := s.Load("d", load)
	if err != nil || v != "ok" {
		t.Errorf("expected retry to succeed, got v=%v err=%v", v, err)
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := session.NewStore()
	a := store.Get("")
	b := store.Get("")

	if a.ID == b.ID {
		t.Fatal("expected distinct session ids")
	}

	a.Load("d", func() (interface{}, error) { return "A", nil })
	v, _ := b.Load("d", func() (interface{}, error) { return "B", nil })
	if v != "B" {
		t.Errorf("expected session b to load its own table, got %v", v)
	}
}

func TestStore_GetResolvesIssuedID(t *testing.T) {
	store := session.NewStore()
	a := store.Get("")
	b := store.Get(a.ID)
	if a != b {
		t.Error("expected the issued id to resolve to the same session")
	}
}

func TestStore_ForgedIDGetsFreshSession(t *testing.T) {
	store := session.NewStore()

	s := store.Get("made-up-cookie-value")
	if s.ID == "made-up-cookie-value" {
		t.Error("client-supplied id must not become a session id")
	}

	// The forged value must not be a live key either: presenting it again
	// yields yet another session.
	s2 := store.Get("made-up-cookie-value")
	if s2 == s {
		t.Error("forged id must not resolve to an existing session")
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}
}
