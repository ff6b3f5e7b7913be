package state

import "testing"

func TestSessionRoundTrip(t *testing.T) {
	s := New("en")
	if s.Session() != nil {
		t.Fatal("fresh store should have no session")
	}

	s.SetSession(&Session{UserID: "u1", Username: "alice", Role: "admin"})
	got := s.Session()
	if got == nil || got.Username != "alice" {
		t.Fatalf("session = %+v", got)
	}

	s.SetSession(nil)
	if s.Session() != nil {
		t.Fatal("logout should clear the session")
	}
}

func TestSessionReadIsACopy(t *testing.T) {
	s := New("en")
	s.SetSession(&Session{UserID: "u1", Username: "alice", Role: "admin"})

	got := s.Session()
	got.Username = "mallory"
	got.Role = "cashier"

	stored := s.Session()
	if stored.Username != "alice" || stored.Role != "admin" {
		t.Fatalf("stored session mutated through a read: %+v", stored)
	}
}

func TestOnSessionNotifiesSynchronously(t *testing.T) {
	s := New("en")

	var seen *Session
	if err := s.OnSession(func(sess *Session) { seen = sess }); err != nil {
		t.Fatalf("OnSession: %v", err)
	}

	s.SetSession(&Session{Username: "bob"})
	if seen == nil || seen.Username != "bob" {
		t.Fatalf("subscriber saw %+v, want bob's session", seen)
	}
}

func TestSubscriberSeesSwappedValue(t *testing.T) {
	s := New("en")

	var readBack string
	if err := s.OnLanguage(func(string) { readBack = s.Language() }); err != nil {
		t.Fatalf("OnLanguage: %v", err)
	}

	s.SetLanguage("es")
	if readBack != "es" {
		t.Fatalf("subscriber read %q, want es", readBack)
	}
}

func TestLanguageDefault(t *testing.T) {
	s := New("en")
	if s.Language() != "en" {
		t.Fatalf("language = %q, want en", s.Language())
	}
	s.SetLanguage("es")
	if s.Language() != "es" {
		t.Fatalf("language = %q, want es", s.Language())
	}
}
