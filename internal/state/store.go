package state

import (
	"sync"

	"github.com/asaskevich/EventBus"
)

// Session is the logged-in user as the rest of the app sees it.
type Session struct {
	UserID   string
	Username string
	Role     string
}

// Store holds the app-wide reactive state: the auth session and the UI
// language. Mutation is synchronous and subscribers are notified
// synchronously after the value has been swapped, so a subscriber that
// reads back the store always sees the value it was notified with.
type Store struct {
	mu       sync.RWMutex
	session  *Session
	language string
	bus      EventBus.Bus
}

const (
	topicSession  = "state:session"
	topicLanguage = "state:language"
)

func New(defaultLanguage string) *Store {
	return &Store{
		language: defaultLanguage,
		bus:      EventBus.New(),
	}
}

// SetSession replaces the current session. Pass nil to log out.
func (s *Store) SetSession(sess *Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	s.bus.Publish(topicSession, sess)
}

// Session returns a copy of the current session, or nil when nobody is
// logged in. Callers cannot mutate the stored value through it.
func (s *Store) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// OnSession registers fn to run synchronously on every session change.
func (s *Store) OnSession(fn func(*Session)) error {
	return s.bus.Subscribe(topicSession, fn)
}

// SetLanguage switches the UI language preference.
func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	s.bus.Publish(topicLanguage, lang)
}

// Language returns the current UI language.
func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// OnLanguage registers fn to run synchronously on every language change.
func (s *Store) OnLanguage(fn func(string)) error {
	return s.bus.Subscribe(topicLanguage, fn)
}
