package session

import (
	"sync"
	"time"

	"id-photo-studio/internal/i18n"
	"id-photo-studio/internal/idphoto"
)

// Key identifies one wizard: a user inside a chat.
type Key struct {
	ChatID int64
	UserID int64
}

// Wizard is the ID photo menu state for one Key.
type Wizard struct {
	PhotoFileID string
	Options     idphoto.Options
	MessageID   int
	Lang        i18n.Lang
	Busy        bool
	UpdatedAt   time.Time
}

type Options struct {
	Now func() time.Time
}

type Store struct {
	mu      sync.Mutex
	wizards map[Key]*Wizard
	now     func() time.Time
}

func NewStore(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		wizards: make(map[Key]*Wizard),
		now:     now,
	}
}

// Get returns a copy of the wizard, creating a default one if missing.
func (s *Store) Get(key Key) Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.getOrCreateLocked(key)
}

// Peek returns a copy of the wizard without creating one.
func (s *Store) Peek(key Key) (Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wizards[key]
	if !ok {
		return Wizard{}, false
	}
	return *w, true
}

// Update applies fn to the stored wizard and returns the result.
func (s *Store) Update(key Key, fn func(*Wizard)) Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.getOrCreateLocked(key)
	if fn != nil {
		fn(w)
	}
	w.UpdatedAt = s.now()
	return *w
}

// Reset clears the photo and options but keeps the language and busy flag.
func (s *Store) Reset(key Key) Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.getOrCreateLocked(key)
	w.PhotoFileID = ""
	w.Options = idphoto.DefaultOptions()
	w.MessageID = 0
	w.UpdatedAt = s.now()
	return *w
}

// TryBegin marks the wizard busy. It reports false if a generation is
// already running for key.
func (s *Store) TryBegin(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.getOrCreateLocked(key)
	if w.Busy {
		return false
	}
	w.Busy = true
	w.UpdatedAt = s.now()
	return true
}

func (s *Store) End(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.wizards[key]; ok {
		w.Busy = false
		w.UpdatedAt = s.now()
	}
}

// Sweep drops idle wizards older than ttl and returns how many were removed.
// Busy wizards are never dropped.
func (s *Store) Sweep(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for key, w := range s.wizards {
		if w.Busy || w.UpdatedAt.After(cutoff) {
			continue
		}
		delete(s.wizards, key)
		removed++
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wizards)
}

func (s *Store) getOrCreateLocked(key Key) *Wizard {
	if w, ok := s.wizards[key]; ok {
		return w
	}

	w := &Wizard{
		Options:   idphoto.DefaultOptions(),
		Lang:      i18n.Vietnamese,
		UpdatedAt: s.now(),
	}
	s.wizards[key] = w
	return w
}
