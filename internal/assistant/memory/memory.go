// Package memory keeps short per-user conversation history for the
// assistant. History lives in process memory and is lost on restart.
package memory

import "sync"

// MaxEntries caps stored history per user. When a new user/assistant
// pair would exceed it, the oldest pair is dropped.
const MaxEntries = 6

// Entry is one remembered conversation turn.
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store holds conversation history keyed by user ID.
type Store struct {
	mu      sync.Mutex
	history map[uint][]Entry
	locks   map[uint]*sync.Mutex
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{
		history: make(map[uint][]Entry),
		locks:   make(map[uint]*sync.Mutex),
	}
}

// Acquire locks the user's conversation for the duration of one chat
// turn and returns the unlock function. Concurrent turns for the same
// user serialize; different users do not block each other.
func (s *Store) Acquire(userID uint) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// History returns a copy of the user's stored entries, oldest first.
func (s *Store) History(userID uint) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.history[userID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Append stores one completed user/assistant exchange, evicting the
// oldest pair when the cap is exceeded.
func (s *Store) Append(userID uint, prompt, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.history[userID],
		Entry{Role: "user", Content: prompt},
		Entry{Role: "assistant", Content: reply},
	)
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	s.history[userID] = entries
}

// Clear drops the user's stored history.
func (s *Store) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.history, userID)
}
