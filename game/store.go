package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/kaushika05/globlekay/country"
)

// Room codes are 6 ASCII digits, 100000–999999. The format is part of the
// wire contract with the client.
const (
	codeMin   = 100000
	codeSpace = 900000
)

// Store is the authoritative table of active rooms. Code generation and
// insertion happen under one lock so two concurrent creations can never be
// assigned the same code.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewStore() *Store {
	return &Store{rooms: make(map[string]*Room)}
}

// Create inserts a new room under a fresh unique code. Codes freed by
// deleted rooms may be handed out again.
func (s *Store) Create(answer country.Country, now time.Time) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.rooms) >= codeSpace {
		return nil, ErrCodeSpaceExhausted
	}

	code := generateCode()
	for _, taken := s.rooms[code]; taken; _, taken = s.rooms[code] {
		code = generateCode()
	}

	room := newRoom(code, answer, now)
	s.rooms[code] = room
	return room, nil
}

func (s *Store) Get(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	return room, ok
}

// Delete removes a room; deleting an absent code is a no-op.
func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// Codes returns a snapshot of the active room codes.
func (s *Store) Codes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		codes = append(codes, code)
	}
	return codes
}

func generateCode() string {
	n := codeMin + rand.IntN(codeSpace)
	digits := [6]byte{}
	for i := 5; i >= 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[:])
}
