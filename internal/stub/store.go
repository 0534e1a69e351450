// Package stub is an in-memory stand-in for the user search endpoint, used
// for local development and end-to-end tests.
package stub

import (
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"

	"usersearch/internal/domain"
	"usersearch/internal/form"
)

// Store holds the users the stub can return
type Store struct {
	mu    sync.RWMutex
	users []domain.UserRecord
}

// NewStore creates a store with the given users
func NewStore(users ...domain.UserRecord) *Store {
	s := &Store{}
	for _, u := range users {
		s.Add(u)
	}
	return s
}

// Seed creates a store with n fake users. The same seed yields the same
// users.
func Seed(n int, seed uint64) *Store {
	faker := gofakeit.New(seed)
	s := &Store{users: make([]domain.UserRecord, 0, n)}
	for i := 0; i < n; i++ {
		s.Add(domain.UserRecord{
			Email:  faker.Email(),
			Number: faker.Numerify("######"),
		})
	}
	return s
}

// Add stores u with its number normalized to the grouped format
func (s *Store) Add(u domain.UserRecord) {
	u.Number = form.FormatNumber(u.Number)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

// All returns a copy of every stored user
func (s *Store) All() []domain.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.UserRecord, len(s.users))
	copy(out, s.users)
	return out
}

// Find returns users whose email matches case-insensitively and, when a
// number is given, whose number matches too. Never nil.
func (s *Store) Find(c domain.SearchCriteria) []domain.UserRecord {
	email := strings.TrimSpace(c.Email)
	number := form.FormatNumber(c.Number)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.UserRecord{}
	for _, u := range s.users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if number != "" && u.Number != number {
			continue
		}
		out = append(out, u)
	}
	return out
}
