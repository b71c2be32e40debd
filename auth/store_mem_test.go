package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/user/spendshift-go/apperror"
)

// memUserStore is the in-memory UserStore used by handler tests. It mirrors
// the Postgres implementation's error contract: ConflictError on duplicate
// email, NotFoundError on misses.
type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*User)}
}

func (s *memUserStore) CreateUser(_ context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == strings.ToLower(user.Email) {
			return nil, apperror.NewConflictError("email already registered", nil)
		}
	}

	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	clone := *user
	s.users[user.ID] = &clone
	return user, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == strings.ToLower(email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func (s *memUserStore) GetUserByID(_ context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	clone := *user
	return &clone, nil
}

func (s *memUserStore) delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}
