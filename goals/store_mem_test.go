package goals

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/user/spendshift-go/apperror"
)

// memStore is the in-memory Store used by tests.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*Goal
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[int64]*Goal)}
}

func (s *memStore) List(_ context.Context, ownerID int64) ([]Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Goal, 0)
	for _, goal := range s.rows {
		if goal.UserID == ownerID {
			result = append(result, *goal)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Deadline != result[j].Deadline {
			return result[i].Deadline.Before(result[j].Deadline)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *memStore) Create(_ context.Context, ownerID int64, req CreateRequest) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now().UTC()
	goal := &Goal{
		ID:            s.nextID,
		UserID:        ownerID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		Category:      req.Category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.rows[goal.ID] = goal
	clone := *goal
	return &clone, nil
}

func (s *memStore) Get(_ context.Context, id, ownerID int64) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.rows[id]
	if !ok || goal.UserID != ownerID {
		return nil, apperror.NewNotFoundError(notFoundMessage, nil)
	}
	clone := *goal
	return &clone, nil
}

func (s *memStore) Update(_ context.Context, goal *Goal, req UpdateRequest) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rows[goal.ID]
	if !ok || stored.UserID != goal.UserID {
		return nil, apperror.NewNotFoundError(notFoundMessage, nil)
	}
	if req.Name != nil {
		stored.Name = *req.Name
	}
	if req.TargetAmount != nil {
		stored.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		stored.CurrentAmount = *req.CurrentAmount
	}
	if req.Deadline != nil {
		stored.Deadline = *req.Deadline
	}
	if req.Category != nil {
		stored.Category = req.Category
	}
	if !req.IsEmpty() {
		stored.UpdatedAt = time.Now().UTC()
	}
	clone := *stored
	return &clone, nil
}

func (s *memStore) Delete(_ context.Context, goal *Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, goal.ID)
	return nil
}
