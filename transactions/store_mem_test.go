package transactions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/user/spendshift-go/apperror"
)

// memStore is the in-memory Store used by tests, implementing the same
// ordering, ownership, and partial-update contract as the Postgres store.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*Transaction
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[int64]*Transaction)}
}

func (s *memStore) List(_ context.Context, ownerID int64) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Transaction, 0)
	for _, tx := range s.rows {
		if tx.UserID == ownerID {
			result = append(result, *tx)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[j].Date.Before(result[i].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *memStore) Create(_ context.Context, ownerID int64, req CreateRequest) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now().UTC()
	tx := &Transaction{
		ID:          s.nextID,
		UserID:      ownerID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        req.Type,
		Date:        req.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.rows[tx.ID] = tx
	clone := *tx
	return &clone, nil
}

func (s *memStore) Get(_ context.Context, id, ownerID int64) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.rows[id]
	if !ok || tx.UserID != ownerID {
		return nil, apperror.NewNotFoundError(notFoundMessage, nil)
	}
	clone := *tx
	return &clone, nil
}

func (s *memStore) Update(_ context.Context, tx *Transaction, req UpdateRequest) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rows[tx.ID]
	if !ok || stored.UserID != tx.UserID {
		return nil, apperror.NewNotFoundError(notFoundMessage, nil)
	}
	if req.Description != nil {
		stored.Description = *req.Description
	}
	if req.Amount != nil {
		stored.Amount = *req.Amount
	}
	if req.Category != nil {
		stored.Category = *req.Category
	}
	if req.Type != nil {
		stored.Type = *req.Type
	}
	if req.Date != nil {
		stored.Date = *req.Date
	}
	if !req.IsEmpty() {
		stored.UpdatedAt = time.Now().UTC()
	}
	clone := *stored
	return &clone, nil
}

func (s *memStore) Delete(_ context.Context, tx *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, tx.ID)
	return nil
}
