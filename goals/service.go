package goals

import "context"

// Service coordinates goal operations, resolving every mutation through the
// owner-filtered Get so cross-user access can only surface as not-found.
type Service struct {
	store Store
}

// NewService creates a new Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the owner's goals, earliest deadline first.
func (s *Service) List(ctx context.Context, ownerID int64) ([]Goal, error) {
	return s.store.List(ctx, ownerID)
}

// Create records a new goal owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Goal, error) {
	return s.store.Create(ctx, ownerID, req)
}

// Update applies a partial update to the owner's goal.
func (s *Service) Update(ctx context.Context, id, ownerID int64, req UpdateRequest) (*Goal, error) {
	goal, err := s.store.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, goal, req)
}

// Delete removes the owner's goal.
func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	goal, err := s.store.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, goal)
}
