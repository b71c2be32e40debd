package transactions

import "context"

// Service coordinates transaction operations for one authenticated owner per
// call. All ownership filtering happens at the store; the service's job is to
// make mutation a two-step read-then-write so handlers never touch a row they
// have not resolved through the owner filter.
type Service struct {
	store Store
}

// NewService creates a new Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the owner's transactions, most recent date first.
func (s *Service) List(ctx context.Context, ownerID int64) ([]Transaction, error) {
	return s.store.List(ctx, ownerID)
}

// Create records a new transaction owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Transaction, error) {
	return s.store.Create(ctx, ownerID, req)
}

// Update applies a partial update to the owner's transaction. A miss, whether
// the row is absent or owned by someone else, is a NotFoundError.
func (s *Service) Update(ctx context.Context, id, ownerID int64, req UpdateRequest) (*Transaction, error) {
	tx, err := s.store.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, tx, req)
}

// Delete removes the owner's transaction, with the same miss semantics as
// Update.
func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	tx, err := s.store.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, tx)
}
