// AngelaMos | 2026
// service.go

package cart

import (
	"context"

	"github.com/google/uuid"
)

// Catalog resolves a product reference to its current name and price.
// Implemented by the offer service.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (name string, price float64, err error)
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// Add puts an offer into the caller's cart. Adding an offer that is
// already there increments quantity instead of creating another line.
func (s *Service) Add(
	ctx context.Context,
	userID string,
	req AddToCartRequest,
) (*CartResponse, error) {
	name, price, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	item := &CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: req.ProductID,
		Name:      name,
		Price:     price,
		Quantity:  req.Quantity,
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID)
}

// Get returns the caller's full cart with its running total.
func (s *Service) Get(
	ctx context.Context,
	userID string,
) (*CartResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToCartResponse(items), nil
}

// Remove drops a product from the cart entirely, whatever its quantity,
// and returns what is left.
func (s *Service) Remove(
	ctx context.Context,
	userID, productID string,
) (*CartResponse, error) {
	if err := s.repo.Delete(ctx, userID, productID); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID)
}
