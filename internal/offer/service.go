// AngelaMos | 2026
// service.go

package offer

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/angelamos/sook/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Publish creates a new offer owned by the caller.
func (s *Service) Publish(
	ctx context.Context,
	userID string,
	req PublishOfferRequest,
) (*OfferResponse, error) {
	if err := checkPrice(req.Price); err != nil {
		return nil, err
	}

	o := &Offer{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Condition:   req.Condition,
		City:        req.City,
		Brand:       req.Brand,
		Size:        req.Size,
		Color:       req.Color,
		Pictures:    req.Pictures,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	return ToOfferResponse(o), nil
}

func (s *Service) Get(ctx context.Context, id string) (*OfferResponse, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOfferResponse(o), nil
}

func (s *Service) List(
	ctx context.Context,
	params ListOffersParams,
) ([]OfferResponse, int, error) {
	offers, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return ToOfferResponseList(offers), total, nil
}

func (s *Service) Search(
	ctx context.Context,
	keyword string,
	params ListOffersParams,
) ([]OfferResponse, int, error) {
	offers, total, err := s.repo.Search(ctx, keyword, params)
	if err != nil {
		return nil, 0, err
	}
	return ToOfferResponseList(offers), total, nil
}

func (s *Service) ListByUser(
	ctx context.Context,
	userID string,
) ([]OfferResponse, error) {
	offers, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToOfferResponseList(offers), nil
}

// Update applies a sparse patch to an offer the caller owns.
func (s *Service) Update(
	ctx context.Context,
	callerID, offerID string,
	req UpdateOfferRequest,
) (*OfferResponse, error) {
	o, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if o.UserID != callerID {
		return nil, fmt.Errorf(
			"update offer: not the owner: %w",
			core.ErrForbidden,
		)
	}

	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.Price != nil {
		if err := checkPrice(*req.Price); err != nil {
			return nil, err
		}
		o.Price = *req.Price
	}
	if req.Condition != nil {
		o.Condition = req.Condition
	}
	if req.City != nil {
		o.City = *req.City
	}
	if req.Brand != nil {
		o.Brand = *req.Brand
	}
	if req.Size != nil {
		o.Size = req.Size
	}
	if req.Color != nil {
		o.Color = *req.Color
	}
	if req.Pictures != nil {
		o.Pictures = *req.Pictures
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	return ToOfferResponse(o), nil
}

// Delete removes an offer the caller owns.
func (s *Service) Delete(ctx context.Context, callerID, offerID string) error {
	o, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return err
	}

	if o.UserID != callerID {
		return fmt.Errorf(
			"delete offer: not the owner: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Delete(ctx, o.ID)
}

// GetProduct exposes the name and price snapshot other features need
// when they reference an offer as a purchasable product.
func (s *Service) GetProduct(
	ctx context.Context,
	id string,
) (string, float64, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", 0, err
	}
	return o.Title, o.Price, nil
}

// checkPrice rejects non-positive prices and more than two decimal
// places, matching the NUMERIC(10,2) column.
func checkPrice(price float64) error {
	if price <= 0 {
		return core.ValidationError("price must be greater than zero")
	}

	cents := price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		return core.ValidationError("price must have at most two decimal places")
	}

	if price > 99999999.99 {
		return core.ValidationError("price is too large")
	}

	return nil
}
