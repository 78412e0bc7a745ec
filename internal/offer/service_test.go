// AngelaMos | 2026
// service_test.go

package offer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/sook/internal/core"
)

type fakeRepo struct {
	offers map[string]*Offer
}

func newFakeRepo(offers ...*Offer) *fakeRepo {
	repo := &fakeRepo{offers: make(map[string]*Offer)}
	for _, o := range offers {
		clone := *o
		repo.offers[o.ID] = &clone
	}
	return repo
}

func (f *fakeRepo) Create(_ context.Context, o *Offer) error {
	clone := *o
	f.offers[o.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Offer, error) {
	if o, ok := f.offers[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, fmt.Errorf("get offer: %w", core.ErrNotFound)
}

func (f *fakeRepo) List(
	_ context.Context,
	params ListOffersParams,
) ([]Offer, int, error) {
	params.Normalize()
	var out []Offer
	for _, o := range f.offers {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Search(
	ctx context.Context,
	keyword string,
	params ListOffersParams,
) ([]Offer, int, error) {
	params.Normalize()
	var out []Offer
	for _, o := range f.offers {
		if strings.Contains(strings.ToLower(o.Title), strings.ToLower(keyword)) {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByUser(
	_ context.Context,
	userID string,
) ([]Offer, error) {
	var out []Offer
	for _, o := range f.offers {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, o *Offer) error {
	if _, ok := f.offers[o.ID]; !ok {
		return fmt.Errorf("update offer: %w", core.ErrNotFound)
	}
	clone := *o
	f.offers[o.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.offers[id]; !ok {
		return fmt.Errorf("delete offer: %w", core.ErrNotFound)
	}
	delete(f.offers, id)
	return nil
}

func validPublish() PublishOfferRequest {
	return PublishOfferRequest{
		Title:       "Veste en cuir",
		Description: "Portée deux fois, comme neuve",
		Price:       45.50,
		City:        "Lyon",
		Brand:       "Zara",
		Color:       "noir",
		Pictures:    []string{"https://img.sook.app/veste.jpg"},
	}
}

func sellerOffer() *Offer {
	return &Offer{
		ID:       "offer-1",
		UserID:   "seller-1",
		Title:    "Veste en cuir",
		Price:    45.50,
		City:     "Lyon",
		Brand:    "Zara",
		Color:    "noir",
		Pictures: Pictures{"https://img.sook.app/veste.jpg"},
	}
}

func TestPublish(t *testing.T) {
	t.Run("creates an offer owned by the caller", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		resp, err := svc.Publish(context.Background(), "seller-1", validPublish())
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "seller-1", resp.Owner.ID)
		assert.Equal(t, 45.50, resp.Price)
		assert.Len(t, repo.offers, 1)
	})

	t.Run("rejects a negative price and persists nothing", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		req := validPublish()
		req.Price = -5

		_, err := svc.Publish(context.Background(), "seller-1", req)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Empty(t, repo.offers)
	})

	t.Run("rejects more than two decimal places", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		req := validPublish()
		req.Price = 10.999

		_, err := svc.Publish(context.Background(), "seller-1", req)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("applies a sparse patch for the owner", func(t *testing.T) {
		repo := newFakeRepo(sellerOffer())
		svc := NewService(repo)

		price := 39.99
		resp, err := svc.Update(
			context.Background(),
			"seller-1",
			"offer-1",
			UpdateOfferRequest{Price: &price},
		)
		require.NoError(t, err)

		assert.Equal(t, 39.99, resp.Price)
		assert.Equal(t, "Veste en cuir", resp.Title)
	})

	t.Run("refuses a non-owner", func(t *testing.T) {
		repo := newFakeRepo(sellerOffer())
		svc := NewService(repo)

		title := "hijacked"
		_, err := svc.Update(
			context.Background(),
			"other-user",
			"offer-1",
			UpdateOfferRequest{Title: &title},
		)
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Equal(t, "Veste en cuir", repo.offers["offer-1"].Title)
	})

	t.Run("validates a patched price", func(t *testing.T) {
		svc := NewService(newFakeRepo(sellerOffer()))

		price := -1.0
		_, err := svc.Update(
			context.Background(),
			"seller-1",
			"offer-1",
			UpdateOfferRequest{Price: &price},
		)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("reports a missing offer", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Update(
			context.Background(),
			"seller-1",
			"ghost",
			UpdateOfferRequest{},
		)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes the owner's offer", func(t *testing.T) {
		repo := newFakeRepo(sellerOffer())
		svc := NewService(repo)

		err := svc.Delete(context.Background(), "seller-1", "offer-1")
		require.NoError(t, err)
		assert.Empty(t, repo.offers)
	})

	t.Run("refuses a non-owner", func(t *testing.T) {
		repo := newFakeRepo(sellerOffer())
		svc := NewService(repo)

		err := svc.Delete(context.Background(), "other-user", "offer-1")
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Len(t, repo.offers, 1)
	})
}

func TestGetProduct(t *testing.T) {
	svc := NewService(newFakeRepo(sellerOffer()))

	name, price, err := svc.GetProduct(context.Background(), "offer-1")
	require.NoError(t, err)
	assert.Equal(t, "Veste en cuir", name)
	assert.Equal(t, 45.50, price)

	_, _, err = svc.GetProduct(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCheckPrice(t *testing.T) {
	assert.NoError(t, checkPrice(0.01))
	assert.NoError(t, checkPrice(45.50))
	assert.NoError(t, checkPrice(100))

	assert.Error(t, checkPrice(0))
	assert.Error(t, checkPrice(-5))
	assert.Error(t, checkPrice(10.999))
	assert.Error(t, checkPrice(1e9))
}

func TestListOffersParamsNormalize(t *testing.T) {
	p := ListOffersParams{Sort: "password", Order: "up", Page: -3, PageSize: 5000}
	p.Normalize()

	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, maxPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())
}
