// AngelaMos | 2026
// service_test.go

package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/sook/internal/core"
)

// fakeRepo mirrors the upsert semantics of the real table: one row per
// (user, product), repeat adds increment quantity.
type fakeRepo struct {
	items map[string]*CartItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*CartItem)}
}

func key(userID, productID string) string {
	return userID + "/" + productID
}

func (f *fakeRepo) Upsert(_ context.Context, item *CartItem) error {
	if existing, ok := f.items[key(item.UserID, item.ProductID)]; ok {
		existing.Quantity += item.Quantity
		existing.Name = item.Name
		existing.Price = item.Price
		*item = *existing
		return nil
	}
	clone := *item
	f.items[key(item.UserID, item.ProductID)] = &clone
	return nil
}

func (f *fakeRepo) ListByUser(
	_ context.Context,
	userID string,
) ([]CartItem, error) {
	var out []CartItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, userID, productID string) error {
	if _, ok := f.items[key(userID, productID)]; !ok {
		return fmt.Errorf("delete cart item: %w", core.ErrNotFound)
	}
	delete(f.items, key(userID, productID))
	return nil
}

type fakeCatalog struct {
	products map[string]struct {
		name  string
		price float64
	}
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[string]struct {
			name  string
			price float64
		}{
			"offer-1": {name: "Veste en cuir", price: 45.50},
			"offer-2": {name: "Jean slim", price: 20.00},
		},
	}
}

func (f *fakeCatalog) GetProduct(
	_ context.Context,
	id string,
) (string, float64, error) {
	if p, ok := f.products[id]; ok {
		return p.name, p.price, nil
	}
	return "", 0, fmt.Errorf("get offer: %w", core.ErrNotFound)
}

func TestAdd(t *testing.T) {
	t.Run("snapshots name and price from the catalog", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeCatalog())

		resp, err := svc.Add(context.Background(), "buyer-1", AddToCartRequest{
			ProductID: "offer-1",
			Quantity:  1,
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Veste en cuir", resp.Items[0].Name)
		assert.Equal(t, 45.50, resp.Items[0].Price)
		assert.Equal(t, 45.50, resp.Total)
	})

	t.Run("increments quantity instead of adding a line", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeCatalog())

		_, err := svc.Add(context.Background(), "buyer-1", AddToCartRequest{
			ProductID: "offer-1",
			Quantity:  2,
		})
		require.NoError(t, err)

		resp, err := svc.Add(context.Background(), "buyer-1", AddToCartRequest{
			ProductID: "offer-1",
			Quantity:  3,
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, 5, resp.Items[0].Quantity)
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, newFakeCatalog())

		_, err := svc.Add(context.Background(), "buyer-1", AddToCartRequest{
			ProductID: "ghost",
			Quantity:  1,
		})
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Empty(t, repo.items)
	})

	t.Run("keeps carts separate per user", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeCatalog())

		_, err := svc.Add(context.Background(), "buyer-1", AddToCartRequest{
			ProductID: "offer-1",
			Quantity:  1,
		})
		require.NoError(t, err)

		resp, err := svc.Get(context.Background(), "buyer-2")
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})
}

func TestGet(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCatalog())

	_, err := svc.Add(context.Background(), "buyer-1", AddToCartRequest{
		ProductID: "offer-1",
		Quantity:  2,
	})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), "buyer-1", AddToCartRequest{
		ProductID: "offer-2",
		Quantity:  1,
	})
	require.NoError(t, err)

	resp, err := svc.Get(context.Background(), "buyer-1")
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
	assert.InDelta(t, 2*45.50+20.00, resp.Total, 1e-9)
}

func TestRemove(t *testing.T) {
	t.Run("drops the whole line whatever the quantity", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeCatalog())

		_, err := svc.Add(context.Background(), "buyer-1", AddToCartRequest{
			ProductID: "offer-1",
			Quantity:  4,
		})
		require.NoError(t, err)

		resp, err := svc.Remove(context.Background(), "buyer-1", "offer-1")
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Zero(t, resp.Total)
	})

	t.Run("reports a product that is not in the cart", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeCatalog())

		_, err := svc.Remove(context.Background(), "buyer-1", "offer-1")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}
