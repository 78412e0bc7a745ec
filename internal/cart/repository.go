// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"fmt"

	"github.com/angelamos/sook/internal/core"
)

type Repository interface {
	Upsert(ctx context.Context, item *CartItem) error
	ListByUser(ctx context.Context, userID string) ([]CartItem, error)
	Delete(ctx context.Context, userID, productID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Upsert inserts the item or, when the (user, product) pair already
// exists, adds the quantity to the stored row. A single statement, so
// concurrent adds for the same pair never race.
func (r *repository) Upsert(ctx context.Context, item *CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, name, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
		    name = EXCLUDED.name,
		    price = EXCLUDED.price,
		    updated_at = NOW()
		RETURNING id, quantity, created_at, updated_at`

	err := r.db.GetContext(ctx, item, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Name,
		item.Price,
		item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]CartItem, error) {
	query := `
		SELECT id, user_id, product_id, name, price, quantity,
		       created_at, updated_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at`

	var items []CartItem
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	return items, nil
}

func (r *repository) Delete(
	ctx context.Context,
	userID, productID string,
) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete cart item: %w", core.ErrNotFound)
	}

	return nil
}
