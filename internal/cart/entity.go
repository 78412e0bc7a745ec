// AngelaMos | 2026
// entity.go

package cart

import (
	"time"
)

// CartItem holds a name and price snapshot taken when the offer was
// added, so a seller editing the offer later does not silently change
// a buyer's cart.
type CartItem struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ProductID string    `db:"product_id"`
	Name      string    `db:"name"`
	Price     float64   `db:"price"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
