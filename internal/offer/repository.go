// AngelaMos | 2026
// repository.go

package offer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/angelamos/sook/internal/core"
)

const offerColumns = `o.id, o.user_id, o.title, o.description, o.price,
	       o.condition, o.city, o.brand, o.size, o.color, o.pictures,
	       o.created_at, o.updated_at,
	       u.username AS owner_username, u.avatar AS owner_avatar`

type Repository interface {
	Create(ctx context.Context, offer *Offer) error
	GetByID(ctx context.Context, id string) (*Offer, error)
	List(ctx context.Context, params ListOffersParams) ([]Offer, int, error)
	Search(ctx context.Context, keyword string, params ListOffersParams) ([]Offer, int, error)
	ListByUser(ctx context.Context, userID string) ([]Offer, error)
	Update(ctx context.Context, offer *Offer) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, offer *Offer) error {
	query := `
		INSERT INTO offers (id, user_id, title, description, price,
		                    condition, city, brand, size, color, pictures)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, offer, query,
		offer.ID,
		offer.UserID,
		offer.Title,
		offer.Description,
		offer.Price,
		offer.Condition,
		offer.City,
		offer.Brand,
		offer.Size,
		offer.Color,
		offer.Pictures,
	)
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Offer, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM offers o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`, offerColumns)

	var offer Offer
	err := r.db.GetContext(ctx, &offer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get offer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}

	return &offer, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListOffersParams,
) ([]Offer, int, error) {
	params.Normalize()
	return r.listWhere(ctx, "", nil, params)
}

func (r *repository) Search(
	ctx context.Context,
	keyword string,
	params ListOffersParams,
) ([]Offer, int, error) {
	params.Normalize()

	if keyword == "" {
		return r.listWhere(ctx, "", nil, params)
	}

	where := `(o.title ILIKE $1 OR o.description ILIKE $1 OR o.brand ILIKE $1)`
	args := []any{"%" + escapeLike(keyword) + "%"}
	return r.listWhere(ctx, where, args, params)
}

func (r *repository) listWhere(
	ctx context.Context,
	where string,
	args []any,
	params ListOffersParams,
) ([]Offer, int, error) {
	whereClause := ""
	if where != "" {
		whereClause = "WHERE " + where
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM offers o %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count offers: %w", err)
	}

	// Sort and Order come out of Normalize's whitelist, never from the
	// request verbatim.
	query := fmt.Sprintf(`
		SELECT %s
		FROM offers o
		JOIN users u ON u.id = o.user_id
		%s
		ORDER BY o.%s %s
		LIMIT $%d OFFSET $%d`,
		offerColumns,
		whereClause,
		sortColumns[params.Sort],
		strings.ToUpper(params.Order),
		len(args)+1,
		len(args)+2,
	)

	args = append(args, params.PageSize, params.Offset())

	var offers []Offer
	if err := r.db.SelectContext(ctx, &offers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}

	return offers, total, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Offer, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM offers o
		JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`, offerColumns)

	var offers []Offer
	if err := r.db.SelectContext(ctx, &offers, query, userID); err != nil {
		return nil, fmt.Errorf("list offers by user: %w", err)
	}

	return offers, nil
}

func (r *repository) Update(ctx context.Context, offer *Offer) error {
	query := `
		UPDATE offers
		SET title = $2, description = $3, price = $4, condition = $5,
		    city = $6, brand = $7, size = $8, color = $9, pictures = $10,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &offer.UpdatedAt, query,
		offer.ID,
		offer.Title,
		offer.Description,
		offer.Price,
		offer.Condition,
		offer.City,
		offer.Brand,
		offer.Size,
		offer.Color,
		offer.Pictures,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update offer: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM offers WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete offer: %w", core.ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
