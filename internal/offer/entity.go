// AngelaMos | 2026
// entity.go

package offer

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Pictures is stored as a JSONB array of image URLs.
type Pictures []string

func (p Pictures) Value() (driver.Value, error) {
	if p == nil {
		p = Pictures{}
	}
	return json.Marshal(p)
}

func (p *Pictures) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = Pictures{}
		return nil
	default:
		return fmt.Errorf("scan pictures: unsupported type %T", src)
	}
}

const (
	ConditionNew          = "neuf"
	ConditionVeryGood     = "tres_bon_etat"
	ConditionGood         = "bon_etat"
	ConditionSatisfactory = "satisfaisant"
)

type Offer struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	Condition   *string   `db:"condition"`
	City        string    `db:"city"`
	Brand       string    `db:"brand"`
	Size        *string   `db:"size"`
	Color       string    `db:"color"`
	Pictures    Pictures  `db:"pictures"`
	UserID      string    `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	// Populated from the join with the owning user on reads.
	OwnerUsername string  `db:"owner_username"`
	OwnerAvatar   *string `db:"owner_avatar"`
}
