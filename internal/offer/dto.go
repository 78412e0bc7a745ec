// AngelaMos | 2026
// dto.go

package offer

import (
	"time"
)

type PublishOfferRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=120"`
	Description string   `json:"description" validate:"required,min=3,max=2000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Condition   *string  `json:"condition" validate:"omitempty,oneof=neuf tres_bon_etat bon_etat satisfaisant"`
	City        string   `json:"city" validate:"required,max=120"`
	Brand       string   `json:"brand" validate:"required,max=120"`
	Size        *string  `json:"size" validate:"omitempty,max=40"`
	Color       string   `json:"color" validate:"required,max=60"`
	Pictures    []string `json:"pictures" validate:"required,min=1,max=10,dive,url"`
}

// UpdateOfferRequest is a sparse patch; nil fields keep their value.
type UpdateOfferRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=3,max=120"`
	Description *string   `json:"description" validate:"omitempty,min=3,max=2000"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	Condition   *string   `json:"condition" validate:"omitempty,oneof=neuf tres_bon_etat bon_etat satisfaisant"`
	City        *string   `json:"city" validate:"omitempty,max=120"`
	Brand       *string   `json:"brand" validate:"omitempty,max=120"`
	Size        *string   `json:"size" validate:"omitempty,max=40"`
	Color       *string   `json:"color" validate:"omitempty,max=60"`
	Pictures    *[]string `json:"pictures" validate:"omitempty,min=1,max=10,dive,url"`
}

type ListOffersParams struct {
	Sort     string
	Order    string
	Page     int
	PageSize int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var sortColumns = map[string]string{
	"price":      "price",
	"created_at": "created_at",
	"title":      "title",
}

// Normalize clamps pagination and whitelists the sort column so user
// input never reaches the ORDER BY clause verbatim.
func (p *ListOffersParams) Normalize() {
	if _, ok := sortColumns[p.Sort]; !ok {
		p.Sort = "created_at"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

func (p *ListOffersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type OwnerResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar,omitempty"`
}

type OfferResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Condition   *string       `json:"condition,omitempty"`
	City        string        `json:"city"`
	Brand       string        `json:"brand"`
	Size        *string       `json:"size,omitempty"`
	Color       string        `json:"color"`
	Pictures    []string      `json:"pictures"`
	Owner       OwnerResponse `json:"owner"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func ToOfferResponse(o *Offer) *OfferResponse {
	return &OfferResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Price:       o.Price,
		Condition:   o.Condition,
		City:        o.City,
		Brand:       o.Brand,
		Size:        o.Size,
		Color:       o.Color,
		Pictures:    o.Pictures,
		Owner: OwnerResponse{
			ID:       o.UserID,
			Username: o.OwnerUsername,
			Avatar:   o.OwnerAvatar,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func ToOfferResponseList(offers []Offer) []OfferResponse {
	out := make([]OfferResponse, len(offers))
	for i := range offers {
		out[i] = *ToOfferResponse(&offers[i])
	}
	return out
}
