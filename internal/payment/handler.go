// AngelaMos | 2026
// handler.go

package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/sook/internal/core"
)

type CreateIntentRequest struct {
	// Amount is in the currency's smallest unit (cents).
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the checkout endpoint. The frontend calls it
// before confirming the card, without a session; the intent carries no
// account data.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/create-payment-intent", h.CreateIntent)
}

func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	secret, err := h.service.CreatePaymentIntent(r.Context(), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "amount must be greater than zero")
		case errors.Is(err, core.ErrUpstream):
			core.BadGateway(w, "payment provider unavailable")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, CreateIntentResponse{ClientSecret: secret})
}
