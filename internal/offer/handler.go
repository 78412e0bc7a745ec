// AngelaMos | 2026
// handler.go

package offer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/sook/internal/core"
	"github.com/angelamos/sook/internal/middleware"
)

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/offers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/user/{userID}", h.ListByUser)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/publish", h.Publish)
			r.Get("/mine", h.ListMine)
			r.Put("/{offerID}", h.Update)
			r.Delete("/{offerID}", h.Delete)
		})

		// after /search and /mine so they are not swallowed by the param
		r.Get("/{offerID}", h.Get)
	})
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req PublishOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Publish(r.Context(), userID, req)
	if err != nil {
		writeOfferError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(r.Context(), chi.URLParam(r, "offerID"))
	if err != nil {
		writeOfferError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	offers, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, offers, params.Page, params.PageSize, total)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	keyword := r.URL.Query().Get("keyword")

	offers, total, err := h.service.Search(r.Context(), keyword, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, offers, params.Page, params.PageSize, total)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	offers, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, offers)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.ListByUser(
		r.Context(),
		chi.URLParam(r, "userID"),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, offers)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	offerID := chi.URLParam(r, "offerID")

	var req UpdateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Update(r.Context(), userID, offerID, req)
	if err != nil {
		writeOfferError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	offerID := chi.URLParam(r, "offerID")

	if err := h.service.Delete(r.Context(), userID, offerID); err != nil {
		writeOfferError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "offer deleted"})
}

func writeOfferError(w http.ResponseWriter, err error) {
	var appErr *core.AppError

	switch {
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "you can only modify your own offers")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "offer")
	case errors.As(err, &appErr) && errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, appErr.Message)
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid offer data")
	default:
		core.InternalServerError(w, err)
	}
}

func listParams(r *http.Request) ListOffersParams {
	return ListOffersParams{
		Sort:     r.URL.Query().Get("sort"),
		Order:    r.URL.Query().Get("order"),
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", defaultPageSize),
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
