package appstate

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-india-travel-guide/internal/api"
	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

type HandlerImpl struct {
	store  *Store
	root   *RootElement
	logger *slog.Logger
}

func NewHandlerImpl(store *Store, root *RootElement, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{store: store, root: root, logger: logger}
}

type themeResponse struct {
	Theme       types.Theme `json:"theme"`
	RootClasses []string    `json:"rootClasses"`
}

type uploadImageRequest struct {
	URL string `json:"url"`
}

// GetState handles GET /state - returns every persisted slice.
func (h *HandlerImpl) GetState(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, h.store.Snapshot())
}

// GetWishlist handles GET /wishlist.
func (h *HandlerImpl) GetWishlist(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, h.store.Wishlist())
}

// AddToWishlist handles POST /wishlist. Adding an id that is already present
// answers 200 with the unchanged list instead of 201.
func (h *HandlerImpl) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AppStateHandler").Start(r.Context(), "AddToWishlist")
	defer span.End()
	l := h.logger.With(slog.String("handler", "AddToWishlist"))

	var item types.WishlistItem
	if err := api.DecodeJSONBody(w, r, &item); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := item.Validate(); err != nil {
		span.SetStatus(codes.Error, "Invalid wishlist item")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.String("wishlist.id", item.ID), attribute.String("wishlist.type", string(item.Type)))

	status := http.StatusOK
	if h.store.AddToWishlist(ctx, item) {
		status = http.StatusCreated
		l.InfoContext(ctx, "Item added to wishlist", slog.String("id", item.ID))
	}
	span.SetStatus(codes.Ok, "Wishlist updated")
	api.WriteJSONResponse(w, r, status, h.store.Wishlist())
}

// RemoveFromWishlist handles DELETE /wishlist/{itemID}. Unknown ids are not an error.
func (h *HandlerImpl) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "itemID")
	if h.store.RemoveFromWishlist(ctx, id) {
		h.logger.InfoContext(ctx, "Item removed from wishlist", slog.String("id", id))
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.store.Wishlist())
}

// GetProfile handles GET /profile.
func (h *HandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, h.store.User())
}

// UploadImage handles POST /profile/images.
func (h *HandlerImpl) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AppStateHandler").Start(r.Context(), "UploadImage")
	defer span.End()

	var req uploadImageRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		span.SetStatus(codes.Error, "Missing url")
		api.ErrorResponse(w, r, http.StatusBadRequest, "url is required")
		return
	}

	h.store.UploadImage(ctx, req.URL)
	span.SetStatus(codes.Ok, "Image uploaded")
	api.WriteJSONResponse(w, r, http.StatusCreated, h.store.User())
}

// GetCompletedTravels handles GET /completed.
func (h *HandlerImpl) GetCompletedTravels(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, h.store.CompletedTravels())
}

// UpdateCompletedTravel handles PATCH /completed/{travelID}.
func (h *HandlerImpl) UpdateCompletedTravel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AppStateHandler").Start(r.Context(), "UpdateCompletedTravel")
	defer span.End()
	id := chi.URLParam(r, "travelID")
	l := h.logger.With(slog.String("handler", "UpdateCompletedTravel"), slog.String("travel_id", id))

	var update types.CompletedTravelUpdate
	if err := api.DecodeJSONBody(w, r, &update); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := update.Validate(); err != nil {
		span.SetStatus(codes.Error, "Invalid update")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	travel, ok := h.store.UpdateCompletedTravel(ctx, id, update)
	if !ok {
		l.WarnContext(ctx, "Completed travel not found")
		span.SetStatus(codes.Error, "Not found")
		api.ErrorResponse(w, r, http.StatusNotFound, "Completed travel not found")
		return
	}
	l.InfoContext(ctx, "Completed travel updated")
	span.SetStatus(codes.Ok, "Completed travel updated")
	api.WriteJSONResponse(w, r, http.StatusOK, travel)
}

// GetTheme handles GET /theme.
func (h *HandlerImpl) GetTheme(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, themeResponse{Theme: h.store.Theme(), RootClasses: h.root.Classes()})
}

// ToggleTheme handles POST /theme/toggle.
func (h *HandlerImpl) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.store.ToggleTheme(r.Context())
	api.WriteJSONResponse(w, r, http.StatusOK, themeResponse{Theme: theme, RootClasses: h.root.Classes()})
}
