package city

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-india-travel-guide/internal/api"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api/content"
	"github.com/FACorreiaa/go-india-travel-guide/internal/geo"
	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

// UserState is the part of the application state the city views read and
// write.
type UserState interface {
	IsWishlisted(id string) bool
	HasCompletedCity(cityID string) bool
	MarkVisited(ctx context.Context, cityID, cityName string) (types.CompletedTravel, bool)
}

type Handler struct {
	logger  *slog.Logger
	service Service
	content content.Service
	state   UserState
}

func NewCityHandler(service Service, contentService content.Service, state UserState, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		content: contentService,
		state:   state,
	}
}

type markVisitedResponse struct {
	Travel  types.CompletedTravel `json:"travel"`
	Created bool                  `json:"created"`
}

// ListCities handles GET /cities - returns the bundled catalog
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "ListCities")
	defer span.End()
	l := h.logger.With(slog.String("handler", "ListCities"))

	cities, err := h.service.ListCities(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to retrieve cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve cities")
		return
	}

	span.SetStatus(codes.Ok, "Cities returned successfully")
	api.WriteJSONResponse(w, r, http.StatusOK, cities)
}

// GetCity handles GET /cities/{cityID}
func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCity")
	defer span.End()
	cityID := chi.URLParam(r, "cityID")
	span.SetAttributes(attribute.String("city.id", cityID))

	city, err := h.service.GetCity(ctx, cityID)
	if err != nil {
		h.writeLookupError(ctx, w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, city)
}

// GetCityOverview handles GET /cities/{cityID}/overview - generated
// highlights, restaurants and hotels for the city page.
func (h *Handler) GetCityOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCityOverview")
	defer span.End()
	cityID := chi.URLParam(r, "cityID")
	span.SetAttributes(attribute.String("city.id", cityID))

	city, err := h.service.GetCity(ctx, cityID)
	if err != nil {
		h.writeLookupError(ctx, w, r, err)
		return
	}

	overview := h.content.FetchCityOverview(ctx, city.ID, city.Name)
	span.SetStatus(codes.Ok, "Overview generated")
	api.WriteJSONResponse(w, r, http.StatusOK, overview)
}

// GetPlaceDetail handles GET /cities/{cityID}/places/{placeID}. The client
// reports its position with lat/lng, or a refused permission with denied.
func (h *Handler) GetPlaceDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetPlaceDetail")
	defer span.End()
	cityID, placeID := chi.URLParam(r, "cityID"), chi.URLParam(r, "placeID")
	span.SetAttributes(attribute.String("city.id", cityID), attribute.String("place.id", placeID))

	city, place, err := h.service.GetPlace(ctx, cityID, placeID)
	if err != nil {
		h.writeLookupError(ctx, w, r, err)
		return
	}

	locator := geo.NewLocator(h.logger)
	locator.Capture(ctx, positionFromQuery(r))

	detail := types.PlaceDetail{
		CityID:     city.ID,
		CityName:   city.Name,
		Place:      *place,
		Nearby:     h.service.NearbyPlaces(city, place),
		Guide:      h.content.FetchPlaceGuide(ctx, place.Name, city.Name),
		Wishlisted: h.state.IsWishlisted(place.ID),
		Completed:  h.state.HasCompletedCity(city.ID),
	}
	if km, ok := locator.DistanceTo(place.Location); ok {
		detail.DistanceKm = &km
	} else if err := locator.Err(); err != nil {
		detail.LocationErr = err.Error()
	}

	span.SetStatus(codes.Ok, "Place detail returned")
	api.WriteJSONResponse(w, r, http.StatusOK, detail)
}

// MarkVisited handles POST /cities/{cityID}/visit. A city already in the
// completed log is answered with the existing entry.
func (h *Handler) MarkVisited(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "MarkVisited")
	defer span.End()
	cityID := chi.URLParam(r, "cityID")
	span.SetAttributes(attribute.String("city.id", cityID))

	city, err := h.service.GetCity(ctx, cityID)
	if err != nil {
		h.writeLookupError(ctx, w, r, err)
		return
	}

	travel, created := h.state.MarkVisited(ctx, city.ID, city.Name)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
		h.logger.InfoContext(ctx, "City marked as visited", slog.String("city_id", city.ID))
	}
	api.WriteJSONResponse(w, r, status, markVisitedResponse{Travel: travel, Created: created})
}

func (h *Handler) writeLookupError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	span := trace.SpanFromContext(ctx)
	switch {
	case errors.Is(err, ErrCityNotFound):
		span.SetStatus(codes.Error, "City not found")
		api.ErrorResponse(w, r, http.StatusNotFound, "City not found")
	case errors.Is(err, ErrPlaceNotFound):
		span.SetStatus(codes.Error, "Place not found")
		api.ErrorResponse(w, r, http.StatusNotFound, "Place not found")
	default:
		h.logger.ErrorContext(ctx, "Catalog lookup failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load catalog")
	}
}

// positionFromQuery maps the client-reported position onto a provider.
// With neither lat/lng nor denied the client has no geolocation support.
func positionFromQuery(r *http.Request) geo.PositionProvider {
	q := r.URL.Query()
	if q.Has("denied") {
		return geo.DeniedProvider{Reason: q.Get("denied")}
	}
	if !q.Has("lat") || !q.Has("lng") {
		return nil
	}
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if err := errors.Join(errLat, errLng); err != nil {
		return invalidPosition{err: err}
	}
	return geo.StaticProvider(types.Location{Lat: lat, Lng: lng})
}

type invalidPosition struct{ err error }

func (p invalidPosition) CurrentPosition(context.Context) (types.Location, error) {
	return types.Location{}, p.err
}
