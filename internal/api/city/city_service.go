package city

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListCities(ctx context.Context) ([]types.CitySummary, error)
	GetCity(ctx context.Context, cityID string) (*types.City, error)
	GetPlace(ctx context.Context, cityID, placeID string) (*types.City, *types.Place, error)
	NearbyPlaces(city *types.City, place *types.Place) []types.Place
}

type ServiceImpl struct {
	logger     *slog.Logger
	repository Repository
}

func NewServiceImpl(repository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repository: repository,
	}
}

func (s *ServiceImpl) ListCities(ctx context.Context) ([]types.CitySummary, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "ListCities")
	defer span.End()

	cities, err := s.repository.ListCities(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	summaries := make([]types.CitySummary, 0, len(cities))
	for _, c := range cities {
		summaries = append(summaries, types.CitySummary{
			ID:          c.ID,
			Name:        c.Name,
			State:       c.State,
			Description: c.Description,
			Image:       c.Image,
			PlaceCount:  len(c.Places),
		})
	}
	return summaries, nil
}

func (s *ServiceImpl) GetCity(ctx context.Context, cityID string) (*types.City, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "GetCity")
	defer span.End()
	span.SetAttributes(attribute.String("city.id", cityID))

	return s.repository.FindCityByID(ctx, cityID)
}

// GetPlace resolves a place inside its city. The city is returned too since
// the place view needs its name and sibling places.
func (s *ServiceImpl) GetPlace(ctx context.Context, cityID, placeID string) (*types.City, *types.Place, error) {
	city, err := s.GetCity(ctx, cityID)
	if err != nil {
		return nil, nil, err
	}
	for i := range city.Places {
		if city.Places[i].ID == placeID {
			p := city.Places[i]
			return city, &p, nil
		}
	}
	return city, nil, fmt.Errorf("%w: %s/%s", ErrPlaceNotFound, cityID, placeID)
}

// NearbyPlaces resolves place.NearbyPlaces against the city, skipping ids
// the catalog does not know.
func (s *ServiceImpl) NearbyPlaces(city *types.City, place *types.Place) []types.Place {
	nearby := make([]types.Place, 0, len(place.NearbyPlaces))
	for _, id := range place.NearbyPlaces {
		for _, p := range city.Places {
			if p.ID == id {
				nearby = append(nearby, p)
				break
			}
		}
	}
	return nearby
}
