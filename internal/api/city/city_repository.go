package city

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

//go:embed cities.json
var embeddedCities []byte

var (
	ErrCityNotFound  = errors.New("city not found")
	ErrPlaceNotFound = errors.New("place not found")
)

var _ Repository = (*EmbeddedRepository)(nil)

type Repository interface {
	ListCities(ctx context.Context) ([]types.City, error)
	FindCityByID(ctx context.Context, cityID string) (*types.City, error)
}

// EmbeddedRepository serves the catalog bundled with the binary. It is
// read-only, so lookups need no locking.
type EmbeddedRepository struct {
	logger *slog.Logger
	cities []types.City
	byID   map[string]int
}

func NewEmbeddedRepository(logger *slog.Logger) (*EmbeddedRepository, error) {
	return NewRepositoryFromJSON(embeddedCities, logger)
}

// NewRepositoryFromJSON builds a catalog from a JSON array of cities.
func NewRepositoryFromJSON(data []byte, logger *slog.Logger) (*EmbeddedRepository, error) {
	var cities []types.City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("failed to decode city catalog: %w", err)
	}

	byID := make(map[string]int, len(cities))
	for i, c := range cities {
		if c.ID == "" {
			return nil, fmt.Errorf("city at index %d has no id", i)
		}
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate city id %q", c.ID)
		}
		byID[c.ID] = i
	}
	logger.Debug("City catalog loaded", slog.Int("cities", len(cities)))

	return &EmbeddedRepository{
		logger: logger,
		cities: cities,
		byID:   byID,
	}, nil
}

func (r *EmbeddedRepository) ListCities(_ context.Context) ([]types.City, error) {
	out := make([]types.City, len(r.cities))
	for i, c := range r.cities {
		out[i] = cloneCity(c)
	}
	return out, nil
}

func (r *EmbeddedRepository) FindCityByID(_ context.Context, cityID string) (*types.City, error) {
	i, ok := r.byID[cityID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCityNotFound, cityID)
	}
	c := cloneCity(r.cities[i])
	return &c, nil
}

func cloneCity(c types.City) types.City {
	c.Places = slices.Clone(c.Places)
	return c
}
