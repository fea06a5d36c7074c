package city

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) *ServiceImpl {
	t.Helper()
	repo, err := NewEmbeddedRepository(testLogger())
	require.NoError(t, err)
	return NewServiceImpl(repo, testLogger())
}

func TestEmbeddedCatalog(t *testing.T) {
	s := newTestService(t)

	cities, err := s.ListCities(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(cities))
	for _, c := range cities {
		ids = append(ids, c.ID)
		assert.NotZero(t, c.PlaceCount, c.ID)
	}
	assert.Equal(t, []string{"delhi", "jaipur", "mumbai", "varanasi"}, ids)
}

func TestNewRepositoryFromJSON(t *testing.T) {
	_, err := NewRepositoryFromJSON([]byte(`[{"id":"a"},{"id":"a"}]`), testLogger())
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewRepositoryFromJSON([]byte(`[{"name":"no id"}]`), testLogger())
	assert.ErrorContains(t, err, "no id")

	_, err = NewRepositoryFromJSON([]byte(`{`), testLogger())
	assert.Error(t, err)
}

func TestGetCity(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	city, err := s.GetCity(ctx, "jaipur")
	require.NoError(t, err)
	assert.Equal(t, "Rajasthan", city.State)

	_, err = s.GetCity(ctx, "atlantis")
	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestGetCityReturnsCopy(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	city, err := s.GetCity(ctx, "delhi")
	require.NoError(t, err)
	city.Places[0].Name = "changed"

	again, err := s.GetCity(ctx, "delhi")
	require.NoError(t, err)
	assert.Equal(t, "Red Fort", again.Places[0].Name)
}

func TestGetPlace(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	city, place, err := s.GetPlace(ctx, "delhi", "red-fort")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", city.Name)
	assert.Equal(t, 28.6562, place.Location.Lat)

	_, _, err = s.GetPlace(ctx, "delhi", "taj-mahal")
	assert.ErrorIs(t, err, ErrPlaceNotFound)

	_, _, err = s.GetPlace(ctx, "nowhere", "red-fort")
	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestNearbyPlacesSkipsUnknownIDs(t *testing.T) {
	s := newTestService(t)
	city, place, err := s.GetPlace(context.Background(), "delhi", "red-fort")
	require.NoError(t, err)

	nearby := s.NearbyPlaces(city, place)
	require.Len(t, nearby, 1)
	assert.Equal(t, "jama-masjid", nearby[0].ID)

	city, place, err = s.GetPlace(context.Background(), "jaipur", "hawa-mahal")
	require.NoError(t, err)
	assert.Empty(t, s.NearbyPlaces(city, place))
}
