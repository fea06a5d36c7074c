package city

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-india-travel-guide/internal/api/content"
	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

// MockContentService is a mock implementation of content.Service
type MockContentService struct {
	mock.Mock
}

var _ content.Service = (*MockContentService)(nil)

func (m *MockContentService) FetchPlaceGuide(ctx context.Context, placeName, cityName string) string {
	return m.Called(ctx, placeName, cityName).String(0)
}

func (m *MockContentService) FetchCityHighlights(ctx context.Context, cityName string) string {
	return m.Called(ctx, cityName).String(0)
}

func (m *MockContentService) FetchRestaurants(ctx context.Context, cityName string) []types.Restaurant {
	return m.Called(ctx, cityName).Get(0).([]types.Restaurant)
}

func (m *MockContentService) FetchHotels(ctx context.Context, cityName string) []types.Hotel {
	return m.Called(ctx, cityName).Get(0).([]types.Hotel)
}

func (m *MockContentService) FetchCityOverview(ctx context.Context, cityID, cityName string) types.CityOverview {
	return m.Called(ctx, cityID, cityName).Get(0).(types.CityOverview)
}

// MockUserState is a mock implementation of UserState
type MockUserState struct {
	mock.Mock
}

func (m *MockUserState) IsWishlisted(id string) bool {
	return m.Called(id).Bool(0)
}

func (m *MockUserState) HasCompletedCity(cityID string) bool {
	return m.Called(cityID).Bool(0)
}

func (m *MockUserState) MarkVisited(ctx context.Context, cityID, cityName string) (types.CompletedTravel, bool) {
	args := m.Called(ctx, cityID, cityName)
	return args.Get(0).(types.CompletedTravel), args.Bool(1)
}

func newTestRouter(t *testing.T, cs *MockContentService, us *MockUserState) http.Handler {
	t.Helper()
	h := NewCityHandler(newTestService(t), cs, us, testLogger())
	r := chi.NewRouter()
	r.Get("/cities", h.ListCities)
	r.Get("/cities/{cityID}", h.GetCity)
	r.Get("/cities/{cityID}/overview", h.GetCityOverview)
	r.Get("/cities/{cityID}/places/{placeID}", h.GetPlaceDetail)
	r.Post("/cities/{cityID}/visit", h.MarkVisited)
	return r
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestListCitiesHandler(t *testing.T) {
	h := newTestRouter(t, new(MockContentService), new(MockUserState))

	rr := serve(h, http.MethodGet, "/cities")
	require.Equal(t, http.StatusOK, rr.Code)

	var got []types.CitySummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 4)
}

func TestGetCityHandlerNotFound(t *testing.T) {
	h := newTestRouter(t, new(MockContentService), new(MockUserState))

	rr := serve(h, http.MethodGet, "/cities/atlantis")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "City not found")
}

func TestGetCityOverviewHandler(t *testing.T) {
	cs := new(MockContentService)
	cs.On("FetchCityOverview", mock.Anything, "mumbai", "Mumbai").Return(types.CityOverview{
		CityID:      "mumbai",
		Highlights:  "Vada pav.",
		Restaurants: []types.Restaurant{},
		Hotels:      []types.Hotel{{Name: "Taj Mahal Palace", StarRating: 5}},
	})
	h := newTestRouter(t, cs, new(MockUserState))

	rr := serve(h, http.MethodGet, "/cities/mumbai/overview")
	require.Equal(t, http.StatusOK, rr.Code)

	var got types.CityOverview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Vada pav.", got.Highlights)
	assert.Len(t, got.Hotels, 1)
	cs.AssertExpectations(t)
}

func TestGetPlaceDetailHandler(t *testing.T) {
	setup := func() (*MockContentService, *MockUserState) {
		cs := new(MockContentService)
		cs.On("FetchPlaceGuide", mock.Anything, "Red Fort", "Delhi").Return("## Red Fort")
		us := new(MockUserState)
		us.On("IsWishlisted", "red-fort").Return(true)
		us.On("HasCompletedCity", "delhi").Return(false)
		return cs, us
	}
	decode := func(t *testing.T, rr *httptest.ResponseRecorder) types.PlaceDetail {
		t.Helper()
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var d types.PlaceDetail
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &d))
		return d
	}

	t.Run("with position at the place", func(t *testing.T) {
		cs, us := setup()
		d := decode(t, serve(newTestRouter(t, cs, us), http.MethodGet, "/cities/delhi/places/red-fort?lat=28.6562&lng=77.2410"))

		require.NotNil(t, d.DistanceKm)
		assert.Equal(t, "0.0", *d.DistanceKm)
		assert.Empty(t, d.LocationErr)
		assert.Equal(t, "## Red Fort", d.Guide)
		assert.True(t, d.Wishlisted)
		assert.False(t, d.Completed)
		require.Len(t, d.Nearby, 1)
		assert.Equal(t, "jama-masjid", d.Nearby[0].ID)
	})

	t.Run("permission denied", func(t *testing.T) {
		cs, us := setup()
		d := decode(t, serve(newTestRouter(t, cs, us), http.MethodGet, "/cities/delhi/places/red-fort?denied="))

		assert.Nil(t, d.DistanceKm)
		assert.Equal(t, "User denied Geolocation", d.LocationErr)
	})

	t.Run("no geolocation support", func(t *testing.T) {
		cs, us := setup()
		d := decode(t, serve(newTestRouter(t, cs, us), http.MethodGet, "/cities/delhi/places/red-fort"))

		assert.Nil(t, d.DistanceKm)
		assert.Equal(t, "Geolocation is not supported by your browser", d.LocationErr)
	})

	t.Run("unparsable coordinates", func(t *testing.T) {
		cs, us := setup()
		d := decode(t, serve(newTestRouter(t, cs, us), http.MethodGet, "/cities/delhi/places/red-fort?lat=north&lng=1"))

		assert.Nil(t, d.DistanceKm)
		assert.NotEmpty(t, d.LocationErr)
	})

	t.Run("unknown place", func(t *testing.T) {
		rr := serve(newTestRouter(t, new(MockContentService), new(MockUserState)), http.MethodGet, "/cities/delhi/places/qutub-minar")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Place not found")
	})
}

func TestMarkVisitedHandler(t *testing.T) {
	travel := types.CompletedTravel{ID: "t1", CityID: "jaipur", CityName: "Jaipur", Date: "1/1/2024"}

	t.Run("first visit", func(t *testing.T) {
		us := new(MockUserState)
		us.On("MarkVisited", mock.Anything, "jaipur", "Jaipur").Return(travel, true).Once()

		rr := serve(newTestRouter(t, new(MockContentService), us), http.MethodPost, "/cities/jaipur/visit")
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"created":true`)
		us.AssertExpectations(t)
	})

	t.Run("already visited", func(t *testing.T) {
		us := new(MockUserState)
		us.On("MarkVisited", mock.Anything, "jaipur", "Jaipur").Return(travel, false)

		rr := serve(newTestRouter(t, new(MockContentService), us), http.MethodPost, "/cities/jaipur/visit")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"created":false`)
	})

	t.Run("unknown city", func(t *testing.T) {
		us := new(MockUserState)
		rr := serve(newTestRouter(t, new(MockContentService), us), http.MethodPost, "/cities/atlantis/visit")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		us.AssertNotCalled(t, "MarkVisited", mock.Anything, mock.Anything, mock.Anything)
	})
}
