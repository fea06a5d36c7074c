package types

// Location is a WGS84 coordinate pair in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceCategory groups bundled places for the city views.
type PlaceCategory string

const (
	PlaceCategoryLandmark   PlaceCategory = "landmark"
	PlaceCategoryRestaurant PlaceCategory = "restaurant"
	PlaceCategoryStay       PlaceCategory = "stay"
)

// City is read-only reference data bundled with the service.
type City struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	State       string  `json:"state"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Places      []Place `json:"places"`
}

type Place struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	History       string        `json:"history,omitempty"`
	EntryFee      string        `json:"entryFee,omitempty"`
	VisitingHours string        `json:"visitingHours,omitempty"`
	Image         string        `json:"image"`
	Category      PlaceCategory `json:"category"`
	Location      Location      `json:"location"`
	Tags          []string      `json:"tags"`
	NearbyPlaces  []string      `json:"nearbyPlaces,omitempty"`
	FamousDishes  []string      `json:"famousDishes,omitempty"`
}

// CitySummary is the list view of a city, without its places.
type CitySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	Description string `json:"description"`
	Image       string `json:"image"`
	PlaceCount  int    `json:"placeCount"`
}

// PlaceDetail is what the place view renders: the bundled place plus
// generated and per-user context.
type PlaceDetail struct {
	CityID      string  `json:"cityId"`
	CityName    string  `json:"cityName"`
	Place       Place   `json:"place"`
	Nearby      []Place `json:"nearby"`
	Guide       string  `json:"guide"`
	DistanceKm  *string `json:"distanceKm,omitempty"`
	LocationErr string  `json:"locationError,omitempty"`
	Wishlisted  bool    `json:"wishlisted"`
	Completed   bool    `json:"completed"`
}
