package types

type MenuItem struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Restaurant is generated on demand and never persisted.
type Restaurant struct {
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Contact      string     `json:"contact"`
	Rating       float64    `json:"rating"`
	Categories   []string   `json:"categories"`
	Menu         []MenuItem `json:"menu"`
	OpeningHours string     `json:"openingHours"`
	Description  string     `json:"description"`
}

type RoomType struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
	Status      string   `json:"status"`
}

// Hotel is generated on demand and never persisted.
type Hotel struct {
	Name       string     `json:"name"`
	StarRating float64    `json:"starRating"`
	Address    string     `json:"address"`
	RoomTypes  []RoomType `json:"roomTypes"`
	Amenities  []string   `json:"amenities"`
}

// CityOverview bundles the generated content shown on a city page.
type CityOverview struct {
	CityID      string       `json:"cityId"`
	Highlights  string       `json:"highlights"`
	Restaurants []Restaurant `json:"restaurants"`
	Hotels      []Hotel      `json:"hotels"`
}
