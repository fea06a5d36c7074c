package types

import (
	"fmt"
	"slices"
)

// Theme is the presentation theme. Only ThemeLight and ThemeDark are valid.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme for a stored value, falling back to light.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	default:
		return ThemeLight, false
	}
}

type UserProfile struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	ProfilePicture string   `json:"profilePicture"`
	TravelHistory  []string `json:"travelHistory"`
	UploadedImages []string `json:"uploadedImages"`
}

// DefaultUserProfile is the profile a new client starts with.
func DefaultUserProfile() UserProfile {
	return UserProfile{
		Name:           "Traveler",
		Email:          "traveler@example.com",
		ProfilePicture: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?auto=format&fit=crop&q=80&w=200",
		TravelHistory:  []string{"delhi"},
		UploadedImages: []string{},
	}
}

// Clone returns a deep copy of the profile.
func (u UserProfile) Clone() UserProfile {
	u.TravelHistory = cloneStrings(u.TravelHistory)
	u.UploadedImages = cloneStrings(u.UploadedImages)
	return u
}

type WishlistType string

const (
	WishlistTypePlace      WishlistType = "place"
	WishlistTypeRestaurant WishlistType = "restaurant"
	WishlistTypeHotel      WishlistType = "hotel"
)

type WishlistItem struct {
	ID     string       `json:"id"`
	Type   WishlistType `json:"type"`
	Name   string       `json:"name"`
	Image  string       `json:"image"`
	CityID string       `json:"cityId"`
}

// Validate reports whether the item can be stored in a wishlist.
func (w WishlistItem) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("wishlist item id is required")
	}
	switch w.Type {
	case WishlistTypePlace, WishlistTypeRestaurant, WishlistTypeHotel:
	default:
		return fmt.Errorf("invalid wishlist item type %q", w.Type)
	}
	if w.CityID == "" {
		return fmt.Errorf("wishlist item cityId is required")
	}
	return nil
}

type CompletedTravel struct {
	ID       string   `json:"id"`
	CityID   string   `json:"cityId"`
	CityName string   `json:"cityName"`
	Date     string   `json:"date"`
	Review   *string  `json:"review,omitempty"`
	Rating   *int     `json:"rating,omitempty"`
	Images   []string `json:"images,omitempty"`
}

// Clone returns a deep copy of the travel entry.
func (c CompletedTravel) Clone() CompletedTravel {
	if c.Review != nil {
		r := *c.Review
		c.Review = &r
	}
	if c.Rating != nil {
		r := *c.Rating
		c.Rating = &r
	}
	c.Images = cloneStrings(c.Images)
	return c
}

// CompletedTravelUpdate is a partial update; nil fields are left untouched.
type CompletedTravelUpdate struct {
	CityName *string  `json:"cityName,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Review   *string  `json:"review,omitempty"`
	Rating   *int     `json:"rating,omitempty"`
	Images   []string `json:"images,omitempty"`
}

// Validate checks the ranges of the fields that are set.
func (u CompletedTravelUpdate) Validate() error {
	if u.Rating != nil && (*u.Rating < 1 || *u.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5, got %d", *u.Rating)
	}
	return nil
}

// Apply merges the set fields of u into t.
func (u CompletedTravelUpdate) Apply(t CompletedTravel) CompletedTravel {
	if u.CityName != nil {
		t.CityName = *u.CityName
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.Review != nil {
		r := *u.Review
		t.Review = &r
	}
	if u.Rating != nil {
		r := *u.Rating
		t.Rating = &r
	}
	if u.Images != nil {
		t.Images = cloneStrings(u.Images)
	}
	return t
}

// AppState is a point-in-time copy of every persisted slice.
type AppState struct {
	User             UserProfile       `json:"user"`
	Wishlist         []WishlistItem    `json:"wishlist"`
	CompletedTravels []CompletedTravel `json:"completedTravels"`
	Theme            Theme             `json:"theme"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
