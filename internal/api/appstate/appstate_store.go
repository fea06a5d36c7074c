package appstate

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-india-travel-guide/app/observability/metrics"
	"github.com/FACorreiaa/go-india-travel-guide/internal/storage"
	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

// Storage keys, one per persisted slice.
const (
	KeyUser             = "user"
	KeyWishlist         = "wishlist"
	KeyCompletedTravels = "completedTravels"
	KeyTheme            = "theme"
)

// DateLayout formats completed-travel dates the way the travel log shows them.
const DateLayout = "1/2/2006"

const persistTimeout = 5 * time.Second

// Store owns the user's mutable state: profile, wishlist, completed travels
// and theme. Every mutation is applied under one lock and followed by a
// single pass that writes all four slices and re-applies the theme class, so
// durable state always reflects the latest in-memory state. Write failures
// are logged and counted but never returned; memory stays authoritative.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	root    ClassList
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	user             types.UserProfile
	wishlist         []types.WishlistItem
	completedTravels []types.CompletedTravel
	theme            types.Theme
}

type Option func(*Store)

// WithRootElement sets the class list the theme flag is applied to.
func WithRootElement(root ClassList) Option {
	return func(s *Store) { s.root = root }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore seeds every slice from storage, falling back to its default when
// the key is absent or unreadable, then runs one synchronization pass.
func NewStore(ctx context.Context, st storage.Storage, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		storage: st,
		root:    NewRootElement(),
		logger:  logger.With(slog.String("component", "AppStateStore")),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.user = normalizeUser(loadJSON(ctx, s, KeyUser, types.DefaultUserProfile()))
	s.wishlist = normalizeWishlist(loadJSON(ctx, s, KeyWishlist, []types.WishlistItem{}))
	s.completedTravels = loadJSON(ctx, s, KeyCompletedTravels, []types.CompletedTravel{})
	if s.completedTravels == nil {
		s.completedTravels = []types.CompletedTravel{}
	}
	s.theme = s.loadTheme(ctx)

	s.mu.Lock()
	s.syncLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "State store initialized",
		slog.Int("wishlist", len(s.wishlist)),
		slog.Int("completed_travels", len(s.completedTravels)),
		slog.String("theme", string(s.theme)))
	return s
}

func loadJSON[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, found, err := s.storage.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read state slice, using default", slog.String("key", key), slog.Any("error", err))
		return fallback
	}
	if !found || raw == "" || raw == "null" {
		return fallback
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.WarnContext(ctx, "Stored state slice is not valid JSON, using default", slog.String("key", key), slog.Any("error", err))
		return fallback
	}
	return v
}

func (s *Store) loadTheme(ctx context.Context) types.Theme {
	raw, found, err := s.storage.Get(ctx, KeyTheme)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read theme, using light", slog.Any("error", err))
		return types.ThemeLight
	}
	theme, ok := types.ParseTheme(raw)
	if found && !ok {
		s.logger.WarnContext(ctx, "Stored theme is invalid, using light", slog.String("value", raw))
	}
	return theme
}

func normalizeUser(u types.UserProfile) types.UserProfile {
	u.TravelHistory = appendUnique(make([]string, 0, len(u.TravelHistory)), u.TravelHistory...)
	if u.UploadedImages == nil {
		u.UploadedImages = []string{}
	}
	return u
}

func normalizeWishlist(items []types.WishlistItem) []types.WishlistItem {
	out := make([]types.WishlistItem, 0, len(items))
	for _, item := range items {
		if !containsItem(out, item.ID) {
			out = append(out, item)
		}
	}
	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func containsItem(items []types.WishlistItem, id string) bool {
	return slices.ContainsFunc(items, func(i types.WishlistItem) bool { return i.ID == id })
}

// syncLocked writes all four slices in a fixed order and applies the theme
// class. s.mu must be held.
func (s *Store) syncLocked(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	s.persistJSON(ctx, KeyUser, s.user)
	s.persistJSON(ctx, KeyWishlist, s.wishlist)
	s.persistJSON(ctx, KeyCompletedTravels, s.completedTravels)
	s.persist(ctx, KeyTheme, string(s.theme))

	s.root.Toggle(DarkClass, s.theme == types.ThemeDark)
}

func (s *Store) persistJSON(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.persistFailed(ctx, key, err)
		return
	}
	s.persist(ctx, key, string(b))
}

func (s *Store) persist(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, key, value); err != nil {
		s.persistFailed(ctx, key, err)
	}
}

func (s *Store) persistFailed(ctx context.Context, key string, err error) {
	s.logger.WarnContext(ctx, "Failed to persist state slice", slog.String("key", key), slog.Any("error", err))
	metrics.Get().StorePersistErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("key", key)))
}

// mutate runs fn under the lock and synchronizes afterwards when fn reports
// a change.
func (s *Store) mutate(ctx context.Context, op string, fn func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !fn() {
		return
	}
	metrics.Get().StoreMutationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	s.syncLocked(ctx)
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) types.Theme {
	var theme types.Theme
	s.mutate(ctx, "toggle_theme", func() bool {
		if s.theme == types.ThemeDark {
			s.theme = types.ThemeLight
		} else {
			s.theme = types.ThemeDark
		}
		theme = s.theme
		return true
	})
	return theme
}

// AddToWishlist appends item unless an entry with the same id exists.
// It reports whether the item was added.
func (s *Store) AddToWishlist(ctx context.Context, item types.WishlistItem) bool {
	var added bool
	s.mutate(ctx, "add_to_wishlist", func() bool {
		if containsItem(s.wishlist, item.ID) {
			return false
		}
		s.wishlist = append(s.wishlist, item)
		added = true
		return true
	})
	return added
}

// RemoveFromWishlist drops every entry with the given id.
func (s *Store) RemoveFromWishlist(ctx context.Context, id string) bool {
	var removed bool
	s.mutate(ctx, "remove_from_wishlist", func() bool {
		before := len(s.wishlist)
		s.wishlist = slices.DeleteFunc(s.wishlist, func(i types.WishlistItem) bool { return i.ID == id })
		removed = len(s.wishlist) != before
		return removed
	})
	return removed
}

// AddCompletedTravel appends travel to the log and records its city in the
// profile's travel history. Missing id and date are filled in.
func (s *Store) AddCompletedTravel(ctx context.Context, travel types.CompletedTravel) types.CompletedTravel {
	if travel.ID == "" {
		travel.ID = s.newID()
	}
	if travel.Date == "" {
		travel.Date = s.now().Format(DateLayout)
	}
	travel = travel.Clone()
	s.mutate(ctx, "add_completed_travel", func() bool {
		s.completedTravels = append(s.completedTravels, travel)
		s.user.TravelHistory = appendUnique(s.user.TravelHistory, travel.CityID)
		return true
	})
	return travel.Clone()
}

// MarkVisited records a trip to the city unless one is already logged.
func (s *Store) MarkVisited(ctx context.Context, cityID, cityName string) (types.CompletedTravel, bool) {
	var (
		travel  types.CompletedTravel
		created bool
	)
	s.mutate(ctx, "mark_visited", func() bool {
		for _, t := range s.completedTravels {
			if t.CityID == cityID {
				travel = t.Clone()
				return false
			}
		}
		travel = types.CompletedTravel{
			ID:       s.newID(),
			CityID:   cityID,
			CityName: cityName,
			Date:     s.now().Format(DateLayout),
		}
		s.completedTravels = append(s.completedTravels, travel)
		s.user.TravelHistory = appendUnique(s.user.TravelHistory, cityID)
		created = true
		return true
	})
	return travel.Clone(), created
}

// UpdateCompletedTravel merges update into the entry with the given id. The
// log is left untouched when no entry matches.
func (s *Store) UpdateCompletedTravel(ctx context.Context, id string, update types.CompletedTravelUpdate) (types.CompletedTravel, bool) {
	var (
		updated types.CompletedTravel
		found   bool
	)
	s.mutate(ctx, "update_completed_travel", func() bool {
		i := slices.IndexFunc(s.completedTravels, func(t types.CompletedTravel) bool { return t.ID == id })
		if i < 0 {
			return false
		}
		s.completedTravels[i] = update.Apply(s.completedTravels[i])
		updated = s.completedTravels[i].Clone()
		found = true
		return true
	})
	return updated, found
}

// UploadImage appends url to the profile's uploaded images.
func (s *Store) UploadImage(ctx context.Context, url string) {
	s.mutate(ctx, "upload_image", func() bool {
		s.user.UploadedImages = append(s.user.UploadedImages, url)
		return true
	})
}

// Snapshot returns a deep copy of every slice.
func (s *Store) Snapshot() types.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.AppState{
		User:             s.user.Clone(),
		Wishlist:         slices.Clone(s.wishlist),
		CompletedTravels: cloneTravels(s.completedTravels),
		Theme:            s.theme,
	}
}

func (s *Store) User() types.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

func (s *Store) Wishlist() []types.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.wishlist)
}

func (s *Store) CompletedTravels() []types.CompletedTravel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTravels(s.completedTravels)
}

func (s *Store) Theme() types.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Store) IsWishlisted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return containsItem(s.wishlist, id)
}

func (s *Store) HasCompletedCity(cityID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.completedTravels, func(t types.CompletedTravel) bool { return t.CityID == cityID })
}

func cloneTravels(in []types.CompletedTravel) []types.CompletedTravel {
	out := make([]types.CompletedTravel, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
