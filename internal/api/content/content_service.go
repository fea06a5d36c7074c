package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-india-travel-guide/app/observability/metrics"
	"github.com/FACorreiaa/go-india-travel-guide/config"
	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

const (
	PlaceGuideEmpty  = "No details available."
	PlaceGuideFailed = "Failed to load details. Please try again later."
	HighlightsEmpty  = "No highlights available."
	HighlightsFailed = "Failed to load highlights."

	recordsPerRequest = 5
	defaultTimeout    = 30 * time.Second
)

var errEmptyResponse = errors.New("empty response")

// Generator is the slice of the Gemini client the content service needs.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Service fetches generated travel content. Every method is total: failures
// turn into fallback text or empty lists and are logged, never returned.
type Service interface {
	FetchPlaceGuide(ctx context.Context, placeName, cityName string) string
	FetchCityHighlights(ctx context.Context, cityName string) string
	FetchRestaurants(ctx context.Context, cityName string) []types.Restaurant
	FetchHotels(ctx context.Context, cityName string) []types.Hotel
	FetchCityOverview(ctx context.Context, cityID, cityName string) types.CityOverview
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	ai      Generator
	cache   *cache.Cache
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

func NewServiceImpl(ai Generator, genCfg config.GenAIConfig, cacheCfg config.CacheConfig, logger *slog.Logger) *ServiceImpl {
	timeout := genCfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if genCfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(genCfg.RequestsPerMinute))
	}
	burst := genCfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &ServiceImpl{
		ai:      ai,
		cache:   cache.New(cacheCfg.TTL, cacheCfg.CleanupInterval),
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
		logger:  logger,
	}
}

// generate waits for a limiter slot and runs one bounded upstream call.
func (s *ServiceImpl) generate(ctx context.Context, operation, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	text, err := s.ai.GenerateContent(ctx, prompt, genCfg)
	metrics.Get().ContentDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("operation", operation)))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

func (s *ServiceImpl) cached(ctx context.Context, operation, key string) (any, bool) {
	v, ok := s.cache.Get(key)
	if ok {
		metrics.Get().ContentCacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
	return v, ok
}

func (s *ServiceImpl) countRequest(ctx context.Context, operation string) {
	metrics.Get().ContentRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (s *ServiceImpl) countFallback(ctx context.Context, operation, reason string) {
	metrics.Get().ContentFallbacksTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("reason", reason),
	))
}

// fetchText runs a markdown prompt and maps the two failure kinds onto the
// caller's fallback strings.
func (s *ServiceImpl) fetchText(ctx context.Context, operation, key, prompt, emptyText, failedText string) string {
	ctx, span := otel.Tracer("ContentService").Start(ctx, operation, trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()
	l := s.logger.With(slog.String("operation", operation), slog.String("key", key))
	s.countRequest(ctx, operation)

	if v, ok := s.cached(ctx, operation, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return v.(string)
	}

	text, err := s.generate(ctx, operation, prompt, nil)
	switch {
	case errors.Is(err, errEmptyResponse):
		l.WarnContext(ctx, "Model returned no text")
		s.countFallback(ctx, operation, "empty")
		span.SetStatus(codes.Error, "Empty response")
		return emptyText
	case err != nil:
		l.ErrorContext(ctx, "Failed to generate content", slog.Any("error", err))
		s.countFallback(ctx, operation, "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return failedText
	}

	s.cache.Set(key, text, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "Content generated")
	return text
}

// FetchPlaceGuide returns a markdown travel guide for a single place.
func (s *ServiceImpl) FetchPlaceGuide(ctx context.Context, placeName, cityName string) string {
	return s.fetchText(ctx, "FetchPlaceGuide",
		generateCacheKey("guide", placeName, cityName),
		PlaceGuidePrompt(placeName, cityName),
		PlaceGuideEmpty, PlaceGuideFailed)
}

// FetchCityHighlights returns a short markdown overview of a city.
func (s *ServiceImpl) FetchCityHighlights(ctx context.Context, cityName string) string {
	return s.fetchText(ctx, "FetchCityHighlights",
		generateCacheKey("highlights", cityName),
		getCityHighlightsPrompt(cityName),
		HighlightsEmpty, HighlightsFailed)
}

// FetchRestaurants asks for five restaurants in strict JSON mode.
func (s *ServiceImpl) FetchRestaurants(ctx context.Context, cityName string) []types.Restaurant {
	return fetchRecords(ctx, s, "FetchRestaurants",
		generateCacheKey("restaurants", cityName),
		getRestaurantsPrompt(cityName), "restaurants", checkRestaurant)
}

// FetchHotels asks for five hotels in strict JSON mode.
func (s *ServiceImpl) FetchHotels(ctx context.Context, cityName string) []types.Hotel {
	return fetchRecords(ctx, s, "FetchHotels",
		generateCacheKey("hotels", cityName),
		getHotelsPrompt(cityName), "hotels", checkHotel)
}

// FetchCityOverview loads highlights, restaurants and hotels concurrently.
func (s *ServiceImpl) FetchCityOverview(ctx context.Context, cityID, cityName string) types.CityOverview {
	ctx, span := otel.Tracer("ContentService").Start(ctx, "FetchCityOverview")
	defer span.End()

	overview := types.CityOverview{CityID: cityID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview.Highlights = s.FetchCityHighlights(gctx, cityName)
		return nil
	})
	g.Go(func() error {
		overview.Restaurants = s.FetchRestaurants(gctx, cityName)
		return nil
	})
	g.Go(func() error {
		overview.Hotels = s.FetchHotels(gctx, cityName)
		return nil
	})
	// The fetchers are total, so Wait only synchronizes.
	_ = g.Wait()

	span.SetAttributes(
		attribute.Int("restaurants.count", len(overview.Restaurants)),
		attribute.Int("hotels.count", len(overview.Hotels)),
	)
	return overview
}

func fetchRecords[T any](ctx context.Context, s *ServiceImpl, operation, key, prompt, wrapperKey string, check func(T) error) []T {
	ctx, span := otel.Tracer("ContentService").Start(ctx, operation, trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()
	l := s.logger.With(slog.String("operation", operation), slog.String("key", key))
	s.countRequest(ctx, operation)

	if v, ok := s.cached(ctx, operation, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return slices.Clone(v.([]T))
	}

	text, err := s.generate(ctx, operation, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate records", slog.Any("error", err))
		s.countFallback(ctx, operation, "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return []T{}
	}

	decoded := decodeRecords[T](text, wrapperKey)
	if !decoded.OK {
		l.ErrorContext(ctx, "Failed to parse records", slog.String("reason", decoded.Reason))
		s.countFallback(ctx, operation, "parse")
		span.SetStatus(codes.Error, "Invalid JSON")
		return []T{}
	}

	records, dropped := validated(decoded.Records, recordsPerRequest, check)
	if len(dropped) > 0 {
		l.WarnContext(ctx, "Dropped invalid records", slog.Any("reasons", dropped))
	}
	if len(records) > 0 {
		s.cache.Set(key, slices.Clone(records), cache.DefaultExpiration)
	}
	span.SetAttributes(attribute.Int("records.count", len(records)))
	span.SetStatus(codes.Ok, "Records generated")
	return records
}
