package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appLogger "github.com/FACorreiaa/go-india-travel-guide/app/logger"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api/appstate"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api/city"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AppStateHandler *appstate.HandlerImpl
	CityHandler     *city.Handler
	Logger          *slog.Logger
	CORSOrigins     []string
	Timeout         time.Duration
}

// SetupRouter initializes the application router with the server-wide
// middleware stack and every API route.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}
	r.Use(middleware.Compress(5, "application/json"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cities", func(r chi.Router) {
			r.Get("/", cfg.CityHandler.ListCities)
			r.Route("/{cityID}", func(r chi.Router) {
				r.Get("/", cfg.CityHandler.GetCity)
				r.Get("/overview", cfg.CityHandler.GetCityOverview)
				r.Get("/places/{placeID}", cfg.CityHandler.GetPlaceDetail)
				r.Post("/visit", cfg.CityHandler.MarkVisited)
			})
		})

		r.Get("/state", cfg.AppStateHandler.GetState)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", cfg.AppStateHandler.GetWishlist)
			r.Post("/", cfg.AppStateHandler.AddToWishlist)
			r.Delete("/{itemID}", cfg.AppStateHandler.RemoveFromWishlist)
		})

		r.Get("/profile", cfg.AppStateHandler.GetProfile)
		r.Post("/profile/images", cfg.AppStateHandler.UploadImage)

		r.Get("/completed", cfg.AppStateHandler.GetCompletedTravels)
		r.Patch("/completed/{travelID}", cfg.AppStateHandler.UpdateCompletedTravel)

		r.Get("/theme", cfg.AppStateHandler.GetTheme)
		r.Post("/theme/toggle", cfg.AppStateHandler.ToggleTheme)
	})

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.ErrorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
