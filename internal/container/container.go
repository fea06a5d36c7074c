package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/go-india-travel-guide/config"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api/appstate"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api/city"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api/content"
	generativeAI "github.com/FACorreiaa/go-india-travel-guide/internal/api/generative_ai"
	"github.com/FACorreiaa/go-india-travel-guide/internal/storage"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	Storage         storage.Storage
	Root            *appstate.RootElement
	Store           *appstate.Store
	ContentService  content.Service
	AppStateHandler *appstate.HandlerImpl
	CityHandler     *city.Handler
}

// NewContainer initializes and returns a new dependency container. A missing
// Gemini key is fatal here, before any storage is opened.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.GenAI)
	if err != nil {
		logger.Error("Failed to initialize AI client", slog.Any("error", err))
		return nil, err
	}
	logger.Info("AI client ready", slog.String("model", aiClient.Model()))

	return build(ctx, cfg, aiClient, logger)
}

func build(ctx context.Context, cfg *config.Config, ai content.Generator, logger *slog.Logger) (*Container, error) {
	st, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("Failed to open storage", slog.Any("error", err))
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	root := appstate.NewRootElement()
	store := appstate.NewStore(ctx, st, logger, appstate.WithRootElement(root))
	appStateHandler := appstate.NewHandlerImpl(store, root, logger)

	contentService := content.NewServiceImpl(ai, cfg.GenAI, cfg.Cache, logger)

	cityRepo, err := city.NewEmbeddedRepository(logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	cityService := city.NewServiceImpl(cityRepo, logger)
	cityHandler := city.NewCityHandler(cityService, contentService, store, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Storage:         st,
		Root:            root,
		Store:           store,
		ContentService:  contentService,
		AppStateHandler: appStateHandler,
		CityHandler:     cityHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Storage == nil {
		return
	}
	if err := c.Storage.Close(); err != nil {
		c.Logger.Error("Failed to close storage", slog.Any("error", err))
	}
}
