package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"google.golang.org/genai"

	appLogger "github.com/FACorreiaa/go-india-travel-guide/app/logger"
	"github.com/FACorreiaa/go-india-travel-guide/config"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api/city"
	"github.com/FACorreiaa/go-india-travel-guide/internal/api/content"
	generativeAI "github.com/FACorreiaa/go-india-travel-guide/internal/api/generative_ai"
)

var (
	cityID  = flag.String("city", "delhi", "catalog city id, e.g. jaipur")
	placeID = flag.String("place", "red-fort", "catalog place id within the city")
)

// Streams the place guide to stdout so prompt changes can be checked by eye.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}
	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}
	logger := appLogger.New(os.Stderr, cfg.Mode)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	repo, err := city.NewEmbeddedRepository(logger)
	if err != nil {
		log.Fatal(err)
	}
	c, place, err := city.NewServiceImpl(repo, logger).GetPlace(ctx, *cityID, *placeID)
	if err != nil {
		log.Fatal(err)
	}

	ai, err := generativeAI.NewAIClient(ctx, cfg.GenAI)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("Streaming place guide", "model", ai.Model(), "place", place.Name, "city", c.Name)

	genCfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.5)}
	for chunk, err := range ai.GenerateContentStream(ctx, content.PlaceGuidePrompt(place.Name, c.Name), genCfg) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(chunk)
	}
	fmt.Println()
}
