package main

import (
	"log"

	"github.com/safewalk/safewalk-backend-go/internal/api"
	"github.com/safewalk/safewalk-backend-go/internal/config"
	"github.com/safewalk/safewalk-backend-go/internal/database"
	"github.com/safewalk/safewalk-backend-go/internal/repository"
	"github.com/safewalk/safewalk-backend-go/internal/scoring"
	"github.com/safewalk/safewalk-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	// The scoring artifacts are load-or-die: serving requests without
	// weights would produce scores that look valid but are not.
	model, err := scoring.LoadModel(cfg.ModelPath, cfg.DefaultFeature)
	if err != nil {
		log.Fatal("Failed to load safety model: ", err)
	}

	storeCfg := scoring.StoreConfig{
		GridStep:     cfg.GridStep,
		SearchRings:  cfg.SearchRings,
		DefaultValue: cfg.DefaultFeature,
	}
	store, err := scoring.LoadFeatureTable(cfg.GridPath, storeCfg)
	if err != nil {
		log.Fatal("Failed to load grid feature table: ", err)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	scorer := scoring.NewScorer(store, model, scoring.ScorerConfig{
		SampleStride: cfg.SampleStride,
		MaxSamples:   cfg.MaxSamples,
	})
	alerts := scoring.NewAlertPolicy(cfg.AlertThreshold, cfg.AlertCooldown)

	router := api.SetupRouter(api.Services{
		Auth:     service.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret),
		Safety:   service.NewSafetyService(scorer, alerts),
		SOS:      service.NewSOSService(repository.NewSOSRepository(db)),
		Location: service.NewLocationService(repository.NewLocationRepository(db)),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
