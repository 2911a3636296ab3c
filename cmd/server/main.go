// Command server wires the recommendation engine, the seed data
// generator, and the gin HTTP collaborator together and starts listening,
// grounded on the teacher's api-coordinator/cmd/api/main.go entrypoint.
package main

import (
	"math/rand"
	"os"

	"github.com/gin-gonic/gin"

	"goflix/internal/config"
	"goflix/internal/engine"
	"goflix/internal/httpapi"
	"goflix/internal/logging"
	"goflix/internal/monitor"
	"goflix/internal/seed"
)

func main() {
	log := logging.New("server")
	cfg := config.FromEnv()

	e := engine.NewEngineWithWeights(engine.Weights{
		Collaborative: cfg.WeightCollaborative,
		Content:       cfg.WeightContent,
		Popularity:    cfg.WeightPopularity,
		Temporal:      cfg.WeightTemporal,
		Engagement:    cfg.WeightEngagement,
	})

	log.Info("seeding %d users and %d videos", cfg.SeedUsers, cfg.SeedVideos)
	seedCfg := seed.DefaultConfig()
	seedCfg.Users = cfg.SeedUsers
	seedCfg.Videos = cfg.SeedVideos
	seed.Populate(e, seedCfg, rand.New(rand.NewSource(42)))

	var cache *httpapi.RecommendationCache
	if cfg.RecommendationCacheTTLSeconds > 0 {
		cache = httpapi.NewRecommendationCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RecommendationCacheTTLSeconds)
		log.Info("recommendation cache enabled at %s (ttl=%ds)", cfg.RedisAddr, cfg.RecommendationCacheTTLSeconds)
	}

	handler := httpapi.NewHandler(e, cache, monitor.NewService())

	router := gin.Default()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	log.Success("listening on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Error("server exited: %v", err)
		os.Exit(1)
	}
}
