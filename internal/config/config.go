// Package config reads goflix's runtime configuration from the
// environment, grounded on the teacher's api-coordinator/internal/cache's
// getenv/getint helpers (cache/redis_conn.go) — no config-file parser is
// warranted at this scale, matching the teacher's own choice.
package config

import (
	"os"
	"strconv"
)

// Config holds every environment-tunable value goflix reads at startup.
type Config struct {
	HTTPAddr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RecommendationCacheTTLSeconds bounds how long a cached
	// RecommendForUser result may be served before recomputing (§10
	// DOMAIN STACK). 0 disables the cache entirely.
	RecommendationCacheTTLSeconds int

	SeedUsers  int
	SeedVideos int

	// Scorer weights, overridable for experimentation; default to §4.5's
	// 0.35/0.25/0.15/0.10/0.15.
	WeightCollaborative float64
	WeightContent       float64
	WeightPopularity    float64
	WeightTemporal      float64
	WeightEngagement    float64
}

// FromEnv loads Config from the process environment, falling back to
// hardcoded defaults for anything unset — the same pattern as the
// teacher's getenv(k, def)/getint(k, def).
func FromEnv() Config {
	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		RedisAddr:                     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:                 getenv("REDIS_PASSWORD", ""),
		RedisDB:                       getint("REDIS_DB", 0),
		RecommendationCacheTTLSeconds: getint("RECOMMENDATION_CACHE_TTL_SECONDS", 30),

		SeedUsers:  getint("SEED_USERS", 50),
		SeedVideos: getint("SEED_VIDEOS", 200),

		WeightCollaborative: getfloat("WEIGHT_COLLABORATIVE", 0.35),
		WeightContent:       getfloat("WEIGHT_CONTENT", 0.25),
		WeightPopularity:    getfloat("WEIGHT_POPULARITY", 0.15),
		WeightTemporal:      getfloat("WEIGHT_TEMPORAL", 0.10),
		WeightEngagement:    getfloat("WEIGHT_ENGAGEMENT", 0.15),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getfloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
