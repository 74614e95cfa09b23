package main

import (
	"GameFlowApi/internal/data"
	"GameFlowApi/internal/jsonlog"
	"GameFlowApi/internal/nba"
	"GameFlowApi/internal/pipeline"
	"GameFlowApi/internal/store"
	"context"
	"database/sql"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// The pipeline command runs one fetch-transform-write cycle and exits, for
// cron scheduling or backfills.
func main() {
	var (
		date     string
		dataDir  string
		dbDSN    string
		redisURL string
		baseURL  string
		rps      float64
		cacheTTL time.Duration
		cleanup  bool
	)

	flag.StringVar(&date, "date", time.Now().AddDate(0, 0, -1).Format(time.DateOnly),
		"Date to process (YYYY-MM-DD)")
	flag.StringVar(&dataDir, "data-dir", "./data", "Directory for derived game documents")
	flag.StringVar(&dbDSN, "db-dsn", "", "DB connection string (empty disables the index mirror)")
	flag.StringVar(&redisURL, "redis-url", "",
		"Redis URL for the NBA response cache (empty disables caching)")
	flag.StringVar(&baseURL, "nba-base-url", nba.DefaultBaseURL, "NBA stats API base URL")
	flag.Float64Var(&rps, "nba-rps", 0.66, "NBA stats API requests per second")
	flag.DurationVar(&cacheTTL, "nba-cache-ttl", 6*time.Hour, "TTL for cached NBA API responses")
	flag.BoolVar(&cleanup, "cleanup", false, "Delete stored data older than the current month")
	flag.Parse()

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	if _, err := time.Parse(time.DateOnly, date); err != nil {
		logger.PrintFatal(err, map[string]string{"date": date})
	}

	cache := nba.NopCache()
	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		cache = nba.NewRedisCache(redis.NewClient(opt))
	}

	gameStore := store.New(dataDir)

	runner := &pipeline.Runner{
		Client: nba.New(baseURL, rps, cache, cacheTTL),
		Store:  gameStore,
		Logger: logger,
	}

	if dbDSN != "" {
		db, err := openDB(dbDSN)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		defer db.Close()

		models := data.NewModels(db)
		runner.Index = models.Games
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := runner.RunDate(ctx, date)
	if err != nil {
		logger.PrintFatal(err, map[string]string{"date": date})
	}

	logger.PrintInfo("pipeline run complete", map[string]string{
		"date":           summary.Date,
		"found":          strconv.Itoa(summary.GamesFound),
		"written":        strconv.Itoa(summary.GamesWritten),
		"skipped":        strconv.Itoa(summary.GamesSkipped),
		"events_dropped": strconv.Itoa(summary.EventsDropped),
	})

	if cleanup {
		deleted, err := gameStore.Cleanup(date)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		logger.PrintInfo("cleanup complete", map[string]string{
			"deleted": strings.Join(deleted, ", "),
		})
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}
