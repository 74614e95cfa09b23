package main

import (
	"GameFlowApi/internal/data"
	"GameFlowApi/internal/flowhub"
	"GameFlowApi/internal/jsonlog"
	"GameFlowApi/internal/mailer"
	"GameFlowApi/internal/nba"
	"GameFlowApi/internal/pipeline"
	"GameFlowApi/internal/store"
	"context"
	"database/sql"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

type config struct {
	version string
	port    int
	env     string
	dataDir string
	db      struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	smtp struct {
		host      string
		port      int
		username  string
		password  string
		sender    string
		recipient string
	}
	cors struct {
		trustedOrigins []string
	}
	nba struct {
		baseURL  string
		rps      float64
		cacheTTL time.Duration
		redisURL string
	}
}

type application struct {
	logger *jsonlog.Logger
	config config
	store  *store.Store
	models *data.Models
	runner *pipeline.Runner
	hub    *flowhub.Hub
	mailer mailer.Mailer

	runMu      sync.Mutex
	runActive  bool
	wg         sync.WaitGroup
}

func main() {
	var cfg config

	// Server Config
	cfg.version = "1.0.0"
	flag.IntVar(&cfg.port, "port", 8008, "http server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cfg.dataDir, "data-dir", "./data", "Directory for derived game documents")

	// Database Config
	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "DB connection string (empty disables the index mirror)")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m",
		"PostgreSQL max connection idle time")

	// Limiter Config
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

	// SMTP Config
	flag.StringVar(&cfg.smtp.host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.smtp.port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", "GameFlow <no-reply@gameflow.dev>",
		"SMTP sender")
	flag.StringVar(&cfg.smtp.recipient, "smtp-recipient", "",
		"Recipient for pipeline run reports (empty disables reports)")

	// CORS Config
	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		origins := strings.Fields(val)
		if i := slices.Index(origins, "*"); i != -1 {
			return errors.New(`cannot set CORS trusted origin to "*"`)
		}
		cfg.cors.trustedOrigins = origins
		return nil
	})

	// Upstream NBA API Config
	flag.StringVar(&cfg.nba.baseURL, "nba-base-url", nba.DefaultBaseURL, "NBA stats API base URL")
	flag.Float64Var(&cfg.nba.rps, "nba-rps", 0.66, "NBA stats API requests per second")
	flag.DurationVar(&cfg.nba.cacheTTL, "nba-cache-ttl", 6*time.Hour,
		"TTL for cached NBA API responses")
	flag.StringVar(&cfg.nba.redisURL, "redis-url", "",
		"Redis URL for the NBA response cache (empty disables caching)")

	// Version
	displayVersion := flag.Bool("version", false, "Show API version and immediately exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version: %s\n", cfg.version)
		os.Exit(0)
	}

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	var models *data.Models
	if cfg.db.dsn != "" {
		db, err := openDB(cfg)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		defer db.Close()
		logger.PrintInfo("database connection pool established", nil)

		m := data.NewModels(db)
		models = &m

		expvar.Publish("database", expvar.Func(func() any {
			return db.Stats()
		}))
	}

	cache := nba.NopCache()
	if cfg.nba.redisURL != "" {
		opt, err := redis.ParseURL(cfg.nba.redisURL)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		cache = nba.NewRedisCache(redis.NewClient(opt))
		logger.PrintInfo("redis response cache enabled", nil)
	}

	expvar.NewString("version").Set(cfg.version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	hub := flowhub.New()
	go hub.Run()

	gameStore := store.New(cfg.dataDir)

	app := &application{
		logger: logger,
		config: cfg,
		store:  gameStore,
		models: models,
		hub:    hub,
		mailer: mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password,
			cfg.smtp.sender),
	}

	app.runner = &pipeline.Runner{
		Client: nba.New(cfg.nba.baseURL, cfg.nba.rps, cache, cfg.nba.cacheTTL),
		Store:  gameStore,
		Logger: logger,
		Notify: func(e pipeline.RunEvent) { hub.Broadcast(e) },
	}
	if models != nil {
		app.runner.Index = models.Games
	}

	err := app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)
	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}
