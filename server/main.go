package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/granazap/granazap/server/engine"
	"github.com/granazap/granazap/server/store"
)

// Application wires the engine to its HTTP surface and collaborators.
type Application struct {
	Config Config
	Log    zerolog.Logger
	Store  *store.Store
	Engine *engine.Engine
}

func main() {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	loc, err := time.LoadLocation(cfg.Locale.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Locale.Timezone).Msg("load timezone")
	}

	dict, err := engine.LoadDictionaries(cfg.Dictionaries.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("load dictionaries")
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("open database")
	}
	defer st.Close()

	eng := engine.New(dict, st, st, st,
		engine.WithClock(func() time.Time { return time.Now().In(loc) }))

	app := &Application{
		Config: cfg,
		Log:    log,
		Store:  st,
		Engine: eng,
	}

	if cfg.Backup.Path != "" {
		go app.startBackupLoop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	app.setupRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting server")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}
