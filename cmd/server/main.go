package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ragnr99/portfolio-hub/internal/battle"
	"github.com/Ragnr99/portfolio-hub/internal/config"
	"github.com/Ragnr99/portfolio-hub/internal/roster"
	"github.com/Ragnr99/portfolio-hub/internal/session"
	"github.com/Ragnr99/portfolio-hub/internal/web"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Read(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSrc()

	chart := battle.DefaultTypeChart()
	if cfg.Battle.TypeChart != "" {
		chart, err = battle.LoadTypeChart(cfg.Battle.TypeChart)
		if err != nil {
			log.Fatal(err)
		}
	}

	store := session.NewMemoryStore[battle.State](cfg.SessionTTL())
	if cfg.SessionTTL() > 0 {
		go store.Janitor(ctx, time.Minute)
	}

	srv := &web.Server{
		Engine: &battle.Engine{Chart: chart, Rand: battle.NewLockedRand(battle.NewRand(cfg.Battle.Seed))},
		Roster: roster.New(src, cfg.Roster.Level, cfg.Roster.MinBaseTotal),
		Store:  store,
		Pace:   cfg.Pace(),
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.Server.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openSource prefers the PokeAPI database and falls back to the YAML roster.
func openSource(ctx context.Context, cfg *config.Config) (roster.Source, func(), error) {
	if cfg.Roster.Database != "" {
		db, err := roster.OpenDB(ctx, cfg.Roster.Database, cfg.Roster.Level)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("roster: database %s", cfg.Roster.Database)
		return db, func() { _ = db.Close() }, nil
	}
	fs, err := roster.LoadFile(cfg.Roster.File)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("roster: file %s", cfg.Roster.File)
	return fs, func() {}, nil
}
