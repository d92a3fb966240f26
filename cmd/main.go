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

	"github.com/rs/cors"
	"go.uber.org/zap"

	"tesBack/internal/config"
	"tesBack/internal/logger"
	"tesBack/internal/seed"
)

const serviceName = "tes-back"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	addr := flag.String("addr", cfg.Server.Address, "HTTP network address")
	flag.Parse()

	zl, err := logger.New(logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Log.Environment,
		ServiceName: serviceName,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)
	sugar := zl.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		sugar.Fatalf("open %s store: %v", cfg.Storage.Backend, err)
	}
	defer store.Close()

	app, err := initializeApp(ctx, cfg, store, zl)
	if err != nil {
		sugar.Fatalf("initialize app: %v", err)
	}
	defer app.hub.Close()

	if cfg.Seed {
		wrote, err := seed.Bootstrap(ctx, store, app.services.Auth.HashPassword)
		if err != nil {
			sugar.Fatalf("seed store: %v", err)
		}
		if wrote {
			sugar.Infof("seeded demo data into %s store", cfg.Storage.Backend)
		}
	}

	startReminderWorker(ctx, app.services.Reminders, cfg.Reminder.Interval, sugar)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         *addr,
		ErrorLog:     zap.NewStdLog(zl),
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorf("shutdown: %v", err)
		}
	}()

	sugar.Infof("Starting server on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatal(err)
	}
}
