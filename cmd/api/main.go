package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plantkeeper/plantkeeper-backend/config"
	"github.com/plantkeeper/plantkeeper-backend/internal/auth"
	"github.com/plantkeeper/plantkeeper-backend/internal/bootstrap"
	"github.com/plantkeeper/plantkeeper-backend/internal/plants/repository"
	"github.com/plantkeeper/plantkeeper-backend/internal/reminders"
	"github.com/plantkeeper/plantkeeper-backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, catalog cache disabled: %v", err)
		rdb = nil
	}

	deps := bootstrap.RouterDeps{
		ServiceName:    "plantkeeper-backend",
		Version:        cfg.App.Version,
		DB:             db,
		Redis:          rdb,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CacheTTL:       time.Duration(cfg.Redis.TTLSecs) * time.Second,
	}

	if cfg.Firebase.CredentialsPath != "" {
		authClient, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		deps.Verifier = authClient
		deps.Updater = authClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, running with dev identity")
	}

	bus := session.NewBroadcaster()
	gate := session.NewGate(bus, "/login")
	if err := gate.Start(); err != nil {
		log.Printf("session gate: %v", err)
	}
	defer gate.Stop()

	deps.Gate = gate
	deps.Bus = bus

	sched := reminders.NewScheduler(repository.NewRepo(db))
	if err := sched.Start(); err != nil {
		log.Printf("reminder scheduler: %v", err)
	}
	defer sched.Stop()

	router := bootstrap.BuildRouter(deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	// The server is up; no persisted server-side session exists, so the
	// first session check resolves to signed-out until a client presents a
	// token.
	bus.Publish(nil)

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
