package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/earthstream/projects-backend/config"
	"github.com/earthstream/projects-backend/internal/auth"
	"github.com/earthstream/projects-backend/internal/bootstrap"
	"github.com/earthstream/projects-backend/internal/projects/engine"
	"github.com/earthstream/projects-backend/internal/projects/snapshot"
)

const serviceName = "projects-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := config.NewLogger(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	var store snapshot.Store
	switch cfg.Snapshot.Backend {
	case "redis":
		client, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Snapshot.RedisAddr,
			Password: cfg.Snapshot.RedisPassword,
			DB:       cfg.Snapshot.RedisDB,
		})
		if err != nil {
			log.WithError(err).Fatal("redis connect failed")
		}
		defer client.Close()
		store = snapshot.NewRedisStore(client)
	case "postgres":
		pg, err := snapshot.OpenPostgres(ctx, cfg.Snapshot.PostgresDSN)
		if err != nil {
			log.WithError(err).Fatal("postgres connect failed")
		}
		defer pg.Close()
		store = pg
	case "none":
		log.Warn("snapshot persistence disabled; state will not survive restarts")
	}

	eng := engine.New()
	if store != nil {
		data, err := store.Load(ctx)
		if err != nil {
			log.WithError(err).Fatal("snapshot load failed")
		}
		if data != nil {
			if err := eng.Restore(data); err != nil {
				log.WithError(err).Fatal("snapshot restore failed")
			}
			log.WithField("projects", eng.TotalProjects()).Info("state restored from snapshot")
		}
	}

	var scheduler *snapshot.Scheduler
	if store != nil {
		scheduler = snapshot.NewScheduler(eng, store, log)
		if err := scheduler.Start(cfg.Snapshot.Schedule); err != nil {
			log.WithError(err).Fatal("snapshot scheduler failed to start")
		}
	}

	var authClient *fbauth.Client
	if cfg.Auth.FirebaseCredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(cfg.Auth.FirebaseCredentialsPath)
		if err != nil {
			log.WithError(err).Fatal("firebase init failed")
		}
	} else {
		log.Warn("firebase disabled; trusting X-Principal header (development only)")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Engine:      eng,
		Snapshots:   store,
		AuthClient:  authClient,
		Log:         log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}

	if scheduler != nil {
		scheduler.Stop()
		if err := scheduler.Run(shutdownCtx); err != nil {
			log.WithError(err).Error("final snapshot failed")
		}
	}
}
