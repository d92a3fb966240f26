package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tesBack/internal/config"
	"tesBack/internal/handlers"
	"tesBack/internal/metrics"
	"tesBack/internal/notify"
	"tesBack/internal/services"
	"tesBack/internal/storage"
	"tesBack/utils"
)

type application struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	tokens  *utils.Manager
	hub     *notify.Hub

	services *services.Services

	authHandler         *handlers.AuthHandler
	adminHandler        *handlers.AdminHandler
	agentHandler        *handlers.AgentHandler
	customerHandler     *handlers.CustomerHandler
	notificationHandler *handlers.NotificationHandler
	uploadHandler       *handlers.UploadHandler
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "redis":
		r := cfg.Storage.Redis
		return storage.NewRedisStore(ctx, storage.RedisOptions{Addr: r.Addr, Password: r.Password, DB: r.DB, Prefix: r.Prefix})
	case "mysql":
		return storage.OpenSQLStore(ctx, storage.DriverMySQL, cfg.Storage.Database.URL, cfg.Storage.Database.Table)
	case "postgres":
		return storage.OpenSQLStore(ctx, storage.DriverPostgres, cfg.Storage.Database.URL, cfg.Storage.Database.Table)
	case "memory":
		return storage.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", storage.ErrUnknownBackend, cfg.Storage.Backend)
}

func initializeApp(ctx context.Context, cfg config.Config, store storage.Store, zl *zap.Logger) (*application, error) {
	sugar := zl.Sugar()

	tokens, err := utils.NewManager(cfg.Auth.JWTSigningKey, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	m := metrics.New(serviceName, nil)

	hub := notify.NewHub(sugar)
	pushers := notify.Fanout{hub}
	if cfg.FCM.CredentialsFile != "" {
		fcm, err := notify.NewFCMPusher(ctx, cfg.FCM.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("init fcm: %w", err)
		}
		pushers = append(pushers, fcm)
	} else {
		sugar.Warnf("FCM credentials not configured, push notifications disabled")
	}

	svc := services.New(services.Deps{
		Store:      store,
		Tokens:     tokens,
		Pusher:     pushers,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     sugar,
		Metrics:    m,
	})

	uploads := &handlers.UploadHandler{}
	if cfg.S3.Bucket != "" {
		uploader, err := utils.NewImageUploader(utils.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 uploader: %w", err)
		}
		uploads.Uploader = uploader
	}

	return &application{
		logger:   zl,
		metrics:  m,
		tokens:   tokens,
		hub:      hub,
		services: svc,

		authHandler:         &handlers.AuthHandler{Service: svc.Auth},
		adminHandler:        &handlers.AdminHandler{Service: svc.Admin},
		agentHandler:        &handlers.AgentHandler{Service: svc.Agent},
		customerHandler:     &handlers.CustomerHandler{Service: svc.Customer},
		notificationHandler: &handlers.NotificationHandler{Service: svc.Notifications, Hub: hub},
		uploadHandler:       uploads,
	}, nil
}
