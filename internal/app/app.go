package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"signdesk/internal/cache/redis"
	"signdesk/internal/config"
	"signdesk/internal/dbs/postgres"
	"signdesk/internal/email"
	"signdesk/internal/pdf"
	cachedocsrepo "signdesk/internal/repositories/cache/docs"
	cachesessionrepo "signdesk/internal/repositories/cache/session"
	clientrepo "signdesk/internal/repositories/db/client"
	documentrepo "signdesk/internal/repositories/db/document"
	eventrepo "signdesk/internal/repositories/db/event"
	userrepo "signdesk/internal/repositories/db/user"
	s3storage "signdesk/internal/repositories/storage/s3"
	authservice "signdesk/internal/services/auth"
	documentservice "signdesk/internal/services/document"
	userservice "signdesk/internal/services/user"
)

type App struct {
	AuthService     AuthService
	UserService     UserService
	DocumentService DocumentService
}

func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := postgres.New(ctx, postgres.Config{
		Addr:     cfg.DB.Addr,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DB:       cfg.DB.DB})
	if err != nil {
		log.Error("failed connect to db", "err", err)
		return nil, fmt.Errorf("failed connect to db: %w", err)
	}

	cache, err := redis.New(ctx, redis.Config{Addr: cfg.Cache.Addr, Password: cfg.Cache.Password, DB: cfg.Cache.DB})
	if err != nil {
		log.Error("failed connect to cache", "err", err)
		return nil, fmt.Errorf("failed connect to cache: %w", err)
	}

	storage, err := s3storage.New(ctx, s3storage.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Buckets:         []string{cfg.Storage.DocumentsBucket, cfg.Storage.SignedBucket},
	})
	if err != nil {
		log.Error("failed connect to object storage", "err", err)
		return nil, fmt.Errorf("failed connect to object storage: %w", err)
	}

	userRepo := userrepo.NewRepository(db)

	sessionCacheRepo := cachesessionrepo.New(cache, cfg.Cache.SessionTTL)

	documentCacheRepo := cachedocsrepo.New(cache, cfg.Cache.DocumentTTL)

	userService := userservice.New(log, userRepo, userRepo)

	adminEmails := strings.Split(cfg.AdminEmails, ",")

	authService := authservice.New(log, userService, userService, sessionCacheRepo, adminEmails)

	docRepo := documentrepo.NewRepository(db)

	eventRepo := eventrepo.NewRepository(db)

	clientRepo := clientrepo.NewRepository(db)

	engine := pdf.NewEngine(cfg.Signing.FontPath)

	sender := email.New(log, email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	documentService := documentservice.New(log, docRepo, eventRepo, clientRepo, storage, engine, sender, documentCacheRepo, documentservice.Config{
		DocumentsBucket: cfg.Storage.DocumentsBucket,
		SignedBucket:    cfg.Storage.SignedBucket,
		URLTTL:          cfg.Storage.URLTTL,
		AppURL:          cfg.Share.AppURL,
		TokenTTLDays:    cfg.Share.TokenTTLDays,
	})

	return &App{
		AuthService:     authService,
		UserService:     userService,
		DocumentService: documentService,
	}, nil
}
