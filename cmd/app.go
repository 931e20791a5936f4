package main

import (
	"database/sql"
	"fmt"

	"innovation_showcase/internal/cache"
	"innovation_showcase/internal/config"
	"innovation_showcase/internal/logger"
	"innovation_showcase/internal/repository"
	"innovation_showcase/internal/repository/db"
	"innovation_showcase/internal/repository/filestore"
	"innovation_showcase/internal/service"

	"github.com/redis/go-redis/v9"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	services *service.Service

	sqlDB *sql.DB
	redis *redis.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load(configDir, ".")
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: logger.GetWithFormat(cfg.Log.Level, cfg.Log.Format)}

	repos, err := a.openRepositories()
	if err != nil {
		return nil, err
	}

	a.services = service.NewService(repos, service.Deps{
		Auth: service.AuthOptions{
			Secret:            cfg.Auth.JWTSecret,
			TokenTTL:          cfg.Auth.TokenTTL,
			MinPasswordLength: cfg.Auth.MinPasswordLength,
			BcryptCost:        cfg.Auth.BcryptCost,
			AllowAdminSignup:  cfg.Auth.AllowAdminSignup,
		},
		Cache: a.openCache(),
		Log:   a.log,
	})
	return a, nil
}

func (a *app) openRepositories() (*repository.Repository, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverFile:
		a.log.Infow("using file storage", "dir", a.cfg.Storage.DataDir)
		return filestore.New(a.cfg.Storage.DataDir)
	default:
		a.log.Infow("using sqlite storage", "path", a.cfg.Storage.SQLitePath)
		conn, err := db.InitDB(a.cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		a.sqlDB = conn
		return repository.NewRepository(conn), nil
	}
}

// openCache falls back to no caching when Redis is not configured or unreachable.
func (a *app) openCache() cache.Projects {
	if a.cfg.Redis.Addr == "" {
		return cache.Nop{}
	}
	client, err := cache.NewClient(a.cfg.Redis.Addr)
	if err != nil {
		a.log.Warnw("redis unavailable, approved listing will not be cached", "err", err)
		return cache.Nop{}
	}
	a.redis = client
	a.log.Infow("approved listing cached in redis", "addr", a.cfg.Redis.Addr, "ttl", a.cfg.Redis.CacheTTL)
	return cache.NewRedis(client, a.cfg.Redis.CacheTTL)
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Errorw("failed to close redis", "err", err)
		}
	}
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			a.log.Errorw("failed to close sqlite", "err", err)
		}
	}
	_ = a.log.Sync()
}
