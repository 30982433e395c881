// Package app wires the progression engine together: configuration, logging,
// local storage, the remote client, and the progression store. Everything is
// constructed and owned here; there is no package-level mutable state.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/klareapp/progression/internal/config"
	"github.com/klareapp/progression/internal/localstore"
	"github.com/klareapp/progression/internal/progression"
	"github.com/klareapp/progression/internal/remote"
)

// keyUserID stores the generated anonymous user ID.
const keyUserID = "account/user_id"

// App holds the fully wired application.
type App struct {
	Config      config.Config
	Log         *zap.Logger
	Local       *localstore.Store
	Remote      remote.Client // nil in offline mode
	Progression *progression.Store
}

// New builds the application from configuration and rehydrates the
// progression store. dbPath overrides the configured database location
// when non-empty (CLI flag).
func New(ctx context.Context, dbPath string) (*App, error) {
	cfg := config.Load()

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		path, err = localstore.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	} else if err := localstore.EnsureDir(path); err != nil {
		return nil, err
	}

	local, err := localstore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	userID, err := resolveUserID(ctx, cfg, local)
	if err != nil {
		local.Close()
		return nil, err
	}

	var remoteClient remote.Client
	if cfg.RemoteURL != "" {
		remoteClient = remote.NewHTTPClient(cfg.RemoteURL, cfg.RemoteAnonKey)
	}

	store := progression.New(userID, local, remoteClient, logger)
	if cfg.RemoteTimeoutSecs > 0 {
		store.SetRemoteTimeout(time.Duration(cfg.RemoteTimeoutSecs) * time.Second)
	}
	store.Load(ctx)

	return &App{
		Config:      cfg,
		Log:         logger,
		Local:       local,
		Remote:      remoteClient,
		Progression: store,
	}, nil
}

// Close flushes pending remote writes and releases resources.
func (a *App) Close() error {
	a.Progression.WaitForSync()
	_ = a.Log.Sync()
	return a.Local.Close()
}

// resolveUserID returns the configured user ID, or the persisted anonymous
// ID, generating and storing one on first run.
func resolveUserID(ctx context.Context, cfg config.Config, local *localstore.Store) (string, error) {
	if cfg.UserID != "" {
		return cfg.UserID, nil
	}

	id, ok, err := local.GetItem(ctx, keyUserID)
	if err != nil {
		return "", fmt.Errorf("read user id: %w", err)
	}
	if ok {
		return id, nil
	}

	id = uuid.NewString()
	if err := local.SetItem(ctx, keyUserID, id); err != nil {
		return "", fmt.Errorf("persist user id: %w", err)
	}
	return id, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
