package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/Dsnks-19/Task-management-system/auth"
	"github.com/Dsnks-19/Task-management-system/client"
	"github.com/Dsnks-19/Task-management-system/identity"
	"github.com/Dsnks-19/Task-management-system/session"
	"github.com/Dsnks-19/Task-management-system/storage"
)

// app holds the wired services the commands share.
type app struct {
	sessions *session.Manager
	auth     *auth.Controller
	api      *client.Client
}

func newApp(serverURL, identityConfigPath string) (*app, error) {
	if serverURL == "" {
		serverURL = os.Getenv("SERVER_URL")
	}
	if serverURL == "" {
		return nil, fmt.Errorf("missing server URL (flag --server or SERVER_URL)")
	}
	if identityConfigPath == "" {
		identityConfigPath = os.Getenv("IDENTITY_CONFIG")
	}
	if identityConfigPath == "" {
		return nil, fmt.Errorf("missing identity config (flag --identity-config or IDENTITY_CONFIG)")
	}
	configJSON, err := os.ReadFile(identityConfigPath)
	if err != nil {
		return nil, fmt.Errorf("read identity config: %w", err)
	}

	var store storage.KV = storage.NewMemory()
	if connStr := os.Getenv("REDIS_CONNECTION_STRING"); connStr != "" {
		opts, err := storage.ParseRedisOptions(connStr)
		if err != nil {
			return nil, fmt.Errorf("redis config: %w", err)
		}
		store = storage.NewRedis(redis.NewClient(opts))
	}
	sessions := session.NewManager(store)

	api := client.New(serverURL, client.WithSessionSource(func(ctx context.Context) (string, bool) {
		userID, ok, err := sessions.Current(ctx)
		if err != nil {
			log.WithField("error", err.Error()).Warn("read session")
			return "", false
		}
		return userID, ok
	}))

	provider := identity.NewProvider(configJSON)
	return &app{
		sessions: sessions,
		auth:     auth.New(provider, api, sessions),
		api:      api,
	}, nil
}

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
