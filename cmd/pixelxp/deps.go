package main

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/pixel-xp/internal/clients/rivalclient"
	"github.com/KirkDiggler/pixel-xp/internal/config"
	"github.com/KirkDiggler/pixel-xp/internal/notify"
	"github.com/KirkDiggler/pixel-xp/internal/orchestrators/battle"
	"github.com/KirkDiggler/pixel-xp/internal/pkg/clock"
	"github.com/KirkDiggler/pixel-xp/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/pixel-xp/internal/redis"
	battlerepo "github.com/KirkDiggler/pixel-xp/internal/repositories/battle"
	"github.com/KirkDiggler/pixel-xp/internal/repositories/kvstore"
	"github.com/KirkDiggler/pixel-xp/internal/rival"
)

// cleanups runs deferred closers in reverse order
type cleanups []func()

func (c *cleanups) add(fn func()) {
	*c = append(*c, fn)
}

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func newRedisClient(cfg *config.Config) (redisclient.Client, error) {
	return redisclient.NewClient(&redisclient.Config{
		Addr: cfg.Store.RedisAddr,
		URL:  cfg.Store.RedisURL,
	})
}

// openStore opens the configured key-value backend
func openStore(ctx context.Context, cfg *config.Config, closers *cleanups) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return kvstore.NewInMemory(), nil

	case config.BackendRedis:
		client, err := newRedisClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		closers.add(func() {
			if err := client.Close(); err != nil {
				log.Printf("Failed to close redis client: %v", err)
			}
		})
		if err := redisclient.Ping(ctx, client); err != nil {
			return nil, err
		}
		return kvstore.NewRedis(&kvstore.RedisConfig{
			Client: client,
			Prefix: cfg.Store.RedisPrefix,
		})

	default:
		db, err := kvstore.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		closers.add(func() {
			if err := db.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		})
		return kvstore.NewSQLite(&kvstore.SQLiteConfig{DB: db})
	}
}

// newCalculator returns the in-process calculator or a client for a rival server
func newCalculator(cfg *config.Config, closers *cleanups) (rival.Calculator, error) {
	if cfg.Rival.Mode != config.RivalModeRemote {
		return rival.NewLocalCalculator(), nil
	}

	conn, err := rivalclient.Dial(cfg.Rival.Address)
	if err != nil {
		return nil, err
	}
	closers.add(func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	})

	return rivalclient.New(&rivalclient.Config{
		Conn:    conn,
		Timeout: cfg.Rival.Timeout,
	})
}

// newNotifier logs notices and, when a channel is configured, publishes them
func newNotifier(cfg *config.Config, closers *cleanups) (notify.Sink, error) {
	sinks := notify.Multi{notify.NewLogSink(nil)}
	if cfg.Notify.RedisChannel == "" {
		return sinks, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client for notices: %w", err)
	}
	closers.add(func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	})

	redisSink, err := notify.NewRedisSink(&notify.RedisConfig{
		Client:  client,
		Channel: cfg.Notify.RedisChannel,
	})
	if err != nil {
		return nil, err
	}
	return append(sinks, redisSink), nil
}

// engine bundles a loaded battle service with its resources
type engine struct {
	service battle.Service
	store   kvstore.Store
	notices *notify.Recorder
	closers cleanups
}

func (e *engine) Close() {
	e.service.Stop()
	e.closers.run()
}

// newEngine wires and loads the battle engine from configuration
func newEngine(ctx context.Context, cfg *config.Config) (*engine, error) {
	e := &engine{}

	store, err := openStore(ctx, cfg, &e.closers)
	if err != nil {
		e.closers.run()
		return nil, err
	}
	e.store = store

	repo, err := battlerepo.NewKVRepository(&battlerepo.Config{Store: store})
	if err != nil {
		e.closers.run()
		return nil, err
	}

	calculator, err := newCalculator(cfg, &e.closers)
	if err != nil {
		e.closers.run()
		return nil, err
	}

	notifier, err := newNotifier(cfg, &e.closers)
	if err != nil {
		e.closers.run()
		return nil, err
	}
	e.notices = notify.NewRecorder()

	clk := clock.New()
	var ids idgen.Generator = idgen.NewMillis(clk)
	if cfg.QuestIDs == config.QuestIDsUUID {
		ids = idgen.NewUUID("quest")
	}

	service, err := battle.NewOrchestrator(&battle.Config{
		Repository:    repo,
		Calculator:    calculator,
		Notifier:      notify.Multi{notifier, e.notices},
		Clock:         clk,
		IDGenerator:   ids,
		MaxXP:         cfg.MaxXP,
		RivalInterval: cfg.Rival.Interval,
	})
	if err != nil {
		e.closers.run()
		return nil, fmt.Errorf("failed to create battle engine: %w", err)
	}
	e.service = service

	if _, err := service.Load(ctx); err != nil {
		e.closers.run()
		return nil, err
	}

	return e, nil
}
