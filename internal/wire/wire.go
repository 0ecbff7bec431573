// Package wire provides dependency injection for the skilltrack application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	cliadapter "github.com/example/skilltrack/internal/adapters/cli"
	"github.com/example/skilltrack/internal/adapters/filesystem"
	"github.com/example/skilltrack/internal/adapters/memory"
	"github.com/example/skilltrack/internal/adapters/redis"
	"github.com/example/skilltrack/internal/adapters/sqlite"
	"github.com/example/skilltrack/internal/app"
	"github.com/example/skilltrack/internal/config"
	"github.com/example/skilltrack/internal/db"
	"github.com/example/skilltrack/internal/logger"
	"github.com/example/skilltrack/internal/ports/primary"
	"github.com/example/skilltrack/internal/ports/secondary"
)

// Settings carries command-line overrides applied on top of the loaded config.
type Settings struct {
	ConfigPath string
	Backend    string
	Verbose    bool
}

var (
	settings Settings

	cfg     *config.Config
	cfgErr  error
	cfgOnce sync.Once

	log          *logger.Logger
	skillService primary.SkillService
	closers      []func() error
	initErr      error
	once         sync.Once
)

// Configure records overrides. It must be called before any service accessor.
func Configure(s Settings) {
	settings = s
}

// Config returns the effective configuration. It does not open the store.
func Config() (*config.Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, cfgErr
}

// SkillService returns the singleton SkillService instance.
func SkillService() (primary.SkillService, error) {
	once.Do(initServices)
	return skillService, initErr
}

// SkillAdapter returns a new SkillAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func SkillAdapter() (*cliadapter.SkillAdapter, error) {
	return SkillAdapterWithOutput(os.Stdout)
}

// SkillAdapterWithOutput returns a new SkillAdapter writing to the given output.
func SkillAdapterWithOutput(out io.Writer) (*cliadapter.SkillAdapter, error) {
	svc, err := SkillService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewSkillAdapter(svc, out), nil
}

// Shutdown flushes the logger and releases store connections.
func Shutdown() {
	for i := len(closers) - 1; i >= 0; i-- {
		_ = closers[i]()
	}
	closers = nil
	if log != nil {
		log.Sync()
	}
}

// loadConfig reads the config file and applies flag overrides before
// validating. This is called once via sync.Once.
func loadConfig() {
	loaded, err := config.LoadConfig(settings.ConfigPath)
	if err != nil {
		cfgErr = err
		return
	}
	if settings.Backend != "" {
		loaded.Backend = settings.Backend
	}
	if settings.Verbose {
		loaded.Log.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		cfgErr = err
		return
	}
	cfg = loaded
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg, err := Config()
	if err != nil {
		initErr = err
		return
	}

	log, err = logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		initErr = fmt.Errorf("failed to initialize logger: %w", err)
		return
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		initErr = err
		return
	}

	svc := app.NewSkillService(store, log, app.SkillServiceOptions{
		MilestoneLimit: cfg.MilestoneLimit,
		StrictProgress: cfg.StrictProgress,
		SeedOnFirstRun: cfg.SeedOnFirstRun,
	})
	if err := svc.Bootstrap(ctx); err != nil {
		initErr = err
		return
	}
	skillService = svc

	log.Debug("services initialized", "backend", cfg.Backend)
}

// openStore builds the secondary adapter selected by cfg.Backend.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (secondary.SkillStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.Open(cfg.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		closers = append(closers, database.Close)
		return sqlite.NewSkillStore(database, cfg.StorageKey, log), nil
	case config.BackendFile:
		return filesystem.NewSkillStore(cfg.DataDir, cfg.StorageKey, log)
	case config.BackendRedis:
		store, err := redis.Dial(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.StorageKey,
		}, log)
		if err != nil {
			return nil, err
		}
		closers = append(closers, store.Close)
		return store, nil
	case config.BackendMemory:
		return memory.NewSkillStore(cfg.StorageKey), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
