// Package companion parses companion command flags and launches the
// companion runtime.
package companion

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/satchel/internal/appstate"
	"github.com/louisbranch/satchel/internal/gateway/rest"
	"github.com/louisbranch/satchel/internal/localstore"
	"github.com/louisbranch/satchel/internal/localstore/sqlite"
	"github.com/louisbranch/satchel/internal/notify"
	entrypoint "github.com/louisbranch/satchel/internal/platform/cmd"
	"github.com/louisbranch/satchel/internal/session"
	"github.com/louisbranch/satchel/internal/sync"
)

// Config holds companion command configuration.
type Config struct {
	DBPath          string        `env:"SATCHEL_DB_PATH" envDefault:"data/satchel.db"`
	APIURL          string        `env:"SATCHEL_API_URL"`
	APIKey          string        `env:"SATCHEL_API_KEY"`
	AccessToken     string        `env:"SATCHEL_ACCESS_TOKEN"`
	Offline         bool          `env:"SATCHEL_OFFLINE" envDefault:"false"`
	Locale          string        `env:"SATCHEL_LOCALE" envDefault:"en-US"`
	RefreshInterval time.Duration `env:"SATCHEL_REFRESH_INTERVAL" envDefault:"5m"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The local cache SQLite database path")
	fs.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "The backend REST base URL")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "The backend project API key")
	fs.BoolVar(&cfg.Offline, "offline", cfg.Offline, "Start in offline mode (reads serve from the local cache, writes are disabled)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Notification locale")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", cfg.RefreshInterval, "Background refresh interval while online")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the companion runtime.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCompanion, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close local store: %v", err)
		}
	}()

	sess := session.New()
	if cfg.AccessToken != "" {
		if err := sess.SetAccessToken(cfg.AccessToken); err != nil {
			return fmt.Errorf("set access token: %w", err)
		}
	}
	sess.SetOffline(cfg.Offline)

	gw, err := rest.New(cfg.APIURL, cfg.APIKey, rest.WithTokenProvider(sess.AccessToken))
	if err != nil {
		return fmt.Errorf("configure gateway: %w", err)
	}

	state := appstate.New(localstore.Prefs{Store: store})
	toaster := notify.NewToaster(notify.CatalogFor(cfg.Locale), nil)
	core := sync.New(state, store, gw, sess, toaster)

	if !sess.SignedIn() {
		return fmt.Errorf("no access token configured")
	}

	// Cold start: cached data first so the UI renders immediately, then a
	// full refresh when the backend is reachable.
	if err := core.LoadCachedData(ctx); err != nil {
		return fmt.Errorf("load cached data: %w", err)
	}
	if !sess.Offline() {
		if err := core.RefreshAll(ctx); err != nil {
			log.Printf("initial refresh: %v", err)
		}
	}

	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if sess.Offline() {
				continue
			}
			if err := core.RefreshAll(ctx); err != nil {
				log.Printf("background refresh: %v", err)
			}
		}
	}
}
