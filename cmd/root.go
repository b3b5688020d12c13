// Package cmd implements the pantry CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"pantry/internal/api"
	"pantry/internal/config"
	"pantry/internal/model"
	"pantry/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	flagServer  string
	flagDays    int
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Grocery receipt and budget tracker",
	Long:  "Track grocery receipts, budgets, and spending from your terminal.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the local SQLite cache")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if flagServer != "" {
		cfg.Server.BaseURL = flagServer
	}
	if flagDays > 0 {
		cfg.General.DefaultDays = flagDays
	}
	if flagNoCache {
		cfg.General.NoCache = true
	}
	return cfg
}

// requireSession returns a client carrying the stored session token.
func requireSession(cfg config.Config) (*api.Client, error) {
	if cfg.Session.Token == "" {
		return nil, fmt.Errorf("not signed in; run `pantry login` first")
	}
	return api.NewClient(cfg.Server.BaseURL, cfg.Session.Token), nil
}

// loadData fetches receipts and budgets in parallel, falling back to the
// local cache when the server is unreachable. The bool reports whether
// the data came from the cache.
func loadData(cfg config.Config) ([]model.Receipt, []model.Budget, bool, error) {
	client, err := requireSession(cfg)
	if err != nil {
		return nil, nil, false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		receipts []model.Receipt
		budgets  []model.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		receipts, err = client.ListReceipts(gctx, model.ReceiptFilters{})
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = client.ListBudgets(gctx)
		return err
	})

	if err := g.Wait(); err == nil {
		if !cfg.General.NoCache {
			if cache, cerr := store.Open(store.CachePath()); cerr == nil {
				_ = cache.SaveReceipts(receipts)
				_ = cache.SaveBudgets(budgets)
				_ = cache.Close()
			}
		}
		return receipts, budgets, false, nil
	} else if cfg.General.NoCache {
		return nil, nil, false, err
	} else {
		// Cached fallback
		cache, cerr := store.Open(store.CachePath())
		if cerr != nil {
			return nil, nil, false, err
		}
		defer cache.Close()

		cachedReceipts, _, rerr := cache.LoadReceipts()
		cachedBudgets, fetchedAt, berr := cache.LoadBudgets()
		if rerr != nil || berr != nil || (len(cachedReceipts) == 0 && len(cachedBudgets) == 0) {
			return nil, nil, false, err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Server unreachable, using cached data from %s\n",
				fetchedAt.Format("2006-01-02 15:04"))
		}
		return cachedReceipts, cachedBudgets, true, nil
	}
}
