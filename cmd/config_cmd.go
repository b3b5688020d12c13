package cmd

import (
	"fmt"

	"pantry/internal/config"
	"pantry/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Base URL: %s\n", cfg.Server.BaseURL)
	fmt.Println()

	fmt.Println("  [Session]")
	if cfg.Session.Token != "" {
		fmt.Printf("    Token: %s\n", maskToken(cfg.Session.Token))
	} else {
		fmt.Println("    Token: not signed in")
	}
	fmt.Println()

	fmt.Println("  [Locale]")
	fmt.Printf("    Language: %s\n", cfg.Locale.Language)
	fmt.Printf("    Currency: %s\n", cfg.Locale.Currency)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Mode: %s\n", cfg.Appearance.Mode)
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default days: %d\n", cfg.General.DefaultDays)
	if cfg.General.NoCache {
		fmt.Println("    Cache:        disabled")
	} else {
		fmt.Printf("    Cache:        %s\n", store.CachePath())
	}
	fmt.Println()

	fmt.Println("  Run `pantry login` to sign in, `pantry tui` for the dashboard.")
	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
