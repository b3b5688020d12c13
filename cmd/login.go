package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pantry/internal/api"
	"pantry/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	var email, password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(cfg.Server.BaseURL, "")
	session, err := client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg.Session.Token = session.Token
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("  Signed in as %s (%s)\n", session.User.Name, session.User.Email)
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Session.Token == "" {
		fmt.Println("  Not signed in.")
		return nil
	}
	cfg.Session.Token = ""
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Println("  Signed out.")
	return nil
}
