// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lirios/ostree-sync/internal/catalog"
	"github.com/lirios/ostree-sync/internal/config"
	"github.com/lirios/ostree-sync/internal/daemon"
	"github.com/lirios/ostree-sync/internal/logger"
	"github.com/lirios/ostree-sync/internal/sync"
)

func storageRoot(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.Storage != "" {
		return cfg.Storage
	}
	return "storage"
}

// Generate token command
func genTokenCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	var cmd = &cobra.Command{
		Use:   "gentoken",
		Short: "Creates a new API token",
		Long:  "Generates a token that gives access to the API.",
		Run: func(cmd *cobra.Command, args []string) {
			// Toggle debug output
			logger.SetVerbose(verbose)

			// Open configuration file
			cfg, err := config.CreateConfig(configPath)
			if err != nil {
				logger.Fatalf("Cannot open configuration file: %v", err)
				return
			}

			// Generate token
			token, err := config.GenerateToken()
			if err != nil {
				logger.Fatalf("Failed to generate token: %v", err)
				return
			}

			// Save token to the configuration
			cfg.Tokens = append(cfg.Tokens, token)
			if err := cfg.Save(); err != nil {
				logger.Fatalf("Cannot save configuration file: %v", err)
				return
			}

			// Print token
			logger.Infof("Token: %s", token.Token)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ostree-sync.yaml", "path to configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "more messages")

	return cmd
}

// Sync command
func syncCmd() *cobra.Command {
	var (
		configPath string
		storage    string
		feedURL    string
		verbose    bool
	)

	var cmd = &cobra.Command{
		Use:   "sync",
		Short: "Mirror the configured feeds",
		Long:  "Pulls the configured branches of each feed into a local mirror and catalogs the branch heads.",
		Run: func(cmd *cobra.Command, args []string) {
			// Toggle debug output
			logger.SetVerbose(verbose)

			// Open configuration file
			cfg, err := config.OpenConfig(configPath)
			if err != nil {
				logger.Fatalf("Cannot open configuration file: %v", err)
				return
			}

			// Select the feeds to sync
			feeds := cfg.Feeds
			if feedURL != "" {
				feed := cfg.FindFeed(feedURL)
				if feed == nil {
					logger.Fatalf("Feed \"%s\" is not configured", feedURL)
					return
				}
				feeds = []*config.Feed{feed}
			}
			if len(feeds) == 0 {
				logger.Fatal("No feeds configured")
				return
			}

			// Catalog
			cat, err := catalog.New()
			if err != nil {
				logger.Fatalf("Failed to create catalog: %v", err)
				return
			}

			runner := &sync.Runner{
				Engine:      sync.NewOSTreeEngine(),
				Catalog:     cat,
				StorageRoot: storageRoot(storage, cfg),
			}

			// Stop the in-flight pull on SIGINT/SIGTERM, cleanup still runs
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for _, feed := range feeds {
				logger.Actionf("Syncing %s", feed.URL)
				if err := runner.Sync(ctx, feed, nil); err != nil {
					logger.Fatalf("Sync of %s failed: %v", feed.URL, err)
					return
				}
			}

			// Show what ended up in the catalog
			cat.Walk(func(unit *catalog.Unit) error {
				logger.Infof("Cataloged branch \"%s\" at commit %s", unit.Key["branch"], unit.Metadata["commit"])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ostree-sync.yaml", "path to configuration file")
	cmd.Flags().StringVarP(&storage, "storage", "s", "", "path to the mirror storage root")
	cmd.Flags().StringVarP(&feedURL, "feed", "f", "", "sync only the feed with this URL")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "more messages during the sync")

	return cmd
}

// Serve command
func serveCmd() *cobra.Command {
	var (
		bindAddress string
		configPath  string
		storage     string
		verbose     bool
	)

	var cmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the sync daemon",
		Run: func(cmd *cobra.Command, args []string) {
			// Toggle debug output
			logger.SetVerbose(verbose)

			// Open configuration file
			cfg, err := config.OpenConfig(configPath)
			if err != nil {
				logger.Fatalf("Cannot open configuration file: %v", err)
				return
			}

			// Catalog
			cat, err := catalog.New()
			if err != nil {
				logger.Fatalf("Failed to create catalog: %v", err)
				return
			}

			runner := &daemon.Runner{
				Sync: &sync.Runner{
					Engine:      sync.NewOSTreeEngine(),
					Catalog:     cat,
					StorageRoot: storageRoot(storage, cfg),
				},
				Runs: daemon.NewRunStore(),
			}

			appState := &daemon.AppState{Config: cfg, Catalog: cat, Runner: runner}
			if err := daemon.StartServer(bindAddress, appState); err != nil {
				logger.Fatal(err)
				return
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ostree-sync.yaml", "path to configuration file")
	cmd.Flags().StringVarP(&bindAddress, "address", "a", ":8080", "host name and port to bind")
	cmd.Flags().StringVarP(&storage, "storage", "s", "", "path to the mirror storage root")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "more messages")

	return cmd
}

// Execute executes the root command.
func Execute() error {
	// Root command
	var rootCmd = &cobra.Command{
		Use:   "ostree-sync",
		Short: "Mirror remote OSTree repositories and catalog their branch heads",
	}

	rootCmd.AddCommand(
		genTokenCmd(),
		syncCmd(),
		serveCmd(),
	)

	return rootCmd.Execute()
}
