// Package cmd wires the libadmin command line: one cobra subcommand per
// backend surface, plus an interactive admin shell when run without a
// subcommand. Configuration comes from .libadmin.yml, LIBADMIN_ environment
// variables and flags, in that order of priority.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"library-admin/api"
	"library-admin/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "libadmin",
	Short: "Terminal admin client for the library management backend",
	Long: `libadmin manages a small library system through its REST backend:
books, readers, lendings and staff accounts, plus overdue-notification
emails with CSV/PDF exports.

Run without a subcommand to start the interactive admin shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .libadmin.yml in . or $HOME)")
	rootCmd.PersistentFlags().String("base-url", "", "backend API base URL")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// .env first so LIBADMIN_ vars set there are visible to viper.
	_ = godotenv.Load()
	config.Init(cfgFile)
	setupLogging()
}

func setupLogging() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// newApp builds the shared command context: resolved config and an API
// client whose session cookie lives for the process.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client, err := api.New(cfg.API.BaseURL, cfg.API.RequestTimeout(), slog.Default())
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return &app{client: client, cfg: cfg, out: os.Stdout}, nil
}
