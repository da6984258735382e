package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	appclient "github.com/pangbo13/SJTU-Canvas-Helper/internal/client"
	"github.com/pangbo13/SJTU-Canvas-Helper/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagVerbose    bool
	flagQuiet      bool
)

// cfg holds the configuration loaded by PersistentPreRunE, available to all
// subcommands.
var cfg *config.Config

// newRootCmd builds the fully-assembled root command. Called once from
// main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "canvas-helper",
		Short:   "SJTU Canvas helper",
		Long:    "Move files between SJTU Canvas, the course video platform, and JBox.",
		Version: version,
		// Errors are printed once by main, not by cobra.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			setupLogging()

			loaded, err := config.LoadOrDefault(configPath())
			if err != nil {
				return err
			}

			cfg = loaded

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newCoursesCmd())
	cmd.AddCommand(newFilesCmd())
	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newAssignmentsCmd())
	cmd.AddCommand(newCalendarCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newVideoCmd())
	cmd.AddCommand(newJBoxCmd())

	return cmd
}

func configPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}

	return config.DefaultPath()
}

// setupLogging installs a text slog handler at the level the verbosity
// flags ask for.
func setupLogging() {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// newClient constructs the composed service client all commands share.
func newClient() (*appclient.Client, error) {
	return appclient.New(slog.Default())
}
