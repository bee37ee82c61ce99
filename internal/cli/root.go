// Package cli implements the classdesk command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classdesk/internal/app"
)

var (
	flagConfig    string
	flagAPI       string
	flagDebug     bool
	flagNoPersist bool

	flagTheme       string
	flagNoAltScreen bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.classdesk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "student API base URL (saved for next time)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging to ~/.classdesk/classdesk.log")
	rootCmd.PersistentFlags().BoolVar(&flagNoPersist, "no-persist", false, "keep preferences in memory only")

	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "theme to start with: auto or a theme name (default: last used)")
	rootCmd.Flags().BoolVar(&flagNoAltScreen, "no-alt-screen", false, "disable alternate screen (allows text selection/copy)")
}

var rootCmd = &cobra.Command{
	Use:   "classdesk",
	Short: "Terminal client for a student records API",
	Long: `classdesk browses and edits student records served by a REST API.

Run without a subcommand to start the interactive UI.

Navigation:
  ↑/k, ↓/j    Move selection
  a           Add student
  e/Enter     Edit selected
  d           Delete selected
  /           Filter
  t           Pick theme
  :           Command palette
  q           Quit`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig()
		cfg.Theme = flagTheme
		cfg.NoAltScreen = flagNoAltScreen
		return app.Run(cfg)
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func appConfig() app.Config {
	return app.Config{
		ConfigPath: flagConfig,
		APIBase:    flagAPI,
		Debug:      flagDebug,
		NoPersist:  flagNoPersist,
	}
}

// setupEnv wires the shared dependencies for a subcommand.
func setupEnv(cmd *cobra.Command) (*app.Env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.Setup(ctx, appConfig())
}
