package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"classdesk/internal/prefs"
	"classdesk/internal/ui/theme"
)

var themeShowJSON bool

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeSetCmd)

	themeShowCmd.Flags().BoolVar(&themeShowJSON, "json", false, "output JSON")
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect and select color themes",
	Long: `Inspect and select color themes.

User themes are read from *.toml and *.json files in the theme directory
(theme.dir in the config file, default ~/.classdesk/themes).`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		saved := savedTheme(commandContext(cmd), env.Prefs)
		sources := make(map[theme.Name]string, len(env.Themes))
		for _, ut := range env.Themes {
			sources[ut.Name] = ut.Path
		}

		rows := make([][]string, 0)
		for _, name := range env.Registry.Names() {
			source, ok := sources[name]
			if !ok {
				source = "built-in"
			}
			active := ""
			if name == saved {
				active = "*"
			}
			rows = append(rows, []string{active, string(name), source})
		}
		return writeTable(cmd.OutOrStdout(), []string{"", "NAME", "SOURCE"}, rows)
	},
}

var themeShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the resolved colors of a theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		name := theme.Name(strings.ToLower(strings.TrimSpace(args[0])))
		mapping, ok := env.Registry.Resolve(name)
		if !ok {
			return fmt.Errorf("unknown theme %q", name)
		}
		if themeShowJSON {
			return writeJSON(cmd.OutOrStdout(), mapping)
		}

		rows := make([][]string, 0, len(mapping))
		for _, k := range mapping.SortedKeys() {
			slot, _ := theme.SlotFor(k)
			rows = append(rows, []string{string(k), slot, mapping[k]})
		}
		return writeTable(cmd.OutOrStdout(), []string{"KEY", "SLOT", "VALUE"}, rows)
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Select the theme used on next start",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		name := theme.Name(strings.ToLower(strings.TrimSpace(args[0])))

		// No clock runs here; Settle drives the commit and the write.
		logger := env.Logger.Component("theme")
		applier := theme.NewApplier(env.Registry, theme.NewSurface(),
			theme.WithScheduler(theme.NewManualScheduler()),
			theme.WithPreferences(env.Prefs),
			theme.WithLogger(logger),
		)
		themes := theme.NewManager(env.Registry, applier, env.Prefs, logger)
		if !themes.SetTheme(name) {
			return fmt.Errorf("unknown theme %q", name)
		}
		applier.Settle()

		if saved := savedTheme(commandContext(cmd), env.Prefs); saved != name {
			return fmt.Errorf("save theme %q: preference store kept %q", name, saved)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", name)
		return nil
	},
}

func savedTheme(ctx context.Context, store prefs.Store) theme.Name {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	v, ok, err := store.Get(ctx, prefs.KeySelectedTheme)
	if err != nil || !ok || v == "" {
		return theme.NameDefault
	}
	return theme.Name(v)
}
