// Package app handles application lifecycle and dependency wiring.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/anim"
	"classdesk/internal/api"
	"classdesk/internal/config"
	"classdesk/internal/log"
	"classdesk/internal/notify"
	"classdesk/internal/prefs"
	"classdesk/internal/ui"
	"classdesk/internal/ui/theme"
)

// Config holds command line settings. Everything else comes from the config file.
type Config struct {
	ConfigPath  string // Config file; empty means ~/.classdesk/config.yaml
	APIBase     string // --api override, saved for next time
	Theme       string // Theme override: "auto" or a theme name
	Debug       bool
	NoAltScreen bool // Disable alternate screen for easier copy/paste
	NoPersist   bool // Keep preferences in memory only
}

// logRingSize is the number of lines the logs panel can show.
const logRingSize = 500

// Env is the wired set of dependencies shared by the TUI and the subcommands.
type Env struct {
	Config   *config.Config
	Logger   *log.Logger
	Ring     *log.Ring
	Prefs    prefs.Store
	Client   *api.Client
	Registry *theme.Registry
	Themes   []theme.UserTheme

	closers []io.Closer
}

// Setup loads configuration and opens the logger, preference store, theme
// registry and API client.
func Setup(ctx context.Context, cfg Config) (*Env, error) {
	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadFrom(config.New(), path)
	if err != nil {
		return nil, err
	}

	env := &Env{Config: fileCfg, Ring: log.NewRing(logRingSize)}

	// Every package logs through the default logger's root
	env.Logger = log.Default()
	outputs := log.Tee{env.Ring}
	if cfg.Debug || fileCfg.Log.File != "" {
		logPath := fileCfg.Log.File
		if logPath == "" {
			logPath = filepath.Join(config.Dir(), "classdesk.log")
		}
		out, err := log.OpenFile(logPath)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		outputs = append(outputs, out)
		env.closers = append(env.closers, out)
	}
	env.Logger.SetOutput(outputs)
	level := log.ParseLevel(fileCfg.Log.Level)
	if cfg.Debug {
		level = log.LevelDebug
	}
	env.Logger.SetLevel(level)

	env.Prefs = openPrefs(ctx, cfg, fileCfg, env.Logger)
	env.closers = append(env.closers, env.Prefs)

	env.Registry = theme.NewRegistry()
	env.Themes, err = theme.LoadDir(env.Registry, fileCfg.Theme.Dir)
	if err != nil {
		env.Logger.Warn("themes: %v", err)
	}
	for _, ut := range env.Themes {
		env.Logger.Debug("themes: registered %q from %s", ut.Name, ut.Path)
	}

	base := api.ResolveBaseURL(ctx, cfg.APIBase, fileCfg.API.BaseURL, env.Prefs)
	env.Client = api.New(base,
		api.WithTimeout(fileCfg.API.Timeout),
		api.WithUserAgent("classdesk/"+Version),
		api.WithLogger(env.Logger.Component("api")),
	)
	env.Logger.Info("using API %s", env.Client.BaseURL())

	return env, nil
}

// openPrefs opens the configured store. A store that fails to open is logged
// and replaced by an in-memory one so the UI still starts.
func openPrefs(ctx context.Context, cfg Config, fileCfg *config.Config, logger *log.Logger) prefs.Store {
	if cfg.NoPersist {
		return prefs.NewMemory()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := prefs.Open(ctx, prefs.Options{
		Backend:   fileCfg.Prefs.Backend,
		Path:      fileCfg.Prefs.Path,
		Table:     fileCfg.Prefs.DynamoDBTable,
		Profile:   fileCfg.Prefs.AWSProfile,
		Region:    fileCfg.Prefs.AWSRegion,
		Namespace: fileCfg.Prefs.Namespace,
	})
	if err != nil {
		logger.Warn("prefs: %v; preferences will not be saved", err)
		return prefs.NewMemory()
	}
	return store
}

// Close releases the preference store and log file.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Run starts the application with the given configuration.
func Run(cfg Config) error {
	ctx := context.Background()
	env, err := Setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	sched := theme.TimerScheduler{}
	surface := theme.NewSurface()
	restoreDarkMode(ctx, env.Prefs, surface, env.Logger)

	applier := theme.NewApplier(env.Registry, surface,
		theme.WithScheduler(sched),
		theme.WithDelay(env.Config.Theme.ApplyDelay),
		theme.WithPreferences(env.Prefs),
		theme.WithLogger(env.Logger.Component("theme")),
	)
	themes := theme.NewManager(env.Registry, applier, env.Prefs, env.Logger.Component("theme"))
	if name, ok := theme.FromFlag(cfg.Theme); ok {
		if !themes.SetTheme(name) {
			env.Logger.Warn("theme: unknown theme %q", name)
			themes.LoadSaved()
		}
	} else {
		themes.LoadSaved()
	}
	// The first frame should already carry the theme
	applier.Settle()

	board := notify.NewBoard()
	model := ui.New(ui.Options{
		Service:         env.Client,
		Themes:          themes,
		Surface:         surface,
		Notifier:        notify.NewManager(board, sched, env.Logger.Component("notify")),
		Toasts:          board,
		Animator:        anim.NewManager(sched),
		Prefs:           env.Prefs,
		Logger:          env.Logger,
		LogSource:       env.Ring,
		RefreshInterval: env.Config.Refresh.Interval,
		RequestTimeout:  env.Config.API.Timeout,
	})

	// Create and run the program
	opts := []tea.ProgramOption{
		tea.WithMouseCellMotion(),
	}
	if !cfg.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, opts...)
	model.Attach(func(msg tea.Msg) { go p.Send(msg) })

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	// Let a pending theme commit reach the preference store
	applier.Settle()
	return nil
}

func restoreDarkMode(ctx context.Context, store prefs.Store, surface *theme.Surface, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	v, ok, err := store.Get(ctx, prefs.KeyDarkMode)
	if err != nil {
		logger.Warn("prefs: failed to read dark mode: %v", err)
		return
	}
	if ok && strings.EqualFold(v, "true") {
		surface.AddClass(theme.DarkModeClass)
		surface.Flush()
	}
}

// Version information (set by build flags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "classdesk %s\n", Version)
	fmt.Fprintf(w, "  Commit:     %s\n", Commit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// MustRun runs the application and exits on error.
func MustRun(cfg Config) {
	if err := Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// TestConnection checks that the student API answers by listing students.
func TestConnection(ctx context.Context, w io.Writer, client *api.Client) error {
	fmt.Fprintf(w, "Testing API connection...\n")
	fmt.Fprintf(w, "  Base URL: %s\n", client.BaseURL())

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	students, err := client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}

	fmt.Fprintf(w, "Success! Found %d students.\n", len(students))
	if len(students) > 0 {
		fmt.Fprintf(w, "\nFirst 5 students:\n")
		for i, s := range students {
			if i >= 5 {
				break
			}
			fmt.Fprintf(w, "  - %s (%s)\n", s.Name, s.ClassName)
		}
	}
	return nil
}
