package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cue-cli/internal/config"
	"cue-cli/internal/format"
	"cue-cli/internal/ipc"
	"cue-cli/internal/logx"
	"cue-cli/internal/store"
	"cue-cli/internal/timer"
	"cue-cli/internal/tui"
)

const logFileName = "cue.log"

type App struct {
	Dir        string
	ConfigPath string
	PrettyJSON bool
	Format     string
	Emit       string
	View       string

	cfg       config.Config
	log       zerolog.Logger
	logCloser io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "cue",
		Short:        "Plain-text schedule editor with a countdown timer",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  cue

  # Open the single-task form first
  cue --view task

  # Scriptable commands
  cue tasks --file day.txt
  cue start "Deep work" 25 | cue dispatch
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logCloser != nil {
			return app.logCloser.Close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CUE_DIR", ""), "Path to data dir (default ~/.cue)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("CUE_CONFIG", ""), "Path to config.yaml (default <dir>/config.yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CUE_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.Emit, "emit", "", "Also append every notification as a JSON line to this file")
	cmd.Flags().StringVar(&app.View, "view", "", "Initial view (schedule|task)")

	cmd.AddCommand(newNormalizeCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newNextCmd(app))
	cmd.AddCommand(newStartCmd(app))
	cmd.AddCommand(newDispatchCmd(app))
	cmd.AddCommand(newScheduleCmd(app))
	cmd.AddCommand(newHistoryCmd(app))

	return cmd
}

// setup resolves the data dir, loads .env and config, and builds the logger.
// Flags bound to env vars are re-read after .env so the file can supply them.
func (app *App) setup(cmd *cobra.Command) error {
	if err := config.LoadEnv(app.Dir); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	flags := cmd.Flags()
	if !flags.Changed("dir") {
		app.Dir = envOr("CUE_DIR", app.Dir)
	}
	if !flags.Changed("config") {
		app.ConfigPath = envOr("CUE_CONFIG", app.ConfigPath)
	}
	if !flags.Changed("format") {
		app.Format = envOr("CUE_FORMAT", app.Format)
	}

	if app.Dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return err
		}
		app.Dir = d
	}
	if app.ConfigPath == "" {
		app.ConfigPath = config.Path(app.Dir)
	}

	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	app.cfg = cfg

	logCfg := cfg.Log
	if cmd == cmd.Root() && logCfg.File == "" {
		// The TUI owns the terminal.
		logCfg.File = filepath.Join(app.Dir, logFileName)
		logCfg.Console = false
	}
	log, closer, err := logx.New(logCfg)
	if err != nil {
		return err
	}
	app.log = log
	app.logCloser = closer
	return nil
}

func (app *App) openStore() (store.Store, error) {
	s := store.Store{Dir: app.Dir}
	if err := s.Ensure(); err != nil {
		return s, err
	}
	return s, nil
}

func (app *App) timerOptions(cfg config.Config) timer.Options {
	return timer.Options{
		TickInterval: cfg.Timer.TickInterval(),
		Cooldown:     cfg.Timer.Cooldown(),
		AutoAdvance:  cfg.Timer.AutoAdvance,
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	startView := app.cfg.UI.StartView
	switch app.View {
	case "":
	case config.ViewSchedule, config.ViewTask:
		startView = app.View
	default:
		return errInvalidArg("view", app.View, "want schedule or task")
	}

	st, err := app.openStore()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	text, err := st.LoadSchedule(ctx)
	if err != nil {
		return err
	}
	staged, err := st.LoadActive(ctx)
	if err != nil {
		return err
	}

	log := app.log
	bus := ipc.NewBus(log)
	in := bus.Subscribe(256)

	runner := timer.New(st, app.timerOptions(app.cfg), log)
	runner.Restore(text, staged)
	snaps := runner.Subscribe()

	var sender ipc.Sender = bus
	if app.Emit != "" {
		f, err := openEmit(app.Emit)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		sender = ipc.Tee(bus, ipc.NewStreamSender(f, log))
	}

	cfgs := make(chan config.Config, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(gctx, in) })
	g.Go(func() error {
		err := config.Watch(gctx, app.ConfigPath, log, func(c config.Config) {
			runner.SetCooldown(c.Timer.Cooldown())
			// Keep only the latest config for the UI.
			select {
			case <-cfgs:
			default:
			}
			cfgs <- c
		})
		if err != nil {
			log.Warn().Err(err).Str("path", app.ConfigPath).Msg("config reload disabled")
		}
		return nil
	})

	err = tui.Run(tui.Options{
		Schedule:  text,
		Sender:    sender,
		Snapshots: snaps,
		Configs:   cfgs,
		StartView: startView,
		Accent:    app.cfg.UI.Accent,
		Log:       log,
	})

	// Closing the bus first lets the runner apply what the UI sent last.
	bus.Close()
	cancel()
	if werr := g.Wait(); err == nil && werr != nil && !errors.Is(werr, context.Canceled) {
		err = werr
	}
	return err
}

func openEmit(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
