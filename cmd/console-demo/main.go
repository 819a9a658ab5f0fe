package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/textconsole/config"
	"github.com/lixenwraith/textconsole/service"
	"github.com/lixenwraith/textconsole/tcellconsole"
	"github.com/lixenwraith/textconsole/terminal"
)

type options struct {
	cfgFile string
	backend string
	color   string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "console-demo",
		Short:        "console-demo draws styled text on a console canvas and echoes key presses",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVarP(&opts.backend, "backend", "b", config.BackendANSI, "backend: ansi or tcell")
	cmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "color mode: auto, basic, 256, truecolor")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "write debug logs to the log directory")
	return cmd
}

// loadConfig layers explicitly set flags over the file and environment
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	flags := cmd.PersistentFlags()
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("color") {
		cfg.ColorMode = opts.color
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newConsole builds the configured backend service and its Init args
func newConsole(cfg *config.Config, logger *slog.Logger) (service.Console, []any, error) {
	switch cfg.Backend {
	case config.BackendTcell:
		return tcellconsole.NewService(nil), []any{logger}, nil
	default:
		mode, ok := terminal.ParseColorMode(cfg.ColorMode)
		if !ok {
			return nil, nil, fmt.Errorf("unknown color mode %q", cfg.ColorMode)
		}
		backend, err := newTerminalBackend(cfg)
		if err != nil {
			return nil, nil, err
		}
		return terminal.NewService(backend), []any{mode, logger}, nil
	}
}

func run(cfg *config.Config) (err error) {
	logFile, logger := setupLogging(cfg.Debug, cfg.LogDir)
	if logFile != nil {
		defer logFile.Close()
	}

	svc, args, err := newConsole(cfg, logger)
	if err != nil {
		return err
	}

	// Panic Recovery: Ensure terminal is reset even if the demo crashes
	defer func() {
		if r := recover(); r != nil {
			svc.Stop()
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCONSOLE-DEMO CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := svc.Init(args...); err != nil {
		return err
	}
	defer func() {
		if stopErr := service.StopAll(svc); stopErr != nil && err == nil {
			err = stopErr
		}
	}()
	if err := svc.Start(); err != nil {
		return err
	}

	logger.Info("demo started", "backend", svc.Name(), "quit", cfg.QuitKey)
	d := newDemo(cfg.Title, cfg.QuitBinding(), logger)
	return d.run(svc.Canvas(), svc.Events())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
