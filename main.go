package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"heropick/internal/config"
	"heropick/internal/eventbus"
	"heropick/internal/proxyclient"
	"heropick/internal/ui"
)

// options holds the command-line flags
type options struct {
	configPath string
	proxyURL   string
	minChars   int
	quietMs    int
	limit      int
	logPath    string

	flags *pflag.FlagSet
}

func parseFlags(args []string) (*options, error) {
	opts := &options{flags: pflag.NewFlagSet("heropick", pflag.ContinueOnError)}
	fs := opts.flags
	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: user config dir)")
	fs.StringVar(&opts.proxyURL, "proxy", "", "Base URL of the search proxy")
	fs.IntVar(&opts.minChars, "min-chars", 0, "Minimum query length before searching")
	fs.IntVar(&opts.quietMs, "quiet", 0, "Quiet period in milliseconds before a query settles")
	fs.IntVar(&opts.limit, "limit", 0, "Maximum number of results per search")
	fs.StringVar(&opts.logPath, "log-file", "heropick.log", "Log file path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// loadConfig reads the config file and applies flag overrides. A file that
// exists but cannot be parsed or validated is an error.
func loadConfig(opts *options, bus eventbus.EventBus, logger *slog.Logger) (*config.Config, error) {
	var configSvc config.ConfigService
	if opts.configPath != "" {
		configSvc = config.NewConfigServiceAt(opts.configPath, bus)
	} else {
		configSvc = config.NewConfigServiceWithBus(bus)
	}

	cfg, err := configSvc.Load()
	if err != nil {
		if cfg == nil {
			return nil, fmt.Errorf("%s: %w", configSvc.Path(), err)
		}
		// Defaults loaded but could not be written out
		logger.Warn("saving default config", "path", configSvc.Path(), "error", err)
	}

	opts.flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "proxy":
			cfg.ProxyURL = opts.proxyURL
		case "min-chars":
			cfg.Search.MinChars = opts.minChars
		case "quiet":
			cfg.Search.QuietMs = opts.quietMs
		case "limit":
			cfg.Search.Limit = opts.limit
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
		logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(logger)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(logger)
	defer bus.Close()
	logEvents(bus, logger)

	cfg, err := loadConfig(opts, bus, logger)
	if err != nil {
		logger.Error("loading config", "error", err)
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(2)
	}

	client, err := proxyclient.New(cfg.ProxyURL, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger.Info("starting", "proxy", cfg.ProxyURL, "min_chars", cfg.Search.MinChars, "quiet_ms", cfg.Search.QuietMs)

	uiModel := ui.NewModel(ctx, bus, cfg, client, logger)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	if _, err := p.Run(); err != nil {
		logger.Error("running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info("exited normally")
}

// logEvents records the search pipeline's domain events in the log file
func logEvents(bus eventbus.EventBus, logger *slog.Logger) {
	for _, t := range []eventbus.EventType{
		eventbus.EventSearchIssued,
		eventbus.EventSearchSuperseded,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventSearchCleared,
		eventbus.EventDetailRequested,
		eventbus.EventDetailCompleted,
		eventbus.EventDetailFailed,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			logger.Debug("event", "type", e.Type(), "detail", fmt.Sprintf("%+v", e))
		})
	}
}
