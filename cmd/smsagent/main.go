// Smsagent answers inbound SMS inquiries for a DJ business.
//
// It classifies each message into an intent, routes it to a specialist
// agent with a bounded tool set (calendar checks, pricing, lead updates,
// booking links, follow-up tasks), and replies over a JSON API or the
// Twilio webhook. Configuration is loaded from a single YAML file
// discovered automatically (see [config.DefaultSearchPaths]).
//
// Usage:
//
//	smsagent serve               Start the API server
//	smsagent ask <message>       Process a single message (for testing)
//	smsagent version             Print version and build information
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/m10dj/sms-agent/internal/agents"
	"github.com/m10dj/sms-agent/internal/api"
	"github.com/m10dj/sms-agent/internal/buildinfo"
	"github.com/m10dj/sms-agent/internal/config"
	"github.com/m10dj/sms-agent/internal/contacts"
	"github.com/m10dj/sms-agent/internal/exchanges"
	"github.com/m10dj/sms-agent/internal/followup"
	"github.com/m10dj/sms-agent/internal/links"
	"github.com/m10dj/sms-agent/internal/llm"
	"github.com/m10dj/sms-agent/internal/tools"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for database/sql
)

// main is intentionally minimal. It constructs the OS-level environment
// (context, stdio, argv) and delegates immediately to [run], keeping
// os.Exit and os.Args out of the application logic so the lifecycle can
// be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run parses arguments and dispatches to a subcommand. Arguments are
// parsed by hand: the flag package relies on package-level globals,
// which interfere with parallel tests, and the surface here is tiny.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	var configPath string
	var command string
	var cmdArgs []string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-") && command == "":
			command = args[i]
		default:
			if command != "" {
				cmdArgs = append(cmdArgs, args[i])
			} else {
				return fmt.Errorf("unknown flag: %s", args[i])
			}
		}
	}

	switch command {
	case "serve":
		return runServe(ctx, stdout, configPath)
	case "ask":
		if len(cmdArgs) == 0 {
			return fmt.Errorf("usage: smsagent ask <message>")
		}
		return runAsk(ctx, stdout, configPath, cmdArgs)
	case "version":
		return runVersion(stdout)
	case "":
		return printUsage(stdout)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "smsagent - SMS inquiry assistant for M10 DJ Company")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: smsagent [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve          Start the API server")
	fmt.Fprintln(w, "  ask <message>  Process a single message (for testing)")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>  Path to config file (default: auto-discover)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config search order:")
	fmt.Fprintln(w, "  ./smsagent.yaml, ~/.config/smsagent/smsagent.yaml, /etc/smsagent/smsagent.yaml")
	return nil
}

func runVersion(w io.Writer) error {
	fmt.Fprintln(w, buildinfo.String())
	info := buildinfo.Info()
	for _, k := range []string{"version", "git_commit", "git_branch", "build_time", "go_version", "os", "arch"} {
		if v, ok := info[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}))
}

// loadConfig locates and parses the YAML configuration file. If explicit
// is non-empty, that exact path is used; otherwise the default locations
// are searched.
func loadConfig(explicit string) (*config.Config, string, error) {
	cfgPath, err := config.FindConfig(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	return cfg, cfgPath, nil
}

// buildWorkflow opens the stores and assembles the full message pipeline.
// The returned closer shuts the stores down in reverse order.
func buildWorkflow(cfg *config.Config, logger *slog.Logger) (*agents.Workflow, *exchanges.Store, func(), error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, nil, nil, errors.New("openai.api_key is not configured")
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, nil, nil, fmt.Errorf("create data directory %s: %w", cfg.DataDir, err)
	}
	dbPath := cfg.DataDir + "/smsagent.db"

	contactStore, err := contacts.NewStore(dbPath, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open contact store %s: %w", dbPath, err)
	}
	taskStore, err := followup.NewStore(dbPath, logger)
	if err != nil {
		contactStore.Close()
		return nil, nil, nil, fmt.Errorf("open task store %s: %w", dbPath, err)
	}
	exchangeStore, err := exchanges.Open(dbPath, logger)
	if err != nil {
		taskStore.Close()
		contactStore.Close()
		return nil, nil, nil, fmt.Errorf("open exchange store %s: %w", dbPath, err)
	}
	closer := func() {
		exchangeStore.Close()
		taskStore.Close()
		contactStore.Close()
	}

	client := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, logger)
	linkClient := links.NewClient(cfg.Business.LinkEndpoint, cfg.Business.SiteURL, logger)

	registry := tools.NewRegistry(contactStore, taskStore, linkClient, tools.Config{
		BusinessPhone: cfg.Business.Phone,
		OwnerName:     cfg.Business.Owner,
		EmailDomain:   cfg.Business.EmailDomain,
	}, logger)

	classifierModel := cfg.OpenAI.ClassifierModel
	if classifierModel == "" {
		classifierModel = cfg.OpenAI.Model
	}
	classifier := agents.NewClassifier(client, classifierModel, logger)
	executor := agents.NewExecutor(client, cfg.OpenAI.Model, registry, logger)

	fallback := agents.FallbackText(cfg.Business.Name, cfg.Business.Owner, cfg.Business.Phone)
	workflow := agents.NewWorkflow(classifier, executor, contactStore, exchangeStore, fallback, logger)

	return workflow, exchangeStore, closer, nil
}

// runAsk processes a single message from the command line and prints the
// workflow response as JSON. Useful for smoke tests without Twilio.
func runAsk(ctx context.Context, stdout io.Writer, configPath string, args []string) error {
	logger := newLogger(stdout, slog.LevelWarn)

	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	workflow, _, closer, err := buildWorkflow(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	resp := workflow.Process(ctx, agents.Request{
		PhoneNumber: "cli-test",
		Message:     strings.Join(args, " "),
	})

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// runServe is the primary operating mode: it loads config, opens the
// stores, assembles the workflow, starts the HTTP server, and blocks
// until a shutdown signal arrives.
func runServe(ctx context.Context, stdout io.Writer, configPath string) error {
	logger := newLogger(stdout, slog.LevelInfo)
	logger.Info("starting smsagent",
		"version", buildinfo.Version,
		"commit", buildinfo.GitCommit,
		"built", buildinfo.BuildTime,
	)

	cfg, cfgPath, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Reconfigure the logger now that the desired level is known.
	if cfg.LogLevel != "" {
		level, err := config.ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = newLogger(stdout, level)
	}
	logger.Info("config loaded", "path", cfgPath, "port", cfg.Listen.Port, "model", cfg.OpenAI.Model)

	workflow, exchangeStore, closer, err := buildWorkflow(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	fallback := agents.FallbackText(cfg.Business.Name, cfg.Business.Owner, cfg.Business.Phone)
	server := api.NewServer(cfg.Listen.Address, cfg.Listen.Port, workflow, exchangeStore, fallback, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
