package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"consilium/internal/adapters/ai"
	"consilium/internal/adapters/config"
	"consilium/internal/adapters/errors/noop"
	"consilium/internal/adapters/errors/sentry"
	"consilium/internal/agents"
	"consilium/internal/api"
	"consilium/internal/project"
	"consilium/internal/report"
	"consilium/pkg/errors"
	"consilium/pkg/logger"
)

const version = "1.0.0"

func main() {
	inputPath := flag.String("input", "", "path to a project JSON file; runs a single analysis instead of serving")
	outputPath := flag.String("output", "", "path for the Markdown report (single-run mode)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	client := initAIClient(cfg, log)
	orchestrator := buildOrchestrator(cfg, client, errorTracker)
	reports := report.NewGenerator()

	if *inputPath != "" {
		if err := runOnce(cfg, orchestrator, reports, *inputPath, *outputPath, log); err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
		return
	}

	serve(cfg, orchestrator, reports, client != nil, errorTracker, log)
}

// initAIClient builds the OpenAI client. Without an API key the system runs
// degraded: deterministic agents still work, LLM-backed stages are disabled.
func initAIClient(cfg *config.Config, log *logger.Logger) ai.Client {
	if cfg.AI.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY not set, running without LLM synthesis and dialogue")
		return nil
	}

	client, err := ai.NewOpenAIClient(ai.OpenAIOptions{
		APIKey:            cfg.AI.OpenAIKey,
		Model:             cfg.AI.Model,
		Temperature:       cfg.AI.Temperature,
		MaxTokens:         cfg.AI.MaxTokens,
		Timeout:           cfg.AI.Timeout,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
	})
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	log.Infof("OpenAI client initialized (model: %s)", cfg.AI.Model)
	return client
}

func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

func buildOrchestrator(cfg *config.Config, client ai.Client, tracker errors.Tracker) *agents.Orchestrator {
	agentList := []agents.Agent{
		agents.NewMarketAgent(),
		agents.NewFinancialAgent(),
		agents.NewStrategyAgent(client),
	}

	return agents.NewOrchestrator(
		agentList,
		agents.NewDialogueManager(client, cfg.Orchestrator.DialogueTemperature),
		agents.NewProfiler(client),
		tracker,
		agents.Options{
			AgentTimeout:   cfg.Orchestrator.AgentTimeout,
			EnableDialogue: cfg.Orchestrator.EnableDialogue,
		},
	)
}

// runOnce loads a project file, runs the analysis and writes the report.
func runOnce(cfg *config.Config, orchestrator *agents.Orchestrator, reports *report.Generator, inputPath, outputPath string, log *logger.Logger) error {
	in, err := project.LoadFile(inputPath)
	if err != nil {
		return err
	}

	result, err := orchestrator.Analyze(context.Background(), in)
	if err != nil {
		return err
	}

	if outputPath == "" {
		if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
			return errors.Wrap(err, "create report output dir")
		}
		outputPath = filepath.Join(cfg.Report.OutputDir, reportFileName(result.ClientName, result.CreatedAt))
	}

	if err := reports.Export(result, outputPath); err != nil {
		return err
	}

	log.Infow("Analysis complete",
		"report", outputPath,
		"successful", result.Summary.Successful,
		"skipped", result.Summary.Skipped,
		"failed", result.Summary.Failed,
		"success_rate", result.Summary.SuccessRate)
	return nil
}

func reportFileName(clientName string, at time.Time) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(clientName), " ", "_"))
	return fmt.Sprintf("%s_%s.md", slug, at.Format("20060102_150405"))
}

// serve runs the HTTP API until a shutdown signal arrives.
func serve(cfg *config.Config, orchestrator *agents.Orchestrator, reports *report.Generator, llmAvailable bool, tracker errors.Tracker, log *logger.Logger) {
	server := api.NewServer(
		api.ServerConfig{
			Port:         cfg.Server.Port,
			ServiceName:  cfg.App.Name,
			Version:      version,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		api.NewAnalyzeHandler(orchestrator, reports, log),
		api.NewHealthHandler(log, cfg.App.Name, version, llmAvailable),
		log,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("Received signal %s, shutting down", sig)
	case err := <-errCh:
		if err != nil {
			log.Errorf("HTTP server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}
	_ = tracker.Flush(shutdownCtx)
}
