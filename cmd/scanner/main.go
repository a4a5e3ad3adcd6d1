package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/repositories"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/services"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/config"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/database"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/logger"
)

func main() {
	logger.Init()

	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	cfg := config.AppConfig
	if cfg.GitHub.Token == "" || cfg.OpenAI.APIKey == "" {
		logger.Fatalf("Missing GITHUB_TOKEN or OPENAI_API_KEY")
	}

	// Initialize database
	if err := database.Init(); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	snapshotRepo := repositories.NewSnapshotRepository(database.DB)
	judgmentRepo := repositories.NewJudgmentRepository(database.DB)
	growthService := services.NewGrowthService(snapshotRepo)
	signalService := services.NewSignalService(cfg.Filter.ProductionKeywords)
	filterService := services.NewFilterService(judgmentRepo, snapshotRepo, growthService, signalService, cfg.Filter)
	discoveryService := services.NewGitHubDiscoveryService(cfg.GitHub.Token, cfg.GitHub.SearchQuery)
	judgeService := services.NewJudgeService(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	reportService := services.NewReportService(judgmentRepo)

	pipeline := services.NewPipelineService(
		discoveryService, filterService, judgeService, judgmentRepo,
		cfg.GitHub.ScanLimit, cfg.Judge,
	)

	// An interrupt ends the pass cleanly; committed rows are kept.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := pipeline.Run(ctx)
	if err != nil {
		logger.Fatalf("Pipeline failed: %v", err)
	}

	if err := reportService.WriteJSON(report, cfg.Report.JSONPath); err != nil {
		logger.Fatalf("Failed to write run report: %v", err)
	}
	if err := reportService.ExportLedger(cfg.Report.ExcelPath); err != nil {
		logger.Fatalf("Failed to export judgment ledger: %v", err)
	}

	logger.WithFields(map[string]interface{}{
		"run_id":      report.RunID,
		"fetched":     report.Summary.TotalFetched,
		"passed":      report.Summary.PassedHardFilters,
		"deals":       report.Summary.NewDealsFound,
		"report_path": cfg.Report.JSONPath,
	}).Infof("Pipeline complete")
}
