package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shopassist/shop-assistant/api"
	"github.com/shopassist/shop-assistant/config"
	"github.com/shopassist/shop-assistant/internal/llm"
	"github.com/shopassist/shop-assistant/internal/metrics"
	"github.com/shopassist/shop-assistant/internal/persistence"
	"github.com/shopassist/shop-assistant/internal/retrieval"
	"github.com/shopassist/shop-assistant/internal/scrape"
	"github.com/shopassist/shop-assistant/services"
	"github.com/shopassist/shop-assistant/store"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		configPath = flag.String("config", "", "Path to YAML config file")
		dataPath   = flag.String("data", "", "Path to the snapshot file (overrides config)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Shop Assistant - product retrieval and Q&A over scraped listings\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                            # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config config.yaml       # Use a config file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Shop Assistant v1.0.0\n")
		return
	}

	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		p, err := strconv.Atoi(*port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --port value %q\n", *port)
			os.Exit(1)
		}
		cfg.Server.Port = p
	}
	if *dataPath != "" {
		cfg.Data.SnapshotPath = *dataPath
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		for _, problem := range problems {
			fmt.Fprintf(os.Stderr, "configuration error: %s\n", problem)
		}
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	snapshots := store.NewSnapshotStore()
	restoreSnapshot(cfg.Data.SnapshotPath, snapshots, logger)

	scraper := scrape.NewScraper(time.Duration(cfg.Scraper.TimeoutSec)*time.Second, logger)
	retriever := retrieval.NewService(snapshots, logger)
	answerer := buildAnswerer(cfg, logger)

	// Initialize Gin router
	router := gin.Default()

	api.SetupRoutes(router, api.Deps{
		Snapshots:    snapshots,
		Retriever:    retriever,
		Producer:     scraper,
		Answerer:     answerer,
		SnapshotPath: cfg.Data.SnapshotPath,
		MaxProducts:  cfg.Scraper.MaxProducts,
		DefaultTopK:  cfg.Retrieval.TopK,
		Logger:       logger,
	})

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	logger.Info("starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zapCfg.Level = parsed
	return zapCfg.Build()
}

// restoreSnapshot loads the persisted snapshot if one exists. A missing
// file is a fresh start, not an error.
func restoreSnapshot(path string, snapshots *store.SnapshotStore, logger *zap.Logger) {
	products, scrapedAt, err := persistence.LoadSnapshot(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("no saved snapshot, starting empty", zap.String("path", path))
			return
		}
		logger.Warn("failed to load saved snapshot", zap.String("path", path), zap.Error(err))
		return
	}

	snapshots.ReplaceAt(products, scrapedAt)
	metrics.SnapshotProducts.Set(float64(len(products)))
	logger.Info("restored snapshot",
		zap.Int("products", len(products)),
		zap.Time("scraped_at", scrapedAt))
}

// buildAnswerer constructs the LLM backend when an API key is present.
// Without one the /ask route is disabled but everything else works. The
// return type is the interface so a disabled backend is a nil interface,
// not a typed nil pointer.
func buildAnswerer(cfg *config.Config, logger *zap.Logger) services.Answerer {
	if cfg.LLM.APIKey == "" {
		logger.Info("LLM_API_KEY not set, /ask disabled")
		return nil
	}

	processor, err := llm.NewProcessor(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		Timeout:  time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Logger:   logger,
	})
	if err != nil {
		logger.Warn("failed to configure answer backend, /ask disabled", zap.Error(err))
		return nil
	}

	logger.Info("answer backend configured", zap.String("provider", processor.Provider()))
	return processor
}
