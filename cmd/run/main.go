// Command run executes a batch of LSAT logical-reasoning problems
// through an LLM, writes a reasoning map per problem, and prints the
// aggregated error report.
//
// Hugging Face dataset usage:
//
//	go run ./cmd/run \
//	  --samples 20 \
//	  --provider gemini \
//	  --model gemini-2.0-flash
//
// Local JSON file usage:
//
//	go run ./cmd/run \
//	  --json ./data/lsat-lr.json \
//	  --samples 50
//
// PDF prep-test usage (no answer key, maps only):
//
//	go run ./cmd/run \
//	  --pdf ./data/prep-test-42.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bbiangul/reasonmap"
	"github.com/bbiangul/reasonmap/dataset"
	"github.com/bbiangul/reasonmap/eval"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to YAML config file (flags override)")
		hfDataset   = flag.String("dataset", dataset.DefaultDataset, "Hugging Face dataset name")
		split       = flag.String("split", "train", "Dataset split to fetch")
		jsonPath    = flag.String("json", "", "Path to local JSON problem file (overrides --dataset)")
		pdfPath     = flag.String("pdf", "", "Path to a prep-test PDF (overrides --dataset)")
		samples     = flag.Int("samples", 10, "Number of problems to process (0=all)")
		provider    = flag.String("provider", "", "LLM provider: gemini, openai, custom")
		model       = flag.String("model", "", "Chat model name")
		baseURL     = flag.String("base-url", "", "Provider base URL override")
		apiKey      = flag.String("api-key", "", "Provider API key (default: from env)")
		concurrency = flag.Int("concurrency", 0, "Max parallel LLM calls")
		outputDir   = flag.String("output", "", "Directory for map files (default: maps)")
		dbPath      = flag.String("db", "", "Path to SQLite database (default: ~/.reasonmap/reasonmap.db)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	// Optional .env for API keys; absence is not an error.
	_ = godotenv.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := reasonmap.DefaultConfig()
	if *configPath != "" {
		loaded, err := reasonmap.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	if *provider != "" {
		cfg.Chat.Provider = *provider
	}
	if *model != "" {
		cfg.Chat.Model = *model
	}
	if *baseURL != "" {
		cfg.Chat.BaseURL = *baseURL
	}
	if *apiKey != "" {
		cfg.Chat.APIKey = *apiKey
	}
	if *concurrency > 0 {
		cfg.Concurrency = *concurrency
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	if *jsonPath != "" && *pdfPath != "" {
		log.Fatal("--json and --pdf are mutually exclusive")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	problems, err := loadProblems(ctx, *jsonPath, *pdfPath, *hfDataset, *split, *samples)
	if err != nil {
		log.Fatalf("loading problems: %v", err)
	}
	if *samples > 0 && len(problems) > *samples {
		problems = problems[:*samples]
	}
	slog.Info("loaded problems", "count", len(problems))

	engine, err := reasonmap.New(cfg)
	if err != nil {
		log.Fatalf("creating engine: %v", err)
	}
	defer engine.Close()

	rr, err := engine.Run(ctx, problems)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	fmt.Printf("Run ID: %s\n", rr.RunID)
	fmt.Printf("Maps written to: %s\n\n", cfg.OutputDir)
	eval.PrintReport(os.Stdout, rr.Report)
}

// loadProblems resolves the problem source in precedence order: local
// JSON, PDF, then the Hugging Face rows API.
func loadProblems(ctx context.Context, jsonPath, pdfPath, hfName, split string, samples int) ([]dataset.Problem, error) {
	switch {
	case jsonPath != "":
		return dataset.LoadJSON(jsonPath)
	case pdfPath != "":
		return dataset.LoadPDF(pdfPath)
	default:
		hf := dataset.NewHFClient(hfName)
		if split != "" {
			hf.Split = split
		}
		return hf.Fetch(ctx, samples)
	}
}
