// Command analyze recomputes the error report from stored outcomes,
// without new LLM calls.
//
// Usage:
//
//	go run ./cmd/analyze                  # analyze all runs
//	go run ./cmd/analyze --run <run-id>   # analyze one run
//	go run ./cmd/analyze --list           # list stored runs
//	go run ./cmd/analyze --xlsx report.xlsx --csv outcomes.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/bbiangul/reasonmap"
	"github.com/bbiangul/reasonmap/eval"
	"github.com/bbiangul/reasonmap/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file")
		dbPath     = flag.String("db", "", "Path to SQLite database (default: ~/.reasonmap/reasonmap.db)")
		runID      = flag.String("run", "", "Run ID to analyze (default: all runs)")
		listRuns   = flag.Bool("list", false, "List stored runs and exit")
		xlsxPath   = flag.String("xlsx", "", "Write the report as an XLSX workbook to this path")
		csvPath    = flag.String("csv", "", "Write per-problem outcomes as CSV to this path")
	)
	flag.Parse()

	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg := reasonmap.DefaultConfig()
	if *configPath != "" {
		loaded, err := reasonmap.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	// Analysis only reads the store; no provider is needed.
	st, err := store.New(cfg.ResolveDBPath())
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	if *listRuns {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			log.Fatalf("listing runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("no stored runs")
			return
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  model=%s\n", r.ID, r.CreatedAt, r.Model)
		}
		return
	}

	outcomes, err := st.ListOutcomes(ctx, *runID)
	if err != nil {
		log.Fatalf("listing outcomes: %v", err)
	}
	if len(outcomes) == 0 {
		if *runID != "" {
			log.Fatalf("no outcomes for run %s", *runID)
		}
		fmt.Println("no stored outcomes")
		return
	}

	records := reasonmap.OutcomeRecords(outcomes)
	report := eval.Aggregate(records)
	eval.PrintReport(os.Stdout, report)

	if *xlsxPath != "" {
		if err := eval.WriteXLSX(*xlsxPath, report); err != nil {
			log.Fatalf("writing xlsx: %v", err)
		}
		fmt.Printf("\nReport written to %s\n", *xlsxPath)
	}
	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatalf("creating csv: %v", err)
		}
		defer f.Close()
		if err := eval.WriteOutcomesCSV(f, records); err != nil {
			log.Fatalf("writing csv: %v", err)
		}
		fmt.Printf("Outcomes written to %s\n", *csvPath)
	}
}
