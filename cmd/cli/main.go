package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"ticket-classifier-go/internal/auditlog"
	"ticket-classifier-go/internal/config"
	"ticket-classifier-go/internal/dealers"
	"ticket-classifier-go/internal/inference"
	"ticket-classifier-go/internal/logger"
	"ticket-classifier-go/internal/pipeline"
	"ticket-classifier-go/internal/types"
)

func main() {
	csvPath := flag.String("csv", "", "classify every message in a CSV file instead of reading stdin")
	flag.Parse()

	_ = godotenv.Load()

	log := logger.New()
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	table, err := dealers.Load(cfg.MappingPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load dealer mapping")
	}

	audit, err := auditlog.Open(cfg.AuditLogPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open audit log")
	}
	defer audit.Close()

	p := pipeline.New(table, inference.NewClient(cfg), audit)

	if *csvPath != "" {
		runBatch(p, cfg, *csvPath)
		return
	}
	runSingle(p)
}

func runSingle(p *pipeline.Pipeline) {
	fmt.Println("Paste the ticket message below. Press Ctrl+D when done:")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		logger.New().WithError(err).Fatal("reading stdin")
	}

	res, err := p.Classify(context.Background(), string(data))
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyInput) {
			fmt.Fprintln(os.Stderr, "Please provide a ticket message.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Classification failed: %v\n", err)
		os.Exit(1)
	}
	printResult(res)
}

func runBatch(p *pipeline.Pipeline, cfg config.Config, path string) {
	messages, err := loadMessages(path)
	if err != nil {
		logger.New().WithError(err).Fatal("loading batch input")
	}

	items := p.ClassifyBatch(context.Background(), messages, cfg.BatchWorkers, cfg.LLMRatePerSec)
	for _, item := range items {
		fmt.Printf("\n--- Ticket %d ---\n", item.Index+1)
		if item.Err != nil {
			fmt.Printf("FAILED: %v\n", item.Err)
			continue
		}
		printResult(item.Result)
	}

	s := pipeline.Summarize(items)
	fmt.Printf("\n=== Batch summary ===\n")
	fmt.Printf("Total: %d  Failed: %d\n", s.Total, s.Failed)
	for cat, n := range s.ByCategory {
		fmt.Printf("  %-40s %d\n", cat, n)
	}
	for code, n := range s.ByEdgeCase {
		fmt.Printf("  edge case %-30s %d\n", code, n)
	}
}

// loadMessages reads a CSV of ticket messages, preferring a "message" column
// and falling back to the first column.
func loadMessages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	msgIdx := 0
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), "message") {
			msgIdx = i
			break
		}
	}

	var out []string
	for _, row := range rows[1:] {
		if msgIdx < len(row) {
			out = append(out, row[msgIdx])
		}
	}
	return out, nil
}

func printResult(res types.ClassificationResult) {
	fmt.Println("Summary for Zoho Fields:")
	for _, fv := range []struct{ label, value string }{
		{"Contact", res.Fields.Contact},
		{"Dealer Name", res.Fields.DealerName},
		{"Dealer ID", res.Fields.DealerID},
		{"Rep", res.Fields.Rep},
		{"Category", res.Fields.Category},
		{"Sub Category", res.Fields.SubCategory},
		{"Syndicator", res.Fields.Syndicator},
		{"Inventory Type", res.Fields.InventoryType},
	} {
		fmt.Printf("%-15s: %s\n", fv.label, fv.value)
	}

	fmt.Println("\nZoho Comment:")
	fmt.Println(res.Comment)
	if res.SuggestedReply != "" {
		fmt.Println("\nSuggested Reply:")
		fmt.Println(res.SuggestedReply)
	}
	if res.EdgeCase != "" {
		fmt.Printf("\nEdge Case Flagged: %s\n", res.EdgeCase)
	}
}
