package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chess-variants/tournament-calendar/internal/config"
	"github.com/chess-variants/tournament-calendar/internal/metrics"
	"github.com/chess-variants/tournament-calendar/internal/model"
	"github.com/chess-variants/tournament-calendar/internal/postprocess"
	"github.com/chess-variants/tournament-calendar/internal/source"
	"github.com/chess-variants/tournament-calendar/internal/table"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	var (
		cfgPath    = flag.String("config", "config.yml", "path to YAML config")
		dataPath   = flag.String("data", "", "override the output TSV path")
		dryRun     = flag.Bool("dry-run", false, "print the merged table to stdout, do not write")
		offline    = flag.Bool("offline", false, "skip fetching, re-normalize the stored table")
		unfiltered = flag.Bool("unfiltered", false, "keep events that already ended")
	)
	flag.Parse()

	log.Printf("update-tournaments %s starting...", Version)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *dataPath != "" {
		cfg.Output.Path = *dataPath
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	current, err := table.Read(cfg.Output.Path)
	if err != nil {
		log.Fatalf("read table: %v", err)
	}
	log.Printf("current table: %d record(s) at %s", len(current), cfg.Output.Path)

	batches := [][]model.Record{current}
	if !*offline {
		srcs := make([]source.Source, 0, len(cfg.Sources))
		for _, sc := range cfg.Sources {
			s, err := source.NewFromConfig(sc)
			if err != nil {
				log.Fatalf("build source %q: %v", sc.Name, err)
			}
			srcs = append(srcs, s)
		}
		if len(srcs) == 0 {
			log.Fatal("no sources configured")
		}

		// One unreachable calendar must not lose the others' records;
		// only a run where every source fails is an error.
		ok := 0
		for _, src := range srcs {
			recs, err := src.Fetch(ctx)
			if err != nil {
				metrics.FetchErrors.WithLabelValues(src.Name()).Inc()
				log.Printf("fetch %s: %v", src.Name(), err)
				continue
			}
			metrics.RecordsFetched.WithLabelValues(src.Name()).Add(float64(len(recs)))
			log.Printf("%s: fetched %d record(s)", src.Name(), len(recs))
			batches = append(batches, recs)
			ok++
		}
		if ok == 0 {
			log.Fatalf("all %d source(s) failed", len(srcs))
		}
	}

	start := time.Now()
	for _, batch := range batches {
		postprocess.Apply(batch)
	}
	merged := table.Merge(batches...)
	if !*unfiltered {
		today := time.Now().UTC().Format("2006-01-02")
		before := len(merged)
		merged = table.FilterPast(merged, today)
		log.Printf("filtered past events: %d -> %d", before, len(merged))
	}

	if *dryRun {
		if err := table.Render(os.Stdout, merged); err != nil {
			log.Fatalf("render table: %v", err)
		}
		return
	}
	if err := table.Write(cfg.Output.Path, merged); err != nil {
		log.Fatalf("write table: %v", err)
	}
	log.Printf("wrote %d record(s) to %s in %s", len(merged), cfg.Output.Path, time.Since(start).Truncate(time.Millisecond))

	metrics.TableRows.Set(float64(len(merged)))
	metrics.LastRefresh.Set(float64(time.Now().Unix()))
	if cfg.Metrics.Enable && cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			// metrics are best-effort; the table is already safe on disk
			log.Printf("write metrics textfile: %v", err)
		}
	}
}
