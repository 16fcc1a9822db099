package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chess-variants/tournament-calendar/internal/config"
	"github.com/chess-variants/tournament-calendar/internal/linkcheck"
)

func main() {
	var (
		cfgPath = flag.String("config", "config.yml", "path to YAML config")
		timeout = flag.Duration("timeout", 0, "override per-request timeout")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	files := cfg.LinkCheck.Files
	if flag.NArg() > 0 {
		files = flag.Args()
	}
	if len(files) == 0 {
		log.Fatal("no data files to check (set link_check.files or pass paths)")
	}
	to := cfg.LinkCheck.Timeout
	if *timeout > 0 {
		to = *timeout
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	failures, err := linkcheck.New(to).Run(ctx, files)
	if err != nil {
		log.Fatalf("verify links: %v", err)
	}
	if len(failures) > 0 {
		fmt.Printf("%d dead link(s):\n", len(failures))
		for i, f := range failures {
			fmt.Printf("%d. [%s] %s (%s)\n   URL: %s\n   Error: %s\n", i+1, f.File, f.Title, f.Field, f.URL, f.Reason)
		}
		os.Exit(1)
	}
	log.Printf("all links ok in %s", time.Since(start).Truncate(time.Millisecond))
}
