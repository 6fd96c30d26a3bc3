package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"taskheap/internal/bench"
)

func main() {
	configPath := flag.String("config", "bench.yml", "benchmark configuration file, defaults are used if it does not exist")
	flag.Parse()

	cfg := bench.Load(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := bench.Run(ctx, cfg)
	bench.Print(os.Stdout, results)
	if cfg.CSV != "" {
		if werr := writeCSV(cfg.CSV, results); werr != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", cfg.CSV, werr)
			os.Exit(1)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "benchmark failed: %v\n", err)
		os.Exit(1)
	}
}

func writeCSV(path string, results []bench.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bench.WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
