package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"taskheap/internal/sched"
)

func main() {
	configPath := flag.String("config", "config.yml", "scheduler configuration file, defaults are used if it does not exist")
	csvPath := flag.String("csv", "", "write scheduler events to this CSV file")
	flag.Parse()

	// Read the configuration
	cfg := sched.Load(*configPath)
	fmt.Printf("Loaded config: aging_ticks=%d aging_step=%d max_ticks=%d tasks=%d\n",
		cfg.AgingTicks, cfg.AgingStep, cfg.MaxTicks, len(cfg.Tasks))

	s := sched.New(cfg, os.Stdout)
	if *csvPath != "" {
		if err := s.EnableCSVLogging(*csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to enable CSV logging: %v\n", err)
			os.Exit(1)
		}
	}
	if err := s.AddSpecs(cfg.Tasks); err != nil {
		fmt.Fprintf(os.Stderr, "invalid tasks: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := s.Run(ctx)

	sum := s.Summary()
	fmt.Printf("Completed: %d, Failed: %d, Missed deadlines: %d, Mean wait: %.2f ticks\n",
		sum.Completed, sum.Failed, sum.Missed, sum.MeanWait())
	if pending := s.Pending(); len(pending) > 0 {
		fmt.Printf("Pending tasks: %v\n", pending)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "scheduler stopped: %v\n", err)
		os.Exit(1)
	}
}
