package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// TaskSpec describes one task of a simulation run.
type TaskSpec struct {
	ID        TaskID `yaml:"id"`
	Priority  int    `yaml:"priority"`
	Arrival   int64  `yaml:"arrival"`
	Deadline  int64  `yaml:"deadline"`
	Burst     int64  `yaml:"burst"`      // ticks of work, at least 1
	FailAfter int64  `yaml:"fail_after"` // if > 0, the work fails after this many ticks
}

// Config mirrors config.yml
type Config struct {
	AgingTicks int64      `yaml:"aging_ticks"` // 10 (by default)
	AgingStep  int        `yaml:"aging_step"`  // 1 (by default)
	MaxTicks   int64      `yaml:"max_ticks"`   // 1000 (by default)
	Tasks      []TaskSpec `yaml:"tasks"`
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		AgingTicks: 10,
		AgingStep:  1,
		MaxTicks:   1000,
		Tasks: []TaskSpec{
			{ID: 1, Priority: 3, Arrival: 0, Deadline: 10, Burst: 2},
			{ID: 2, Priority: 1, Arrival: 1, Deadline: 5, Burst: 2},
			{ID: 3, Priority: 2, Arrival: 2, Deadline: 8, Burst: 2},
		},
	}
}

// Load reads YAML and overrides defaults; empty path, unreadable or
// malformed file = defaults only
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		// a partial decode is not trusted
		return defaultConfig()
	}

	// sanity clamps
	if cfg.AgingTicks < 0 {
		cfg.AgingTicks = 0 // aging disabled
	}
	if cfg.AgingStep <= 0 {
		cfg.AgingStep = 1
	}
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = 1000
	}
	for i := range cfg.Tasks {
		if cfg.Tasks[i].Burst <= 0 {
			cfg.Tasks[i].Burst = 1
		}
	}

	return cfg
}
