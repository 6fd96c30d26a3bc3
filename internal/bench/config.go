package bench

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors bench.yml
type Config struct {
	Sizes    []int  `yaml:"sizes"`     // [1000, 5000, 10000] (by default)
	MaxValue int    `yaml:"max_value"` // 100000 (by default), values are drawn from [0, max_value]
	Seed     int64  `yaml:"seed"`      // 1 (by default)
	Repeats  int    `yaml:"repeats"`   // 1 (by default), best of n
	CSV      string `yaml:"csv"`       // optional results file
}

func defaultConfig() Config {
	return Config{
		Sizes:    []int{1000, 5000, 10000},
		MaxValue: 100000,
		Seed:     1,
		Repeats:  1,
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
	sizes := cfg.Sizes[:0]
	for _, n := range cfg.Sizes {
		if n >= 0 {
			sizes = append(sizes, n)
		}
	}
	cfg.Sizes = sizes
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = defaultConfig().Sizes
	}
	if cfg.MaxValue <= 0 {
		cfg.MaxValue = 100000
	}
	if cfg.Repeats <= 0 {
		cfg.Repeats = 1
	}

	return cfg
}
