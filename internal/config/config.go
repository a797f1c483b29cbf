// YAML config loader with CUE validation integration
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig describes where the engine source lives and how it is built.
type EngineConfig struct {
	RepoURL   string            `yaml:"repo_url"`
	Branch    string            `yaml:"branch"`
	SourceDir string            `yaml:"source_dir"`
	MakeDir   string            `yaml:"make_dir"`
	Binary    string            `yaml:"binary"`
	BenchArgs []string          `yaml:"bench_args"`
	Options   map[string]string `yaml:"options"`
}

// AssetsConfig describes the downloadable run dependencies.
type AssetsConfig struct {
	Dir        string `yaml:"dir"`
	RunnerURL  string `yaml:"runner_url"`
	RunnerName string `yaml:"runner_name"`
	BookURL    string `yaml:"book_url"`
	BookFile   string `yaml:"book_file"`
}

// ReferenceConfig is the reference machine profile the canonical time
// control was tuned on.
type ReferenceConfig struct {
	NPS        int64 `yaml:"nps"`
	BaseTimeMs int64 `yaml:"base_time_ms"`
	IncMs      int64 `yaml:"inc_ms"`
}

// MatchConfig carries defaults for the self-play batch.
type MatchConfig struct {
	Games          int    `yaml:"games"`
	BookOrder      string `yaml:"book_order"`
	DrawMoveNumber int    `yaml:"draw_move_number"`
	DrawMoveCount  int    `yaml:"draw_move_count"`
	DrawScore      int    `yaml:"draw_score"`
	ResignCount    int    `yaml:"resign_count"`
	ResignScore    int    `yaml:"resign_score"`
	PGNOut         string `yaml:"pgn_out"`
}

// MetricsConfig points at an optional GreptimeDB sink. An empty endpoint
// disables it; the GREPTIMEDB_ENDPOINT env var overrides the file value.
type MetricsConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Database      string `yaml:"database"`
	ProgressTable string `yaml:"progress_table"`
	BenchTable    string `yaml:"bench_table"`
}

// Config is the root pipeline configuration.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Assets    AssetsConfig    `yaml:"assets"`
	Reference ReferenceConfig `yaml:"reference"`
	Match     MatchConfig     `yaml:"match"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// Load loads the YAML config, validates it against the CUE schema, applies
// defaults and checks semantic constraints.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Engine.Branch == "" {
		c.Engine.Branch = "master"
	}
	if c.Assets.Dir == "" {
		c.Assets.Dir = "assets"
	}
	if c.Assets.RunnerName == "" {
		c.Assets.RunnerName = "c-chess-cli"
	}
	if c.Reference.NPS == 0 {
		c.Reference.NPS = 2400000
	}
	if c.Reference.BaseTimeMs == 0 {
		c.Reference.BaseTimeMs = 1000
	}
	if c.Reference.IncMs == 0 {
		c.Reference.IncMs = 10
	}
	if c.Match.Games == 0 {
		c.Match.Games = 500
	}
	if c.Match.BookOrder == "" {
		c.Match.BookOrder = "random"
	}
	if c.Match.PGNOut == "" {
		c.Match.PGNOut = "games.pgn"
	}
	if c.Metrics.Database == "" {
		c.Metrics.Database = "public"
	}
	if c.Metrics.ProgressTable == "" {
		c.Metrics.ProgressTable = "match_progress"
	}
	if c.Metrics.BenchTable == "" {
		c.Metrics.BenchTable = "bench_samples"
	}
}
