// CUE schema validation code
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// ValidateWithCue validates a YAML configuration file using a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}

	schemaVal := ctx.CompileBytes(schemaBytes)
	if schemaVal.Err() != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", schemaVal.Err())
	}
	if err := cueyaml.Validate(yamlBytes, schemaVal); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate checks semantic constraints the schema cannot express alone.
func (c *Config) Validate() error {
	if c.Engine.RepoURL == "" {
		return fmt.Errorf("engine.repo_url is required")
	}
	if c.Engine.SourceDir == "" || c.Engine.Binary == "" {
		return fmt.Errorf("engine.source_dir and engine.binary are required")
	}
	if c.Assets.RunnerURL == "" || c.Assets.BookURL == "" || c.Assets.BookFile == "" {
		return fmt.Errorf("assets.runner_url, assets.book_url and assets.book_file are required")
	}
	if c.Reference.NPS <= 0 || c.Reference.BaseTimeMs <= 0 || c.Reference.IncMs <= 0 {
		return fmt.Errorf("reference profile values must be strictly positive")
	}
	if c.Match.Games < 1 {
		return fmt.Errorf("match.games must be at least 1")
	}
	return nil
}
