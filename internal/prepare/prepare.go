// Engine source preparation: clone or update, then build
package prepare

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrPrerequisiteMissing is returned when an expected directory, file or
// executable is still absent after its preparation step ran.
var ErrPrerequisiteMissing = errors.New("prerequisite missing")

// runCommand executes an external tool and returns its combined output.
// It exists as a seam so tests can record invocations without a git or make
// binary present.
type runCommand func(ctx context.Context, dir, name string, args ...string) (string, error)

func runReal(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// Preparer ensures the engine source tree is present, current and built.
type Preparer struct {
	RepoURL    string
	Branch     string
	SourceDir  string
	MakeDir    string
	BinaryPath string

	run runCommand
}

// New returns a Preparer using the real git and make binaries.
func New(repoURL, branch, sourceDir, makeDir, binaryPath string) *Preparer {
	return &Preparer{
		RepoURL:    repoURL,
		Branch:     branch,
		SourceDir:  sourceDir,
		MakeDir:    makeDir,
		BinaryPath: binaryPath,
		run:        runReal,
	}
}

// Run clones the engine repository when absent, pulls when the upstream
// branch moved, and rebuilds whenever the binary is missing or the source
// advanced. Any failing step aborts immediately.
func (p *Preparer) Run(ctx context.Context) error {
	updated, err := p.ensureSource(ctx)
	if err != nil {
		return err
	}
	if updated || !exists(p.BinaryPath) {
		if err := p.build(ctx); err != nil {
			return err
		}
	}
	if !exists(p.BinaryPath) {
		return fmt.Errorf("engine binary %s after build: %w", p.BinaryPath, ErrPrerequisiteMissing)
	}
	return nil
}

// ensureSource reports whether the working tree changed.
func (p *Preparer) ensureSource(ctx context.Context) (bool, error) {
	if !exists(p.SourceDir) {
		log.Printf("[Prepare] cloning %s into %s", p.RepoURL, p.SourceDir)
		parent := filepath.Dir(p.SourceDir)
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return false, err
		}
		args := []string{"clone"}
		if p.Branch != "" {
			args = append(args, "--branch", p.Branch)
		}
		args = append(args, p.RepoURL, p.SourceDir)
		if _, err := p.run(ctx, parent, "git", args...); err != nil {
			return false, err
		}
		if !exists(p.SourceDir) {
			return false, fmt.Errorf("source dir %s after clone: %w", p.SourceDir, ErrPrerequisiteMissing)
		}
		return true, nil
	}

	if _, err := p.run(ctx, p.SourceDir, "git", "fetch"); err != nil {
		return false, err
	}
	local, err := p.revParse(ctx, "HEAD")
	if err != nil {
		return false, err
	}
	remote, err := p.revParse(ctx, "@{u}")
	if err != nil {
		return false, err
	}
	if local == remote {
		log.Printf("[Prepare] %s is up to date at %s", p.SourceDir, short(local))
		return false, nil
	}
	log.Printf("[Prepare] updating %s %s -> %s", p.SourceDir, short(local), short(remote))
	if _, err := p.run(ctx, p.SourceDir, "git", "pull"); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Preparer) revParse(ctx context.Context, ref string) (string, error) {
	out, err := p.run(ctx, p.SourceDir, "git", "rev-parse", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (p *Preparer) build(ctx context.Context) error {
	log.Printf("[Prepare] building in %s", p.MakeDir)
	if _, err := p.run(ctx, p.MakeDir, "make"); err != nil {
		return err
	}
	return nil
}

func short(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
