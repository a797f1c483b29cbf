package prepare

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recorder captures external commands and plays back scripted responses.
type recorder struct {
	t       *testing.T
	calls   []string
	outputs map[string]string
	onCall  map[string]func()
}

func (r *recorder) run(_ context.Context, dir, name string, args ...string) (string, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	r.calls = append(r.calls, key)
	if fn, ok := r.onCall[key]; ok {
		fn()
	}
	if out, ok := r.outputs[key]; ok {
		return out, nil
	}
	return "", nil
}

func newPreparer(t *testing.T, rec *recorder, sourceExists, binaryExists bool) *Preparer {
	dir := t.TempDir()
	src := filepath.Join(dir, "engine-src")
	bin := filepath.Join(src, "src", "engine")
	if sourceExists {
		if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if binaryExists {
		if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return &Preparer{
		RepoURL:    "https://example.com/engine.git",
		Branch:     "master",
		SourceDir:  src,
		MakeDir:    filepath.Join(src, "src"),
		BinaryPath: bin,
		run:        rec.run,
	}
}

func TestRunClonesWhenSourceAbsent(t *testing.T) {
	rec := &recorder{t: t}
	p := newPreparer(t, rec, false, false)
	// Scripted clone creates the tree and the build creates the binary.
	rec.onCall = map[string]func(){
		fmt.Sprintf("git clone --branch master https://example.com/engine.git %s", p.SourceDir): func() {
			if err := os.MkdirAll(p.MakeDir, 0o755); err != nil {
				t.Fatal(err)
			}
		},
		"make": func() {
			if err := os.WriteFile(p.BinaryPath, []byte("bin"), 0o755); err != nil {
				t.Fatal(err)
			}
		},
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{
		fmt.Sprintf("git clone --branch master https://example.com/engine.git %s", p.SourceDir),
		"make",
	}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, rec.calls[i], want[i])
		}
	}
}

func TestRunSkipsBuildWhenCurrent(t *testing.T) {
	rec := &recorder{t: t, outputs: map[string]string{
		"git rev-parse HEAD": "abc123\n",
		"git rev-parse @{u}": "abc123\n",
	}}
	p := newPreparer(t, rec, true, true)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, call := range rec.calls {
		if call == "make" {
			t.Fatal("build ran despite current source and existing binary")
		}
	}
}

func TestRunPullsAndRebuildsWhenStale(t *testing.T) {
	rec := &recorder{t: t, outputs: map[string]string{
		"git rev-parse HEAD": "abc123\n",
		"git rev-parse @{u}": "def456\n",
	}}
	p := newPreparer(t, rec, true, true)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	var pulled, built bool
	for _, call := range rec.calls {
		switch call {
		case "git pull":
			pulled = true
		case "make":
			built = true
		}
	}
	if !pulled || !built {
		t.Fatalf("calls = %v, want pull and make", rec.calls)
	}
}

func TestRunFailsWhenBinaryMissingAfterBuild(t *testing.T) {
	rec := &recorder{t: t, outputs: map[string]string{
		"git rev-parse HEAD": "abc123\n",
		"git rev-parse @{u}": "abc123\n",
	}}
	// Source present, binary absent, and the scripted make produces nothing.
	p := newPreparer(t, rec, true, false)

	err := p.Run(context.Background())
	if !errors.Is(err, ErrPrerequisiteMissing) {
		t.Fatalf("err = %v, want ErrPrerequisiteMissing", err)
	}
}

func TestRunPropagatesCommandFailure(t *testing.T) {
	rec := &recorder{t: t}
	p := newPreparer(t, rec, true, true)
	p.run = func(context.Context, string, string, ...string) (string, error) {
		return "", fmt.Errorf("git fetch: exit status 128")
	}

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected fetch failure to propagate")
	}
}
