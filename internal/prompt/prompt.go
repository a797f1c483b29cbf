// Interactive operator prompts
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the operator for run parameters on a terminal. On a non-TTY
// stdin, or when AssumeYes is set, prompts resolve to their defaults without
// blocking.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool

	// AssumeYes answers every confirmation with yes and accepts every
	// default, for unattended runs.
	AssumeYes bool
}

// New returns a Prompter reading stdin and writing stdout.
func New() *Prompter {
	return &Prompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewFrom returns a Prompter over the given streams, treated as interactive.
// It exists for tests and scripted use.
func NewFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, interactive: true}
}

// Int asks for an integer, returning def on empty input.
func (p *Prompter) Int(label string, def int) (int, error) {
	if !p.interactive || p.AssumeYes {
		return def, nil
	}
	for {
		fmt.Fprintf(p.out, "%s [%d]: ", label, def)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(p.out, "not a number: %q\n", line)
			continue
		}
		return n, nil
	}
}

// Confirm asks a yes/no question, defaulting to no. Only an explicit yes
// answer returns true.
func (p *Prompter) Confirm(label string) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	if !p.interactive {
		return false, nil
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", label)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
