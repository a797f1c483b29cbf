package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestIntDefaults(t *testing.T) {
	var out bytes.Buffer
	p := NewFrom(strings.NewReader("\n"), &out)
	n, err := p.Int("Games", 500)
	if err != nil {
		t.Fatalf("Int: %v", err)
	}
	if n != 500 {
		t.Fatalf("n = %d, want 500", n)
	}
	if !strings.Contains(out.String(), "[500]") {
		t.Fatalf("prompt output %q missing default", out.String())
	}
}

func TestIntParsesAndRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewFrom(strings.NewReader("abc\n2000\n"), &out)
	n, err := p.Int("Games", 500)
	if err != nil {
		t.Fatalf("Int: %v", err)
	}
	if n != 2000 {
		t.Fatalf("n = %d, want 2000", n)
	}
	if !strings.Contains(out.String(), "not a number") {
		t.Fatalf("output %q missing retry notice", out.String())
	}
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
	}
	for _, tc := range cases {
		p := NewFrom(strings.NewReader(tc.input), &bytes.Buffer{})
		got, err := p.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestAssumeYes(t *testing.T) {
	p := NewFrom(strings.NewReader(""), &bytes.Buffer{})
	p.AssumeYes = true
	ok, err := p.Confirm("Proceed?")
	if err != nil || !ok {
		t.Fatalf("Confirm = %v, %v, want true, nil", ok, err)
	}
	n, err := p.Int("Games", 500)
	if err != nil || n != 500 {
		t.Fatalf("Int = %d, %v, want 500, nil", n, err)
	}
}

func TestNonInteractiveUsesDefaults(t *testing.T) {
	p := &Prompter{}
	ok, err := p.Confirm("Proceed?")
	if err != nil || ok {
		t.Fatalf("Confirm = %v, %v, want false, nil", ok, err)
	}
}
