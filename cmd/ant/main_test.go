package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"antflock/internal/core"
)

func TestRunWithFlag(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-steps", "3", "-log-level", "error"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	want := "Step 1: Position=(1,0), Direction=1\n" +
		"Step 2: Position=(1,1), Direction=2\n" +
		"Step 3: Position=(0,1), Direction=3\n"
	if out.String() != want {
		t.Fatalf("output mismatch:\n got %q\nwant %q", out.String(), want)
	}
}

func TestRunPromptsForSteps(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-log-level", "error"}, strings.NewReader("2\n"), &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Enter number of steps: Step 1:") {
		t.Fatalf("missing prompt in %q", out.String())
	}
	if strings.Count(out.String(), "\n") != 2 {
		t.Fatalf("expected two trace lines in %q", out.String())
	}
}

func TestRunRejectsInvalidSteps(t *testing.T) {
	for _, input := range []string{"-4\n", "many\n"} {
		err := run([]string{"-log-level", "error"}, strings.NewReader(input), &bytes.Buffer{})
		if !errors.Is(err, core.ErrInvalidArgument) {
			t.Fatalf("input %q: error = %v, expected ErrInvalidArgument", input, err)
		}
	}
}

func TestRunQuiet(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-steps", "50", "-quiet", "-log-level", "error"}, nil, &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("quiet run printed %q", out.String())
	}
}
