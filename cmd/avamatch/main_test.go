package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ava/internal/knowledge"
	"ava/internal/probe"
	"ava/internal/tokenize"
)

func TestRunPrintsBestMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	if err := os.WriteFile(path, []byte("how are you\r\n\nwhat is your name\n"), 0o644); err != nil {
		t.Fatalf("write samples: %v", err)
	}
	questions, err := readSamples(path)
	if err != nil {
		t.Fatalf("read samples: %v", err)
	}
	if len(questions) != 2 || questions[1].ID != 1 {
		t.Fatalf("unexpected samples: %+v", questions)
	}

	var out bytes.Buffer
	in := strings.NewReader("what is your name\nWhat is your name?\nzzz\n\nignored\n")
	if err := run(probe.New(tokenize.Whitespace{}), questions, in, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Best match: 1 [ 1.000 ]\nBest match: 1 [ 0.400 ]\nBest match: -1 [ 0.000 ]\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunAcceptsLongLines(t *testing.T) {
	long := strings.Repeat("word ", 20000)
	questions := []knowledge.Question{{ID: 0, Text: "word", AskedCount: 1}}
	var out bytes.Buffer
	if err := run(probe.New(tokenize.Whitespace{}), questions, strings.NewReader(long+"\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "Best match: 0 [ 1.000 ]\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
