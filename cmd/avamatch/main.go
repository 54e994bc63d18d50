// Command avamatch reads sentences from stdin and prints which known
// question each one resembles most.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"ava/internal/config"
	"ava/internal/knowledge"
	"ava/internal/probe"
	"ava/internal/store"
	"ava/internal/tokenize"
)

// maxLine caps a single input line, in bytes.
const maxLine = 8 << 20

func main() {
	var (
		configPath  string
		samplesPath string
		tokenizer   string
	)

	flag.StringVar(&configPath, "config", "./config/ava.yaml", "path to config file")
	flag.StringVar(&samplesPath, "samples", "", "file with one sample sentence per line (overrides the configured store)")
	flag.StringVar(&tokenizer, "tokenizer", tokenize.NameWhitespace, "tokenizer: whitespace or normalized")
	flag.Parse()

	tok, err := tokenize.ByName(tokenizer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokenizer error: %v\n", err)
		os.Exit(2)
	}

	var questions []knowledge.Question
	if samplesPath != "" {
		questions, err = readSamples(samplesPath)
	} else {
		questions, err = loadQuestions(configPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load error: %v\n", err)
		os.Exit(1)
	}

	if err := run(probe.New(tok), questions, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(p *probe.Prober, questions []knowledge.Question, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			return nil
		}
		best := p.Best(line, questions)
		if _, err := fmt.Fprintf(out, "Best match: %d [ %.3f ]\n", best.Index, best.Score); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func readSamples(path string) ([]knowledge.Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	base := knowledge.New()
	for _, line := range strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		base.AddQuestion(line)
	}
	return base.Questions, nil
}

func loadQuestions(configPath string) ([]knowledge.Question, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default("")
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	if !st.Exists() {
		return nil, nil
	}
	base, err := st.Load(context.Background())
	if err != nil {
		return nil, err
	}
	return base.Questions, nil
}
