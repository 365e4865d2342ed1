package jobsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrStdinTerminal is returned when "-" is given but stdin is a terminal.
var ErrStdinTerminal = errors.New("stdin is a terminal; pipe a job description or use --job-file PATH")

const maxFileBytes = 1 << 20

// Options selects where a job description comes from. At most one of
// File and URL should be set.
type Options struct {
	File    string
	URL     string
	Browser bool
	Fetcher *Fetcher
}

// Load returns the job description named by opts. The Result has an empty
// Text when opts names no source. stdin is read when File is "-". Only a
// URL source fills in the fetch fields of the Result.
func Load(ctx context.Context, opts Options, stdin *os.File) (*Result, error) {
	switch {
	case opts.File != "" && opts.URL != "":
		return nil, errors.New("use either --job-file or --job-url, not both")
	case opts.File == "-":
		if stdin == nil || term.IsTerminal(int(stdin.Fd())) {
			return nil, ErrStdinTerminal
		}
		return readResult(stdin)
	case opts.File != "":
		f, err := os.Open(opts.File)
		if err != nil {
			return nil, fmt.Errorf("open job file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return readResult(f)
	case opts.URL != "":
		fetcher := opts.Fetcher
		if fetcher == nil {
			fetcher = NewFetcher(DefaultTimeout, opts.Browser)
		}
		return fetcher.Fetch(ctx, opts.URL)
	default:
		return &Result{}, nil
	}
}

func readResult(r io.Reader) (*Result, error) {
	text, err := Read(r)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text}, nil
}

// Read reads a plain-text description, trimming surrounding whitespace.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileBytes))
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n")), nil
}
