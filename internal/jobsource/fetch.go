// Package jobsource loads a job description from a file, stdin or a job
// posting URL.
package jobsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; prepcoach/1.0)"

	// minUsableLength matches the shortest description the wizard accepts.
	minUsableLength = 50
	maxPageBytes    = 8 << 20
)

// FetchError is a failure loading a job posting.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Result is an extracted job posting.
type Result struct {
	URL      string
	Platform Platform
	Text     string
	// Rendered is true when the page went through a headless browser.
	Rendered bool
	// Sparse is true when the text is short enough that the page was
	// probably rendered client-side.
	Sparse bool
}

// BrowserHint is the advice given for a sparse page fetched without a
// browser.
const BrowserHint = "extracted text is short; try --browser for pages rendered with JavaScript"

// Hint returns BrowserHint when a fetched page came back sparse and was
// not rendered, and "" otherwise.
func (r *Result) Hint() string {
	if r == nil || r.URL == "" || !r.Sparse || r.Rendered {
		return ""
	}
	return BrowserHint
}

// Fetcher downloads job postings.
type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
	// Render, when set, replaces the plain HTTP download.
	Render RenderFunc
}

// NewFetcher returns a Fetcher with the default timeout and user agent.
// With browser set, pages are rendered in headless Chrome.
func NewFetcher(timeout time.Duration, browser bool) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Fetcher{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  DefaultUserAgent,
	}
	if browser {
		f.Render = RenderWithChrome(timeout)
	}
	return f
}

// Fetch downloads pageURL and extracts the posting text.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Result, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &FetchError{URL: pageURL, Message: "invalid URL", Cause: err}
	}

	var page string
	if f.Render != nil {
		page, err = f.Render(ctx, pageURL)
		if err != nil {
			return nil, &FetchError{URL: pageURL, Message: "render failed", Cause: err}
		}
	} else {
		page, err = f.download(ctx, pageURL)
		if err != nil {
			return nil, err
		}
	}

	text, err := Extract(page, parsed)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Message: "extract failed", Cause: err}
	}

	res := &Result{
		URL:      pageURL,
		Platform: DetectPlatform(pageURL),
		Text:     text,
		Rendered: f.Render != nil,
		Sparse:   len([]rune(text)) < MinContentLength,
	}
	if len([]rune(text)) < minUsableLength {
		msg := "page has too little text"
		if !res.Rendered {
			msg += "; try --browser for pages rendered with JavaScript"
		}
		return res, &FetchError{URL: pageURL, Message: msg}
	}
	return res, nil
}

func (f *Fetcher) download(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &FetchError{URL: pageURL, Message: "build request", Cause: err}
	}
	ua := f.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	client := f.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: pageURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: pageURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", &FetchError{URL: pageURL, Message: "read body", Cause: err}
	}
	return string(body), nil
}
