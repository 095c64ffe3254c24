// Package fetcher downloads the scripting API reference pages.
//
// Requests are made one at a time. After each request finishes the client
// sits idle for a fixed pause before starting the next one; the pause
// is a politeness contract with the documentation host and the download must
// stay sequential.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Defaults for the public documentation host.
const (
	DefaultBaseURL   = "https://resource.dreamtonics.com/scripting/"
	DefaultUserAgent = "Mozilla/5.0 (compatible; DocDownloader/1.0)"
	DefaultDelay     = 500 * time.Millisecond
	DefaultTimeout   = 30 * time.Second
)

// IndexPage is the landing page of the reference.
const IndexPage = "index.html"

var classNames = []string{
	"ArrangementSelectionState",
	"ArrangementView",
	"Automation",
	"CoordinateSystem",
	"GroupSelection",
	"MainEditorView",
	"NestedObject",
	"Note",
	"NoteGroup",
	"NoteGroupReference",
	"PitchControlCurve",
	"PitchControlPoint",
	"PlaybackControl",
	"Project",
	"RetakeList",
	"SV",
	"ScriptableNestedObject",
	"SelectionStateBase",
	"TimeAxis",
	"Track",
	"TrackInnerSelectionState",
	"TrackMixer",
	"WidgetValue",
}

// DefaultPages returns the index page followed by one page per documented class.
func DefaultPages() []string {
	pages := make([]string, 0, len(classNames)+1)
	pages = append(pages, IndexPage)
	for _, name := range classNames {
		pages = append(pages, name+".html")
	}
	return pages
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// Client fetches pages relative to a base URL.
type Client struct {
	baseURL    *url.URL
	userAgent  string
	httpClient *http.Client
	delay      time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithDelay sets the idle time between the end of one request and the start
// of the next. Zero disables the pause.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

// WithLogger sets the logger used for per-page outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the pages under baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		baseURL:    base,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		delay:      DefaultDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// pause blocks for the configured delay or until ctx is done.
func (c *Client) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// URL returns the absolute address of page.
func (c *Client) URL(page string) string {
	return c.baseURL.ResolveReference(&url.URL{Path: page}).String()
}

// Get downloads one page. It does not pause; Download spaces out requests.
func (c *Client) Get(ctx context.Context, page string) ([]byte, error) {
	pageURL := c.URL(page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pageURL, err)
	}
	return body, nil
}

// Failure records why one page was not saved.
type Failure struct {
	Page string
	Err  error
}

// Result summarises a download run.
type Result struct {
	Succeeded []string
	Failures  []Failure
}

// Failed returns the number of pages that were not saved.
func (r *Result) Failed() int {
	return len(r.Failures)
}

// Total returns the number of pages attempted.
func (r *Result) Total() int {
	return len(r.Succeeded) + len(r.Failures)
}

// Download fetches every page in order and saves each as outDir/<page>,
// pausing between the end of one request and the start of the next.
// Individual page failures are recorded in the result and do not stop the
// run. An error is returned only when the output directory cannot be created
// or ctx is cancelled.
func (c *Client) Download(ctx context.Context, pages []string, outDir string) (*Result, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{}
	for i, page := range pages {
		if i > 0 {
			if err := c.pause(ctx); err != nil {
				return result, err
			}
		}

		err := c.save(ctx, page, outDir)
		if err != nil && ctx.Err() != nil {
			return result, ctx.Err()
		}
		if err != nil {
			c.logFailure(page, err)
			result.Failures = append(result.Failures, Failure{Page: page, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, page)
	}
	return result, nil
}

func (c *Client) save(ctx context.Context, page, outDir string) error {
	c.logger.Info("downloading page", "page", page, "url", c.URL(page))

	body, err := c.Get(ctx, page)
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, page)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", page, err)
	}
	c.logger.Info("saved page", "page", page, "file", path)
	return nil
}

func (c *Client) logFailure(page string, err error) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		c.logger.Error("download failed", "page", page, "status", statusErr.StatusCode, "error", statusErr.Status)
		return
	}
	c.logger.Error("download failed", "page", page, "error", err)
}
