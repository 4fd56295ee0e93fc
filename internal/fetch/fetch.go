// Package fetch retrieves job postings from their URLs and reduces the HTML
// to the plain description text the tailoring session works with.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the tool to job boards.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeTailor/1.0)"

// Result holds the raw and processed content of a fetched posting.
type Result struct {
	URL        string
	HTML       string
	Text       string
	Platform   Platform
	StatusCode int
}

// Error reports a failed posting fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetch behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	MaxRetries int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:    DefaultTimeout,
		UserAgent:  DefaultUserAgent,
		MaxRetries: 3,
	}
}

// JobPosting fetches a posting URL, detects the job board platform, strips
// navigation and application-form noise, and returns the description text.
// Transient HTTP failures are retried with backoff.
func JobPosting(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := retryablehttp.NewClient()
	client.RetryMax = opts.MaxRetries
	client.HTTPClient.Timeout = opts.Timeout
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	platform := DetectPlatform(urlStr)
	result := &Result{
		URL:        urlStr,
		HTML:       string(body),
		Platform:   platform,
		StatusCode: resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	text, err := ExtractPostingText(result.HTML, platform)
	if err != nil {
		return result, &Error{URL: urlStr, Message: "failed to extract posting text", Cause: err}
	}
	if text == "" {
		return result, &Error{URL: urlStr, Message: "no readable posting text"}
	}
	result.Text = text
	return result, nil
}

// ExtractPostingText parses posting HTML and returns the description text.
// Noise elements are removed first, then the platform's content selectors are
// tried in order, falling back to the body element.
func ExtractPostingText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if noise := strings.Join(PlatformNoiseSelectors(platform), ", "); noise != "" {
		doc.Find(noise).Remove()
	}

	var content *goquery.Selection
	for _, selector := range PlatformContentSelectors(platform) {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return cleanWhitespace(content.Text()), nil
}

// cleanWhitespace trims lines and drops empty ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
