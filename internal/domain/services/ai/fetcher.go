// Package ai contains the services that talk to external inference
// endpoints: the content judge, the vision judge and the page fetcher that
// feeds them.
package ai

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"scamradar/internal/domain/models"
	"scamradar/pkg/logger"
)

const (
	defaultFetchTimeout = 10 * time.Second
	defaultMaxBodyChars = 5000
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/121.0.0.0"
)

var (
	whitespacePattern  = regexp.MustCompile(`\s+`)
	paymentTermPattern = regexp.MustCompile(`(?i)credit.?card|thẻ.?tín.?dụng|cvv`)
)

// Fetcher retrieves a target page and reduces it to a ContentSummary.
// Single GET, no retries; any failure returns an unfetched summary since
// unreachability is itself a signal for the fusion layer.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyChars int
	logger       *logger.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient overrides the HTTP client, including its timeout.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// WithUserAgent overrides the request user agent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithMaxBodyChars bounds the extracted body text.
func WithMaxBodyChars(n int) FetcherOption {
	return func(f *Fetcher) { f.maxBodyChars = n }
}

// NewFetcher creates a new content fetcher
func NewFetcher(log *logger.Logger, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:       &http.Client{Timeout: defaultFetchTimeout},
		userAgent:    defaultUserAgent,
		maxBodyChars: defaultMaxBodyChars,
		logger:       log.WithComponent("fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch issues a single GET against the URL. The returned summary has
// Fetched=false on any failure (timeout, DNS, non-2xx).
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) models.ContentSummary {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return models.ContentSummary{}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug().Err(err).Str("url", rawURL).Msg("fetch failed")
		return models.ContentSummary{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Debug().Int("status", resp.StatusCode).Str("url", rawURL).Msg("non-2xx response")
		return models.ContentSummary{}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.ContentSummary{}
	}

	return f.summarize(doc)
}

func (f *Fetcher) summarize(doc *goquery.Document) models.ContentSummary {
	summary := models.ContentSummary{Fetched: true}

	summary.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		summary.Description = strings.TrimSpace(desc)
	}

	doc.Find(`input[type="password"]`).Each(func(_ int, _ *goquery.Selection) {
		summary.HasLoginForm = true
	})

	doc.Find("script, style, noscript").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
	body := whitespacePattern.ReplaceAllString(strings.TrimSpace(doc.Find("body").Text()), " ")
	summary.BodyText = truncate(body, f.maxBodyChars)

	summary.HasPaymentForm = paymentTermPattern.MatchString(body) ||
		paymentTermPattern.MatchString(summary.Title)

	return summary
}
