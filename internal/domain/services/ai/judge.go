package ai

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"scamradar/internal/domain/models"
	"scamradar/internal/infrastructure/cache"
	"scamradar/pkg/logger"
)

const (
	judgeCacheTTL     = 5 * time.Minute
	judgeCacheMaxSize = 500
	defaultConfidence = 0.8
	neutralScore      = 50
)

// ChatClient is the inference capability the judge depends on.
type ChatClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// JudgeOutcome bundles the verdict with the content summary it was based
// on, so callers can reuse the fetched content without a second fetch.
type JudgeOutcome struct {
	Verdict models.JudgeVerdict
	Content models.ContentSummary
}

// ContentJudge fetches a page and asks the inference endpoint to classify
// it. Any endpoint failure yields a neutral verdict so the blended score
// leans on heuristics instead of swinging toward either extreme.
type ContentJudge struct {
	client  ChatClient
	fetcher *Fetcher
	cache   *cache.TTLCache
	logger  *logger.Logger
}

// NewContentJudge creates a new content judge
func NewContentJudge(client ChatClient, fetcher *Fetcher, c *cache.TTLCache, log *logger.Logger) *ContentJudge {
	if c == nil {
		c = cache.NewBoundedTTLCache(judgeCacheTTL, judgeCacheMaxSize)
	}
	return &ContentJudge{
		client:  client,
		fetcher: fetcher,
		cache:   c,
		logger:  log.WithComponent("content-judge"),
	}
}

// Judge fetches the URL and classifies it. Results are cached per URL.
func (j *ContentJudge) Judge(ctx context.Context, rawURL, domain string) JudgeOutcome {
	if v, ok := j.cache.Get(rawURL); ok {
		return v.(JudgeOutcome)
	}

	summary := j.fetcher.Fetch(ctx, rawURL)
	verdict := j.judgeContent(ctx, rawURL, domain, summary)

	outcome := JudgeOutcome{Verdict: verdict, Content: summary}
	j.cache.Set(rawURL, outcome)
	return outcome
}

func (j *ContentJudge) judgeContent(ctx context.Context, rawURL, domain string, summary models.ContentSummary) models.JudgeVerdict {
	if j.client == nil {
		return neutralVerdict(summary.Fetched, "content analysis unavailable")
	}

	prompt := buildJudgePrompt(rawURL, domain, summary)
	response, err := j.client.Chat(ctx, []Message{NewTextMessage("user", prompt)})
	if err != nil {
		j.logger.Warn().Err(err).Str("url", rawURL).Msg("content judge call failed")
		return neutralVerdict(summary.Fetched, "content analysis unavailable")
	}

	var parsed struct {
		Score      int      `json:"score"`
		Confidence *float64 `json:"confidence"`
		Category   string   `json:"category"`
		Reasons    []string `json:"reasons"`
	}
	if !ExtractObject(response, &parsed) {
		j.logger.Warn().Str("url", rawURL).Msg("unparsable content judge response")
		return neutralVerdict(summary.Fetched, "content analysis returned no usable verdict")
	}

	confidence := defaultConfidence
	if parsed.Confidence != nil {
		confidence = *parsed.Confidence
	}
	category := parsed.Category
	if category == "" {
		category = "unknown"
	}

	return models.JudgeVerdict{
		Score:      models.ClampScore(parsed.Score),
		Confidence: confidence,
		Category:   category,
		Reasons:    parsed.Reasons,
		Reachable:  summary.Fetched,
	}
}

func neutralVerdict(reachable bool, reason string) models.JudgeVerdict {
	return models.JudgeVerdict{
		Score:      neutralScore,
		Confidence: 0,
		Category:   "unknown",
		Reasons:    []string{reason},
		Reachable:  reachable,
	}
}

func buildJudgePrompt(rawURL, domain string, summary models.ContentSummary) string {
	contentInfo := "WEBSITE UNREACHABLE"
	if summary.Fetched {
		contentInfo = fmt.Sprintf(
			"TITLE: %s\nDESC: %s\nTEXT: %s\nLOGIN_FORM: %v\nPAYMENT_FORM: %v",
			summary.Title, summary.Description, truncate(summary.BodyText, 2000),
			summary.HasLoginForm, summary.HasPaymentForm,
		)
	}

	return fmt.Sprintf(`Analyze this website for Vietnamese online scams. Respond with JSON only:
{"score":0-100,"confidence":0.0-1.0,"category":"...","reasons":["..."]}

Steps:
1. Identify what the site or business is and its stated function.
2. Classify into one category: gambling, banking_phishing, investment, credential_theft, job_scam, legitimate, unknown.
3. Score in exactly one band: 0-39 safe, 40-79 suspicious, 80-100 dangerous.

Scoring guide:
- Gambling/casino/lottery: 80-100
- Bank or e-wallet phishing: 80-100
- Investment/forex/crypto fraud: 70-90
- Unusual OTP or password requests: 60-80
- Fake job or easy-money offers: 50-70
- Ordinary website: 0-30

URL: %s
DOMAIN: %s
%s`, rawURL, domain, contentInfo)
}

// truncate cuts s to at most n bytes, backing the cut up to a rune
// boundary so multibyte Vietnamese text is never split mid-rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
