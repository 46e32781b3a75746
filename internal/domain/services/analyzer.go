package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"scamradar/internal/domain/models"
	"scamradar/internal/domain/services/ai"
	"scamradar/internal/infrastructure/cache"
	"scamradar/pkg/logger"
	"scamradar/pkg/urlutil"
)

// Calibration defaults. Empirically tuned; overridable via AnalyzerConfig.
const (
	defaultFetchedWeight   = 0.7
	defaultUnfetchedWeight = 0.4
	defaultOverrideScore   = 95
	defaultMaxReasons      = 8
	defaultVerdictCacheTTL = time.Hour
	defaultMaxImageBytes   = 10 << 20
)

// ErrImageTooLarge rejects image payloads above the configured size cap.
var ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")

// AnalyzerConfig carries the fusion calibration constants. Zero values use
// the defaults above.
type AnalyzerConfig struct {
	FetchedWeight    float64
	UnfetchedWeight  float64
	OverrideScore    int
	SafeThreshold    int
	CautionThreshold int
	MaxReasons       int
	VerdictCacheTTL  time.Duration
	MaxImageBytes    int
}

// ContentJudge is the judge capability the analyzer depends on.
type ContentJudge interface {
	Judge(ctx context.Context, rawURL, domain string) ai.JudgeOutcome
}

// ScanRecorder persists analysis outcomes. Optional collaborator.
type ScanRecorder interface {
	Record(ctx context.Context, result *models.AnalysisResult) error
	RecordImage(ctx context.Context, result *models.ImageAnalysisResult, imageHash string) error
}

// Analyzer is the signal fusion core: it orchestrates reputation
// short-circuits, the concurrent heuristic and judge branches, the
// dead-gambling override, the weighted blend and labeling.
type Analyzer struct {
	config     AnalyzerConfig
	reputation *ReputationService
	heuristics *HeuristicScorer
	judge      ContentJudge
	classifier *ImageClassifier
	profiler   *Profiler
	recorder   ScanRecorder
	verdicts   *cache.RedisCache
	logger     *logger.Logger
}

// NewAnalyzer creates the analyzer. recorder and verdicts may be nil; both
// degrade to no-ops.
func NewAnalyzer(
	cfg AnalyzerConfig,
	reputation *ReputationService,
	judge ContentJudge,
	classifier *ImageClassifier,
	recorder ScanRecorder,
	verdicts *cache.RedisCache,
	log *logger.Logger,
) *Analyzer {
	if cfg.FetchedWeight == 0 {
		cfg.FetchedWeight = defaultFetchedWeight
	}
	if cfg.UnfetchedWeight == 0 {
		cfg.UnfetchedWeight = defaultUnfetchedWeight
	}
	if cfg.OverrideScore == 0 {
		cfg.OverrideScore = defaultOverrideScore
	}
	if cfg.SafeThreshold == 0 {
		cfg.SafeThreshold = models.DefaultSafeThreshold
	}
	if cfg.CautionThreshold == 0 {
		cfg.CautionThreshold = models.DefaultCautionThreshold
	}
	if cfg.MaxReasons == 0 {
		cfg.MaxReasons = defaultMaxReasons
	}
	if cfg.VerdictCacheTTL == 0 {
		cfg.VerdictCacheTTL = defaultVerdictCacheTTL
	}
	if cfg.MaxImageBytes == 0 {
		cfg.MaxImageBytes = defaultMaxImageBytes
	}

	return &Analyzer{
		config:     cfg,
		reputation: reputation,
		heuristics: NewHeuristicScorer(),
		judge:      judge,
		classifier: classifier,
		profiler:   NewProfiler(log),
		recorder:   recorder,
		verdicts:   verdicts,
		logger:     log.WithComponent("analyzer"),
	}
}

// AnalyzeURL runs the full pipeline for a URL. Invalid input is rejected
// up front; once analysis begins a result is always produced.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*models.AnalysisResult, error) {
	normalized, err := urlutil.Validate(rawURL)
	if err != nil {
		return nil, err
	}
	domain := urlutil.ExtractDomain(normalized)

	if cached := a.cachedVerdict(ctx, normalized); cached != nil {
		return cached, nil
	}

	result := a.analyze(ctx, normalized, domain)
	result.URL = rawURL

	a.storeVerdict(ctx, normalized, result)
	if a.recorder != nil {
		if err := a.recorder.Record(ctx, result); err != nil {
			a.logger.Warn().Err(err).Str("url", rawURL).Msg("failed to record scan")
		}
	}

	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, normalized, domain string) *models.AnalysisResult {
	now := time.Now().UTC()

	// Reputation short-circuits skip all further analysis.
	if a.reputation != nil {
		if a.reputation.IsWhitelisted(ctx, domain) {
			return &models.AnalysisResult{
				Domain:       domain,
				Score:        0,
				Label:        models.LabelSafe,
				Reasons:      []string{"Trusted domain"},
				AIConfidence: 1.0,
				AnalyzedAt:   now,
			}
		}
		if match := a.reputation.CheckBlocklist(ctx, domain); match.Blocked {
			reason := match.Reason
			if reason == "" {
				reason = "Domain is blocked"
			}
			return &models.AnalysisResult{
				Domain:         domain,
				Score:          100,
				Label:          models.LabelDangerous,
				Reasons:        []string{fmt.Sprintf("Blocked: %s", reason)},
				AIConfidence:   1.0,
				HeuristicScore: 100,
				AIScore:        100,
				AnalyzedAt:     now,
			}
		}
	}

	// Heuristics and the content judge are independent; run them
	// concurrently so total latency tracks the slower branch.
	heuristicCh := make(chan models.HeuristicResult, 1)
	go func() {
		heuristicCh <- a.heuristics.Score(normalized, domain)
	}()

	outcome := a.judge.Judge(ctx, normalized, domain)
	heuristic := <-heuristicCh
	verdict := outcome.Verdict

	// An unreachable domain carrying gambling vocabulary is high-confidence
	// evidence of a defunct or blocked illegal site. Short-circuits the
	// blend entirely.
	if !verdict.Reachable && GamblingKeywordCount(domain) > 0 {
		reasons := append([]string{"Unreachable domain with gambling indicators"}, heuristic.Reasons...)
		return &models.AnalysisResult{
			Domain:         domain,
			Score:          a.config.OverrideScore,
			Label:          models.LabelDangerous,
			Reasons:        dedupeReasons(reasons, a.config.MaxReasons),
			AIConfidence:   verdict.Confidence,
			HeuristicScore: heuristic.Score,
			AIScore:        verdict.Score,
			AnalyzedAt:     now,
		}
	}

	// The judge is trusted more when it actually saw the page.
	w := a.config.UnfetchedWeight
	if verdict.Reachable {
		w = a.config.FetchedWeight
	}
	score := models.ClampScore(int(math.Round(float64(heuristic.Score)*(1-w) + float64(verdict.Score)*w)))

	reasons := dedupeReasons(append(append([]string{}, heuristic.Reasons...), verdict.Reasons...), a.config.MaxReasons)
	label := models.LabelForScore(score, a.config.SafeThreshold, a.config.CautionThreshold)
	if len(reasons) == 0 {
		if label == models.LabelSafe {
			reasons = append(reasons, "No issues detected")
		} else {
			reasons = append(reasons, "Caution advised")
		}
	}

	return &models.AnalysisResult{
		Domain:         domain,
		Score:          score,
		Label:          label,
		Reasons:        reasons,
		AIConfidence:   verdict.Confidence,
		HeuristicScore: heuristic.Score,
		AIScore:        verdict.Score,
		AnalyzedAt:     now,
	}
}

// AnalyzeImage classifies an image and/or its supplied text. At least one
// of the two inputs must be present, and the image must fit the size cap.
func (a *Analyzer) AnalyzeImage(ctx context.Context, imageData []byte, manualText string) (*models.ImageAnalysisResult, error) {
	if len(imageData) == 0 && manualText == "" {
		return nil, fmt.Errorf("image or text required")
	}
	if len(imageData) > a.config.MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	if a.classifier == nil {
		return nil, fmt.Errorf("image analysis is not configured")
	}

	result := a.classifier.Classify(ctx, imageData, manualText)

	if a.recorder != nil {
		if err := a.recorder.RecordImage(ctx, &result, contentHash(imageData, manualText)); err != nil {
			a.logger.Warn().Err(err).Msg("failed to record image scan")
		}
	}
	return &result, nil
}

// contentHash keys an image scan by its payload, falling back to the text
// for text-only requests.
func contentHash(imageData []byte, manualText string) string {
	if len(imageData) == 0 {
		imageData = []byte(manualText)
	}
	hash := sha256.Sum256(imageData)
	return hex.EncodeToString(hash[:])
}

// ProfileURL returns display enrichment for an already-judged URL. Reuses
// the judge's cached content summary, so it does not refetch.
func (a *Analyzer) ProfileURL(ctx context.Context, rawURL string) (*models.WebsiteProfile, error) {
	normalized, err := urlutil.Validate(rawURL)
	if err != nil {
		return nil, err
	}
	domain := urlutil.ExtractDomain(normalized)

	outcome := a.judge.Judge(ctx, normalized, domain)
	profile := a.profiler.Profile(normalized, outcome.Content)
	return &profile, nil
}

func (a *Analyzer) cachedVerdict(ctx context.Context, normalized string) *models.AnalysisResult {
	if a.verdicts == nil {
		return nil
	}
	var result models.AnalysisResult
	if err := a.verdicts.GetJSON(ctx, verdictKey(normalized), &result); err != nil {
		return nil
	}
	return &result
}

func (a *Analyzer) storeVerdict(ctx context.Context, normalized string, result *models.AnalysisResult) {
	if a.verdicts == nil {
		return
	}
	if err := a.verdicts.SetJSON(ctx, verdictKey(normalized), result, a.config.VerdictCacheTTL); err != nil {
		a.logger.Warn().Err(err).Msg("failed to cache verdict")
	}
}

func verdictKey(normalized string) string {
	hash := sha256.Sum256([]byte(normalized))
	return cache.KeyVerdictPrefix + hex.EncodeToString(hash[:])
}
