package services

import (
	"context"
	"math"
	"unicode/utf8"

	"scamradar/internal/domain/models"
	"scamradar/internal/domain/services/ai"
	"scamradar/pkg/logger"
)

const (
	maxPatternReasons = 6
	maxImageReasons   = 8
	maxExtractedText  = 500

	visionConfidence  = 0.85
	patternConfidence = 0.6
)

// VisionClient is the vision inference capability the classifier depends on.
type VisionClient interface {
	Judge(ctx context.Context, imageData []byte) (ai.VisionVerdict, bool)
}

// ImageClassifier scores images through two independent paths: a vision
// judge and a severity-weighted text-pattern match. The final score is the
// maximum of the two, not their sum, since both paths often detect the same
// scam.
type ImageClassifier struct {
	vision   VisionClient
	patterns *PatternProvider
	logger   *logger.Logger
}

// NewImageClassifier creates a new image classifier
func NewImageClassifier(vision VisionClient, patterns *PatternProvider, log *logger.Logger) *ImageClassifier {
	return &ImageClassifier{
		vision:   vision,
		patterns: patterns,
		logger:   log.WithComponent("image-classifier"),
	}
}

// Classify analyzes an image and any user-supplied text. Either input may
// be empty, but not both; callers validate that before analysis begins.
func (c *ImageClassifier) Classify(ctx context.Context, imageData []byte, manualText string) models.ImageAnalysisResult {
	var (
		visionScore int
		visionOK    bool
		visionText  string
		reasons     []string
	)

	if c.vision != nil && len(imageData) > 0 {
		verdict, ok := c.vision.Judge(ctx, imageData)
		if ok {
			visionOK = true
			visionScore = verdict.Score
			if verdict.Reason != "" {
				reasons = append(reasons, verdict.Reason)
			}
			visionText = verdict.ExtractedText
			if visionText == "" {
				visionText = verdict.Reason
			}
		}
	}

	// The pattern path scores the union of the user's caption and what the
	// vision model read off the image, so a short caption cannot mask a
	// category the extracted text would have matched.
	patternResult := c.scoreText(ctx, joinText(manualText, visionText))
	reasons = append(reasons, patternResult.reasons...)

	extractedText := manualText
	if extractedText == "" {
		extractedText = visionText
	}

	score := visionScore
	if patternResult.score > score {
		score = patternResult.score
	}
	score = models.ClampScore(score)

	category := deriveCategory(score, patternResult.categories)

	confidence := patternConfidence
	if visionOK {
		confidence = visionConfidence
	}

	reasons = dedupeReasons(reasons, maxImageReasons)
	if len(reasons) == 0 {
		if score <= 20 {
			reasons = append(reasons, "No clear scam indicators detected")
		} else {
			reasons = append(reasons, "Content needs further review")
		}
	}

	extractedText = truncateText(extractedText, maxExtractedText)

	return models.ImageAnalysisResult{
		Score:         score,
		Confidence:    confidence,
		Reasons:       reasons,
		ExtractedText: extractedText,
		Category:      category,
	}
}

type patternScore struct {
	score      int
	reasons    []string
	categories []string
}

// scoreText matches the text against the pattern table. Only the first
// match per category contributes; multiple distinct categories compound
// super-linearly via flat bonuses.
func (c *ImageClassifier) scoreText(ctx context.Context, text string) patternScore {
	if len(text) < 3 {
		return patternScore{}
	}

	var (
		score      float64
		reasons    []string
		categories []string
		matched    = map[string]bool{}
	)

	for _, p := range c.patterns.ActivePatterns(ctx) {
		if matched[p.Category] || !p.Regex.MatchString(text) {
			continue
		}
		matched[p.Category] = true
		score += float64(p.Severity) * 0.5
		reasons = append(reasons, p.Description)
		categories = append(categories, p.Category)
		if len(reasons) >= maxPatternReasons {
			break
		}
	}

	if len(reasons) >= 2 {
		score += 15
	}
	if len(reasons) >= 4 {
		score += 20
	}

	return patternScore{
		score:      models.ClampScore(int(math.Round(score))),
		reasons:    reasons,
		categories: categories,
	}
}

// categoryRules is evaluated top-down; the first rule that applies wins.
var categoryRules = []struct {
	applies  func(score int, categories []string) bool
	category models.ImageCategory
}{
	{func(_ int, cats []string) bool { return containsString(cats, models.PatternGambling) }, models.ImageCategoryGambling},
	{func(_ int, cats []string) bool { return containsString(cats, models.PatternPhishing) }, models.ImageCategoryPhishing},
	{func(score int, _ []string) bool { return score >= 60 }, models.ImageCategoryScam},
	{func(score int, _ []string) bool { return score >= 30 }, models.ImageCategorySuspicious},
	{func(score int, _ []string) bool { return score <= 15 }, models.ImageCategorySafe},
}

func deriveCategory(score int, categories []string) models.ImageCategory {
	for _, rule := range categoryRules {
		if rule.applies(score, categories) {
			return rule.category
		}
	}
	return models.ImageCategoryUnknown
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}

// truncateText cuts s to at most n bytes, backing up to a rune boundary so
// multibyte text is never split mid-rune.
func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func dedupeReasons(reasons []string, limit int) []string {
	seen := make(map[string]bool, len(reasons))
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out
}
