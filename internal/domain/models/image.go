package models

// ImageCategory classifies the outcome of an image analysis.
type ImageCategory string

const (
	ImageCategorySafe       ImageCategory = "safe"
	ImageCategorySuspicious ImageCategory = "suspicious"
	ImageCategoryScam       ImageCategory = "scam"
	ImageCategoryGambling   ImageCategory = "gambling"
	ImageCategoryPhishing   ImageCategory = "phishing"
	ImageCategoryUnknown    ImageCategory = "unknown"
)

// Scam pattern taxonomy. Matches the categories used by the pattern table
// in the reputation store.
const (
	PatternMoneyTransfer = "MONEY_TRANSFER"
	PatternFakeBank      = "FAKE_BANK"
	PatternPrize         = "PRIZE"
	PatternJob           = "JOB"
	PatternInvestment    = "INVESTMENT"
	PatternGambling      = "GAMBLING"
	PatternPhishing      = "PHISHING"
	PatternRomance       = "ROMANCE"
	PatternImpersonation = "IMPERSONATION"
	PatternLoan          = "LOAN"
)

// ScamPattern is a severity-weighted text rule applied to extracted or
// supplied message text.
type ScamPattern struct {
	ID          string `json:"id"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	Severity    int    `json:"severity"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
}

// ImageAnalysisResult is the verdict for an image analysis.
type ImageAnalysisResult struct {
	Score         int           `json:"score"`
	Confidence    float64       `json:"confidence"`
	Reasons       []string      `json:"reasons"`
	ExtractedText string        `json:"extracted_text"`
	Category      ImageCategory `json:"category"`
}
