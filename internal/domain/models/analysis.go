package models

import "time"

// Label is the discrete verdict derived from a risk score.
type Label string

const (
	LabelSafe      Label = "SAFE"
	LabelCaution   Label = "CAUTION"
	LabelDangerous Label = "DANGEROUS"
)

// Default label thresholds. The analyzer may override these from config.
const (
	DefaultSafeThreshold    = 30
	DefaultCautionThreshold = 60
)

// LabelForScore maps a clamped score onto a label using the given thresholds.
func LabelForScore(score, safeMax, cautionMax int) Label {
	switch {
	case score <= safeMax:
		return LabelSafe
	case score <= cautionMax:
		return LabelCaution
	default:
		return LabelDangerous
	}
}

// AnalysisResult is the verdict for a single URL analysis. Constructed once
// per request and never mutated after.
type AnalysisResult struct {
	URL            string    `json:"url"`
	Domain         string    `json:"domain"`
	Score          int       `json:"score"`
	Label          Label     `json:"label"`
	Reasons        []string  `json:"reasons"`
	AIConfidence   float64   `json:"ai_confidence"`
	HeuristicScore int       `json:"heuristic_score"`
	AIScore        int       `json:"ai_score"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}

// HeuristicResult is the output of the rule scorer before fusion.
type HeuristicResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// JudgeVerdict is the parsed output of the content judge.
type JudgeVerdict struct {
	Score      int      `json:"score"`
	Confidence float64  `json:"confidence"`
	Category   string   `json:"category"`
	Reasons    []string `json:"reasons"`
	Reachable  bool     `json:"reachable"`
}

// ClampScore bounds a score into [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
