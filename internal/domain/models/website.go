package models

// ContentSummary is the normalized result of fetching a target page.
// Ephemeral, consumed by the content judge and the profiler only.
type ContentSummary struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	BodyText       string `json:"body_text"`
	HasLoginForm   bool   `json:"has_login_form"`
	HasPaymentForm bool   `json:"has_payment_form"`
	Fetched        bool   `json:"fetched"`
}

// WebsiteProfile is display-oriented enrichment derived from fetched
// content. It never influences the score or label.
type WebsiteProfile struct {
	Industry        string   `json:"industry"`
	Technologies    []string `json:"technologies"`
	TrustIndicators []string `json:"trust_indicators"`
	RiskIndicators  []string `json:"risk_indicators"`
}
