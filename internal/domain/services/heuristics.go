package services

import (
	"fmt"
	"regexp"
	"strings"

	"scamradar/internal/domain/models"
)

var (
	casinoSuffixPattern = regexp.MustCompile(`(?i)\d{2,3}(vip|club|win|bet|game|slot)`)
	casinoPrefixPattern = regexp.MustCompile(`(?i)(vip|club|win|bet|game|slot)\d{2,3}`)
	luckyNumberPattern  = regexp.MustCompile(`68|88|99|789|888|666|777`)
	ipv4Pattern         = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
	cyrillicPattern     = regexp.MustCompile(`[а-яА-Я]`)
)

// HeuristicScorer computes a risk score from static rule tables only. Pure
// and synchronous, no I/O.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a new scorer
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score evaluates every rule against the URL and its domain. Contributions
// are additive and the sum is clamped to [0,100].
func (h *HeuristicScorer) Score(rawURL, domain string) models.HeuristicResult {
	score := 0
	var reasons []string

	urlLower := strings.ToLower(rawURL)
	domainLower := strings.ToLower(domain)

	if !strings.HasPrefix(urlLower, "https://") {
		score += 15
		reasons = append(reasons, "No HTTPS encryption")
	}

	if containsAny(domainLower, linkShorteners) {
		score += 25
		reasons = append(reasons, "URL shortener hides the real destination")
	}
	if containsAny(domainLower, bioLinkServices) {
		score += 30
		reasons = append(reasons, "Bio-link service, frequently abused for scam landing pages")
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(domainLower, tld) {
			score += 20
			reasons = append(reasons, fmt.Sprintf("Suspicious TLD: %s", tld))
			break
		}
	}

	// Brand impersonation: the brand name appears in the domain but the
	// domain is not the brand's own. Only the first brand counts.
	for _, brand := range brandKeywords {
		if !strings.Contains(domainLower, brand) {
			continue
		}
		if !matchesLegitimateBrandDomain(domainLower, brand) {
			score += 35
			reasons = append(reasons, fmt.Sprintf("Possible impersonation of %q", brand))
			break
		}
	}

	score, reasons = h.scoreGambling(urlLower, domainLower, score, reasons)

	// Structural casino naming (brand word plus numbers) is independent of
	// the vocabulary rule above and stacks with it.
	if casinoSuffixPattern.MatchString(domainLower) {
		score += 60
		reasons = append(reasons, "Casino-style naming pattern (number + gambling word)")
	}
	if casinoPrefixPattern.MatchString(domainLower) {
		score += 45
		reasons = append(reasons, "Casino-style naming pattern (gambling word + number)")
	}

	if luckyNumberPattern.MatchString(domainLower) {
		score += 15
		reasons = append(reasons, "Lucky numbers in domain")
	}

	if ipv4Pattern.MatchString(domain) {
		score += 30
		reasons = append(reasons, "IP address used instead of a domain")
	}

	if cyrillicPattern.MatchString(rawURL) {
		score += 40
		reasons = append(reasons, "Cyrillic characters spoofing Latin look-alikes")
	}

	if len(domain) > 40 {
		score += 10
		reasons = append(reasons, "Unusually long domain")
	}

	return models.HeuristicResult{Score: models.ClampScore(score), Reasons: reasons}
}

// scoreGambling grades gambling-keyword density in domain and URL.
func (h *HeuristicScorer) scoreGambling(urlLower, domainLower string, score int, reasons []string) (int, []string) {
	var hits []string
	for _, kw := range gamblingKeywords {
		if strings.Contains(domainLower, kw) || strings.Contains(urlLower, kw) {
			hits = append(hits, kw)
		}
	}

	switch {
	case len(hits) >= 3:
		score += 70
		reasons = append(reasons, "Gambling website (multiple gambling keywords)")
	case len(hits) == 2:
		score += 60
		reasons = append(reasons, "Gambling website (gambling keywords)")
	case len(hits) == 1:
		if strongCasinoTerms[hits[0]] {
			score += 50
		} else {
			score += 30
		}
		reasons = append(reasons, fmt.Sprintf("Gambling indicator: %s", hits[0]))
	}

	return score, reasons
}

// GamblingKeywordCount reports how many distinct gambling keywords appear
// in the domain. Used by the fusion layer's dead-site override.
func GamblingKeywordCount(domain string) int {
	domainLower := strings.ToLower(domain)
	count := 0
	for _, kw := range gamblingKeywords {
		if strings.Contains(domainLower, kw) {
			count++
		}
	}
	return count
}

// matchesLegitimateBrandDomain reports whether the domain is the brand's own
// registered domain or a subdomain of it.
func matchesLegitimateBrandDomain(domainLower, brand string) bool {
	for _, real := range []string{brand + ".com", brand + ".vn", brand + ".com.vn"} {
		if domainLower == real || strings.HasSuffix(domainLower, "."+real) {
			return true
		}
	}
	return false
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
