package services

import (
	"strings"
	"testing"
)

func TestScoreHTTPOnly(t *testing.T) {
	h := NewHeuristicScorer()

	res := h.Score("http://example.org", "example.org")
	if res.Score != 15 {
		t.Errorf("score = %d, want 15", res.Score)
	}
	if len(res.Reasons) != 1 {
		t.Errorf("reasons = %v, want exactly one", res.Reasons)
	}
}

func TestScoreCleanHTTPS(t *testing.T) {
	h := NewHeuristicScorer()

	res := h.Score("https://example.org", "example.org")
	if res.Score != 0 {
		t.Errorf("score = %d, want 0", res.Score)
	}
	if len(res.Reasons) != 0 {
		t.Errorf("unexpected reasons: %v", res.Reasons)
	}
}

func TestScoreShortenerAndBioLink(t *testing.T) {
	h := NewHeuristicScorer()

	if res := h.Score("https://bit.ly/abc", "bit.ly"); res.Score != 25 {
		t.Errorf("shortener score = %d, want 25", res.Score)
	}
	if res := h.Score("https://linktr.ee/someone", "linktr.ee"); res.Score != 30 {
		t.Errorf("bio-link score = %d, want 30", res.Score)
	}
}

func TestScoreSuspiciousTLD(t *testing.T) {
	h := NewHeuristicScorer()

	res := h.Score("https://freestuff.tk", "freestuff.tk")
	if res.Score != 20 {
		t.Errorf("score = %d, want 20", res.Score)
	}
	found := false
	for _, r := range res.Reasons {
		if strings.Contains(r, ".tk") {
			found = true
		}
	}
	if !found {
		t.Errorf("reason should name the TLD, got %v", res.Reasons)
	}
}

func TestScoreBrandImpersonation(t *testing.T) {
	h := NewHeuristicScorer()

	tests := []struct {
		name   string
		url    string
		domain string
		want   int
	}{
		{"lookalike domain", "https://vietcombank-secure.top", "vietcombank-secure.top", 35 + 20},
		{"real domain", "https://vietcombank.com.vn", "vietcombank.com.vn", 0},
		{"real subdomain", "https://portal.vietcombank.com.vn", "portal.vietcombank.com.vn", 0},
		{"two brands no stacking", "https://shopee-lazada.top", "shopee-lazada.top", 35 + 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.Score(tt.url, tt.domain)
			if res.Score != tt.want {
				t.Errorf("score = %d, want %d (reasons %v)", res.Score, tt.want, res.Reasons)
			}
		})
	}
}

func TestScoreGamblingDensity(t *testing.T) {
	h := NewHeuristicScorer()

	tests := []struct {
		name   string
		url    string
		domain string
		want   int
	}{
		// casino + bet + slot: three distinct keywords
		{"three keywords", "https://casino-bet-slot.org", "casino-bet-slot.org", 70},
		// casino + poker
		{"two keywords", "https://casino-poker.org", "casino-poker.org", 60},
		{"one strong keyword", "https://grandcasino.org", "grandcasino.org", 50},
		{"one weak keyword", "https://jackpot-cafe.org", "jackpot-cafe.org", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.Score(tt.url, tt.domain)
			if res.Score != tt.want {
				t.Errorf("score = %d, want %d (reasons %v)", res.Score, tt.want, res.Reasons)
			}
		})
	}
}

func TestScoreCasinoNamingPatterns(t *testing.T) {
	h := NewHeuristicScorer()

	// "88vip": suffix pattern +60, keyword "vip" +30, lucky 88 +15; clamps.
	res := h.Score("https://88vip.org", "88vip.org")
	if res.Score != 100 {
		t.Errorf("suffix pattern score = %d, want 100 (reasons %v)", res.Score, res.Reasons)
	}

	// "win88": prefix pattern +45, keyword "win" +30, lucky 88 +15.
	res = h.Score("https://win88.org", "win88.org")
	if res.Score != 45+30+15 {
		t.Errorf("prefix pattern score = %d, want %d (reasons %v)", res.Score, 45+30+15, res.Reasons)
	}
}

func TestScoreLuckyNumbers(t *testing.T) {
	h := NewHeuristicScorer()

	res := h.Score("https://shop789.org", "shop789.org")
	if res.Score != 15 {
		t.Errorf("score = %d, want 15 (reasons %v)", res.Score, res.Reasons)
	}
}

func TestScoreIPDomain(t *testing.T) {
	h := NewHeuristicScorer()

	res := h.Score("https://103.45.67.89/login", "103.45.67.89")
	if res.Score != 30 {
		t.Errorf("score = %d, want 30 (reasons %v)", res.Score, res.Reasons)
	}
}

func TestScoreCyrillic(t *testing.T) {
	h := NewHeuristicScorer()

	res := h.Score("https://gооglе.com", "gооglе.com")
	if res.Score < 40 {
		t.Errorf("score = %d, want >= 40 (reasons %v)", res.Score, res.Reasons)
	}
}

func TestScoreLongDomain(t *testing.T) {
	h := NewHeuristicScorer()

	domain := strings.Repeat("a", 41) + ".org"
	res := h.Score("https://"+domain, domain)
	if res.Score != 10 {
		t.Errorf("score = %d, want 10 (reasons %v)", res.Score, res.Reasons)
	}
}

func TestScoreClamped(t *testing.T) {
	h := NewHeuristicScorer()

	// http + .club TLD + three gambling keywords + naming patterns pile up
	// well past 100.
	res := h.Score("http://casino-bet88slot.club", "casino-bet88slot.club")
	if res.Score != 100 {
		t.Errorf("score = %d, want clamp at 100", res.Score)
	}
}

func TestScoreHighRiskExample(t *testing.T) {
	h := NewHeuristicScorer()

	// http +15, .tk +20, brand impersonation +35.
	res := h.Score("http://vietcombank-secure-login.tk", "vietcombank-secure-login.tk")
	if res.Score < 70 {
		t.Errorf("score = %d, want >= 70 (reasons %v)", res.Score, res.Reasons)
	}
}

func TestGamblingKeywordCount(t *testing.T) {
	if got := GamblingKeywordCount("casino-bet-slot.org"); got < 3 {
		t.Errorf("count = %d, want >= 3", got)
	}
	if got := GamblingKeywordCount("example.org"); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
}
