package services

import (
	"regexp"
	"strings"

	"scamradar/internal/domain/models"
	"scamradar/pkg/logger"
)

// industryMinKeywordHits is how many keywords from one industry's set must
// appear before the page is classified into it.
const industryMinKeywordHits = 2

type industryProfile struct {
	name     string
	keywords []string
}

// Evaluated in order; the first industry reaching the hit threshold wins.
var industryProfiles = []industryProfile{
	{"gambling", []string{"casino", "slot", "poker", "baccarat", "lô đề", "xổ số", "cá cược", "cá độ", "nổ hũ", "game bài", "tài xỉu"}},
	{"banking", []string{"ngân hàng", "bank", "tài khoản", "chuyển tiền", "gửi tiết kiệm", "thẻ tín dụng", "internet banking", "mobile banking"}},
	{"ewallet", []string{"ví điện tử", "e-wallet", "momo", "zalopay", "vnpay", "thanh toán", "nạp tiền", "rút tiền"}},
	{"investment", []string{"đầu tư", "forex", "crypto", "bitcoin", "chứng khoán", "trading", "lợi nhuận", "lãi suất"}},
	{"ecommerce", []string{"mua sắm", "shopping", "giỏ hàng", "đặt hàng", "freeship", "khuyến mãi", "sale", "sản phẩm"}},
	{"news", []string{"tin tức", "news", "báo", "thời sự", "bài viết", "phóng sự", "chuyên mục"}},
	{"education", []string{"giáo dục", "trường", "đại học", "khóa học", "đào tạo", "sinh viên", "giảng viên"}},
	{"government", []string{"chính phủ", "ubnd", "công an", "thuế", "hành chính", "dịch vụ công"}},
	{"healthcare", []string{"bệnh viện", "y tế", "sức khỏe", "bác sĩ", "khám bệnh", "điều trị"}},
	{"job", []string{"tuyển dụng", "việc làm", "career", "ứng tuyển", "nhân sự", "lương"}},
	{"travel", []string{"du lịch", "travel", "khách sạn", "vé máy bay", "tour", "booking", "resort"}},
	{"realestate", []string{"bất động sản", "nhà đất", "căn hộ", "chung cư", "mua bán nhà", "cho thuê"}},
}

var techFingerprints = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Next.js", regexp.MustCompile(`(?i)__NEXT_DATA__|_next/static`)},
	{"React", regexp.MustCompile(`(?i)react`)},
	{"Vue", regexp.MustCompile(`(?i)__VUE__|v-app`)},
	{"Angular", regexp.MustCompile(`(?i)ng-app|angular`)},
	{"WordPress", regexp.MustCompile(`(?i)wp-content|wordpress`)},
	{"Shopify", regexp.MustCompile(`(?i)cdn\.shopify|shopify`)},
	{"Laravel", regexp.MustCompile(`(?i)laravel|csrf-token`)},
	{"Bootstrap", regexp.MustCompile(`(?i)bootstrap`)},
	{"Tailwind", regexp.MustCompile(`(?i)tailwind`)},
	{"jQuery", regexp.MustCompile(`(?i)jquery`)},
	{"Google Analytics", regexp.MustCompile(`(?i)google-analytics|gtag`)},
	{"Cloudflare", regexp.MustCompile(`(?i)cloudflare`)},
	{"reCAPTCHA", regexp.MustCompile(`(?i)recaptcha`)},
}

var (
	contactPattern = regexp.MustCompile(`(?i)contact|liên hệ|hotline|điện thoại|email`)
	privacyPattern = regexp.MustCompile(`(?i)privacy|chính sách bảo mật|điều khoản riêng tư`)
	termsPattern   = regexp.MustCompile(`(?i)terms|điều khoản|quy định`)
	socialPattern  = regexp.MustCompile(`(?i)facebook\.com|twitter\.com|instagram\.com|youtube\.com|zalo`)
)

// Profiler classifies fetched content into an industry and derives display
// trust/risk indicators. Enrichment only: its output never changes the
// score or label.
type Profiler struct {
	logger *logger.Logger
}

// NewProfiler creates a new website profiler
func NewProfiler(log *logger.Logger) *Profiler {
	return &Profiler{logger: log.WithComponent("profiler")}
}

// Profile inspects the content summary. An unfetched summary degrades
// silently to an unknown/empty profile.
func (p *Profiler) Profile(rawURL string, summary models.ContentSummary) models.WebsiteProfile {
	profile := models.WebsiteProfile{Industry: "unknown"}
	if !summary.Fetched {
		return profile
	}

	content := strings.ToLower(summary.Title + " " + summary.Description + " " + summary.BodyText)

	for _, ind := range industryProfiles {
		hits := 0
		for _, kw := range ind.keywords {
			if strings.Contains(content, kw) {
				hits++
			}
		}
		if hits >= industryMinKeywordHits {
			profile.Industry = ind.name
			break
		}
	}

	for _, tech := range techFingerprints {
		if tech.pattern.MatchString(content) {
			profile.Technologies = append(profile.Technologies, tech.name)
		}
	}

	hasSSL := strings.HasPrefix(strings.ToLower(rawURL), "https://")
	hasContact := contactPattern.MatchString(content)
	hasPrivacy := privacyPattern.MatchString(content)

	if hasSSL {
		profile.TrustIndicators = append(profile.TrustIndicators, "SSL certificate present")
	} else {
		profile.RiskIndicators = append(profile.RiskIndicators, "No HTTPS")
	}
	if summary.HasLoginForm && !hasSSL {
		profile.RiskIndicators = append(profile.RiskIndicators, "Login form without SSL")
	}
	if summary.HasPaymentForm && !hasSSL {
		profile.RiskIndicators = append(profile.RiskIndicators, "Payment form without SSL")
	}
	if profile.Industry == "gambling" {
		profile.RiskIndicators = append(profile.RiskIndicators, "Gambling content")
	}
	if hasContact {
		profile.TrustIndicators = append(profile.TrustIndicators, "Contact information present")
	} else {
		profile.RiskIndicators = append(profile.RiskIndicators, "No contact information")
	}
	if hasPrivacy {
		profile.TrustIndicators = append(profile.TrustIndicators, "Privacy policy present")
	} else {
		profile.RiskIndicators = append(profile.RiskIndicators, "No privacy policy")
	}
	if termsPattern.MatchString(content) {
		profile.TrustIndicators = append(profile.TrustIndicators, "Terms of service present")
	}
	if socialPattern.MatchString(content) {
		profile.TrustIndicators = append(profile.TrustIndicators, "Social media links present")
	}

	return profile
}
