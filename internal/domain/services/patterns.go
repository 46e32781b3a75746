package services

import (
	"context"
	"regexp"
	"time"

	"scamradar/internal/domain/models"
	"scamradar/internal/infrastructure/cache"
	"scamradar/pkg/logger"
)

const patternCacheTTL = 5 * time.Minute

// CompiledPattern is a scam pattern with its matcher compiled.
type CompiledPattern struct {
	Regex       *regexp.Regexp
	Description string
	Severity    int
	Category    string
}

// PatternProvider loads the active scam-pattern table from the reputation
// store on a short TTL cache. When the store is unavailable or empty it
// falls back to the built-in table, so the classifier never degrades to a
// no-op.
type PatternProvider struct {
	store    ReputationStore
	cache    *cache.TTLCache
	fallback []CompiledPattern
	logger   *logger.Logger
}

// NewPatternProvider creates a new pattern provider
func NewPatternProvider(store ReputationStore, c *cache.TTLCache, log *logger.Logger) *PatternProvider {
	if c == nil {
		c = cache.NewTTLCache(patternCacheTTL)
	}
	return &PatternProvider{
		store:    store,
		cache:    c,
		fallback: compilePatterns(fallbackPatterns),
		logger:   log.WithComponent("patterns"),
	}
}

// ActivePatterns returns the current pattern table, never empty.
func (p *PatternProvider) ActivePatterns(ctx context.Context) []CompiledPattern {
	const key = "active"
	if v, ok := p.cache.Get(key); ok {
		return v.([]CompiledPattern)
	}

	if p.store == nil {
		return p.fallback
	}

	raw, err := p.store.LoadActivePatterns(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("pattern load failed, using fallback table")
		return p.fallback
	}

	compiled := compilePatterns(raw)
	if len(compiled) == 0 {
		return p.fallback
	}

	p.cache.Set(key, compiled)
	return compiled
}

// compilePatterns compiles the matchers case-insensitively, skipping rows
// that fail to compile.
func compilePatterns(patterns []models.ScamPattern) []CompiledPattern {
	compiled := make([]CompiledPattern, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			continue
		}
		compiled = append(compiled, CompiledPattern{
			Regex:       re,
			Description: p.Description,
			Severity:    p.Severity,
			Category:    p.Category,
		})
	}
	return compiled
}

// fallbackPatterns covers the most reported Vietnamese scam phrasings.
var fallbackPatterns = []models.ScamPattern{
	{Pattern: `nhờ chuyển|chuyển giúp|chuyển hộ`, Description: "Request to transfer money on someone's behalf", Severity: 90, Category: models.PatternMoneyTransfer},
	{Pattern: `có banking không|dùng banking`, Description: "Asking whether the victim uses mobile banking", Severity: 85, Category: models.PatternMoneyTransfer},
	{Pattern: `cần gấp|gấp lắm|khẩn cấp`, Description: "Urgency pressure", Severity: 70, Category: models.PatternMoneyTransfer},
	{Pattern: `bank.*lỗi|ngân hàng.*lỗi`, Description: "Fake bank-error excuse", Severity: 95, Category: models.PatternFakeBank},
	{Pattern: `tài khoản.*khóa|tk.*bị khóa`, Description: "Fake account-locked notice", Severity: 95, Category: models.PatternFakeBank},
	{Pattern: `xác minh.*tài khoản|verify.*account`, Description: "Account verification demand", Severity: 90, Category: models.PatternFakeBank},
	{Pattern: `trúng thưởng|chúc mừng.*trúng`, Description: "Prize-winning notice", Severity: 85, Category: models.PatternPrize},
	{Pattern: `nộp phí.*nhận|đóng phí.*nhận`, Description: "Fee demanded to claim a prize", Severity: 95, Category: models.PatternPrize},
	{Pattern: `việc nhẹ.*lương cao|lương cao.*việc nhẹ`, Description: "Easy-work high-salary offer", Severity: 85, Category: models.PatternJob},
	{Pattern: `tuyển ctv|tuyển cộng tác viên`, Description: "Online collaborator recruitment", Severity: 80, Category: models.PatternJob},
	{Pattern: `đặt cọc|nạp tiền.*trước`, Description: "Upfront deposit demand", Severity: 95, Category: models.PatternJob},
	{Pattern: `lãi suất.*cao|lợi nhuận.*cao`, Description: "High-return promise", Severity: 90, Category: models.PatternInvestment},
	{Pattern: `cam kết.*lãi|đảm bảo.*lợi nhuận`, Description: "Guaranteed-profit claim", Severity: 95, Category: models.PatternInvestment},
	{Pattern: `casino|slot|poker|baccarat`, Description: "Online casino content", Severity: 90, Category: models.PatternGambling},
	{Pattern: `lô đề|xổ số|soi cầu`, Description: "Online lottery and numbers game", Severity: 90, Category: models.PatternGambling},
	{Pattern: `mã otp|mã xác nhận`, Description: "OTP code request", Severity: 100, Category: models.PatternPhishing},
	{Pattern: `mật khẩu|password`, Description: "Password request", Severity: 100, Category: models.PatternPhishing},
	{Pattern: `cmnd|cccd|căn cước`, Description: "National ID request", Severity: 80, Category: models.PatternPhishing},
	{Pattern: `vay.*nhanh|vay.*online`, Description: "Instant online loan offer", Severity: 75, Category: models.PatternLoan},
	{Pattern: `phí.*giải ngân|phí.*duyệt`, Description: "Disbursement-fee demand", Severity: 95, Category: models.PatternLoan},
}
