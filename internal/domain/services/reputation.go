package services

import (
	"context"
	"time"

	"scamradar/internal/domain/models"
	"scamradar/internal/infrastructure/cache"
	"scamradar/pkg/logger"
	"scamradar/pkg/urlutil"
)

const reputationCacheTTL = 5 * time.Minute

// ReputationStore is the persistence read path the reputation service
// depends on.
type ReputationStore interface {
	IsWhitelisted(ctx context.Context, domains ...string) (bool, error)
	CheckBlocklist(ctx context.Context, domains ...string) (models.BlocklistMatch, error)
	LoadActivePatterns(ctx context.Context) ([]models.ScamPattern, error)
}

// ReputationService answers whitelist/blocklist lookups with a short-lived
// in-memory cache over the backing store. A store failure degrades to "no
// reputation signal", never to a wrong verdict.
type ReputationService struct {
	store  ReputationStore
	cache  *cache.TTLCache
	logger *logger.Logger
}

// NewReputationService creates a new reputation service
func NewReputationService(store ReputationStore, c *cache.TTLCache, log *logger.Logger) *ReputationService {
	if c == nil {
		c = cache.NewTTLCache(reputationCacheTTL)
	}
	return &ReputationService{
		store:  store,
		cache:  c,
		logger: log.WithComponent("reputation"),
	}
}

// IsWhitelisted reports whether the domain or its root domain is trusted.
func (s *ReputationService) IsWhitelisted(ctx context.Context, domain string) bool {
	key := string(models.ListWhitelist) + ":" + domain
	if v, ok := s.cache.Get(key); ok {
		return v.(bool)
	}

	if s.store == nil {
		return false
	}

	whitelisted, err := s.store.IsWhitelisted(ctx, lookupDomains(domain)...)
	if err != nil {
		s.logger.Warn().Err(err).Str("domain", domain).Msg("whitelist lookup failed")
		return false
	}

	s.cache.Set(key, whitelisted)
	return whitelisted
}

// CheckBlocklist reports whether the domain or its root domain is blocked,
// with the stored block reason. Store failure means "not blocked".
func (s *ReputationService) CheckBlocklist(ctx context.Context, domain string) models.BlocklistMatch {
	key := string(models.ListBlocklist) + ":" + domain
	if v, ok := s.cache.Get(key); ok {
		return v.(models.BlocklistMatch)
	}

	if s.store == nil {
		return models.BlocklistMatch{}
	}

	match, err := s.store.CheckBlocklist(ctx, lookupDomains(domain)...)
	if err != nil {
		s.logger.Warn().Err(err).Str("domain", domain).Msg("blocklist lookup failed")
		return models.BlocklistMatch{}
	}

	s.cache.Set(key, match)
	return match
}

// lookupDomains returns the exact domain plus its root domain when they
// differ, so subdomains of listed domains match.
func lookupDomains(domain string) []string {
	root := urlutil.RootDomain(domain)
	if root == domain || root == "" {
		return []string{domain}
	}
	return []string{domain, root}
}
