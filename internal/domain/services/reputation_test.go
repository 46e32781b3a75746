package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"scamradar/internal/domain/models"
	"scamradar/internal/infrastructure/cache"
	"scamradar/pkg/logger"
)

type mockStore struct {
	whitelist map[string]bool
	blocklist map[string]string
	patterns  []models.ScamPattern
	err       error

	whitelistCalls int
	blocklistCalls int
	patternCalls   int
}

func (m *mockStore) IsWhitelisted(_ context.Context, domains ...string) (bool, error) {
	m.whitelistCalls++
	if m.err != nil {
		return false, m.err
	}
	for _, d := range domains {
		if m.whitelist[d] {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) CheckBlocklist(_ context.Context, domains ...string) (models.BlocklistMatch, error) {
	m.blocklistCalls++
	if m.err != nil {
		return models.BlocklistMatch{}, m.err
	}
	for _, d := range domains {
		if reason, ok := m.blocklist[d]; ok {
			return models.BlocklistMatch{Blocked: true, Reason: reason}, nil
		}
	}
	return models.BlocklistMatch{}, nil
}

func (m *mockStore) LoadActivePatterns(_ context.Context) ([]models.ScamPattern, error) {
	m.patternCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.patterns, nil
}

func TestIsWhitelistedRootDomainMatch(t *testing.T) {
	store := &mockStore{whitelist: map[string]bool{"zalo.me": true}}
	svc := NewReputationService(store, cache.NewTTLCache(time.Minute), logger.NewNop())

	if !svc.IsWhitelisted(context.Background(), "chat.zalo.me") {
		t.Error("subdomain of whitelisted root should match")
	}
	if svc.IsWhitelisted(context.Background(), "evil.example.org") {
		t.Error("unlisted domain should not match")
	}
}

func TestCheckBlocklistReason(t *testing.T) {
	store := &mockStore{blocklist: map[string]string{"scam.example.org": "reported phishing campaign"}}
	svc := NewReputationService(store, cache.NewTTLCache(time.Minute), logger.NewNop())

	match := svc.CheckBlocklist(context.Background(), "scam.example.org")
	if !match.Blocked {
		t.Fatal("expected blocked")
	}
	if match.Reason != "reported phishing campaign" {
		t.Errorf("reason = %q", match.Reason)
	}
}

func TestReputationCachesLookups(t *testing.T) {
	store := &mockStore{whitelist: map[string]bool{"example.org": true}}
	svc := NewReputationService(store, cache.NewTTLCache(time.Minute), logger.NewNop())

	svc.IsWhitelisted(context.Background(), "example.org")
	svc.IsWhitelisted(context.Background(), "example.org")
	if store.whitelistCalls != 1 {
		t.Errorf("store called %d times, want 1", store.whitelistCalls)
	}
}

func TestReputationStoreFailureDegrades(t *testing.T) {
	store := &mockStore{err: errors.New("connection refused")}
	svc := NewReputationService(store, cache.NewTTLCache(time.Minute), logger.NewNop())

	if svc.IsWhitelisted(context.Background(), "example.org") {
		t.Error("store failure must not whitelist")
	}
	if svc.CheckBlocklist(context.Background(), "example.org").Blocked {
		t.Error("store failure must not block")
	}
}

func TestReputationNilStore(t *testing.T) {
	svc := NewReputationService(nil, cache.NewTTLCache(time.Minute), logger.NewNop())

	if svc.IsWhitelisted(context.Background(), "example.org") {
		t.Error("nil store must not whitelist")
	}
	if svc.CheckBlocklist(context.Background(), "example.org").Blocked {
		t.Error("nil store must not block")
	}
}
