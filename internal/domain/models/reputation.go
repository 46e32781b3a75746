package models

import (
	"time"

	"github.com/google/uuid"
)

// ListType distinguishes the two reputation sets.
type ListType string

const (
	ListWhitelist ListType = "WHITELIST"
	ListBlocklist ListType = "BLOCKLIST"
)

// ReputationEntry is a domain row in either list.
type ReputationEntry struct {
	ID        uuid.UUID `json:"id"`
	Domain    string    `json:"domain"`
	ListType  ListType  `json:"list_type"`
	Reason    string    `json:"reason,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// BlocklistMatch is the result of a blocklist lookup.
type BlocklistMatch struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}
