package models

import (
	"strings"
	"time"
)

// DefaultHistoryLimit caps how many turns the page and history endpoint return.
const DefaultHistoryLimit = 100

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the two known speakers.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Message is a single persisted turn. It is never updated in place.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateTurn checks a turn before it reaches a store.
func ValidateTurn(role Role, text string) error {
	if !role.Valid() {
		return &ValidationError{Field: "role", Message: "role must be user or assistant"}
	}
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "text is required"}
	}
	return nil
}
