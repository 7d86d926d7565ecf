// Package store persists named stopword lists.
package store

import (
	"context"
	"strings"
	"time"
)

// DefaultStoplist is the list name used when none is given.
const DefaultStoplist = "default"

// Store is the interface for persisting stopword lists
type Store interface {
	Close() error

	// Stoplist returns the words of a list in their stored order.
	// A missing list yields internalerr.ErrNotFound.
	Stoplist(ctx context.Context, name string) ([]string, error)

	// UpsertStoplist replaces the words of a list, creating it if needed.
	UpsertStoplist(ctx context.Context, name string, tokens []string) error

	// Stoplists describes every stored list, ordered by name.
	Stoplists(ctx context.Context) ([]StoplistInfo, error)
}

// StoplistInfo describes a stored list
type StoplistInfo struct {
	Name      string
	Count     int
	UpdatedAt time.Time
}

// Normalize lowercases and trims tokens, dropping empties and repeats
// while keeping the first occurrence's position.
func Normalize(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
