package database

import (
	"encoding/json"
	"fmt"
)

const (
	shortcutNamespace = "user shortcuts"
	welcomeNamespace  = "welcome flag"
)

// MaxShortcuts caps how many entries a user can pin to the console home.
const MaxShortcuts = 8

// DefaultShortcuts is what a user sees before customizing anything.
var DefaultShortcuts = []string{"rate-query", "create-inquiry", "create-quote", "space-booking"}

// shortcutCatalog enumerates every function the console can pin. Unknown
// keys are rejected on save so a stale client cannot poison the stored list.
var shortcutCatalog = map[string]struct{}{
	"rate-query":                {},
	"rate-maintenance":          {},
	"inquiry-management":        {},
	"quote-management":          {},
	"space-query":               {},
	"space-booking":             {},
	"space-statistics":          {},
	"contract-management":       {},
	"surcharge-maintenance":     {},
	"pricing-rule-maintenance":  {},
	"create-inquiry":            {},
	"create-quote":              {},
	"order-management":          {},
	"route-maintenance":         {},
	"schedule-query":            {},
	"port-management":           {},
	"carrier-management":        {},
	"country-region-management": {},
	"user-management":           {},
	"employee-management":       {},
	"permission-management":     {},
	"company-management":        {},
	"customer-management":       {},
	"contact-management":        {},
	"ai-customer-acquisition":   {},
	"ai-marketing":              {},
}

func ValidShortcutKey(key string) bool {
	_, ok := shortcutCatalog[key]
	return ok
}

// PreferenceStore keeps per-user console preferences in Redis. Entries never
// expire; a save simply overwrites the previous list.
type PreferenceStore struct {
	db RedisRepository
}

func NewPreferenceStore(db RedisRepository) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// GetShortcuts returns the user's pinned shortcut keys, falling back to the
// defaults for a user who never saved any.
func (p *PreferenceStore) GetShortcuts(userID string) ([]string, error) {
	stored, ok := p.db.Get(shortcutNamespace, userID)
	if !ok {
		return DefaultShortcuts, nil
	}
	var keys []string
	if err := json.Unmarshal(stored, &keys); err != nil {
		return nil, fmt.Errorf("corrupt shortcut list for user %s: %w", userID, err)
	}
	return keys, nil
}

func (p *PreferenceStore) SaveShortcuts(userID string, keys []string) error {
	if len(keys) > MaxShortcuts {
		return fmt.Errorf("at most %d shortcuts allowed, got %d", MaxShortcuts, len(keys))
	}
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if !ValidShortcutKey(key) {
			return fmt.Errorf("unknown shortcut key %q", key)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate shortcut key %q", key)
		}
		seen[key] = struct{}{}
	}
	payload, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return p.db.Put(shortcutNamespace, userID, payload, 0)
}

func (p *PreferenceStore) WelcomeSeen(userID string) bool {
	_, ok := p.db.Get(welcomeNamespace, userID)
	return ok
}

func (p *PreferenceStore) MarkWelcomeSeen(userID string) error {
	return p.db.Put(welcomeNamespace, userID, []byte("1"), 0)
}
