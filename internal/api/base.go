package api

import (
	"context"
	"strings"
	"time"

	"classdesk/internal/log"
	"classdesk/internal/prefs"
)

// PreferenceStore is the part of prefs.Store used to remember the API root.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ResolveBaseURL picks the API root. An explicit flag value wins and is
// saved for next time; then the saved preference; then the configured value;
// then DefaultBaseURL. store may be nil.
func ResolveBaseURL(ctx context.Context, flagValue, configured string, store PreferenceStore) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if v := strings.TrimSpace(flagValue); v != "" {
		if store != nil {
			if err := store.Set(ctx, prefs.KeyAPIBase, v); err != nil {
				log.Warn("api: failed to save base URL: %v", err)
			}
		}
		return v
	}

	if store != nil {
		saved, ok, err := store.Get(ctx, prefs.KeyAPIBase)
		if err != nil {
			log.Warn("api: failed to read saved base URL: %v", err)
		} else if ok && strings.TrimSpace(saved) != "" {
			return strings.TrimSpace(saved)
		}
	}

	if v := strings.TrimSpace(configured); v != "" {
		return v
	}
	return DefaultBaseURL
}
