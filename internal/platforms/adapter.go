// Package platforms contains the capability interface the publishing core
// depends on, one concrete adapter per external platform, and the registry
// that constructs adapters from configuration at startup.
package platforms

import (
	"context"
	"time"

	"github.com/jonesrussell/content-publisher/internal/models"
)

// Outcome is the result of a single platform operation. Transport failures
// (timeouts, non-2xx responses) are reported as failed outcomes with a
// human-readable message, never as errors.
type Outcome struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	ContentID   string     `json:"content_id,omitempty"`
	URL         string     `json:"url,omitempty"`
	Errors      []string   `json:"errors,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Adapter is the contract every platform implementation provides. All
// network calls honor the context and the adapter's configured timeout.
type Adapter interface {
	// Name returns the platform identifier, e.g. "webflow".
	Name() string

	// Publish creates the content on the platform. Options are
	// platform-defined and forwarded opaquely; adapters only inspect the
	// keys they understand.
	Publish(ctx context.Context, content *models.Content, options map[string]any) (*Outcome, error)

	// Update replaces previously published content by platform content ID.
	Update(ctx context.Context, contentID string, content *models.Content, options map[string]any) (*Outcome, error)

	// Delete removes published content. Returns true when the platform
	// confirmed the deletion.
	Delete(ctx context.Context, contentID string) (bool, error)

	// Get fetches the raw platform record for published content, or nil
	// when it does not exist.
	Get(ctx context.Context, contentID string) (map[string]any, error)

	// TestConnection reports whether the platform API is reachable with
	// the configured credentials.
	TestConnection(ctx context.Context) bool

	// RequiredConfigFields lists the credential fields that must be
	// present for the adapter to be usable.
	RequiredConfigFields() []string

	// IsConfigured reports whether every required credential is present.
	IsConfigured() bool
}

func failure(message string, errs ...string) *Outcome {
	if len(errs) == 0 {
		errs = []string{message}
	}
	return &Outcome{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

func success(message, contentID, url string) *Outcome {
	now := time.Now().UTC()
	return &Outcome{
		Success:     true,
		Message:     message,
		ContentID:   contentID,
		URL:         url,
		PublishedAt: &now,
	}
}

// allPresent reports whether every value in creds is non-empty for the
// given keys.
func allPresent(creds map[string]string, keys []string) bool {
	for _, key := range keys {
		if creds[key] == "" {
			return false
		}
	}
	return true
}
