package models

import (
	"fmt"
	"time"

	"github.com/jonesrussell/content-publisher/internal/config"
)

// Batch concurrency bounds.
const (
	MinConcurrency = 1
	MaxConcurrency = 10
)

// ValidationIssue is one finding tagged to a content field.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating one content item. It is
// computed fresh per call and never persisted.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
	Score    int               `json:"score"` // 0-100
}

// ErrorMessages returns the messages of all errors, in order.
func (r *ValidationResult) ErrorMessages() []string {
	return issueMessages(r.Errors)
}

// WarningMessages returns the messages of all warnings, in order.
func (r *ValidationResult) WarningMessages() []string {
	return issueMessages(r.Warnings)
}

func issueMessages(issues []ValidationIssue) []string {
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.Message
	}
	return msgs
}

// PublishRequest asks for one content item to be published to a set of
// platforms. Options are platform-defined and forwarded opaquely.
type PublishRequest struct {
	Content   *Content       `json:"content"`
	Platforms []string       `json:"platforms"`
	Options   map[string]any `json:"options,omitempty"`
}

// Normalize validates the request shape and normalizes the embedded
// content.
func (r *PublishRequest) Normalize() error {
	if r.Content == nil {
		return fmt.Errorf("%w: content is required", ErrInvalidRequest)
	}
	if err := validatePlatformNames(r.Platforms); err != nil {
		return err
	}
	return r.Content.Normalize()
}

// PlatformResult is the per-platform outcome inside a PublishResponse.
type PlatformResult struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	ContentID string   `json:"content_id,omitempty"`
	URL       string   `json:"url,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// PublishResponse aggregates per-platform outcomes for one content item.
// ContentID and URL are only set when every platform succeeded; they are
// taken from the first successful platform in request order.
type PublishResponse struct {
	Success         bool                      `json:"success"`
	Message         string                    `json:"message"`
	ContentID       string                    `json:"content_id,omitempty"`
	URL             string                    `json:"url,omitempty"`
	PlatformResults map[string]PlatformResult `json:"platform_results,omitempty"`
	Errors          []string                  `json:"errors,omitempty"`
	Warnings        []string                  `json:"warnings,omitempty"`
	PublishedAt     *time.Time                `json:"published_at,omitempty"`
}

// BatchPublishRequest asks for an ordered sequence of content items to be
// published to a shared platform set under one concurrency policy.
type BatchPublishRequest struct {
	ContentItems []*Content     `json:"content_items"`
	Platforms    []string       `json:"platforms"`
	Options      map[string]any `json:"options,omitempty"`
	Concurrency  int            `json:"concurrency,omitempty"`
	StopOnError  bool           `json:"stop_on_error,omitempty"`
}

// Normalize validates the request shape, applies the default concurrency
// when unset, and normalizes every content item.
func (r *BatchPublishRequest) Normalize(defaultConcurrency int) error {
	if len(r.ContentItems) == 0 {
		return fmt.Errorf("%w: content_items cannot be empty", ErrInvalidRequest)
	}
	if err := validatePlatformNames(r.Platforms); err != nil {
		return err
	}
	if r.Concurrency == 0 {
		r.Concurrency = defaultConcurrency
	}
	if r.Concurrency < MinConcurrency || r.Concurrency > MaxConcurrency {
		return fmt.Errorf("%w: concurrency must be between %d and %d", ErrInvalidRequest, MinConcurrency, MaxConcurrency)
	}
	for i, content := range r.ContentItems {
		if content == nil {
			return fmt.Errorf("%w: content_items[%d] is required", ErrInvalidRequest, i)
		}
		if err := content.Normalize(); err != nil {
			return fmt.Errorf("content_items[%d]: %w", i, err)
		}
	}
	return nil
}

// BatchPublishResponse reports per-item results plus aggregate counts.
// Results preserve submission order; TotalItems is the original request
// length even when stop-on-error truncates Results.
type BatchPublishResponse struct {
	Success         bool              `json:"success"`
	TotalItems      int               `json:"total_items"`
	SuccessfulItems int               `json:"successful_items"`
	FailedItems     int               `json:"failed_items"`
	Results         []PublishResponse `json:"results"`
	Errors          []string          `json:"errors,omitempty"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

// knownPlatforms is the set of platform identifiers the registry can
// construct adapters for, derived from the configuration's canonical
// list so the two never drift.
var knownPlatforms = func() map[string]struct{} {
	known := make(map[string]struct{}, len(config.PlatformNames))
	for _, name := range config.PlatformNames {
		known[name] = struct{}{}
	}
	return known
}()

func validatePlatformNames(platforms []string) error {
	if len(platforms) == 0 {
		return fmt.Errorf("%w: at least one platform is required", ErrInvalidRequest)
	}
	for _, name := range platforms {
		if _, ok := knownPlatforms[name]; !ok {
			return fmt.Errorf("%w: unknown platform %q", ErrInvalidRequest, name)
		}
	}
	return nil
}
