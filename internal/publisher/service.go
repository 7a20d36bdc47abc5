// Package publisher orchestrates content publishing: the validation gate,
// the per-platform fan-out, and the concurrency-bounded batch flow.
package publisher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/metrics"
	"github.com/jonesrussell/content-publisher/internal/models"
	"github.com/jonesrussell/content-publisher/internal/platforms"
	"github.com/jonesrussell/content-publisher/internal/validation"
)

// Service is the publishing orchestrator. It owns the validator and the
// platform registry and exposes the publish, batch-publish, validation,
// and introspection operations to the API layer.
type Service struct {
	cfg       *config.Config
	validator *validation.Validator
	registry  *platforms.Registry
	logger    logger.Logger
}

// NewService creates the orchestrator from configuration and an adapter
// registry.
func NewService(cfg *config.Config, registry *platforms.Registry, log logger.Logger) *Service {
	return &Service{
		cfg:       cfg,
		validator: validation.NewValidator(cfg.Limits.MaxContentLength, cfg.Limits.MaxImagesPerContent),
		registry:  registry,
		logger:    log,
	}
}

// Validate runs the generic validator against one content item.
func (s *Service) Validate(content *models.Content) models.ValidationResult {
	result := s.validator.Validate(content)
	metrics.RecordValidation("", result.IsValid, result.Score)
	return result
}

// ValidateForPlatform runs the generic validator plus the platform
// overlay.
func (s *Service) ValidateForPlatform(content *models.Content, platform string) models.ValidationResult {
	result := s.validator.ValidateForPlatform(content, platform)
	metrics.RecordValidation(platform, result.IsValid, result.Score)
	return result
}

// Publish validates the content and fans it out to every requested
// platform. Validation failure means no platform is contacted; an
// unresolvable platform fails the whole request before any dispatch; a
// failure on one platform never aborts dispatch to its siblings.
func (s *Service) Publish(ctx context.Context, req *models.PublishRequest) *models.PublishResponse {
	validationResult := s.Validate(req.Content)
	if !validationResult.IsValid {
		return &models.PublishResponse{
			Success:  false,
			Message:  "Content validation failed",
			Errors:   validationResult.ErrorMessages(),
			Warnings: validationResult.WarningMessages(),
		}
	}

	var unavailable []string
	for _, name := range req.Platforms {
		if _, ok := s.registry.Get(name); !ok {
			unavailable = append(unavailable, name)
		}
	}
	if len(unavailable) > 0 {
		errs := make([]string, len(unavailable))
		for i, name := range unavailable {
			errs[i] = fmt.Sprintf("Platform %s is not configured or enabled", name)
		}
		return &models.PublishResponse{
			Success: false,
			Message: fmt.Sprintf("Platforms not available: %s", strings.Join(unavailable, ", ")),
			Errors:  errs,
		}
	}

	platformResults := make(map[string]models.PlatformResult, len(req.Platforms))
	allSuccessful := true
	var errs, warns []string

	for _, name := range req.Platforms {
		result := s.publishToPlatform(ctx, name, req.Content, req.Options)
		platformResults[name] = result

		if result.Success {
			warns = append(warns, result.Warnings...)
		} else {
			allSuccessful = false
			errs = append(errs, result.Errors...)
		}
	}

	resp := &models.PublishResponse{
		Success:         allSuccessful,
		PlatformResults: platformResults,
		Errors:          errs,
		Warnings:        warns,
	}
	now := time.Now().UTC()
	resp.PublishedAt = &now

	if allSuccessful {
		resp.Message = fmt.Sprintf("Content published successfully to %d platform(s)", len(req.Platforms))
		// Top-level id/url come from the first successful platform in
		// request order, and only on full success.
		for _, name := range req.Platforms {
			if result := platformResults[name]; result.Success {
				resp.ContentID = result.ContentID
				resp.URL = result.URL
				break
			}
		}
	} else {
		resp.Message = "Content publishing completed with some failures"
	}

	return resp
}

// publishToPlatform runs the platform validation and the adapter call for
// one platform. Faults are converted to a failed result, never escaping
// to sibling platforms.
func (s *Service) publishToPlatform(ctx context.Context, name string, content *models.Content, options map[string]any) (result models.PlatformResult) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("Error publishing to %s: %v", name, r)
			s.logger.Error("Adapter panicked during publish",
				logger.String("platform", name),
				logger.Any("panic", r),
			)
			result = models.PlatformResult{Success: false, Message: msg, Errors: []string{fmt.Sprint(r)}}
		}
	}()

	platformValidation := s.ValidateForPlatform(content, name)
	if !platformValidation.IsValid {
		return models.PlatformResult{
			Success: false,
			Message: "Platform-specific validation failed",
			Errors:  platformValidation.ErrorMessages(),
		}
	}

	adapter, _ := s.registry.Get(name)
	start := time.Now()
	outcome, err := adapter.Publish(ctx, content, options)
	metrics.RecordPublish(name, string(content.Type), err == nil && outcome != nil && outcome.Success, time.Since(start))

	if err != nil {
		s.logger.Error("Platform publish failed",
			logger.String("platform", name),
			logger.Error(err),
		)
		return models.PlatformResult{
			Success: false,
			Message: fmt.Sprintf("Error publishing to %s: %v", name, err),
			Errors:  []string{err.Error()},
		}
	}

	return models.PlatformResult{
		Success:   outcome.Success,
		Message:   outcome.Message,
		ContentID: outcome.ContentID,
		URL:       outcome.URL,
		Errors:    outcome.Errors,
		Warnings:  outcome.Warnings,
	}
}

// PlatformStatus describes one registered platform for introspection.
type PlatformStatus struct {
	Enabled    bool   `json:"enabled"`
	Configured bool   `json:"configured"`
	Name       string `json:"name"`
}

// AvailablePlatforms returns the registered platform names in registration
// order.
func (s *Service) AvailablePlatforms() []string {
	return s.registry.Names()
}

// GetPlatformStatus reports the status of every registered platform.
func (s *Service) GetPlatformStatus() map[string]PlatformStatus {
	status := make(map[string]PlatformStatus, s.registry.Len())
	for _, name := range s.registry.Names() {
		adapter, _ := s.registry.Get(name)
		status[name] = PlatformStatus{
			Enabled:    true,
			Configured: adapter.IsConfigured(),
			Name:       adapter.Name(),
		}
	}
	return status
}

// TestConnection checks connectivity for one registered platform.
func (s *Service) TestConnection(ctx context.Context, name string) bool {
	adapter, ok := s.registry.Get(name)
	if !ok {
		return false
	}
	connected := adapter.TestConnection(ctx)
	metrics.RecordConnectionTest(name, connected)
	return connected
}

// TestConnections checks connectivity for every registered platform and
// returns a name to reachability map.
func (s *Service) TestConnections(ctx context.Context) map[string]bool {
	results := make(map[string]bool, s.registry.Len())
	for _, name := range s.registry.Names() {
		adapter, _ := s.registry.Get(name)
		connected := adapter.TestConnection(ctx)
		metrics.RecordConnectionTest(name, connected)
		results[name] = connected
	}
	return results
}
