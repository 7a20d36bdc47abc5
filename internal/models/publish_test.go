package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/content-publisher/internal/config"
)

func TestPublishRequestNormalize(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := &PublishRequest{
			Content:   validBlog(),
			Platforms: []string{"webflow", "wordpress"},
		}
		require.NoError(t, req.Normalize())
	})

	t.Run("missing content", func(t *testing.T) {
		req := &PublishRequest{Platforms: []string{"webflow"}}
		err := req.Normalize()
		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "content is required")
	})

	t.Run("no platforms", func(t *testing.T) {
		req := &PublishRequest{Content: validBlog()}
		require.ErrorIs(t, req.Normalize(), ErrInvalidRequest)
	})

	t.Run("unknown platform", func(t *testing.T) {
		req := &PublishRequest{
			Content:   validBlog(),
			Platforms: []string{"webflow", "medium"},
		}
		err := req.Normalize()
		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), `unknown platform "medium"`)
	})

	t.Run("invalid embedded content", func(t *testing.T) {
		content := validBlog()
		content.Title = ""
		req := &PublishRequest{Content: content, Platforms: []string{"webflow"}}
		require.ErrorIs(t, req.Normalize(), ErrInvalidContent)
	})
}

func TestBatchPublishRequestNormalize(t *testing.T) {
	const defaultConcurrency = 3

	t.Run("applies default concurrency", func(t *testing.T) {
		req := &BatchPublishRequest{
			ContentItems: []*Content{validBlog()},
			Platforms:    []string{"wordpress"},
		}
		require.NoError(t, req.Normalize(defaultConcurrency))
		assert.Equal(t, defaultConcurrency, req.Concurrency)
	})

	t.Run("keeps explicit concurrency", func(t *testing.T) {
		req := &BatchPublishRequest{
			ContentItems: []*Content{validBlog()},
			Platforms:    []string{"wordpress"},
			Concurrency:  5,
		}
		require.NoError(t, req.Normalize(defaultConcurrency))
		assert.Equal(t, 5, req.Concurrency)
	})

	t.Run("concurrency out of range", func(t *testing.T) {
		for _, concurrency := range []int{-1, 11, 100} {
			req := &BatchPublishRequest{
				ContentItems: []*Content{validBlog()},
				Platforms:    []string{"wordpress"},
				Concurrency:  concurrency,
			}
			require.ErrorIs(t, req.Normalize(defaultConcurrency), ErrInvalidRequest, "concurrency %d", concurrency)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		req := &BatchPublishRequest{Platforms: []string{"wordpress"}}
		err := req.Normalize(defaultConcurrency)
		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "content_items cannot be empty")
	})

	t.Run("nil item", func(t *testing.T) {
		req := &BatchPublishRequest{
			ContentItems: []*Content{validBlog(), nil},
			Platforms:    []string{"wordpress"},
		}
		err := req.Normalize(defaultConcurrency)
		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "content_items[1]")
	})

	t.Run("invalid item reports its index", func(t *testing.T) {
		bad := validBlog()
		bad.Title = ""
		req := &BatchPublishRequest{
			ContentItems: []*Content{validBlog(), bad},
			Platforms:    []string{"wordpress"},
		}
		err := req.Normalize(defaultConcurrency)
		require.ErrorIs(t, err, ErrInvalidContent)
		assert.Contains(t, err.Error(), "content_items[1]")
	})
}

func TestKnownPlatformsFollowConfig(t *testing.T) {
	// The request-level platform check accepts exactly the names the
	// registry can construct adapters for.
	for _, name := range config.PlatformNames {
		req := &PublishRequest{Content: validBlog(), Platforms: []string{name}}
		assert.NoError(t, req.Normalize(), "platform %q must be accepted", name)
	}
	assert.Len(t, knownPlatforms, len(config.PlatformNames))
}

func TestValidationResultMessages(t *testing.T) {
	result := ValidationResult{
		Errors: []ValidationIssue{
			{Field: "title", Message: "Title is required and cannot be empty"},
		},
		Warnings: []ValidationIssue{
			{Field: "seo", Message: "SEO configuration is recommended for better search visibility"},
		},
	}
	assert.Equal(t, []string{"Title is required and cannot be empty"}, result.ErrorMessages())
	assert.Equal(t, []string{"SEO configuration is recommended for better search visibility"}, result.WarningMessages())

	empty := ValidationResult{}
	assert.Nil(t, empty.ErrorMessages())
	assert.Nil(t, empty.WarningMessages())
}
