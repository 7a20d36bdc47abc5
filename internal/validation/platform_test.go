package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/content-publisher/internal/models"
)

func TestValidateForPlatform(t *testing.T) {
	v := testValidator()

	t.Run("platform findings are a superset of the base result", func(t *testing.T) {
		content := blogContent() // no SEO, triggers the webflow overlay warning
		base := v.Validate(content)
		platform := v.ValidateForPlatform(content, "webflow")

		require.True(t, base.IsValid)
		assert.True(t, platform.IsValid)
		assert.GreaterOrEqual(t, len(platform.Warnings), len(base.Warnings))
		for _, warn := range base.Warnings {
			assert.Contains(t, platform.Warnings, warn)
		}
	})

	t.Run("webflow warns on missing seo", func(t *testing.T) {
		content := blogContent()
		result := v.ValidateForPlatform(content, "webflow")
		assert.Contains(t, result.WarningMessages(), "SEO configuration is important for Webflow sites")
	})

	t.Run("webflow overlay warning lowers the score by one", func(t *testing.T) {
		content := blogContent()
		base := v.Validate(content)
		platform := v.ValidateForPlatform(content, "webflow")
		assert.Equal(t, base.Score-1, platform.Score)
	})

	t.Run("linkedin warns on long content", func(t *testing.T) {
		content := richContent()
		content.Body = "<h1>Post</h1><p>" + strings.Repeat("word ", 700) + "</p>"
		result := v.ValidateForPlatform(content, "linkedin")
		assert.True(t, result.IsValid)
		assert.Contains(t, result.WarningMessages(), "Content is quite long for LinkedIn posts")
	})

	t.Run("base errors short-circuit the overlay", func(t *testing.T) {
		content := blogContent()
		content.Title = strings.Repeat("a", 250)
		base := v.Validate(content)
		platform := v.ValidateForPlatform(content, "twitter")

		require.False(t, base.IsValid)
		assert.Equal(t, base, platform)
	})

	t.Run("unknown platform returns the base result", func(t *testing.T) {
		content := richContent()
		base := v.Validate(content)
		platform := v.ValidateForPlatform(content, "mastodon")
		assert.Equal(t, base.Score, platform.Score)
		assert.Equal(t, base.IsValid, platform.IsValid)
	})
}

func TestTwitterTitleRule(t *testing.T) {
	// The generic title bound rejects anything over 200 runes, so the
	// Twitter rule is exercised directly.
	rule := platformRules["twitter"][0]

	content := &models.Content{Title: strings.Repeat("a", twitterTitleLimit+1)}
	errs, warns := rule(content)
	require.Len(t, errs, 1)
	assert.Equal(t, "Title too long for Twitter (280 character limit)", errs[0].Message)
	assert.Empty(t, warns)

	content.Title = strings.Repeat("a", twitterTitleLimit)
	errs, warns = rule(content)
	assert.Empty(t, errs)
	assert.Empty(t, warns)
}
