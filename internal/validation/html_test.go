package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/content-publisher/internal/models"
)

func TestCheckHTML(t *testing.T) {
	v := testValidator()

	htmlContent := func(body string) *models.Content {
		content := blogContent()
		content.Body = body
		return content
	}

	t.Run("markup with no text is an error", func(t *testing.T) {
		result := v.Validate(htmlContent("<div><img src=\"/a.png\" alt=\"a\"></div>"))
		assert.False(t, result.IsValid)
		assert.Contains(t, result.ErrorMessages(), "Content appears to be empty after HTML parsing")
	})

	t.Run("images without alt text warn with a count", func(t *testing.T) {
		body := `<h1>Gallery</h1><p>Some photos from the launch event follow below.</p>` +
			`<img src="/a.png"><img src="/b.png" alt=""><img src="/c.png" alt="team photo">`
		result := v.Validate(htmlContent(body))
		assert.True(t, result.IsValid)
		assert.Contains(t, result.WarningMessages(), "Found 2 images without alt text for accessibility")
	})

	t.Run("empty links warn with a count", func(t *testing.T) {
		body := `<h1>Links</h1><p>A roundup of useful references for this release cycle.</p>` +
			`<a href="/a"></a><a href="/b">docs</a>`
		result := v.Validate(htmlContent(body))
		assert.Contains(t, result.WarningMessages(), "Found 1 empty links")
	})

	t.Run("missing headings warn", func(t *testing.T) {
		body := `<p>A paragraph long enough to avoid the short content warning, talking about nothing in particular but at sufficient length.</p>`
		result := v.Validate(htmlContent(body))
		assert.Contains(t, result.WarningMessages(), "Content has no headings, consider adding structure")
	})

	t.Run("multiple h1 tags warn", func(t *testing.T) {
		body := `<h1>First</h1><p>Enough body text here to comfortably clear the minimum length threshold for content warnings.</p><h1>Second</h1>`
		result := v.Validate(htmlContent(body))
		assert.Contains(t, result.WarningMessages(), "Multiple H1 tags found, consider using only one for SEO")
	})

	t.Run("well structured markup has no html warnings", func(t *testing.T) {
		result := v.Validate(blogContent())
		for _, msg := range result.WarningMessages() {
			assert.NotContains(t, msg, "images without alt text")
			assert.NotContains(t, msg, "empty links")
			assert.NotContains(t, msg, "H1")
		}
	})
}
