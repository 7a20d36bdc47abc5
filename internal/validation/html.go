package validation

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/content-publisher/internal/models"
)

// checkHTML parses the body as HTML and applies markup-quality heuristics.
// A body that cannot be parsed is a content error, never a process failure.
func (v *Validator) checkHTML(content *models.Content, errs, warns *[]models.ValidationIssue) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.Body))
	if err != nil {
		addIssue(errs, "content", fmt.Sprintf("Invalid HTML content: %v", err))
		return
	}

	if strings.TrimSpace(doc.Text()) == "" {
		addIssue(errs, "content", "Content appears to be empty after HTML parsing")
	}

	missingAlt := 0
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			missingAlt++
		}
	})
	if missingAlt > 0 {
		addIssue(warns, "content", fmt.Sprintf("Found %d images without alt text for accessibility", missingAlt))
	}

	emptyLinks := 0
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" {
			emptyLinks++
		}
	})
	if emptyLinks > 0 {
		addIssue(warns, "content", fmt.Sprintf("Found %d empty links", emptyLinks))
	}

	if doc.Find("h1,h2,h3,h4,h5,h6").Length() == 0 {
		addIssue(warns, "content", "Content has no headings, consider adding structure")
	}

	if doc.Find("h1").Length() > 1 {
		addIssue(warns, "content", "Multiple H1 tags found, consider using only one for SEO")
	}
}
