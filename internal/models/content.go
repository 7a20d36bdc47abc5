// Package models defines the content entities and request/response types
// exchanged between the API layer, the validator, and the publishers.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ContentType determines which optional sub-structures are legal on a
// Content value.
type ContentType string

const (
	ContentTypeBlog               ContentType = "blog"
	ContentTypeFAQ                ContentType = "faq"
	ContentTypeArticle            ContentType = "article"
	ContentTypeProductDescription ContentType = "product-description"
	ContentTypeLandingPage        ContentType = "landing-page"
)

// IsValid reports whether the content type is a known value.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeBlog, ContentTypeFAQ, ContentTypeArticle, ContentTypeProductDescription, ContentTypeLandingPage:
		return true
	default:
		return false
	}
}

// ContentStatus is the publishing status of a content item.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusScheduled ContentStatus = "scheduled"
)

// IsValid reports whether the status is a known value.
func (s ContentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	default:
		return false
	}
}

// Field bounds enforced at construction time.
const (
	MaxTitleLength           = 200
	MaxExcerptLength         = 500
	MaxTags                  = 20
	MaxCategories            = 10
	MaxMetaTitleLength       = 60
	MaxMetaDescriptionLength = 160
	MaxFAQQuestionLength     = 500
	MaxFAQAnswerLength       = 2000
	MaxSpecNameLength        = 100
	MaxSpecValueLength       = 200
)

// ContentImage is an image attached to a content item.
type ContentImage struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
	Caption string `json:"caption,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// SEO holds search engine metadata for a content item.
type SEO struct {
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	CanonicalURL    string   `json:"canonical_url,omitempty"`
	OGTitle         string   `json:"og_title,omitempty"`
	OGDescription   string   `json:"og_description,omitempty"`
	OGImage         string   `json:"og_image,omitempty"`
	TwitterCard     string   `json:"twitter_card,omitempty"`
	TwitterSite     string   `json:"twitter_site,omitempty"`
}

// FAQItem is one question/answer pair. Legal only on FAQ content.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
	Category string `json:"category,omitempty"`
}

// Specification is one product attribute. Legal only on product
// description content.
type Specification struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category,omitempty"`
}

// Content is the unit of publishing: an AI-generated document plus its
// metadata.
type Content struct {
	Type        ContentType    `json:"type"`
	Title       string         `json:"title"`
	Body        string         `json:"content"` // HTML
	Excerpt     string         `json:"excerpt,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Categories  []string       `json:"categories,omitempty"`
	Status      ContentStatus  `json:"status,omitempty"`
	SEO         *SEO           `json:"seo,omitempty"`
	Images      []ContentImage `json:"images,omitempty"`
	PublishDate *time.Time     `json:"publish_date,omitempty"`

	// Type-specific fields, gated by Type.
	FAQs           []FAQItem       `json:"faqs,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	CTAText        string          `json:"cta_text,omitempty"`
	CTAURL         string          `json:"cta_url,omitempty"`

	// Metadata.
	Author        string         `json:"author,omitempty"`
	Language      string         `json:"language,omitempty"`
	FeaturedImage *ContentImage  `json:"featured_image,omitempty"`
	CustomFields  map[string]any `json:"custom_fields,omitempty"`
}

// Normalize trims and deduplicates fields and enforces construction-time
// invariants: scalar bounds and the type gates on faqs and specifications.
// A returned error is a contract violation, not a validation finding.
func (c *Content) Normalize() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("%w: unknown content type %q", ErrInvalidContent, c.Type)
	}
	if c.Status == "" {
		c.Status = StatusDraft
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: unknown content status %q", ErrInvalidContent, c.Status)
	}

	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidContent)
	}
	if utf8.RuneCountInString(c.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be %d characters or less", ErrInvalidContent, MaxTitleLength)
	}

	c.Body = strings.TrimSpace(c.Body)
	if c.Body == "" {
		return fmt.Errorf("%w: content cannot be empty", ErrInvalidContent)
	}

	if utf8.RuneCountInString(c.Excerpt) > MaxExcerptLength {
		return fmt.Errorf("%w: excerpt must be %d characters or less", ErrInvalidContent, MaxExcerptLength)
	}

	c.Tags = dedupeStrings(c.Tags)
	if len(c.Tags) > MaxTags {
		return fmt.Errorf("%w: maximum %d tags allowed", ErrInvalidContent, MaxTags)
	}

	c.Categories = dedupeStrings(c.Categories)
	if len(c.Categories) > MaxCategories {
		return fmt.Errorf("%w: maximum %d categories allowed", ErrInvalidContent, MaxCategories)
	}

	if c.SEO != nil {
		if utf8.RuneCountInString(c.SEO.MetaTitle) > MaxMetaTitleLength {
			return fmt.Errorf("%w: meta title must be %d characters or less", ErrInvalidContent, MaxMetaTitleLength)
		}
		if utf8.RuneCountInString(c.SEO.MetaDescription) > MaxMetaDescriptionLength {
			return fmt.Errorf("%w: meta description must be %d characters or less", ErrInvalidContent, MaxMetaDescriptionLength)
		}
	}

	if err := c.normalizeTyped(); err != nil {
		return err
	}

	if c.Language == "" {
		c.Language = "en"
	}

	return nil
}

// normalizeTyped enforces the type gates and the per-item bounds of the
// type-specific sub-structures.
func (c *Content) normalizeTyped() error {
	if len(c.FAQs) > 0 && c.Type != ContentTypeFAQ {
		return fmt.Errorf("%w: faqs can only be set for faq content", ErrInvalidContent)
	}
	if len(c.Specifications) > 0 && c.Type != ContentTypeProductDescription {
		return fmt.Errorf("%w: specifications can only be set for product-description content", ErrInvalidContent)
	}

	for i, faq := range c.FAQs {
		question := strings.TrimSpace(faq.Question)
		if question == "" || utf8.RuneCountInString(question) > MaxFAQQuestionLength {
			return fmt.Errorf("%w: faqs[%d].question must be between 1 and %d characters", ErrInvalidContent, i, MaxFAQQuestionLength)
		}
		answer := strings.TrimSpace(faq.Answer)
		if answer == "" || utf8.RuneCountInString(answer) > MaxFAQAnswerLength {
			return fmt.Errorf("%w: faqs[%d].answer must be between 1 and %d characters", ErrInvalidContent, i, MaxFAQAnswerLength)
		}
		if faq.Order < 1 {
			return fmt.Errorf("%w: faqs[%d].order must be 1 or greater", ErrInvalidContent, i)
		}
	}

	for i, spec := range c.Specifications {
		name := strings.TrimSpace(spec.Name)
		if name == "" || utf8.RuneCountInString(name) > MaxSpecNameLength {
			return fmt.Errorf("%w: specifications[%d].name must be between 1 and %d characters", ErrInvalidContent, i, MaxSpecNameLength)
		}
		value := strings.TrimSpace(spec.Value)
		if value == "" || utf8.RuneCountInString(value) > MaxSpecValueLength {
			return fmt.Errorf("%w: specifications[%d].value must be between 1 and %d characters", ErrInvalidContent, i, MaxSpecValueLength)
		}
	}

	return nil
}

// dedupeStrings trims entries, drops blanks, and removes duplicates while
// preserving first-seen order.
func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
