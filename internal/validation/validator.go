// Package validation implements the rule-based content validator: structural
// checks, SEO and markup-quality heuristics, and the 0-100 quality score.
//
// Validation never short-circuits; every check runs and contributes findings
// to the same result. Findings are reported in-band, never as errors.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonesrussell/content-publisher/internal/models"
)

// Warning thresholds and bounds used by the heuristics.
const (
	shortTitleThreshold   = 10
	shortContentThreshold = 100

	shortMetaTitleThreshold       = 30
	shortMetaDescriptionThreshold = 120
	maxSEOKeywords                = 20

	maxFAQItems       = 50
	maxSpecifications = 100
)

// Score weights.
const (
	baseScore           = 100
	errorPenalty        = 10
	warningPenalty      = 2
	seoBonus            = 5
	tagsBonus           = 3
	categoriesBonus     = 2
	imageAltBonus       = 5
	platformErrPenalty  = 5
	platformWarnPenalty = 1
)

// Validator checks content against generic and platform-specific rules.
// It is a pure function over its input and safe for concurrent use.
type Validator struct {
	maxContentLength int
	maxImages        int
}

// NewValidator creates a validator with the configured operational limits.
// Non-positive limits fall back to the defaults (100000 chars, 20 images).
func NewValidator(maxContentLength, maxImages int) *Validator {
	if maxContentLength <= 0 {
		maxContentLength = 100000
	}
	if maxImages <= 0 {
		maxImages = 20
	}
	return &Validator{
		maxContentLength: maxContentLength,
		maxImages:        maxImages,
	}
}

// Validate runs every generic check against the content and returns the
// aggregated result with its quality score.
func (v *Validator) Validate(content *models.Content) models.ValidationResult {
	var errs, warns []models.ValidationIssue

	v.checkBasicFields(content, &errs, &warns)
	v.checkTypeSpecific(content, &errs, &warns)
	v.checkSEO(content, &errs, &warns)
	v.checkHTML(content, &errs, &warns)
	v.checkImages(content, &errs, &warns)

	return models.ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
		Score:    calculateScore(content, errs, warns),
	}
}

func (v *Validator) checkBasicFields(content *models.Content, errs, warns *[]models.ValidationIssue) {
	titleLen := utf8.RuneCountInString(content.Title)
	switch {
	case strings.TrimSpace(content.Title) == "":
		addIssue(errs, "title", "Title is required and cannot be empty")
	case titleLen > models.MaxTitleLength:
		addIssue(errs, "title", fmt.Sprintf("Title must be %d characters or less", models.MaxTitleLength))
	case titleLen < shortTitleThreshold:
		addIssue(warns, "title", "Title is quite short, consider making it more descriptive")
	}

	bodyLen := utf8.RuneCountInString(content.Body)
	switch {
	case strings.TrimSpace(content.Body) == "":
		addIssue(errs, "content", "Content is required and cannot be empty")
	case bodyLen > v.maxContentLength:
		addIssue(errs, "content", fmt.Sprintf("Content exceeds maximum length of %d characters", v.maxContentLength))
	case bodyLen < shortContentThreshold:
		addIssue(warns, "content", "Content is quite short, consider adding more detail")
	}

	if utf8.RuneCountInString(content.Excerpt) > models.MaxExcerptLength {
		addIssue(errs, "excerpt", fmt.Sprintf("Excerpt must be %d characters or less", models.MaxExcerptLength))
	}

	if len(content.Tags) > models.MaxTags {
		addIssue(errs, "tags", fmt.Sprintf("Maximum %d tags allowed", models.MaxTags))
	}
	for i, tag := range content.Tags {
		if utf8.RuneCountInString(tag) > 50 {
			addIssue(errs, fmt.Sprintf("tags[%d]", i), "Tag must be 50 characters or less")
		}
	}

	if len(content.Categories) > models.MaxCategories {
		addIssue(errs, "categories", fmt.Sprintf("Maximum %d categories allowed", models.MaxCategories))
	}
	for i, category := range content.Categories {
		if utf8.RuneCountInString(category) > 100 {
			addIssue(errs, fmt.Sprintf("categories[%d]", i), "Category must be 100 characters or less")
		}
	}
}

func (v *Validator) checkTypeSpecific(content *models.Content, errs, warns *[]models.ValidationIssue) {
	switch content.Type {
	case models.ContentTypeFAQ:
		if len(content.FAQs) == 0 {
			addIssue(errs, "faqs", "FAQ content must include at least one FAQ item")
			return
		}
		v.checkFAQs(content.FAQs, errs)

	case models.ContentTypeProductDescription:
		if len(content.Specifications) == 0 {
			addIssue(warns, "specifications", "Product descriptions typically include specifications")
			return
		}
		v.checkSpecifications(content.Specifications, errs)

	case models.ContentTypeLandingPage:
		if content.CTAText == "" || content.CTAURL == "" {
			addIssue(warns, "cta", "Landing pages typically include a call-to-action")
		}
	}
}

func (v *Validator) checkFAQs(faqs []models.FAQItem, errs *[]models.ValidationIssue) {
	if len(faqs) > maxFAQItems {
		addIssue(errs, "faqs", fmt.Sprintf("Maximum %d FAQ items allowed", maxFAQItems))
	}

	for i, faq := range faqs {
		field := fmt.Sprintf("faqs[%d]", i)
		switch {
		case strings.TrimSpace(faq.Question) == "":
			addIssue(errs, field+".question", "FAQ question is required")
		case utf8.RuneCountInString(faq.Question) > models.MaxFAQQuestionLength:
			addIssue(errs, field+".question", fmt.Sprintf("FAQ question must be %d characters or less", models.MaxFAQQuestionLength))
		}
		switch {
		case strings.TrimSpace(faq.Answer) == "":
			addIssue(errs, field+".answer", "FAQ answer is required")
		case utf8.RuneCountInString(faq.Answer) > models.MaxFAQAnswerLength:
			addIssue(errs, field+".answer", fmt.Sprintf("FAQ answer must be %d characters or less", models.MaxFAQAnswerLength))
		}
		if faq.Order < 1 {
			addIssue(errs, field+".order", "FAQ order must be 1 or greater")
		}
	}
}

func (v *Validator) checkSpecifications(specs []models.Specification, errs *[]models.ValidationIssue) {
	if len(specs) > maxSpecifications {
		addIssue(errs, "specifications", fmt.Sprintf("Maximum %d specifications allowed", maxSpecifications))
	}

	for i, spec := range specs {
		field := fmt.Sprintf("specifications[%d]", i)
		switch {
		case strings.TrimSpace(spec.Name) == "":
			addIssue(errs, field+".name", "Specification name is required")
		case utf8.RuneCountInString(spec.Name) > models.MaxSpecNameLength:
			addIssue(errs, field+".name", fmt.Sprintf("Specification name must be %d characters or less", models.MaxSpecNameLength))
		}
		switch {
		case strings.TrimSpace(spec.Value) == "":
			addIssue(errs, field+".value", "Specification value is required")
		case utf8.RuneCountInString(spec.Value) > models.MaxSpecValueLength:
			addIssue(errs, field+".value", fmt.Sprintf("Specification value must be %d characters or less", models.MaxSpecValueLength))
		}
	}
}

func (v *Validator) checkSEO(content *models.Content, errs, warns *[]models.ValidationIssue) {
	if content.SEO == nil {
		addIssue(warns, "seo", "SEO configuration is recommended for better search visibility")
		return
	}

	seo := content.SEO

	metaTitleLen := utf8.RuneCountInString(seo.MetaTitle)
	switch {
	case seo.MetaTitle == "":
		addIssue(warns, "seo.meta_title", "Meta title is recommended for SEO")
	case metaTitleLen > models.MaxMetaTitleLength:
		addIssue(errs, "seo.meta_title", fmt.Sprintf("Meta title should be %d characters or less for optimal SEO", models.MaxMetaTitleLength))
	case metaTitleLen < shortMetaTitleThreshold:
		addIssue(warns, "seo.meta_title", "Meta title is quite short, consider making it more descriptive")
	}

	metaDescLen := utf8.RuneCountInString(seo.MetaDescription)
	switch {
	case seo.MetaDescription == "":
		addIssue(warns, "seo.meta_description", "Meta description is recommended for SEO")
	case metaDescLen > models.MaxMetaDescriptionLength:
		addIssue(errs, "seo.meta_description", fmt.Sprintf("Meta description should be %d characters or less for optimal SEO", models.MaxMetaDescriptionLength))
	case metaDescLen < shortMetaDescriptionThreshold:
		addIssue(warns, "seo.meta_description", "Meta description is quite short, consider making it more descriptive")
	}

	if len(seo.Keywords) > maxSEOKeywords {
		addIssue(warns, "seo.keywords", "Too many keywords may dilute SEO effectiveness")
	}
}

func (v *Validator) checkImages(content *models.Content, errs, warns *[]models.ValidationIssue) {
	if len(content.Images) == 0 {
		return
	}

	if len(content.Images) > v.maxImages {
		addIssue(errs, "images", fmt.Sprintf("Maximum %d images allowed", v.maxImages))
	}

	for i, image := range content.Images {
		if image.URL == "" {
			addIssue(errs, fmt.Sprintf("images[%d].url", i), "Image URL is required")
		}
		if image.AltText == "" {
			addIssue(warns, fmt.Sprintf("images[%d].alt_text", i), "Image alt text is recommended for accessibility")
		}
	}
}

// calculateScore starts at 100, subtracts per finding, adds bonuses for
// good practices, and clamps to [0, 100].
func calculateScore(content *models.Content, errs, warns []models.ValidationIssue) int {
	score := baseScore - len(errs)*errorPenalty - len(warns)*warningPenalty

	if content.SEO != nil && content.SEO.MetaTitle != "" && content.SEO.MetaDescription != "" {
		score += seoBonus
	}
	if len(content.Tags) > 0 {
		score += tagsBonus
	}
	if len(content.Categories) > 0 {
		score += categoriesBonus
	}
	if len(content.Images) > 0 && allImagesHaveAlt(content.Images) {
		score += imageAltBonus
	}

	return clampScore(score)
}

func allImagesHaveAlt(images []models.ContentImage) bool {
	for _, img := range images {
		if img.AltText == "" {
			return false
		}
	}
	return true
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > baseScore {
		return baseScore
	}
	return score
}

func addIssue(issues *[]models.ValidationIssue, field, message string) {
	*issues = append(*issues, models.ValidationIssue{Field: field, Message: message})
}
