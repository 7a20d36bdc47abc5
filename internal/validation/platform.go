package validation

import (
	"unicode/utf8"

	"github.com/jonesrussell/content-publisher/internal/models"
)

// Platform-specific thresholds.
const (
	twitterTitleLimit    = 280
	linkedinContentLimit = 3000
)

// platformRule inspects content and returns platform-specific findings.
type platformRule func(content *models.Content) (errs, warns []models.ValidationIssue)

// platformRules is the overlay rule table, keyed by platform identifier.
// Platforms without an entry get no additional rules.
var platformRules = map[string][]platformRule{
	"twitter": {
		func(content *models.Content) ([]models.ValidationIssue, []models.ValidationIssue) {
			if utf8.RuneCountInString(content.Title) > twitterTitleLimit {
				return []models.ValidationIssue{{
					Field:   "title",
					Message: "Title too long for Twitter (280 character limit)",
				}}, nil
			}
			return nil, nil
		},
	},
	"linkedin": {
		func(content *models.Content) ([]models.ValidationIssue, []models.ValidationIssue) {
			if utf8.RuneCountInString(content.Body) > linkedinContentLimit {
				return nil, []models.ValidationIssue{{
					Field:   "content",
					Message: "Content is quite long for LinkedIn posts",
				}}
			}
			return nil, nil
		},
	},
	"webflow": {
		func(content *models.Content) ([]models.ValidationIssue, []models.ValidationIssue) {
			if content.SEO == nil {
				return nil, []models.ValidationIssue{{
					Field:   "seo",
					Message: "SEO configuration is important for Webflow sites",
				}}
			}
			return nil, nil
		},
	},
}

// ValidateForPlatform runs the generic checks plus the platform overlay.
// When the base result already has errors it is returned unchanged; the
// overlay only ever adds findings. The overlay score subtracts 5 per
// platform error and 1 per platform warning from the base score, floored
// at 0.
func (v *Validator) ValidateForPlatform(content *models.Content, platform string) models.ValidationResult {
	base := v.Validate(content)
	if !base.IsValid {
		return base
	}

	var platformErrs, platformWarns []models.ValidationIssue
	for _, rule := range platformRules[platform] {
		errs, warns := rule(content)
		platformErrs = append(platformErrs, errs...)
		platformWarns = append(platformWarns, warns...)
	}

	score := base.Score - len(platformErrs)*platformErrPenalty - len(platformWarns)*platformWarnPenalty
	if score < 0 {
		score = 0
	}

	return models.ValidationResult{
		IsValid:  len(platformErrs) == 0,
		Errors:   append(base.Errors, platformErrs...),
		Warnings: append(base.Warnings, platformWarns...),
		Score:    score,
	}
}
