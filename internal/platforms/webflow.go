package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/models"
)

const defaultWebflowBaseURL = "https://api.webflow.com/v2"

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// Webflow publishes content as CMS collection items via the Webflow v2
// API.
type Webflow struct {
	apiKey       string
	siteID       string
	collectionID string
	baseURL      string
	client       *http.Client
	logger       logger.Logger
}

// NewWebflow creates a Webflow adapter. The timeout bounds every API call.
func NewWebflow(cfg config.WebflowConfig, timeout time.Duration, log logger.Logger) *Webflow {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultWebflowBaseURL
	}
	return &Webflow{
		apiKey:       cfg.APIKey,
		siteID:       cfg.SiteID,
		collectionID: cfg.CollectionID,
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: timeout},
		logger:       log,
	}
}

func (w *Webflow) Name() string { return config.PlatformWebflow }

func (w *Webflow) RequiredConfigFields() []string {
	return []string{"api_key", "site_id", "collection_id"}
}

func (w *Webflow) IsConfigured() bool {
	return allPresent(map[string]string{
		"api_key":       w.apiKey,
		"site_id":       w.siteID,
		"collection_id": w.collectionID,
	}, w.RequiredConfigFields())
}

// Publish creates a collection item. A 201 response is success; anything
// else becomes a failed outcome carrying the platform's error message.
func (w *Webflow) Publish(ctx context.Context, content *models.Content, options map[string]any) (*Outcome, error) {
	if !w.IsConfigured() {
		return failure("Invalid Webflow configuration", "Missing required configuration fields"), nil
	}

	endpoint := fmt.Sprintf("%s/collections/%s/items", w.baseURL, w.collectionID)
	resp, err := w.doJSON(ctx, http.MethodPost, endpoint, w.prepareItem(content, options))
	if err != nil {
		return w.transportFailure("publishing", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return failure(fmt.Sprintf("Failed to publish to Webflow: %s", decodeAPIError(resp, "msg"))), nil
	}

	var item struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return failure(fmt.Sprintf("Failed to decode Webflow response: %v", err)), nil
	}

	w.logger.Info("Published content to Webflow",
		logger.String("item_id", item.ID),
		logger.String("title", content.Title),
	)
	return success("Content published successfully to Webflow", item.ID, item.URL), nil
}

// Update patches an existing collection item.
func (w *Webflow) Update(ctx context.Context, contentID string, content *models.Content, options map[string]any) (*Outcome, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/items/%s", w.baseURL, w.collectionID, contentID)
	resp, err := w.doJSON(ctx, http.MethodPatch, endpoint, w.prepareItem(content, options))
	if err != nil {
		return w.transportFailure("updating", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(fmt.Sprintf("Failed to update content in Webflow: %s", decodeAPIError(resp, "msg"))), nil
	}

	var item struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return failure(fmt.Sprintf("Failed to decode Webflow response: %v", err)), nil
	}
	return success("Content updated successfully in Webflow", item.ID, item.URL), nil
}

// Delete removes a collection item; Webflow answers 204 on success.
func (w *Webflow) Delete(ctx context.Context, contentID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/items/%s", w.baseURL, w.collectionID, contentID)
	resp, err := w.doJSON(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusNoContent, nil
}

// Get fetches the raw collection item, or nil when it does not exist.
func (w *Webflow) Get(ctx context.Context, contentID string) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/items/%s", w.baseURL, w.collectionID, contentID)
	resp, err := w.doJSON(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	var record map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, nil
	}
	return record, nil
}

// TestConnection checks the site endpoint with the configured API key.
func (w *Webflow) TestConnection(ctx context.Context) bool {
	endpoint := fmt.Sprintf("%s/sites/%s", w.baseURL, w.siteID)
	resp, err := w.doJSON(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (w *Webflow) doJSON(ctx context.Context, method, endpoint string, payload any) (*http.Response, error) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return w.client.Do(req)
}

// prepareItem maps content onto the Webflow collection item shape.
func (w *Webflow) prepareItem(content *models.Content, options map[string]any) map[string]any {
	publishDate := time.Now().UTC()
	if content.PublishDate != nil {
		publishDate = *content.PublishDate
	}

	author := content.Author
	if author == "" {
		author = "AI Content Publisher"
	}

	category := ""
	if len(content.Categories) > 0 {
		category = content.Categories[0]
	}

	mainImage := ""
	if content.FeaturedImage != nil {
		mainImage = content.FeaturedImage.URL
	}

	fieldData := map[string]any{
		"name":         content.Title,
		"slug":         slugify(content.Title),
		"post-body":    content.Body,
		"post-summary": content.Excerpt,
		"main-image":   mainImage,
		"category":     category,
		"tags":         content.Tags,
		"author":       author,
		"publish-date": publishDate.Format(time.RFC3339),
	}

	if content.SEO != nil {
		if content.SEO.MetaTitle != "" {
			fieldData["seo-title"] = content.SEO.MetaTitle
		}
		if content.SEO.MetaDescription != "" {
			fieldData["seo-description"] = content.SEO.MetaDescription
		}
		if len(content.SEO.Keywords) > 0 {
			fieldData["seo-keywords"] = strings.Join(content.SEO.Keywords, ", ")
		}
	}

	if custom, ok := options["custom_fields"].(map[string]any); ok {
		for k, v := range custom {
			fieldData[k] = v
		}
	}

	return map[string]any{
		"isArchived": false,
		"isDraft":    content.Status == models.StatusDraft,
		"fieldData":  fieldData,
	}
}

func (w *Webflow) transportFailure(operation string, err error) *Outcome {
	if isTimeout(err) {
		return failure(fmt.Sprintf("Request timeout while %s to Webflow", operation), "Request timeout")
	}
	return failure(fmt.Sprintf("Error %s to Webflow: %v", operation, err))
}

// slugify converts a title into a URL slug: lowercase, alphanumerics and
// hyphens only.
func slugify(title string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// decodeAPIError extracts the platform's error message from an error
// response body, falling back to the HTTP status.
func decodeAPIError(resp *http.Response, key string) string {
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if msg, ok := body[key].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Unknown error (status %d)", resp.StatusCode)
}

// isTimeout reports whether a transport error was a timeout, either from
// the client deadline or the request context.
func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
