package platforms

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/models"
)

// WordPress publishes content as posts via the wp-json/wp/v2 REST API
// using basic auth (password or application password).
type WordPress struct {
	siteURL  string
	username string
	password string
	apiURL   string
	client   *http.Client
	logger   logger.Logger
}

// NewWordPress creates a WordPress adapter. The timeout bounds every API
// call.
func NewWordPress(cfg config.WordPressConfig, timeout time.Duration, log logger.Logger) *WordPress {
	password := cfg.Password
	if password == "" {
		password = cfg.AppPassword
	}
	siteURL := strings.TrimRight(cfg.SiteURL, "/")
	return &WordPress{
		siteURL:  siteURL,
		username: cfg.Username,
		password: password,
		apiURL:   siteURL + "/wp-json/wp/v2",
		client:   &http.Client{Timeout: timeout},
		logger:   log,
	}
}

func (w *WordPress) Name() string { return config.PlatformWordPress }

func (w *WordPress) RequiredConfigFields() []string {
	return []string{"site_url", "username", "password"}
}

func (w *WordPress) IsConfigured() bool {
	return allPresent(map[string]string{
		"site_url": w.siteURL,
		"username": w.username,
		"password": w.password,
	}, w.RequiredConfigFields())
}

// Publish creates a post; WordPress answers 201 with the post record.
func (w *WordPress) Publish(ctx context.Context, content *models.Content, options map[string]any) (*Outcome, error) {
	if !w.IsConfigured() {
		return failure("Invalid WordPress configuration", "Missing required configuration fields"), nil
	}

	resp, err := w.doJSON(ctx, http.MethodPost, w.apiURL+"/posts", w.preparePost(ctx, content, options))
	if err != nil {
		return w.transportFailure("publishing", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return failure(fmt.Sprintf("Failed to publish to WordPress: %s", decodeAPIError(resp, "message"))), nil
	}

	post, err := decodePost(resp)
	if err != nil {
		return failure(fmt.Sprintf("Failed to decode WordPress response: %v", err)), nil
	}

	w.logger.Info("Published content to WordPress",
		logger.String("post_id", post.id),
		logger.String("title", content.Title),
	)
	return success("Content published successfully to WordPress", post.id, post.link), nil
}

// Update edits an existing post by ID.
func (w *WordPress) Update(ctx context.Context, contentID string, content *models.Content, options map[string]any) (*Outcome, error) {
	endpoint := fmt.Sprintf("%s/posts/%s", w.apiURL, contentID)
	resp, err := w.doJSON(ctx, http.MethodPost, endpoint, w.preparePost(ctx, content, options))
	if err != nil {
		return w.transportFailure("updating", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(fmt.Sprintf("Failed to update content in WordPress: %s", decodeAPIError(resp, "message"))), nil
	}

	post, err := decodePost(resp)
	if err != nil {
		return failure(fmt.Sprintf("Failed to decode WordPress response: %v", err)), nil
	}
	return success("Content updated successfully in WordPress", post.id, post.link), nil
}

// Delete removes a post permanently.
func (w *WordPress) Delete(ctx context.Context, contentID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/posts/%s?force=true", w.apiURL, contentID)
	resp, err := w.doJSON(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

// Get fetches the raw post record, or nil when it does not exist.
func (w *WordPress) Get(ctx context.Context, contentID string) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/posts/%s", w.apiURL, contentID)
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

// TestConnection verifies the credentials against the current-user
// endpoint.
func (w *WordPress) TestConnection(ctx context.Context) bool {
	resp, err := w.doJSON(ctx, http.MethodGet, w.apiURL+"/users/me", nil)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (w *WordPress) authHeader() string {
	credentials := w.username + ":" + w.password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

func (w *WordPress) doJSON(ctx context.Context, method, endpoint string, payload any) (*http.Response, error) {
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
	req.Header.Set("Authorization", w.authHeader())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return w.client.Do(req)
}

// preparePost maps content onto the WordPress post shape. Category and tag
// names are resolved to term IDs, creating missing terms on the fly.
func (w *WordPress) preparePost(ctx context.Context, content *models.Content, options map[string]any) map[string]any {
	status := "draft"
	if content.Status == models.StatusPublished {
		status = "publish"
	}

	data := map[string]any{
		"title":   content.Title,
		"content": content.Body,
		"excerpt": content.Excerpt,
		"status":  status,
		"format":  "standard",
	}

	if len(content.Categories) > 0 {
		if ids := w.resolveTerms(ctx, "categories", content.Categories); len(ids) > 0 {
			data["categories"] = ids
		}
	}
	if len(content.Tags) > 0 {
		if ids := w.resolveTerms(ctx, "tags", content.Tags); len(ids) > 0 {
			data["tags"] = ids
		}
	}

	meta := map[string]any{}
	if content.SEO != nil {
		metaTitle := content.SEO.MetaTitle
		if metaTitle == "" {
			metaTitle = content.Title
		}
		metaDesc := content.SEO.MetaDescription
		if metaDesc == "" {
			metaDesc = content.Excerpt
		}
		meta["_yoast_wpseo_title"] = metaTitle
		meta["_yoast_wpseo_metadesc"] = metaDesc
		meta["_yoast_wpseo_focuskw"] = strings.Join(content.SEO.Keywords, ", ")
	}
	if custom, ok := options["custom_fields"].(map[string]any); ok {
		for k, v := range custom {
			meta[k] = v
		}
	}
	if len(meta) > 0 {
		data["meta"] = meta
	}

	return data
}

// resolveTerms maps term names to WordPress term IDs for a taxonomy
// ("categories" or "tags"), creating terms that do not exist. Lookup
// failures skip the term rather than failing the publish.
func (w *WordPress) resolveTerms(ctx context.Context, taxonomy string, names []string) []int {
	var ids []int
	for _, name := range names {
		if id, ok := w.findTerm(ctx, taxonomy, name); ok {
			ids = append(ids, id)
			continue
		}
		if id, ok := w.createTerm(ctx, taxonomy, name); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

type wpTerm struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (w *WordPress) findTerm(ctx context.Context, taxonomy, name string) (int, bool) {
	endpoint := fmt.Sprintf("%s/%s?search=%s", w.apiURL, taxonomy, url.QueryEscape(name))
	resp, err := w.doJSON(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false
	}
	var terms []wpTerm
	if err := json.NewDecoder(resp.Body).Decode(&terms); err != nil {
		return 0, false
	}
	for _, term := range terms {
		if strings.EqualFold(term.Name, name) {
			return term.ID, true
		}
	}
	return 0, false
}

func (w *WordPress) createTerm(ctx context.Context, taxonomy, name string) (int, bool) {
	endpoint := fmt.Sprintf("%s/%s", w.apiURL, taxonomy)
	resp, err := w.doJSON(ctx, http.MethodPost, endpoint, map[string]any{"name": name})
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, false
	}
	var term wpTerm
	if err := json.NewDecoder(resp.Body).Decode(&term); err != nil {
		return 0, false
	}
	return term.ID, true
}

func (w *WordPress) transportFailure(operation string, err error) *Outcome {
	if isTimeout(err) {
		return failure(fmt.Sprintf("Request timeout while %s to WordPress", operation), "Request timeout")
	}
	return failure(fmt.Sprintf("Error %s to WordPress: %v", operation, err))
}

type wpPost struct {
	id   string
	link string
}

// decodePost reads the post ID and permalink from a WordPress response.
// WordPress returns numeric IDs.
func decodePost(resp *http.Response) (wpPost, error) {
	var post struct {
		ID   int    `json:"id"`
		Link string `json:"link"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return wpPost{}, err
	}
	return wpPost{id: strconv.Itoa(post.ID), link: post.Link}, nil
}
