package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/models"
	"github.com/jonesrussell/content-publisher/internal/platforms"
	"github.com/jonesrussell/content-publisher/internal/publisher"
)

const testToken = "test-token"

func testRouter(t *testing.T, adapters ...platforms.Adapter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Auth: config.AuthConfig{Token: testToken},
		Limits: config.LimitsConfig{
			MaxContentLength:    100000,
			MaxImagesPerContent: 20,
			MaxBatchSize:        100,
			DefaultConcurrency:  3,
		},
	}

	registry := &platforms.Registry{}
	for _, adapter := range adapters {
		registry.Register(adapter)
	}
	service := publisher.NewService(cfg, registry, logger.NewNopLogger())
	return NewRouter(cfg, service, logger.NewNopLogger(), "test")
}

func linkedinStub() platforms.Adapter {
	return platforms.NewStub("linkedin", []string{"access_token"}, map[string]string{"access_token": "tok"})
}

// connectedAdapter is a minimal adapter whose connection test passes, for
// exercising readiness.
type connectedAdapter struct {
	name string
}

func (a *connectedAdapter) Name() string { return a.name }

func (a *connectedAdapter) RequiredConfigFields() []string { return []string{"api_key"} }

func (a *connectedAdapter) IsConfigured() bool { return true }

func (a *connectedAdapter) Publish(_ context.Context, content *models.Content, _ map[string]any) (*platforms.Outcome, error) {
	return &platforms.Outcome{Success: true, Message: "published", ContentID: content.Title}, nil
}

func (a *connectedAdapter) Update(_ context.Context, _ string, _ *models.Content, _ map[string]any) (*platforms.Outcome, error) {
	return &platforms.Outcome{Success: true}, nil
}

func (a *connectedAdapter) Delete(_ context.Context, _ string) (bool, error) { return true, nil }

func (a *connectedAdapter) Get(_ context.Context, _ string) (map[string]any, error) {
	return nil, nil
}

func (a *connectedAdapter) TestConnection(_ context.Context) bool { return true }

func doRequest(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validContentJSON = `{
	"type": "blog",
	"title": "A Perfectly Reasonable Title",
	"content": "<h1>Heading</h1><p>Plenty of body text to keep the validator happy about the content length requirement here.</p>"
}`

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t, &connectedAdapter{name: "webflow"})

	rec := doRequest(router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = doRequest(router, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"webflow":true`)
}

func TestReadiness(t *testing.T) {
	t.Run("no platforms configured", func(t *testing.T) {
		router := testRouter(t)
		rec := doRequest(router, http.MethodGet, "/health/ready", "", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "no platforms configured")
	})

	t.Run("no platform reachable", func(t *testing.T) {
		// The stub adapter registers but never connects; that must not
		// count as ready.
		router := testRouter(t, linkedinStub())
		rec := doRequest(router, http.MethodGet, "/health/ready", "", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "no platforms reachable")
		assert.Contains(t, rec.Body.String(), `"linkedin":false`)
	})

	t.Run("one reachable platform is enough", func(t *testing.T) {
		router := testRouter(t, &connectedAdapter{name: "webflow"}, linkedinStub())
		rec := doRequest(router, http.MethodGet, "/health/ready", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"webflow":true`)
		assert.Contains(t, rec.Body.String(), `"linkedin":false`)
	})
}

func TestRequestIDHeader(t *testing.T) {
	router := testRouter(t)
	rec := doRequest(router, http.MethodGet, "/health", "", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestValidateContent(t *testing.T) {
	router := testRouter(t)

	t.Run("valid content is public and returns a result", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/content/validate", validContentJSON, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var result struct {
			IsValid bool `json:"is_valid"`
			Score   int  `json:"score"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.IsValid)
		assert.Greater(t, result.Score, 0)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/content/validate", "{not json", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("contract violation", func(t *testing.T) {
		body := `{"type": "blog", "title": "", "content": "<p>body</p>"}`
		rec := doRequest(router, http.MethodPost, "/content/validate", body, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("per platform validation", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/content/validate/webflow", validContentJSON, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "SEO configuration is important for Webflow sites")
	})
}

func TestPublishRequiresAuth(t *testing.T) {
	router := testRouter(t, linkedinStub())
	body := `{"content": ` + validContentJSON + `, "platforms": ["linkedin"]}`

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/content/publish", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/content/publish", body, "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/content/publish", body, testToken)
		require.Equal(t, http.StatusOK, rec.Code)

		// The stub reports the platform as unsupported; that is a publish
		// failure in the body, not an HTTP error.
		var resp struct {
			Success bool `json:"success"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
	})

	t.Run("unknown platform is a contract violation", func(t *testing.T) {
		bad := `{"content": ` + validContentJSON + `, "platforms": ["medium"]}`
		rec := doRequest(router, http.MethodPost, "/content/publish", bad, testToken)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestBatchPublishEndpoint(t *testing.T) {
	router := testRouter(t, linkedinStub())
	body := `{"content_items": [` + validContentJSON + `], "platforms": ["linkedin"]}`

	rec := doRequest(router, http.MethodPost, "/content/batch-publish", body, testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalItems  int `json:"total_items"`
		FailedItems int `json:"failed_items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalItems)
	assert.Equal(t, 1, resp.FailedItems)
}

func TestContentPlatformsIsPublic(t *testing.T) {
	router := testRouter(t, linkedinStub())
	rec := doRequest(router, http.MethodGet, "/content/platforms", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "linkedin")
}

func TestPlatformManagementEndpoints(t *testing.T) {
	router := testRouter(t, linkedinStub())

	t.Run("listing requires auth", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/platforms", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("listing", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/platforms", "", testToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "linkedin")
	})

	t.Run("status of known platform", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/platforms/linkedin/status", "", testToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"configured":true`)
	})

	t.Run("status of unknown platform", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/platforms/mastodon/status", "", testToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("connection test", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/platforms/linkedin/test", "", testToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"connected":false`)
	})

	t.Run("test all", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/platforms/test-all", "", testToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"failed":["linkedin"]`)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t)
	rec := doRequest(router, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
