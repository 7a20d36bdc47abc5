package platforms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/models"
)

func TestNewRegistryOnlyRegistersConfiguredPlatforms(t *testing.T) {
	cfg := &config.Config{}
	cfg.Platforms.Webflow = config.WebflowConfig{APIKey: "k", SiteID: "s", CollectionID: "c"}
	cfg.Platforms.LinkedIn = config.LinkedInConfig{AccessToken: "tok", UserID: "uid"}

	registry := NewRegistry(cfg, logger.NewNopLogger())

	assert.Equal(t, []string{"webflow", "linkedin"}, registry.Names())
	assert.Equal(t, 2, registry.Len())

	_, ok := registry.Get("wordpress")
	assert.False(t, ok)

	adapter, ok := registry.Get("webflow")
	require.True(t, ok)
	assert.Equal(t, "webflow", adapter.Name())
}

func TestNewRegistryEmptyConfig(t *testing.T) {
	registry := NewRegistry(&config.Config{}, logger.NewNopLogger())
	assert.Zero(t, registry.Len())
	assert.Empty(t, registry.Names())
}

func TestRegistryRegisterReplacesInPlace(t *testing.T) {
	registry := &Registry{}
	registry.Register(NewStub("linkedin", []string{"access_token"}, nil))
	registry.Register(NewStub("twitter", []string{"api_key"}, nil))
	registry.Register(NewStub("linkedin", []string{"access_token"}, map[string]string{"access_token": "t"}))

	assert.Equal(t, []string{"linkedin", "twitter"}, registry.Names(), "re-registering keeps the original position")
	adapter, ok := registry.Get("linkedin")
	require.True(t, ok)
	assert.True(t, adapter.IsConfigured())
}

func TestStubAdapter(t *testing.T) {
	stub := NewStub("linkedin", []string{"access_token", "user_id"}, map[string]string{
		"access_token": "tok",
		"user_id":      "uid",
	})

	assert.Equal(t, "linkedin", stub.Name())
	assert.True(t, stub.IsConfigured())
	assert.False(t, stub.TestConnection(context.Background()))

	content := &models.Content{Type: models.ContentTypeBlog, Title: "t", Body: "b"}
	outcome, err := stub.Publish(context.Background(), content, nil)
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "Publishing to linkedin is not supported yet", outcome.Message)

	outcome, err = stub.Update(context.Background(), "id", content, nil)
	require.NoError(t, err)
	assert.Equal(t, "Updating to linkedin is not supported yet", outcome.Message)

	deleted, err := stub.Delete(context.Background(), "id")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStubAdapterMissingCredentials(t *testing.T) {
	stub := NewStub("twitter", []string{"api_key", "api_secret"}, map[string]string{"api_key": "k"})
	assert.False(t, stub.IsConfigured())
}
