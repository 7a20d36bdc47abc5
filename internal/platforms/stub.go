package platforms

import (
	"context"
	"fmt"

	"github.com/jonesrussell/content-publisher/internal/models"
)

// Stub is a placeholder adapter for platforms whose publishing integration
// is not built yet (LinkedIn, Twitter). It registers when credentials are
// present so platform status reflects the configuration, but every
// operation reports the platform as unsupported.
type Stub struct {
	name     string
	required []string
	creds    map[string]string
}

// NewStub creates a stub adapter for the named platform.
func NewStub(name string, required []string, creds map[string]string) *Stub {
	return &Stub{name: name, required: required, creds: creds}
}

func (s *Stub) Name() string { return s.name }

func (s *Stub) RequiredConfigFields() []string { return s.required }

func (s *Stub) IsConfigured() bool {
	return allPresent(s.creds, s.required)
}

func (s *Stub) Publish(_ context.Context, _ *models.Content, _ map[string]any) (*Outcome, error) {
	return s.unsupported("Publishing"), nil
}

func (s *Stub) Update(_ context.Context, _ string, _ *models.Content, _ map[string]any) (*Outcome, error) {
	return s.unsupported("Updating"), nil
}

func (s *Stub) Delete(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (s *Stub) Get(_ context.Context, _ string) (map[string]any, error) {
	return nil, nil
}

func (s *Stub) TestConnection(_ context.Context) bool {
	return false
}

func (s *Stub) unsupported(operation string) *Outcome {
	return failure(fmt.Sprintf("%s to %s is not supported yet", operation, s.name))
}
