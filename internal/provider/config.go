package provider

import (
	"slices"

	"github.com/maxbolgarin/errm"

	"github.com/maxbolgarin/critic/internal/model"
)

type ProviderType string

// SupportedProviderTypes defines the supported code host types
const (
	GitLab    ProviderType = "gitlab"
	GitHub    ProviderType = "github"
	Bitbucket ProviderType = "bitbucket"
)

var supportedProviderTypes = []ProviderType{GitLab, GitHub, Bitbucket}

// Config represents code host provider configuration
type Config struct {
	Type    ProviderType `yaml:"type" env:"PROVIDER_TYPE"` // gitlab, github, bitbucket
	BaseURL string       `yaml:"base_url" env:"PROVIDER_BASE_URL"`
	Token   string       `yaml:"token" env:"PROVIDER_TOKEN"`

	// Address of the pull request to review, usually filled from CI
	// variables. Serve mode takes the address from the trigger payload
	// instead, so these may stay empty.
	Project     string `yaml:"project" env:"PROVIDER_PROJECT"`
	Repository  string `yaml:"repository" env:"PROVIDER_REPOSITORY"`
	PullRequest int    `yaml:"pull_request" env:"PROVIDER_PULL_REQUEST"`
}

func (c *Config) PrepareAndValidate() error {
	if c.Token == "" {
		return errm.New("token is required")
	}

	if c.Type == "" || !slices.Contains(supportedProviderTypes, c.Type) {
		return errm.New("invalid provider type: %s", c.Type)
	}

	return nil
}

// Locator returns the pull request address assembled from the config.
func (c *Config) Locator() model.PullRequestLocator {
	return model.PullRequestLocator{
		Project:    c.Project,
		Repository: c.Repository,
		Number:     c.PullRequest,
	}
}
