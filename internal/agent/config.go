package agent

import (
	"slices"
	"time"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"

	"github.com/maxbolgarin/critic/internal/model"
)

const (
	defaultTemperature = 0.1
	defaultTopP        = 1.0
	defaultMaxTokens   = 1000
	defaultTimeout     = 30 * time.Second
	defaultUserAgent   = "critic/0.1.0 (https://github.com/maxbolgarin/critic)"
)

// AgentType represents the type of AI agent
type AgentType string

// SupportedAgentTypes defines the supported AI agent types
const (
	Gemini AgentType = "gemini"
	OpenAI AgentType = "openai"
	Claude AgentType = "claude"
)

var supportedAgentTypes = []AgentType{Gemini, OpenAI, Claude}

// Config represents AI agent configuration. Sampling defaults are tuned for
// review critique: low temperature, short output, top-p 1 and no penalties,
// so runs over the same diff stay reproducible.
type Config struct {
	Type   AgentType `yaml:"type" env:"AGENT_TYPE"` // gemini, openai, claude
	APIKey string    `yaml:"api_key" env:"AGENT_API_KEY"`
	Model  string    `yaml:"model" env:"AGENT_MODEL"`

	Temperature      float32 `yaml:"temperature" env:"AGENT_TEMPERATURE"`
	TopP             float32 `yaml:"top_p" env:"AGENT_TOP_P"`
	FrequencyPenalty float32 `yaml:"frequency_penalty" env:"AGENT_FREQUENCY_PENALTY"`
	PresencePenalty  float32 `yaml:"presence_penalty" env:"AGENT_PRESENCE_PENALTY"`
	MaxTokens        int     `yaml:"max_tokens" env:"AGENT_MAX_TOKENS"`

	BaseURL   string        `yaml:"base_url" env:"AGENT_BASE_URL"` // Custom API endpoint (Azure OpenAI, local models, etc.)
	ProxyURL  string        `yaml:"proxy_url" env:"AGENT_PROXY_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"AGENT_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"AGENT_USER_AGENT"`
	IsTest    bool          `yaml:"is_test" env:"AGENT_IS_TEST"`

	Language model.Language `yaml:"language" env:"AGENT_LANGUAGE"`
}

func (c *Config) PrepareAndValidate() error {
	if c.APIKey == "" {
		return erro.New("api key is required")
	}
	if c.Type == "" || !slices.Contains(supportedAgentTypes, c.Type) {
		return erro.New("invalid agent type: %s", c.Type)
	}

	c.Temperature = lang.Check(c.Temperature, defaultTemperature)
	c.TopP = lang.Check(c.TopP, defaultTopP)
	c.MaxTokens = lang.Check(c.MaxTokens, defaultMaxTokens)
	c.Timeout = lang.Check(c.Timeout, defaultTimeout)
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)

	return nil
}
