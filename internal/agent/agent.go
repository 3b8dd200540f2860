package agent

import (
	"context"
	"strings"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/critic/internal/agent/claude"
	"github.com/maxbolgarin/critic/internal/agent/gemini"
	"github.com/maxbolgarin/critic/internal/agent/openai"
	"github.com/maxbolgarin/critic/internal/agent/prompts"
	"github.com/maxbolgarin/critic/internal/model"
	"github.com/maxbolgarin/critic/internal/model/interfaces"
)

// Agent turns diff hunks into review critiques through a configured LLM vendor.
type Agent struct {
	cfg    Config
	logger logze.Logger
	pb     *prompts.Builder
	api    interfaces.AgentAPI
}

var _ interfaces.ReviewAgent = (*Agent)(nil)

func New(ctx context.Context, cfg Config) (*Agent, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	cli, err := cliex.NewWithConfig(cliex.Config{
		BaseURL:        cfg.BaseURL,
		UserAgent:      cfg.UserAgent,
		ProxyAddress:   cfg.ProxyURL,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}

	agent := &Agent{
		cfg:    cfg,
		logger: logze.With("component", "agent"),
		pb:     prompts.NewBuilder(cfg.Language),
	}

	modelCfg := model.ModelConfig{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		URL:      cfg.BaseURL,
		ProxyURL: cfg.ProxyURL,
		IsTest:   cfg.IsTest,
	}

	switch cfg.Type {
	case Gemini:
		agent.api, err = gemini.New(ctx, modelCfg)
	case OpenAI:
		agent.api, err = openai.New(ctx, cli, modelCfg)
	case Claude:
		agent.api, err = claude.New(ctx, cli, modelCfg)
	default:
		return nil, errm.Errorf("unsupported agent type: %s", cfg.Type)
	}
	if err != nil {
		return nil, errm.Wrap(err, "failed to create agent")
	}

	return agent, nil
}

// ReviewHunk asks the model to critique a single hunk of the pull request.
// The returned critique is trimmed free text; an empty string means the
// model found nothing worth a comment.
func (a *Agent) ReviewHunk(ctx context.Context, pr *model.PullRequest, file *model.FileDiff, hunk *model.Hunk) (string, error) {
	prompt := a.pb.BuildHunkReviewPrompt(pr, file, hunk)

	response, err := a.api.CallAPI(ctx, model.APIRequest{
		Prompt:           prompt.UserPrompt,
		SystemPrompt:     prompt.SystemPrompt,
		MaxTokens:        a.cfg.MaxTokens,
		Temperature:      a.cfg.Temperature,
		TopP:             a.cfg.TopP,
		FrequencyPenalty: a.cfg.FrequencyPenalty,
		PresencePenalty:  a.cfg.PresencePenalty,
		ResponseType:     "text/plain",
	})
	if err != nil {
		return "", errm.Wrap(err, "failed to call API")
	}

	a.logger.Debug("completion finished",
		"file", file.Path(),
		"prompt_tokens", response.PromptTokens,
		"completion_tokens", response.CompletionTokens)

	return strings.TrimSpace(response.Content), nil
}
