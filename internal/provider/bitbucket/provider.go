package bitbucket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/critic/internal/model"
	"github.com/maxbolgarin/critic/internal/model/interfaces"
)

var _ interfaces.CodeProvider = (*Provider)(nil)

const (
	defaultBaseURL = "https://api.bitbucket.org/2.0"
)

// Provider implements the CodeProvider interface for Bitbucket Cloud
type Provider struct {
	config model.ProviderConfig
	logger logze.Logger
	client *cliex.HTTP
}

// New creates a new Bitbucket provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("Bitbucket token is required")
	}
	log := logze.With("provider", "bitbucket", "component", "provider")

	baseURL := defaultBaseURL
	if config.BaseURL != "" {
		baseURL = strings.TrimSuffix(config.BaseURL, "/")
	}

	cli, err := cliex.New(cliex.WithBaseURL(baseURL), cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Bitbucket client")
	}
	cli.C().SetBasicAuth("x-auth-token", config.Token)

	return &Provider{
		client: cli,
		config: config,
		logger: log,
	}, nil
}

// GetPullRequest retrieves detailed information about a pull request
func (p *Provider) GetPullRequest(ctx context.Context, loc model.PullRequestLocator) (*model.PullRequest, error) {
	workspace, repoSlug, err := workspaceSlug(loc)
	if err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("repositories/%s/%s/pullrequests/%d", workspace, repoSlug, loc.Number)

	var pr bitbucketPullRequest
	if _, err := p.client.Get(ctx, apiURL, &pr); err != nil {
		return nil, errm.Wrap(err, "failed to get pull request from Bitbucket")
	}

	createdAt, _ := time.Parse(time.RFC3339, pr.CreatedOn)
	updatedAt, _ := time.Parse(time.RFC3339, pr.UpdatedOn)

	return &model.PullRequest{
		Locator:      loc,
		Title:        pr.Title,
		Description:  pr.Description,
		SourceBranch: pr.Source.Branch.Name,
		TargetBranch: pr.Destination.Branch.Name,
		State:        strings.ToLower(pr.State),
		SHA:          pr.Source.Commit.Hash,
		URL:          pr.Links.HTML.Href,
		Author: model.User{
			ID:       pr.Author.UUID,
			Username: pr.Author.Username,
			Name:     pr.Author.DisplayName,
		},
		DiffRefs: model.DiffRefs{
			BaseSHA: pr.Destination.Commit.Hash,
			HeadSHA: pr.Source.Commit.Hash,
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// GetPullRequestDiff retrieves the raw unified diff of a pull request
func (p *Provider) GetPullRequestDiff(ctx context.Context, loc model.PullRequestLocator) (string, error) {
	workspace, repoSlug, err := workspaceSlug(loc)
	if err != nil {
		return "", err
	}

	apiURL := fmt.Sprintf("repositories/%s/%s/pullrequests/%d/diff", workspace, repoSlug, loc.Number)

	resp, err := p.client.Get(ctx, apiURL)
	if err != nil {
		return "", errm.Wrap(err, "failed to get diff from Bitbucket")
	}

	return string(resp.Body()), nil
}

// SubmitReview publishes every comment as an inline pull request comment.
// Bitbucket has no single-call review, so comments are created sequentially
// and the first failure aborts the rest.
func (p *Provider) SubmitReview(ctx context.Context, pr *model.PullRequest, comments []*model.ReviewComment) error {
	workspace, repoSlug, err := workspaceSlug(pr.Locator)
	if err != nil {
		return err
	}

	apiURL := fmt.Sprintf("repositories/%s/%s/pullrequests/%d/comments", workspace, repoSlug, pr.Locator.Number)

	for _, comment := range comments {
		commentData := map[string]any{
			"content": map[string]any{
				"raw": comment.Body,
			},
			"inline": map[string]any{
				"path": comment.Path,
				"to":   comment.Line,
			},
		}

		if _, err := p.client.Post(ctx, apiURL, commentData); err != nil {
			return errm.Wrap(err, "failed to create comment", "path", comment.Path, "line", comment.Line)
		}
	}

	p.logger.Info("submitted pull request review",
		"pull_request", pr.Locator.String(),
		"comments", len(comments))

	return nil
}

// workspaceSlug splits the locator into Bitbucket workspace and repository slug.
// A combined "workspace/repo_slug" project path is accepted as well.
func workspaceSlug(loc model.PullRequestLocator) (string, string, error) {
	if loc.Repository != "" {
		return loc.Project, loc.Repository, nil
	}

	parts := strings.Split(loc.Project, "/")
	if len(parts) != 2 {
		return "", "", errm.New("invalid Bitbucket project format, expected 'workspace/repo_slug': %s", loc.Project)
	}

	return parts[0], parts[1], nil
}
