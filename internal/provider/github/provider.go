package github

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v57/github"
	"github.com/gregjones/httpcache"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"

	"github.com/maxbolgarin/critic/internal/model"
	"github.com/maxbolgarin/critic/internal/model/interfaces"
)

var _ interfaces.CodeProvider = (*Provider)(nil)

const (
	defaultBaseURL = "https://github.com"
)

// Provider implements the CodeProvider interface for GitHub
type Provider struct {
	client *github.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitHub provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitHub token is required")
	}
	log := logze.With("provider", "github", "component", "provider")

	// Transport stack: secondary rate limit middleware over OAuth2 token
	// auth over an ETag cache, so repeated metadata fetches cost no quota.
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Token})
	httpClient := github_ratelimit.NewClient(&oauth2.Transport{
		Source: ts,
		Base:   httpcache.NewMemoryCacheTransport(),
	})

	client := github.NewClient(httpClient)

	// Set base URL if provided (for GitHub Enterprise)
	if config.BaseURL != "" && config.BaseURL != defaultBaseURL {
		var err error
		client, err = client.WithEnterpriseURLs(config.BaseURL, config.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Provider{
		client: client,
		config: config,
		logger: log,
	}, nil
}

// GetPullRequest retrieves detailed information about a pull request
func (p *Provider) GetPullRequest(ctx context.Context, loc model.PullRequestLocator) (*model.PullRequest, error) {
	owner, repo, err := ownerRepo(loc)
	if err != nil {
		return nil, err
	}

	pr, _, err := p.client.PullRequests.Get(ctx, owner, repo, loc.Number)
	if err != nil {
		return nil, errm.Wrap(err, "failed to get pull request from GitHub")
	}

	return convertPullRequest(loc, pr), nil
}

// GetPullRequestDiff retrieves the full unified diff of a pull request
func (p *Provider) GetPullRequestDiff(ctx context.Context, loc model.PullRequestLocator) (string, error) {
	owner, repo, err := ownerRepo(loc)
	if err != nil {
		return "", err
	}

	diff, _, err := p.client.PullRequests.GetRaw(ctx, owner, repo, loc.Number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", errm.Wrap(err, "failed to get pull request diff from GitHub")
	}

	return diff, nil
}

// SubmitReview publishes all comments as a single COMMENT review bound to
// the head commit, so the set lands all-or-nothing.
func (p *Provider) SubmitReview(ctx context.Context, pr *model.PullRequest, comments []*model.ReviewComment) error {
	owner, repo, err := ownerRepo(pr.Locator)
	if err != nil {
		return err
	}

	draft := make([]*github.DraftReviewComment, 0, len(comments))
	for _, comment := range comments {
		draft = append(draft, &github.DraftReviewComment{
			Path: github.String(comment.Path),
			Line: github.Int(comment.Line),
			Side: github.String("RIGHT"),
			Body: github.String(comment.Body),
		})
	}

	review := &github.PullRequestReviewRequest{
		Event:    github.String("COMMENT"),
		Comments: draft,
	}
	if pr.SHA != "" {
		review.CommitID = github.String(pr.SHA)
	}

	_, _, err = p.client.PullRequests.CreateReview(ctx, owner, repo, pr.Locator.Number, review)
	if err != nil {
		return errm.Wrap(err, "failed to create pull request review")
	}

	p.logger.Info("submitted pull request review",
		"pull_request", pr.Locator.String(),
		"comments", len(comments))

	return nil
}

// ownerRepo splits the locator into GitHub owner and repository parts.
// A combined "owner/repo" project path is accepted as well.
func ownerRepo(loc model.PullRequestLocator) (string, string, error) {
	if loc.Repository != "" {
		return loc.Project, loc.Repository, nil
	}

	parts := strings.Split(loc.Project, "/")
	if len(parts) != 2 {
		return "", "", errm.New("invalid GitHub project format, expected 'owner/repo': %s", loc.Project)
	}

	return parts[0], parts[1], nil
}

func convertPullRequest(loc model.PullRequestLocator, pr *github.PullRequest) *model.PullRequest {
	result := &model.PullRequest{
		Locator:      loc,
		Title:        pr.GetTitle(),
		Description:  pr.GetBody(),
		SourceBranch: pr.GetHead().GetRef(),
		TargetBranch: pr.GetBase().GetRef(),
		State:        pr.GetState(),
		SHA:          pr.GetHead().GetSHA(),
		URL:          pr.GetHTMLURL(),
		CreatedAt:    pr.GetCreatedAt().Time,
		UpdatedAt:    pr.GetUpdatedAt().Time,
	}

	if user := pr.GetUser(); user != nil {
		result.Author = model.User{
			ID:       strconv.FormatInt(user.GetID(), 10),
			Username: user.GetLogin(),
			Name:     user.GetName(),
			Email:    user.GetEmail(),
		}
	}

	// GitHub binds review comments to the head commit, a start SHA is not used.
	result.DiffRefs = model.DiffRefs{
		BaseSHA: pr.GetBase().GetSHA(),
		HeadSHA: pr.GetHead().GetSHA(),
	}

	return result
}
