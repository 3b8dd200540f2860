package gitlab

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/maxbolgarin/critic/internal/model"
	"github.com/maxbolgarin/critic/internal/model/interfaces"
)

const (
	defaultBaseURL = "https://gitlab.com"
)

var _ interfaces.CodeProvider = (*Provider)(nil)

// Provider implements the CodeProvider interface for GitLab
type Provider struct {
	client *gitlab.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitLab provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitLab token is required")
	}
	logger := logze.With("provider", "gitlab", "component", "provider")

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client, err := gitlab.NewClient(config.Token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &Provider{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// GetPullRequest retrieves detailed information about a merge request
func (p *Provider) GetPullRequest(ctx context.Context, loc model.PullRequestLocator) (*model.PullRequest, error) {
	mr, resp, err := p.client.MergeRequests.GetMergeRequest(loc.ProjectPath(), loc.Number, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, errm.Wrap(err, "failed to get merge request from GitLab")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errm.New("GitLab API returned status %d", resp.StatusCode)
	}

	result := &model.PullRequest{
		Locator:      loc,
		Title:        mr.Title,
		Description:  mr.Description,
		SourceBranch: mr.SourceBranch,
		TargetBranch: mr.TargetBranch,
		State:        mr.State,
		SHA:          mr.SHA,
		URL:          mr.WebURL,
		DiffRefs: model.DiffRefs{
			BaseSHA:  mr.DiffRefs.BaseSha,
			StartSHA: mr.DiffRefs.StartSha,
			HeadSHA:  mr.DiffRefs.HeadSha,
		},
		CreatedAt: lang.Deref(mr.CreatedAt),
		UpdatedAt: lang.Deref(mr.UpdatedAt),
	}

	if mr.Author != nil {
		result.Author = model.User{
			ID:       strconv.Itoa(mr.Author.ID),
			Username: mr.Author.Username,
			Name:     mr.Author.Name,
		}
	}

	return result, nil
}

// GetPullRequestDiff retrieves per-file diffs of a merge request and
// assembles them into one unified diff text
func (p *Provider) GetPullRequestDiff(ctx context.Context, loc model.PullRequestLocator) (string, error) {
	var allDiffs []*gitlab.MergeRequestDiff

	opts := &gitlab.ListMergeRequestDiffsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}

	// Fetch all pages of diffs
	for {
		diffs, resp, err := p.client.MergeRequests.ListMergeRequestDiffs(loc.ProjectPath(), loc.Number, opts, gitlab.WithContext(ctx))
		if err != nil {
			return "", errm.Wrap(err, "failed to list merge request diffs")
		}

		if resp.StatusCode != http.StatusOK {
			return "", errm.New("GitLab API returned status %d", resp.StatusCode)
		}

		allDiffs = append(allDiffs, diffs...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return assembleUnifiedDiff(allDiffs), nil
}

// SubmitReview publishes every comment as a positioned discussion on the
// merge request. GitLab has no single-call review, so comments are created
// sequentially and the first failure aborts the rest.
func (p *Provider) SubmitReview(ctx context.Context, pr *model.PullRequest, comments []*model.ReviewComment) error {
	positionType := "text"

	for _, comment := range comments {
		opts := &gitlab.CreateMergeRequestDiscussionOptions{
			Body: &comment.Body,
			Position: &gitlab.PositionOptions{
				BaseSHA:      &pr.DiffRefs.BaseSHA,
				StartSHA:     &pr.DiffRefs.StartSHA,
				HeadSHA:      &pr.DiffRefs.HeadSHA,
				PositionType: &positionType,
				NewPath:      &comment.Path,
				NewLine:      &comment.Line,
			},
		}

		_, _, err := p.client.Discussions.CreateMergeRequestDiscussion(pr.Locator.ProjectPath(), pr.Locator.Number, opts, gitlab.WithContext(ctx))
		if err != nil {
			return errm.Wrap(err, "failed to create merge request discussion", "path", comment.Path, "line", comment.Line)
		}
	}

	p.logger.Info("submitted merge request review",
		"pull_request", pr.Locator.String(),
		"comments", len(comments))

	return nil
}

// assembleUnifiedDiff joins per-file hunk texts into a single unified diff.
// GitLab returns bare hunks per file, so the file header pair is added back,
// with /dev/null marking created and deleted files.
func assembleUnifiedDiff(diffs []*gitlab.MergeRequestDiff) string {
	var sb strings.Builder

	for _, d := range diffs {
		if d.Diff == "" {
			continue
		}

		if d.NewFile {
			sb.WriteString("--- /dev/null\n")
		} else {
			sb.WriteString("--- a/" + d.OldPath + "\n")
		}

		if d.DeletedFile {
			sb.WriteString("+++ /dev/null\n")
		} else {
			sb.WriteString("+++ b/" + d.NewPath + "\n")
		}

		sb.WriteString(d.Diff)
		if !strings.HasSuffix(d.Diff, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
