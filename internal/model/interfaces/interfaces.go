package interfaces

import (
	"context"

	"github.com/maxbolgarin/critic/internal/model"
)

// CodeProvider defines the interface for different VCS providers (GitLab, GitHub, etc.)
type CodeProvider interface {
	// GetPullRequest fetches the pull request metadata.
	GetPullRequest(ctx context.Context, loc model.PullRequestLocator) (*model.PullRequest, error)

	// GetPullRequestDiff fetches the full unified diff text of the pull
	// request. An empty string means the pull request has no diff.
	GetPullRequestDiff(ctx context.Context, loc model.PullRequestLocator) (string, error)

	// SubmitReview publishes all comments as a single review. It is called
	// at most once per run and only with a non-empty comment list.
	SubmitReview(ctx context.Context, pr *model.PullRequest, comments []*model.ReviewComment) error
}

// ReviewRunner runs the whole review pipeline for one pull request.
type ReviewRunner interface {
	Run(ctx context.Context, loc model.PullRequestLocator) (*model.ReviewResult, error)
}

// ReviewAgent defines the interface for producing a critique of a single hunk
type ReviewAgent interface {
	// ReviewHunk returns the critique text for one hunk. An empty critique
	// means the hunk needs no comment.
	ReviewHunk(ctx context.Context, pr *model.PullRequest, file *model.FileDiff, hunk *model.Hunk) (string, error)
}

// AgentAPI defines the interface for calling LLM AI models
type AgentAPI interface {
	CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error)
}
