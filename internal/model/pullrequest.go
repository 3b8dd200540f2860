package model

import (
	"strconv"
	"time"
)

// PullRequestLocator identifies a single pull request on a code host.
type PullRequestLocator struct {
	// Project is the owner or namespace part of the repository path.
	Project string `json:"project"`

	// Repository is the repository name. Hosts that address projects by a
	// single path (e.g. GitLab) may leave it empty and put the full path
	// into Project.
	Repository string `json:"repository"`

	// Number is the pull request number (IID on GitLab).
	Number int `json:"number"`
}

// ProjectPath returns the host-side project path, joining Project and
// Repository when both are set.
func (l PullRequestLocator) ProjectPath() string {
	if l.Repository == "" {
		return l.Project
	}
	return l.Project + "/" + l.Repository
}

// String returns a stable key for logs and deduplication.
func (l PullRequestLocator) String() string {
	return l.ProjectPath() + "!" + strconv.Itoa(l.Number)
}

// IsValid reports whether the locator carries enough to address a pull request.
func (l PullRequestLocator) IsValid() bool {
	return l.Project != "" && l.Number > 0
}

// ProviderConfig carries the connection settings a code host client needs.
type ProviderConfig struct {
	BaseURL string
	Token   string
}

// User represents a code host user account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// DiffRefs are the commit SHAs an inline comment position is bound to.
type DiffRefs struct {
	BaseSHA  string `json:"base_sha"`
	StartSHA string `json:"start_sha"`
	HeadSHA  string `json:"head_sha"`
}

// PullRequest carries the pull request metadata used to build prompts and
// to submit the review.
type PullRequest struct {
	Locator      PullRequestLocator `json:"locator"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Author       User               `json:"author"`
	SourceBranch string             `json:"source_branch"`
	TargetBranch string             `json:"target_branch"`
	State        string             `json:"state"`
	SHA          string             `json:"sha"`
	DiffRefs     DiffRefs           `json:"diff_refs"`
	URL          string             `json:"url"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
