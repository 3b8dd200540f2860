package reviewer

import (
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/panjf2000/ants/v2"

	"github.com/maxbolgarin/critic/internal/diff"
	"github.com/maxbolgarin/critic/internal/model/interfaces"
)

// pipelineState names the stage a review run is in, used for flow logging.
type pipelineState string

const (
	stateFetchingMetadata pipelineState = "fetching_metadata"
	stateFetchingDiff     pipelineState = "fetching_diff"
	stateParsing          pipelineState = "parsing"
	stateFiltering        pipelineState = "filtering"
	stateAnalyzing        pipelineState = "analyzing"
	stateSubmitting       pipelineState = "submitting"
	stateDone             pipelineState = "done"
)

// Reviewer runs the review pipeline: fetch the pull request and its diff,
// parse and filter the changed files, critique every hunk and submit the
// anchored comments as one review.
type Reviewer struct {
	provider interfaces.CodeProvider
	agent    interfaces.ReviewAgent
	pool     *ants.Pool
	parser   *diff.Parser
	filter   *diff.Filter

	cfg Config
	log logze.Logger
}

var _ interfaces.ReviewRunner = (*Reviewer)(nil)

// New creates a new reviewer
func New(cfg Config, provider interfaces.CodeProvider, agent interfaces.ReviewAgent) (*Reviewer, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "failed to prepare and validate config")
	}

	filter, err := diff.NewFilter(cfg.ExcludePatterns)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create file filter")
	}

	pool, err := ants.NewPool(cfg.Concurrency)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create ants pool")
	}

	s := &Reviewer{
		provider: provider,
		agent:    agent,
		pool:     pool,
		parser:   diff.NewParser(),
		filter:   filter,
		cfg:      cfg,
		log:      logze.With("component", "reviewer"),
	}

	return s, nil
}

func (s *Reviewer) logFlow(log logze.Logger, state pipelineState) {
	if s.cfg.Verbose {
		log.Info("review flow", "state", string(state))
	} else {
		log.Debug("review flow", "state", string(state))
	}
}
