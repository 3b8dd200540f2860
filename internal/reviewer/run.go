package reviewer

import (
	"context"
	"strings"
	"sync"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/critic/internal/model"
)

// Run reviews one pull request end to end and returns the run accounting.
// The returned error is non-nil only for fatal failures: fetching the pull
// request, fetching its diff or submitting the review. A failed hunk
// analysis is recorded in the result and does not fail the run.
func (s *Reviewer) Run(ctx context.Context, loc model.PullRequestLocator) (*model.ReviewResult, error) {
	if !loc.IsValid() {
		return nil, errm.New("invalid pull request locator", "locator", loc.String())
	}

	log := s.log.WithFields("pull_request", loc.String())
	result := &model.ReviewResult{}
	timer := abstract.StartTimer()

	defer func() {
		s.logRunResults(result, timer, log)
	}()

	s.logFlow(log, stateFetchingMetadata)
	pr, err := s.provider.GetPullRequest(ctx, loc)
	if err != nil {
		return result, errm.Wrap(err, "failed to get pull request")
	}

	log = log.WithFields(
		"branch_from", pr.SourceBranch,
		"branch_to", pr.TargetBranch,
		"commit_sha", lang.TruncateString(pr.SHA, 8),
	)
	log.Infof("starting pull request review: %s", pr.Title)

	s.logFlow(log, stateFetchingDiff)
	diffText, err := s.provider.GetPullRequestDiff(ctx, pr.Locator)
	if err != nil {
		return result, errm.Wrap(err, "failed to get pull request diff")
	}
	if strings.TrimSpace(diffText) == "" {
		log.Info("no diff found, nothing to review")
		result.IsSuccess = true
		return result, nil
	}

	s.logFlow(log, stateParsing)
	files := s.parser.Parse(diffText)
	if len(files) == 0 {
		log.Info("no reviewable files in diff")
		result.IsSuccess = true
		return result, nil
	}

	s.logFlow(log, stateFiltering)
	filesToReview := s.filterFilesForReview(files, result, log)
	if len(filesToReview) == 0 {
		log.InfoIf(s.cfg.Verbose, "no files to review after filtering")
		result.IsSuccess = true
		return result, nil
	}
	result.ProcessedFiles = len(filesToReview)

	s.logFlow(log, stateAnalyzing)
	comments := s.analyzeHunks(ctx, pr, filesToReview, result, log)
	result.CommentsCreated = len(comments)

	if err := ctx.Err(); err != nil {
		return result, errm.Wrap(err, "review interrupted")
	}

	if len(comments) == 0 {
		log.Info("review finished without comments")
		result.IsSuccess = true
		return result, nil
	}

	s.logFlow(log, stateSubmitting)
	if err := s.provider.SubmitReview(ctx, pr, comments); err != nil {
		return result, errm.Wrap(err, "failed to submit review")
	}
	result.Submitted = true
	result.IsSuccess = true

	s.logFlow(log, stateDone)

	return result, nil
}

// filterFilesForReview drops excluded, binary and oversized files and
// enforces the per-run file cap. Every skip is counted in the result.
func (s *Reviewer) filterFilesForReview(files []*model.FileDiff, result *model.ReviewResult, log logze.Logger) []*model.FileDiff {
	kept := s.filter.Apply(files)
	result.SkippedFiles += len(files) - len(kept)

	filtered := make([]*model.FileDiff, 0, len(kept))
	for i, file := range kept {
		if len(filtered) >= s.cfg.MaxFiles {
			log.Warn("reached maximum files limit", "limit", s.cfg.MaxFiles, "skipped", len(kept)-i)
			result.SkippedFiles += len(kept) - i
			break
		}

		if file.IsBinary {
			log.DebugIf(s.cfg.Verbose, "skipping binary file", "file", file.Path())
			result.SkippedFiles++
			continue
		}

		if len(file.Hunks) == 0 {
			log.DebugIf(s.cfg.Verbose, "skipping file without hunks", "file", file.Path())
			result.SkippedFiles++
			continue
		}

		if len(file.Diff) > s.cfg.MaxFileBytes {
			log.DebugIf(s.cfg.Verbose, "skipping due to size", "file", file.Path(), "size", len(file.Diff), "max_size", s.cfg.MaxFileBytes)
			result.SkippedFiles++
			continue
		}

		log.DebugIf(s.cfg.Verbose, "adding to review", "file", file.Path())
		filtered = append(filtered, file)
	}

	return filtered
}

type hunkTask struct {
	file *model.FileDiff
	hunk *model.Hunk
}

type hunkOutcome struct {
	comment *model.ReviewComment
	err     error
}

// analyzeHunks critiques every hunk through the worker pool. Outcomes are
// written to indexed slots so comments keep the original file and hunk order
// regardless of completion order.
func (s *Reviewer) analyzeHunks(ctx context.Context, pr *model.PullRequest, files []*model.FileDiff, result *model.ReviewResult, log logze.Logger) []*model.ReviewComment {
	var tasks []hunkTask
	for _, file := range files {
		for _, hunk := range file.Hunks {
			tasks = append(tasks, hunkTask{file: file, hunk: hunk})
		}
	}
	if len(tasks) == 0 {
		return nil
	}

	outcomes := make([]hunkOutcome, len(tasks))

	var wg sync.WaitGroup
	var scheduled int
	for i, task := range tasks {
		if ctx.Err() != nil {
			log.Warn("analysis interrupted, skipping remaining hunks", "remaining_hunks", len(tasks)-i)
			break
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = s.analyzeOneHunk(ctx, pr, task, log)
		})
		if err != nil {
			wg.Done()
			outcomes[i] = hunkOutcome{err: errm.Wrap(err, "failed to schedule hunk analysis", "file", task.file.Path())}
		}
		scheduled++
	}
	wg.Wait()

	comments := make([]*model.ReviewComment, 0, len(tasks))
	for _, outcome := range outcomes[:scheduled] {
		result.AnalyzedHunks++
		if outcome.err != nil {
			result.FailedHunks++
			result.Errors = append(result.Errors, outcome.err)
			continue
		}
		if outcome.comment != nil {
			comments = append(comments, outcome.comment)
		}
	}

	return comments
}

func (s *Reviewer) analyzeOneHunk(ctx context.Context, pr *model.PullRequest, task hunkTask, log logze.Logger) hunkOutcome {
	critique, err := s.agent.ReviewHunk(ctx, pr, task.file, task.hunk)
	if err != nil {
		log.Warn("hunk analysis failed, skipping", "file", task.file.Path(), "hunk", task.hunk.Header, "error", err)
		return hunkOutcome{err: errm.Wrap(err, "failed to review hunk", "file", task.file.Path())}
	}
	if critique == "" {
		log.DebugIf(s.cfg.Verbose, "no comment for hunk", "file", task.file.Path(), "hunk", task.hunk.Header)
		return hunkOutcome{}
	}

	comment, ok := anchorComment(task.file, task.hunk, critique)
	if !ok {
		log.DebugIf(s.cfg.Verbose, "dropping critique, hunk has no added lines", "file", task.file.Path(), "hunk", task.hunk.Header)
		return hunkOutcome{}
	}

	return hunkOutcome{comment: comment}
}

// logRunResults logs the accounting of a finished run
func (s *Reviewer) logRunResults(result *model.ReviewResult, timer abstract.Timer, log logze.Logger) {
	log = log.WithFields(
		"processed_files", result.ProcessedFiles,
		"skipped_files", result.SkippedFiles,
		"analyzed_hunks", result.AnalyzedHunks,
		"failed_hunks", result.FailedHunks,
		"comments_created", result.CommentsCreated,
		"submitted", result.Submitted,
		"elapsed_time", timer.ElapsedTime().String(),
	)

	if !result.IsSuccess {
		log.Error("review failed")
		return
	}

	if result.FailedHunks > 0 {
		log.Warn("review finished with failed hunks")
		for _, err := range result.Errors {
			log.Err(err, "hunk analysis error")
		}
		return
	}

	log.Info("successfully reviewed")
}
