package bot

import (
	"context"
	"fmt"
	"time"
)

// RunResult reports the outcome of one replies run.
type RunResult struct {
	Replied int
	Used    int
	Budget  int
	Skipped string // non-empty when the run exited before dispatch
}

// Line renders the single human-readable summary for the run.
func (r RunResult) Line() string {
	if r.Skipped != "" {
		return r.Skipped
	}
	return fmt.Sprintf("Replied to %d comments. Used today: %d/%d", r.Replied, r.Used, r.Budget)
}

// RunReplies executes one full reply pass: reconcile the daily budget
// against the current UTC date, resolve the target video, collect
// candidates since the watermark, dispatch under budget, and persist the
// usage counter and watermark. Transport failures abort the affected
// phase and are reported through the logger; state already recorded
// stands, and the watermark only advances when intake saw no error.
func (b *Bot) RunReplies(ctx context.Context) (RunResult, error) {
	startedAt := b.now().UTC()
	today := startedAt.Format(time.DateOnly)

	usage, err := b.state.DailyUsage(ctx, today)
	if err != nil {
		return RunResult{}, err
	}
	if usage.Used >= b.opts.DailyBudget {
		return RunResult{Used: usage.Used, Budget: b.opts.DailyBudget, Skipped: "Daily budget spent; exiting."}, nil
	}

	videoID, err := b.resolveVideo(ctx)
	if err != nil {
		b.logger.Error("video lookup failed", "error", err)
		return RunResult{Used: usage.Used, Budget: b.opts.DailyBudget, Skipped: "No video found."}, nil
	}
	if videoID == "" {
		return RunResult{Used: usage.Used, Budget: b.opts.DailyBudget, Skipped: "No video found."}, nil
	}

	runID, err := b.state.StartRun(ctx, "replies", startedAt)
	if err != nil {
		return RunResult{}, err
	}

	watermark, haveWatermark, err := b.state.Watermark(ctx, videoID)
	if err != nil {
		return RunResult{}, err
	}

	candidates, intakeErr := b.intake(ctx, videoID, watermark, haveWatermark)
	if intakeErr != nil {
		// The unseen window will be re-scanned next run; candidates
		// already collected are still dispatched below.
		b.logger.Error("intake aborted", "error", intakeErr, "video_id", videoID, "candidates", len(candidates))
	}

	replied, usage, dispatchErr := b.dispatch(ctx, videoID, candidates, usage)
	if dispatchErr != nil {
		b.logger.Error("dispatch aborted", "error", dispatchErr, "video_id", videoID, "completed", replied)
	}

	if err := b.state.SetDailyUsage(ctx, usage); err != nil {
		return RunResult{}, err
	}
	if intakeErr == nil {
		if err := b.state.SetWatermark(ctx, videoID, b.now().UTC()); err != nil {
			return RunResult{}, err
		}
	}

	result := RunResult{Replied: replied, Used: usage.Used, Budget: b.opts.DailyBudget}
	if err := b.state.FinishRun(ctx, runID, b.now().UTC(), replied, result.Line()); err != nil {
		b.logger.Error("run audit update failed", "error", err, "run_id", runID)
	}
	b.logger.Info("replies run finished",
		"run_id", runID,
		"video_id", videoID,
		"candidates", len(candidates),
		"replied", replied,
		"used_today", usage.Used,
	)
	return result, nil
}
