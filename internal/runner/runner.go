package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"curator/internal/analysis"
	"curator/internal/catalog"
	"curator/internal/config"
	"curator/internal/ledger"
	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/scoring"
	"curator/internal/similarity"
	"curator/internal/triage"
)

// Mode selects where a review pass draws its items from.
type Mode string

const (
	// ModeSweep scans the catalog for items this bot has not judged
	// within the dedup window.
	ModeSweep Mode = "sweep"
	// ModeDrain claims this bot's pending work items and re-reviews the
	// referenced catalog items.
	ModeDrain Mode = "drain"
)

// ParseMode validates a mode string from the CLI.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeSweep:
		return ModeSweep, nil
	case ModeDrain:
		return ModeDrain, nil
	default:
		return "", fmt.Errorf("unknown review mode %q (want sweep or drain)", value)
	}
}

// Options narrow a single review pass.
type Options struct {
	Mode    Mode
	Channel string
	Limit   int
}

// Runner performs one review pass: fetch candidates, analyze, score,
// check for duplicates, route, and record the outcome.
type Runner struct {
	cfg      *config.Config
	source   catalog.Source
	queue    *queue.Queue
	audit    *ledger.Ledger
	analyzer *analysis.Analyzer
	scorer   *scoring.Scorer
	index    *similarity.Index
	logger   *slog.Logger
}

// New assembles a runner from already-constructed collaborators.
func New(
	cfg *config.Config,
	source catalog.Source,
	workQueue *queue.Queue,
	audit *ledger.Ledger,
	scorer *scoring.Scorer,
	logger *slog.Logger,
) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		source:   source,
		queue:    workQueue,
		audit:    audit,
		analyzer: analysis.New(),
		scorer:   scorer,
		index:    similarity.NewIndex(source),
		logger:   logger,
	}
}

// Run executes one pass and returns the aggregate summary. Item-level
// failures are counted, not fatal; the pass stops early only on context
// cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Mode == "" {
		opts.Mode = ModeSweep
	}
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithBot(ctx, r.cfg.Review.BotName)
	logger := logging.WithContext(ctx, r.logger)

	summary := NewSummary(runID, opts.Mode)
	logger.Info("review pass starting",
		logging.String("mode", string(opts.Mode)),
		logging.String(logging.FieldChannel, opts.Channel))

	var err error
	switch opts.Mode {
	case ModeSweep:
		err = r.runSweep(ctx, logger, opts, summary)
	case ModeDrain:
		err = r.runDrain(ctx, logger, opts, summary)
	default:
		return nil, fmt.Errorf("unknown review mode %q", opts.Mode)
	}
	if err != nil {
		return summary, err
	}

	logger.Info("review pass finished",
		logging.Int("flagged", summary.Flagged),
		logging.Int("verified", summary.Verified),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed))
	return summary, nil
}

func (r *Runner) runSweep(ctx context.Context, logger *slog.Logger, opts Options, summary *Summary) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = r.cfg.Review.BatchLimit
	}
	channel := opts.Channel
	if channel == "" {
		channel = r.cfg.Review.Channel
	}
	items, err := r.source.Candidates(ctx, catalog.CandidateQuery{
		Channel:        channel,
		Limit:          limit,
		ExcludeBot:     r.cfg.Review.BotName,
		ExcludeActions: []string{ledger.ActionVerify, ledger.ActionFlag},
		Window:         time.Duration(r.cfg.Review.DedupWindowDays) * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("sweep candidates: %w", err)
	}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if err := r.pause(ctx); err != nil {
				return err
			}
		}
		r.reviewOne(ctx, logger, item, summary)
	}
	return nil
}

func (r *Runner) runDrain(ctx context.Context, logger *slog.Logger, opts Options, summary *Summary) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = r.cfg.Review.BatchLimit
	}
	claimed, err := r.queue.ClaimNext(ctx, itemTypeQuestion, limit)
	if err != nil {
		return fmt.Errorf("drain claim: %w", err)
	}

	for i, work := range claimed {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if err := r.pause(ctx); err != nil {
				return err
			}
		}
		r.drainOne(ctx, logger, work, summary)
	}
	return nil
}

func (r *Runner) drainOne(ctx context.Context, logger *slog.Logger, work *queue.WorkItem, summary *Summary) {
	item, err := r.source.Get(ctx, work.ItemID)
	if err != nil {
		summary.Failed++
		msg := fmt.Sprintf("load item: %v", err)
		if failErr := r.queue.Fail(ctx, work.ID, msg); failErr != nil {
			logger.Error("fail work item",
				logging.Int64(logging.FieldWorkItemID, work.ID),
				logging.Error(failErr))
		}
		return
	}
	if item == nil {
		summary.Failed++
		if failErr := r.queue.Fail(ctx, work.ID, "item no longer exists"); failErr != nil {
			logger.Error("fail work item",
				logging.Int64(logging.FieldWorkItemID, work.ID),
				logging.Error(failErr))
		}
		return
	}

	outcome := r.reviewOne(ctx, logger, *item, summary)
	if err := r.queue.Complete(ctx, work.ID, outcome); err != nil {
		logger.Error("complete work item",
			logging.Int64(logging.FieldWorkItemID, work.ID),
			logging.Error(err))
	}
}

// reviewOne runs the full pipeline on one item and records the outcome.
// It returns a short result string for work-item completion.
func (r *Runner) reviewOne(ctx context.Context, logger *slog.Logger, item catalog.Item, summary *Summary) (outcome string) {
	itemLogger := logger.With(logging.Int64(logging.FieldItemID, item.ID))
	defer func() {
		if rec := recover(); rec != nil {
			summary.Skipped++
			outcome = fmt.Sprintf("panic: %v", rec)
			itemLogger.Error("item review panicked, skipping item", logging.Any("panic", rec))
		}
	}()

	issues, _ := r.analyzer.Analyze(item)

	result := r.scorer.Score(ctx, &item)
	issues = append(issues, result.Issues...)
	if result.Degraded {
		itemLogger.Warn("scoring degraded, using deterministic checks only")
	}

	matches, err := r.index.FindSimilar(ctx, item.ID, item.CombinedText(), item.Channel, r.cfg.Review.SimilarityCandidates)
	if err != nil {
		// Similarity is advisory; a lookup failure must not block review.
		itemLogger.Warn("similarity lookup failed", logging.Error(err))
	}
	for _, match := range matches {
		issues = append(issues, match.Issue())
	}

	decision := triage.Decide(issues)
	summary.Observe(item, issues, result, decision)

	if !decision.Flagged() {
		r.audit.Record(ctx, ledger.Entry{
			BotName:     r.cfg.Review.BotName,
			Action:      ledger.ActionVerify,
			ItemType:    itemTypeQuestion,
			ItemID:      item.ID,
			BeforeState: stateActive,
			AfterState:  stateActive,
			Reason:      fmt.Sprintf("no actionable issues; score %.1f", result.Overall),
		})
		summary.Verified++
		itemLogger.Info("item verified", logging.Float64("score", result.Overall))
		return "verified"
	}

	reason := analysis.Summarize(issues, maxSummaryIssues)
	workID, err := r.queue.Enqueue(ctx, queue.EnqueueRequest{
		ItemID:    item.ID,
		ItemType:  itemTypeQuestion,
		Action:    string(decision.Action),
		Reason:    reason,
		CreatedBy: r.cfg.Review.BotName,
		Priority:  decision.Priority,
	})
	if err != nil {
		summary.Failed++
		itemLogger.Error("enqueue flagged item", logging.Error(err))
		return fmt.Sprintf("enqueue failed: %v", err)
	}

	r.audit.Record(ctx, ledger.Entry{
		BotName:     r.cfg.Review.BotName,
		Action:      ledger.ActionFlag,
		ItemType:    itemTypeQuestion,
		ItemID:      item.ID,
		BeforeState: stateActive,
		AfterState:  "flagged:" + string(decision.Action),
		Reason:      reason,
	})
	summary.Flagged++
	itemLogger.Info("item flagged",
		logging.String("action", string(decision.Action)),
		logging.Int("priority", decision.Priority),
		logging.Int64(logging.FieldWorkItemID, workID),
		logging.Float64("score", result.Overall))
	return "flagged:" + string(decision.Action)
}

func (r *Runner) pause(ctx context.Context) error {
	delay := time.Duration(r.cfg.Review.ItemDelayMillis) * time.Millisecond
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const (
	itemTypeQuestion = "question"
	stateActive      = "active"
	maxSummaryIssues = 3
)
