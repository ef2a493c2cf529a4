package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"curator/internal/catalog"
	"curator/internal/ledger"
	"curator/internal/queue"
	"curator/internal/runner"
	"curator/internal/scoring"
	"curator/internal/store"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var (
		modeFlag    string
		channelFlag string
		limitFlag   int
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run one review pass over the catalog or the work queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mode, err := runner.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			// One running instance per bot name per host.
			lockPath := filepath.Join(cfg.Paths.LogDir, cfg.Review.BotName+".lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another %s instance is already running (lock %s)", cfg.Review.BotName, lockPath)
			}
			defer func() {
				_ = lock.Unlock()
			}()

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			db, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			audit := ledger.New(db, logger)
			workQueue := queue.New(db, logger, queue.WithLedger(audit))
			source := catalog.NewStore(db)
			scorer := scoring.NewScorer(scoring.NewClient(cfg.Evaluator), logger)

			pass := runner.New(cfg, source, workQueue, audit, scorer, logger)
			summary, err := pass.Run(runCtx, runner.Options{
				Mode:    mode,
				Channel: channelFlag,
				Limit:   limitFlag,
			})
			if err != nil {
				if errors.Is(err, runCtx.Err()) {
					return err
				}
				return fmt.Errorf("review pass: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), summary.Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", string(runner.ModeSweep), "Review mode: sweep or drain")
	cmd.Flags().StringVar(&channelFlag, "channel", "", "Restrict the sweep to one channel")
	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Maximum items per pass (0 uses the configured batch limit)")

	return cmd
}
