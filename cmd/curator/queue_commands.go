package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"curator/internal/ledger"
	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/store"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Work queue operations",
	}

	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueCleanupCommand(ctx))

	return queueCmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show work item counts and pending work",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueue(func(q *queue.Queue) error {
				cmdCtx := cmd.Context()
				out := cmd.OutOrStdout()

				stats, err := q.Stats(cmdCtx)
				if err != nil {
					return fmt.Errorf("queue stats: %w", err)
				}
				statuses := queue.AllStatuses()
				statusRows := make([][]string, 0, len(statuses)+1)
				total := 0
				for _, status := range statuses {
					statusRows = append(statusRows, []string{string(status), strconv.Itoa(stats[status])})
					total += stats[status]
				}
				statusRows = append(statusRows, []string{"total", strconv.Itoa(total)})

				if isTerminal(out) {
					fmt.Fprintln(out, renderTable(
						[]string{"Status", "Count"},
						statusRows,
						[]columnAlignment{alignLeft, alignRight},
					))
				} else {
					for _, row := range statusRows {
						fmt.Fprintf(out, "%s\t%s\n", row[0], row[1])
					}
				}

				pending, err := q.List(cmdCtx, queue.StatusPending, queue.StatusProcessing)
				if err != nil {
					return fmt.Errorf("list work items: %w", err)
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "No open work items.")
					return nil
				}
				rows := make([][]string, 0, len(pending))
				for _, item := range pending {
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						strconv.FormatInt(item.ItemID, 10),
						item.Action,
						strconv.Itoa(item.Priority),
						string(item.Status),
						item.CreatedBy,
					})
				}
				if isTerminal(out) {
					fmt.Fprintln(out, renderTable(
						[]string{"Work", "Item", "Action", "Priority", "Status", "Created by"},
						rows,
						[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignLeft, alignLeft},
					))
				} else {
					for _, row := range rows {
						fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\n",
							row[0], row[1], row[2], row[3], row[4], row[5])
					}
				}
				return nil
			})
		},
	}
}

func newQueueCleanupCommand(ctx *commandContext) *cobra.Command {
	var daysFlag int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete old completed and failed work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			days := daysFlag
			if days <= 0 {
				days = cfg.Queue.CleanupDays
			}
			return ctx.withQueue(func(q *queue.Queue) error {
				removed, err := q.Cleanup(cmd.Context(), days)
				if err != nil {
					return fmt.Errorf("queue cleanup: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d work items older than %d days\n", removed, days)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&daysFlag, "days", 0, "Retention in days (0 uses the configured value)")
	return cmd
}

func (c *commandContext) withQueue(fn func(*queue.Queue) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	db, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	logger := logging.NewNop()
	return fn(queue.New(db, logger, queue.WithLedger(ledger.New(db, logger))))
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
