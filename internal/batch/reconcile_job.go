package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/infrastructure/monitoring"
	"repayment-engine/internal/pkg/apperrors"
	"sync"
	"sync/atomic"
	"time"
)

const defaultReconcileWorkers = 8

// LedgerReader is the read side of loan.Repository the job needs.
type LedgerReader interface {
	GetLoanIDsByStatus(ctx context.Context, status loan.LoanStatus) ([]int64, error)
	GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error)
	GetScheduleByLoanID(ctx context.Context, loanID int64) ([]loan.ScheduledRepayment, error)
}

// ReconcileJob re-checks every open loan against its schedule. It only
// reports; it never writes.
type ReconcileJob struct {
	ledger  LedgerReader
	workers int
	logger  *slog.Logger
}

type ReconcileSummary struct {
	Checked       int
	Inconsistent  int
	Discrepancies int
	Errors        int
}

func NewReconcileJob(ledger LedgerReader, workers int, logger *slog.Logger) *ReconcileJob {
	if ledger == nil || logger == nil {
		panic("ReconcileJob dependencies cannot be nil")
	}
	if workers <= 0 {
		workers = defaultReconcileWorkers
	}
	return &ReconcileJob{
		ledger:  ledger,
		workers: workers,
		logger:  logger.With("job", "ReconcileLedger"),
	}
}

func (j *ReconcileJob) Run(ctx context.Context) error {
	summary, err := j.Reconcile(ctx)
	if err != nil {
		monitoring.RecordReconciliationRun("failure")
		return err
	}
	if summary.Errors > 0 {
		monitoring.RecordReconciliationRun("partial")
		return fmt.Errorf("job completed with %d errors", summary.Errors)
	}
	monitoring.RecordReconciliationRun("success")
	return nil
}

func (j *ReconcileJob) Reconcile(ctx context.Context) (ReconcileSummary, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting ledger reconciliation job.")

	loanIDs, err := j.ledger.GetLoanIDsByStatus(ctx, loan.StatusDue)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to get open loan IDs, aborting job.", slog.Any("error", err))
		return ReconcileSummary{}, fmt.Errorf("cannot run job, failed to get open loans: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched open loan IDs.", slog.Int("count", len(loanIDs)))

	var checked, inconsistent, discrepancies, errorCount atomic.Int64

	ids := make(chan int64)
	var wg sync.WaitGroup
	for w := 0; w < j.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for loanID := range ids {
				found, err := j.checkLoan(ctx, loanID)
				if err != nil {
					errorCount.Add(1)
					continue
				}
				checked.Add(1)
				if len(found) > 0 {
					inconsistent.Add(1)
					discrepancies.Add(int64(len(found)))
				}
			}
		}()
	}

feed:
	for _, id := range loanIDs {
		select {
		case ids <- id:
		case <-ctx.Done():
			break feed
		}
	}
	close(ids)
	wg.Wait()

	summary := ReconcileSummary{
		Checked:       int(checked.Load()),
		Inconsistent:  int(inconsistent.Load()),
		Discrepancies: int(discrepancies.Load()),
		Errors:        int(errorCount.Load()),
	}
	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("open_loans", len(loanIDs)),
		slog.Int("loans_checked", summary.Checked),
		slog.Int("loans_inconsistent", summary.Inconsistent),
		slog.Int("discrepancies", summary.Discrepancies),
		slog.Int("errors_encountered", summary.Errors),
	)
	if summary.Errors > 0 || summary.Inconsistent > 0 {
		summaryLog.WarnContext(ctx, "Ledger reconciliation job finished with findings.")
	} else {
		summaryLog.InfoContext(ctx, "Ledger reconciliation job finished successfully.")
	}

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("reconciliation interrupted: %w", err)
	}
	return summary, nil
}

func (j *ReconcileJob) checkLoan(ctx context.Context, loanID int64) ([]loan.Discrepancy, error) {
	logCtx := j.logger.With(slog.Int64("loanID", loanID))

	l, err := j.ledger.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Loan disappeared during reconciliation", slog.Any("error", err))
		} else {
			logCtx.ErrorContext(ctx, "Failed to load loan", slog.Any("error", err))
		}
		return nil, err
	}

	schedule, err := j.ledger.GetScheduleByLoanID(ctx, loanID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to load schedule", slog.Any("error", err))
		return nil, err
	}

	found := loan.Reconcile(l, schedule)
	for _, d := range found {
		monitoring.RecordReconciliationMismatch(string(d.Kind))
		logCtx.ErrorContext(ctx, "Ledger discrepancy",
			slog.String("kind", string(d.Kind)),
			slog.Int64("scheduledRepaymentID", d.ScheduledRepaymentID),
			slog.String("detail", d.Detail),
		)
	}
	return found, nil
}
