package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"repayment-engine/internal/domain/currency"
	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/pkg/apperrors"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	loanColumns = `id, user_id, amount, currency_code, terms, outstanding_amount, status, processed_at, created_at, updated_at`

	scheduledColumns = `id, loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at, updated_at`

	receivedColumns = `id, loan_id, amount, absorbed_amount, currency_code, received_at, created_at`

	insertLoanSQL = `
        INSERT INTO loans (user_id, amount, currency_code, terms, outstanding_amount, status, processed_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	insertScheduledSQL = `
        INSERT INTO scheduled_repayments (loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	selectLoanByIDSQL = `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	selectLoanForUpdateSQL = `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`

	selectScheduleSQL = `SELECT ` + scheduledColumns + `
        FROM scheduled_repayments
        WHERE loan_id = $1
        ORDER BY due_date ASC, id ASC`

	selectOutstandingForUpdateSQL = `SELECT ` + scheduledColumns + `
        FROM scheduled_repayments
        WHERE loan_id = $1 AND status <> $2
        ORDER BY due_date ASC, id ASC
        FOR UPDATE`

	selectReceivedSQL = `SELECT ` + receivedColumns + `
        FROM received_repayments
        WHERE loan_id = $1
        ORDER BY received_at ASC, id ASC`

	selectLoanIDsByStatusSQL = `SELECT id FROM loans WHERE status = $1 ORDER BY id`

	insertReceivedSQL = `
        INSERT INTO received_repayments (loan_id, amount, absorbed_amount, currency_code, received_at, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at`

	updateScheduledSQL = `
        UPDATE scheduled_repayments
        SET outstanding_amount = $1, status = $2, updated_at = NOW()
        WHERE id = $3 AND loan_id = $4`

	updateLoanOutstandingSQL = `
        UPDATE loans
        SET outstanding_amount = $1, status = $2, updated_at = NOW()
        WHERE id = $3`
)

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return tx, nil
}

func (r *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

// CreateLoan stores the loan and its schedule in one transaction and returns
// the loan with ids and timestamps filled in.
func (r *LoanRepository) CreateLoan(ctx context.Context, newLoan *loan.Loan, schedule []loan.ScheduledRepayment) (created *loan.Loan, err error) {
	start := time.Now()
	defer func() { observe("CreateLoan", start, err) }()

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = r.RollbackTx(ctx, tx)
		}
	}()

	stored := *newLoan
	err = tx.QueryRow(ctx, insertLoanSQL,
		stored.UserID, stored.Amount, string(stored.CurrencyCode), stored.Terms,
		stored.OutstandingAmount, string(stored.Status), stored.ProcessedAt,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "error", err)
		return nil, fmt.Errorf("failed to insert loan: %w", translateDBError(err, r.logger))
	}

	stored.ScheduledRepayments = make([]loan.ScheduledRepayment, len(schedule))
	for i, entry := range schedule {
		entry.LoanID = stored.ID
		err = tx.QueryRow(ctx, insertScheduledSQL,
			entry.LoanID, entry.Amount, entry.OutstandingAmount, string(entry.CurrencyCode), entry.DueDate, string(entry.Status),
		).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed inserting scheduled repayment", "error", err, "entry_index", i, "loan_id", stored.ID)
			return nil, fmt.Errorf("failed inserting scheduled repayment %d: %w", i+1, translateDBError(err, r.logger))
		}
		stored.ScheduledRepayments[i] = entry
	}

	if err = r.CommitTx(ctx, tx); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", stored.ID, "num_entries", len(schedule))
	return &stored, nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	start := time.Now()
	l, err := scanLoan(r.db.QueryRow(ctx, selectLoanByIDSQL, loanID))
	observe("GetLoanByID", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return l, nil
}

func (r *LoanRepository) FindLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*loan.Loan, error) {
	start := time.Now()
	l, err := scanLoan(tx.QueryRow(ctx, selectLoanForUpdateSQL, loanID))
	observe("FindLoanForUpdate", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to lock loan", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return l, nil
}

func (r *LoanRepository) GetScheduleByLoanID(ctx context.Context, loanID int64) ([]loan.ScheduledRepayment, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, selectScheduleSQL, loanID)
	if err != nil {
		observe("GetScheduleByLoanID", start, err)
		r.logger.ErrorContext(ctx, "Failed to query loan schedule", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	schedule, err := collectScheduled(rows)
	observe("GetScheduleByLoanID", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read loan schedule", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return schedule, nil
}

func (r *LoanRepository) FindOutstandingRepaymentsForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) ([]loan.ScheduledRepayment, error) {
	start := time.Now()
	rows, err := tx.Query(ctx, selectOutstandingForUpdateSQL, loanID, string(loan.RepaymentStatusRepaid))
	if err != nil {
		observe("FindOutstandingRepaymentsForUpdate", start, err)
		r.logger.ErrorContext(ctx, "Failed to lock outstanding repayments", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	schedule, err := collectScheduled(rows)
	observe("FindOutstandingRepaymentsForUpdate", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read outstanding repayments", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return schedule, nil
}

func (r *LoanRepository) GetReceivedRepaymentsByLoanID(ctx context.Context, loanID int64) ([]loan.ReceivedRepayment, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, selectReceivedSQL, loanID)
	if err != nil {
		observe("GetReceivedRepaymentsByLoanID", start, err)
		r.logger.ErrorContext(ctx, "Failed to query received repayments", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	received := make([]loan.ReceivedRepayment, 0)
	for rows.Next() {
		var rr loan.ReceivedRepayment
		var code string
		if err := rows.Scan(&rr.ID, &rr.LoanID, &rr.Amount, &rr.AbsorbedAmount, &code, &rr.ReceivedAt, &rr.CreatedAt); err != nil {
			observe("GetReceivedRepaymentsByLoanID", start, err)
			return nil, fmt.Errorf("%w: failed scanning received repayment: %w", apperrors.ErrDatabase, err)
		}
		rr.CurrencyCode = currency.Code(code)
		received = append(received, rr)
	}
	err = rows.Err()
	observe("GetReceivedRepaymentsByLoanID", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return received, nil
}

func (r *LoanRepository) GetLoanIDsByStatus(ctx context.Context, status loan.LoanStatus) ([]int64, error) {
	logCtx := r.logger.With(slog.String("operation", "GetLoanIDsByStatus"), slog.String("status", string(status)))
	logCtx.DebugContext(ctx, "Attempting to get loan IDs by status")

	rows, err := r.db.Query(ctx, selectLoanIDsByStatusSQL, string(status))
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query loan IDs", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query loans: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loanIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan loan ID row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed scanning loan ID: %w", apperrors.ErrDatabase, err)
		}
		loanIDs = append(loanIDs, id)
	}
	if err := rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating loan ID rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed iterating loan IDs: %w", apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Found loans", slog.Int("count", len(loanIDs)))
	return loanIDs, nil
}

func (r *LoanRepository) CreateReceivedRepaymentInTx(ctx context.Context, tx pgx.Tx, received *loan.ReceivedRepayment) error {
	start := time.Now()
	err := tx.QueryRow(ctx, insertReceivedSQL,
		received.LoanID, received.Amount, received.AbsorbedAmount, string(received.CurrencyCode), received.ReceivedAt,
	).Scan(&received.ID, &received.CreatedAt)
	observe("CreateReceivedRepayment", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert received repayment", "loan_id", received.LoanID, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *LoanRepository) UpdateScheduledRepaymentInTx(ctx context.Context, tx pgx.Tx, entry *loan.ScheduledRepayment) error {
	start := time.Now()
	cmdTag, err := tx.Exec(ctx, updateScheduledSQL, entry.OutstandingAmount, string(entry.Status), entry.ID, entry.LoanID)
	observe("UpdateScheduledRepayment", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update scheduled repayment", "entry_id", entry.ID, "error", err)
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: scheduled repayment %d", apperrors.ErrNotFound, entry.ID)
	}
	return nil
}

func (r *LoanRepository) UpdateLoanOutstandingInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan) error {
	start := time.Now()
	cmdTag, err := tx.Exec(ctx, updateLoanOutstandingSQL, l.OutstandingAmount, string(l.Status), l.ID)
	observe("UpdateLoanOutstanding", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan outstanding", "loan_id", l.ID, "error", err)
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, l.ID)
	}
	return nil
}

func scanLoan(row rowScanner) (*loan.Loan, error) {
	var l loan.Loan
	var code, status string
	err := row.Scan(
		&l.ID, &l.UserID, &l.Amount, &code, &l.Terms,
		&l.OutstandingAmount, &status, &l.ProcessedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.CurrencyCode = currency.Code(code)
	l.Status = loan.LoanStatus(status)
	return &l, nil
}

func collectScheduled(rows pgx.Rows) ([]loan.ScheduledRepayment, error) {
	defer rows.Close()

	schedule := make([]loan.ScheduledRepayment, 0)
	for rows.Next() {
		var s loan.ScheduledRepayment
		var code, status string
		if err := rows.Scan(
			&s.ID, &s.LoanID, &s.Amount, &s.OutstandingAmount, &code,
			&s.DueDate, &status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		s.CurrencyCode = currency.Code(code)
		s.Status = loan.RepaymentStatus(status)
		schedule = append(schedule, s)
	}
	return schedule, rows.Err()
}
