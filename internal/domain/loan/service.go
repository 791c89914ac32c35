package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"repayment-engine/internal/domain/currency"
	"repayment-engine/internal/domain/user"
	"repayment-engine/internal/event"
	"repayment-engine/internal/infrastructure/monitoring"
	"repayment-engine/internal/pkg/apperrors"
	"time"

	"github.com/jackc/pgx/v5"
)

type LoanService interface {
	CreateLoan(ctx context.Context, userID int64, amount int64, code currency.Code, terms int, processedAt time.Time) (*Loan, error)

	RepayLoan(ctx context.Context, loanID int64, amount int64, code currency.Code, receivedAt time.Time) (*ReceivedRepayment, error)

	GetLoan(ctx context.Context, loanID int64) (*Loan, error)

	GetSchedule(ctx context.Context, loanID int64) ([]ScheduledRepayment, error)

	GetOutstanding(ctx context.Context, loanID int64) (*Outstanding, error)

	ListRepayments(ctx context.Context, loanID int64) ([]ReceivedRepayment, error)
}

type Outstanding struct {
	LoanID       int64
	Amount       int64
	CurrencyCode currency.Code
	Status       LoanStatus
}

// RetryConfig bounds how often a repayment is replayed after a
// serialization conflict. Attempt n waits n*Backoff before it starts.
type RetryConfig struct {
	MaxRetries int
	Backoff    time.Duration
}

type loanServiceImpl struct {
	repo        Repository
	userService user.UserService
	publisher   event.EventPublisher
	retry       RetryConfig
	logger      *slog.Logger
	now         func() time.Time
}

func NewLoanService(r Repository, us user.UserService, publisher event.EventPublisher, retry RetryConfig, logger *slog.Logger) LoanService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	if retry.MaxRetries < 0 {
		retry.MaxRetries = 0
	}
	return &loanServiceImpl{
		repo:        r,
		userService: us,
		publisher:   publisher,
		retry:       retry,
		logger:      logger.With("component", "loanService"),
		now:         time.Now,
	}
}

func (s *loanServiceImpl) CreateLoan(ctx context.Context, userID int64, amount int64, code currency.Code, terms int, processedAt time.Time) (*Loan, error) {
	s.logger.InfoContext(ctx, "Creating new loan", "userID", userID, "amount", amount, "currency", code, "terms", terms)

	loan, err := NewLoan(userID, amount, code, terms, processedAt)
	if err != nil {
		s.logger.WarnContext(ctx, "Rejected loan parameters", "error", err)
		return nil, err
	}

	u, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "User not found", "userID", userID)
			return nil, fmt.Errorf("%w: user %d not found", apperrors.ErrValidation, userID)
		}
		s.logger.ErrorContext(ctx, "Failed to get user", "userID", userID, "error", err)
		return nil, fmt.Errorf("failed to verify user status: %w", err)
	}
	if !u.Active {
		s.logger.WarnContext(ctx, "Attempted to create loan for inactive user", "userID", userID)
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrInactiveUser, userID)
	}

	schedule, err := GenerateSchedule(loan.Amount, loan.Terms, loan.CurrencyCode, loan.ProcessedAt)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate repayment schedule", "error", err)
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	created, err := s.repo.CreateLoan(ctx, loan, schedule)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save loan and schedule", "error", err)
		return nil, fmt.Errorf("%w: failed to save loan and schedule: %v", apperrors.ErrInternalServer, err)
	}
	monitoring.RecordLoanCreated()
	s.logger.InfoContext(ctx, "Loan created successfully", "loanID", created.ID, "userID", userID)

	if err := s.publisher.PublishLoanCreated(ctx, event.LoanCreatedEvent{
		LoanID:       created.ID,
		UserID:       created.UserID,
		Amount:       created.Amount,
		CurrencyCode: created.CurrencyCode.String(),
		Terms:        created.Terms,
		ProcessedAt:  created.ProcessedAt,
	}); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish loan created event", "loanID", created.ID, "error", err)
	}

	return created, nil
}

func (s *loanServiceImpl) RepayLoan(ctx context.Context, loanID int64, amount int64, code currency.Code, receivedAt time.Time) (*ReceivedRepayment, error) {
	s.logger.InfoContext(ctx, "Receiving repayment", "loanID", loanID, "amount", amount, "currency", code)

	if amount <= 0 {
		monitoring.RecordRepayment("failure_amount")
		s.logger.WarnContext(ctx, "Rejected non-positive repayment amount", "loanID", loanID, "amount", amount)
		return nil, fmt.Errorf("%w: amount must be greater than zero, got %d", apperrors.ErrInvalidPaymentAmount, amount)
	}
	if !code.Valid() {
		monitoring.RecordRepayment("failure_currency")
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, code)
	}
	if receivedAt.IsZero() {
		receivedAt = s.now()
	}

	var lastErr error
	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			monitoring.RecordRepaymentRetry()
			s.logger.WarnContext(ctx, "Retrying repayment after conflict", "loanID", loanID, "attempt", attempt, "error", lastErr)
			if err := sleepContext(ctx, time.Duration(attempt)*s.retry.Backoff); err != nil {
				monitoring.RecordRepayment("failure_conflict")
				return nil, fmt.Errorf("%w: %v", lastErr, err)
			}
		}

		received, loan, err := s.applyRepayment(ctx, loanID, amount, code, receivedAt)
		if err == nil {
			monitoring.RecordRepayment("success")
			s.afterRepayment(ctx, received, loan)
			return received, nil
		}
		if !apperrors.IsTransient(err) {
			monitoring.RecordRepayment(repaymentFailureStatus(err))
			return nil, err
		}
		lastErr = err
	}

	monitoring.RecordRepayment("failure_conflict")
	s.logger.ErrorContext(ctx, "Giving up on repayment after repeated conflicts", "loanID", loanID, "attempts", s.retry.MaxRetries+1)
	return nil, lastErr
}

// applyRepayment runs one repayment unit in its own transaction. The payment
// is allocated in memory first so the received row is written once, already
// carrying its absorbed amount.
func (s *loanServiceImpl) applyRepayment(ctx context.Context, loanID int64, amount int64, code currency.Code, receivedAt time.Time) (received *ReceivedRepayment, loan *Loan, err error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, nil, fmt.Errorf("%w: could not begin transaction: %w", apperrors.ErrInternalServer, err)
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.ErrorContext(ctx, "Panic occurred during repayment processing", "loanID", loanID, "error", p)
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			s.logger.WarnContext(ctx, "Rolling back repayment transaction", "loanID", loanID, "error", err)
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	loan, err = s.repo.FindLoanForUpdate(ctx, tx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: loan with ID %d not found", apperrors.ErrNotFound, loanID)
		}
		return nil, nil, fmt.Errorf("could not lock loan %d: %w", loanID, err)
	}
	if loan.CurrencyCode != code {
		return nil, nil, fmt.Errorf("%w: loan %d is in %s, payment is in %s", apperrors.ErrCurrencyMismatch, loanID, loan.CurrencyCode, code)
	}

	candidates, err := s.repo.FindOutstandingRepaymentsForUpdate(ctx, tx, loanID)
	if err != nil {
		return nil, nil, fmt.Errorf("could not lock outstanding repayments for loan %d: %w", loanID, err)
	}

	allocation, err := Allocate(candidates, amount)
	if err != nil {
		return nil, nil, err
	}

	received = &ReceivedRepayment{
		LoanID:         loanID,
		Amount:         amount,
		AbsorbedAmount: allocation.Absorbed,
		CurrencyCode:   code,
		ReceivedAt:     truncateToDate(receivedAt),
	}
	if err = s.repo.CreateReceivedRepaymentInTx(ctx, tx, received); err != nil {
		return nil, nil, fmt.Errorf("could not record received repayment: %w", err)
	}

	for _, idx := range allocation.Touched {
		if err = s.repo.UpdateScheduledRepaymentInTx(ctx, tx, &candidates[idx]); err != nil {
			return nil, nil, fmt.Errorf("could not update scheduled repayment %d: %w", candidates[idx].ID, err)
		}
	}

	if err = loan.ApplyAllocation(allocation); err != nil {
		return nil, nil, err
	}
	if err = s.repo.UpdateLoanOutstandingInTx(ctx, tx, loan); err != nil {
		return nil, nil, fmt.Errorf("could not update loan %d: %w", loanID, err)
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("could not commit repayment for loan %d: %w", loanID, err)
	}

	s.logger.InfoContext(ctx, "Repayment applied",
		"loanID", loanID,
		"receivedRepaymentID", received.ID,
		"absorbed", allocation.Absorbed,
		"touched", len(allocation.Touched),
		"loanOutstanding", loan.OutstandingAmount,
	)
	return received, loan, nil
}

func (s *loanServiceImpl) afterRepayment(ctx context.Context, received *ReceivedRepayment, loan *Loan) {
	if over := received.Overpaid(); over > 0 {
		monitoring.RecordOverpayment(received.CurrencyCode.String(), over)
		s.logger.WarnContext(ctx, "Repayment exceeded outstanding balance, excess discarded",
			"loanID", loan.ID, "receivedRepaymentID", received.ID, "overpaid", over)
	}

	if err := s.publisher.PublishRepaymentReceived(ctx, event.RepaymentReceivedEvent{
		LoanID:              loan.ID,
		ReceivedRepaymentID: received.ID,
		Amount:              received.Amount,
		AbsorbedAmount:      received.AbsorbedAmount,
		Overpaid:            received.Overpaid(),
		CurrencyCode:        received.CurrencyCode.String(),
		LoanOutstanding:     loan.OutstandingAmount,
		LoanStatus:          string(loan.Status),
		ReceivedAt:          received.ReceivedAt,
	}); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish repayment received event", "loanID", loan.ID, "error", err)
	}

	// only the repayment that moved the balance to zero announces it
	if loan.IsRepaid() && received.AbsorbedAmount > 0 {
		if err := s.publisher.PublishLoanRepaid(ctx, event.LoanRepaidEvent{
			LoanID: loan.ID,
			UserID: loan.UserID,
		}); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish loan repaid event", "loanID", loan.ID, "error", err)
		}
	}
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	s.logger.InfoContext(ctx, "Getting loan details", "loanID", loanID)
	loan, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, s.loanLookupError(ctx, loanID, err)
	}

	schedule, err := s.repo.GetScheduleByLoanID(ctx, loanID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get loan schedule", "loanID", loanID, "error", err)
		return nil, fmt.Errorf("%w: failed to get schedule for loan %d: %v", apperrors.ErrInternalServer, loanID, err)
	}
	loan.ScheduledRepayments = schedule
	return loan, nil
}

func (s *loanServiceImpl) GetSchedule(ctx context.Context, loanID int64) ([]ScheduledRepayment, error) {
	s.logger.InfoContext(ctx, "Getting loan schedule", "loanID", loanID)
	schedule, err := s.repo.GetScheduleByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get schedule for loan %d: %v", apperrors.ErrInternalServer, loanID, err)
	}
	if len(schedule) == 0 {
		// every stored loan has at least one term, so an empty schedule means no loan
		if _, err := s.repo.GetLoanByID(ctx, loanID); err != nil {
			return nil, s.loanLookupError(ctx, loanID, err)
		}
	}
	return schedule, nil
}

func (s *loanServiceImpl) GetOutstanding(ctx context.Context, loanID int64) (*Outstanding, error) {
	s.logger.InfoContext(ctx, "Getting outstanding amount for loan", "loanID", loanID)
	loan, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, s.loanLookupError(ctx, loanID, err)
	}
	return &Outstanding{
		LoanID:       loan.ID,
		Amount:       loan.OutstandingAmount,
		CurrencyCode: loan.CurrencyCode,
		Status:       loan.Status,
	}, nil
}

func (s *loanServiceImpl) ListRepayments(ctx context.Context, loanID int64) ([]ReceivedRepayment, error) {
	s.logger.InfoContext(ctx, "Listing received repayments", "loanID", loanID)
	if _, err := s.repo.GetLoanByID(ctx, loanID); err != nil {
		return nil, s.loanLookupError(ctx, loanID, err)
	}
	received, err := s.repo.GetReceivedRepaymentsByLoanID(ctx, loanID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list received repayments", "loanID", loanID, "error", err)
		return nil, fmt.Errorf("%w: failed to list repayments for loan %d: %v", apperrors.ErrInternalServer, loanID, err)
	}
	return received, nil
}

func (s *loanServiceImpl) loanLookupError(ctx context.Context, loanID int64, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, pgx.ErrNoRows) {
		s.logger.WarnContext(ctx, "Loan not found", "loanID", loanID)
		return fmt.Errorf("%w: loan with ID %d not found", apperrors.ErrNotFound, loanID)
	}
	s.logger.ErrorContext(ctx, "Failed to get loan", "loanID", loanID, "error", err)
	return fmt.Errorf("%w: failed to get loan %d: %v", apperrors.ErrInternalServer, loanID, err)
}

func repaymentFailureStatus(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "failure_not_found"
	case errors.Is(err, apperrors.ErrCurrencyMismatch):
		return "failure_currency"
	case errors.Is(err, apperrors.ErrInvariantViolation):
		return "failure_invariant"
	default:
		return "failure_internal"
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
