package loan

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	CreateLoan(ctx context.Context, loan *Loan, schedule []ScheduledRepayment) (createdLoan *Loan, err error)

	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)

	GetScheduleByLoanID(ctx context.Context, loanID int64) ([]ScheduledRepayment, error)

	GetReceivedRepaymentsByLoanID(ctx context.Context, loanID int64) ([]ReceivedRepayment, error)

	GetLoanIDsByStatus(ctx context.Context, status LoanStatus) ([]int64, error)

	FindLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error)

	FindOutstandingRepaymentsForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) ([]ScheduledRepayment, error)

	CreateReceivedRepaymentInTx(ctx context.Context, tx pgx.Tx, received *ReceivedRepayment) error

	UpdateScheduledRepaymentInTx(ctx context.Context, tx pgx.Tx, entry *ScheduledRepayment) error

	UpdateLoanOutstandingInTx(ctx context.Context, tx pgx.Tx, loan *Loan) error

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
