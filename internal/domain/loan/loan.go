package loan

import (
	"fmt"
	"repayment-engine/internal/domain/currency"
	"repayment-engine/internal/pkg/apperrors"
	"time"
)

// MaxTerms caps the schedule length at fifty years of monthly repayments.
const MaxTerms = 600

type LoanStatus string

const (
	StatusDue    LoanStatus = "due"
	StatusRepaid LoanStatus = "repaid"
)

type RepaymentStatus string

const (
	RepaymentStatusDue     RepaymentStatus = "due"
	RepaymentStatusPartial RepaymentStatus = "partial"
	RepaymentStatusRepaid  RepaymentStatus = "repaid"
)

// Loan amounts are integers in the minor units of CurrencyCode.
type Loan struct {
	ID                  int64
	UserID              int64
	Amount              int64
	CurrencyCode        currency.Code
	Terms               int
	OutstandingAmount   int64
	Status              LoanStatus
	ProcessedAt         time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ScheduledRepayments []ScheduledRepayment
}

type ScheduledRepayment struct {
	ID                int64
	LoanID            int64
	Amount            int64
	OutstandingAmount int64
	CurrencyCode      currency.Code
	DueDate           time.Time
	Status            RepaymentStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReceivedRepayment is append-only evidence of one customer payment.
// AbsorbedAmount is the part that was allocated to scheduled repayments.
type ReceivedRepayment struct {
	ID             int64
	LoanID         int64
	Amount         int64
	AbsorbedAmount int64
	CurrencyCode   currency.Code
	ReceivedAt     time.Time
	CreatedAt      time.Time
}

func NewLoan(userID int64, amount int64, code currency.Code, terms int, processedAt time.Time) (*Loan, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", apperrors.ErrInvalidArgument)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: loan amount must be positive", apperrors.ErrInvalidArgument)
	}
	if terms <= 0 || terms > MaxTerms {
		return nil, fmt.Errorf("%w: terms must be between 1 and %d", apperrors.ErrInvalidArgument, MaxTerms)
	}
	if !code.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, code)
	}
	if processedAt.IsZero() {
		return nil, fmt.Errorf("%w: processed date is required", apperrors.ErrInvalidArgument)
	}

	loan := &Loan{
		UserID:       userID,
		Amount:       amount,
		CurrencyCode: code,
		Terms:        terms,
		ProcessedAt:  truncateToDate(processedAt),
	}
	if err := loan.SetOutstanding(amount); err != nil {
		return nil, err
	}
	return loan, nil
}

// SetOutstanding is the only way the loan balance changes; status follows it.
func (l *Loan) SetOutstanding(value int64) error {
	if value < 0 || value > l.Amount {
		return apperrors.NewInvariantError("loan", l.ID, value, l.Amount)
	}
	l.OutstandingAmount = value
	l.Status = DeriveLoanStatus(value)
	return nil
}

func (l *Loan) IsRepaid() bool {
	return l.Status == StatusRepaid
}

func (s *ScheduledRepayment) SetOutstanding(value int64) error {
	if value < 0 || value > s.Amount {
		return apperrors.NewInvariantError("scheduled_repayment", s.ID, value, s.Amount)
	}
	s.OutstandingAmount = value
	s.Status = DeriveRepaymentStatus(value, s.Amount)
	return nil
}

func (s *ScheduledRepayment) IsRepaid() bool {
	return s.Status == RepaymentStatusRepaid
}

// Overpaid is the part of the payment that no scheduled repayment absorbed.
func (r *ReceivedRepayment) Overpaid() int64 {
	return r.Amount - r.AbsorbedAmount
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
