package event

import (
	"context"
	"time"
)

const (
	RoutingKeyLoanCreated       = "loan.created"
	RoutingKeyRepaymentReceived = "repayment.received"
	RoutingKeyLoanRepaid        = "loan.repaid"
)

type EventPublisher interface {
	PublishLoanCreated(ctx context.Context, event LoanCreatedEvent) error
	PublishRepaymentReceived(ctx context.Context, event RepaymentReceivedEvent) error
	PublishLoanRepaid(ctx context.Context, event LoanRepaidEvent) error
}

// Amounts are minor units of CurrencyCode.
type LoanCreatedEvent struct {
	EventID      string    `json:"eventId"`
	LoanID       int64     `json:"loanId"`
	UserID       int64     `json:"userId"`
	Amount       int64     `json:"amount"`
	CurrencyCode string    `json:"currencyCode"`
	Terms        int       `json:"terms"`
	ProcessedAt  time.Time `json:"processedAt"`
	Timestamp    time.Time `json:"timestamp"`
}

type RepaymentReceivedEvent struct {
	EventID             string    `json:"eventId"`
	LoanID              int64     `json:"loanId"`
	ReceivedRepaymentID int64     `json:"receivedRepaymentId"`
	Amount              int64     `json:"amount"`
	AbsorbedAmount      int64     `json:"absorbedAmount"`
	Overpaid            int64     `json:"overpaid"`
	CurrencyCode        string    `json:"currencyCode"`
	LoanOutstanding     int64     `json:"loanOutstanding"`
	LoanStatus          string    `json:"loanStatus"`
	ReceivedAt          time.Time `json:"receivedAt"`
	Timestamp           time.Time `json:"timestamp"`
}

type LoanRepaidEvent struct {
	EventID   string    `json:"eventId"`
	LoanID    int64     `json:"loanId"`
	UserID    int64     `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

var _ EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishLoanCreated(context.Context, LoanCreatedEvent) error {
	return nil
}

func (NoopPublisher) PublishRepaymentReceived(context.Context, RepaymentReceivedEvent) error {
	return nil
}

func (NoopPublisher) PublishLoanRepaid(context.Context, LoanRepaidEvent) error {
	return nil
}
