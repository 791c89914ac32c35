package dto

import (
	"repayment-engine/internal/domain/currency"
	"repayment-engine/internal/domain/loan"
	"strconv"
	"time"
)

// Amounts on the wire are integers in the currency's minor units. Responses
// carry the same value rendered as a decimal string next to each amount.
type CreateLoanRequest struct {
	UserID       int64  `json:"userId" validate:"required,gt=0"`
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	CurrencyCode string `json:"currencyCode" validate:"required,currency"`
	Terms        int    `json:"terms" validate:"required,gt=0,lte=600"`
	ProcessedAt  string `json:"processedAt" validate:"required,datetime=2006-01-02"`
}

func (r *CreateLoanRequest) Validate() error {
	return validateStruct(r)
}

// Currency must only be called after Validate succeeded.
func (r *CreateLoanRequest) Currency() currency.Code {
	c, _ := currency.Parse(r.CurrencyCode)
	return c
}

func (r *CreateLoanRequest) ProcessedDate() time.Time {
	t, _ := time.Parse(dateLayout, r.ProcessedAt)
	return t
}

type RepayLoanRequest struct {
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	CurrencyCode string `json:"currencyCode" validate:"required,currency"`
	// ReceivedAt is a date or an RFC 3339 timestamp; only the calendar date
	// is stored. The server clock is used when it is empty.
	ReceivedAt string `json:"receivedAt,omitempty" validate:"omitempty,dateortime"`
}

func (r *RepayLoanRequest) Validate() error {
	return validateStruct(r)
}

func (r *RepayLoanRequest) Currency() currency.Code {
	c, _ := currency.Parse(r.CurrencyCode)
	return c
}

func (r *RepayLoanRequest) ReceivedTime() time.Time {
	if r.ReceivedAt == "" {
		return time.Time{}
	}
	t, _ := parseDateOrTime(r.ReceivedAt)
	return t
}

type LoanResponse struct {
	ID                   string                       `json:"id"`
	UserID               string                       `json:"userId"`
	Amount               int64                        `json:"amount"`
	AmountFormatted      string                       `json:"amountFormatted"`
	CurrencyCode         string                       `json:"currencyCode"`
	Terms                int                          `json:"terms"`
	OutstandingAmount    int64                        `json:"outstandingAmount"`
	OutstandingFormatted string                       `json:"outstandingFormatted"`
	Status               string                       `json:"status"`
	ProcessedAt          string                       `json:"processedAt"`
	CreatedAt            time.Time                    `json:"createdAt"`
	UpdatedAt            time.Time                    `json:"updatedAt"`
	Schedule             []ScheduledRepaymentResponse `json:"schedule,omitempty"`
}

type ScheduledRepaymentResponse struct {
	ID                   string `json:"id"`
	DueDate              string `json:"dueDate"`
	Amount               int64  `json:"amount"`
	AmountFormatted      string `json:"amountFormatted"`
	OutstandingAmount    int64  `json:"outstandingAmount"`
	OutstandingFormatted string `json:"outstandingFormatted"`
	CurrencyCode         string `json:"currencyCode"`
	Status               string `json:"status"`
}

type OutstandingResponse struct {
	LoanID               string `json:"loanId"`
	OutstandingAmount    int64  `json:"outstandingAmount"`
	OutstandingFormatted string `json:"outstandingFormatted"`
	CurrencyCode         string `json:"currencyCode"`
	Status               string `json:"status"`
}

type ReceivedRepaymentResponse struct {
	ID                string    `json:"id"`
	LoanID            string    `json:"loanId"`
	Amount            int64     `json:"amount"`
	AmountFormatted   string    `json:"amountFormatted"`
	AbsorbedAmount    int64     `json:"absorbedAmount"`
	OverpaidAmount    int64     `json:"overpaidAmount"`
	OverpaidFormatted string    `json:"overpaidFormatted"`
	CurrencyCode      string    `json:"currencyCode"`
	ReceivedAt        time.Time `json:"receivedAt"`
}

func NewLoanResponse(domainLoan *loan.Loan, includeSchedule bool) LoanResponse {
	code := domainLoan.CurrencyCode
	resp := LoanResponse{
		ID:                   strconv.FormatInt(domainLoan.ID, 10),
		UserID:               strconv.FormatInt(domainLoan.UserID, 10),
		Amount:               domainLoan.Amount,
		AmountFormatted:      code.Format(domainLoan.Amount),
		CurrencyCode:         code.String(),
		Terms:                domainLoan.Terms,
		OutstandingAmount:    domainLoan.OutstandingAmount,
		OutstandingFormatted: code.Format(domainLoan.OutstandingAmount),
		Status:               string(domainLoan.Status),
		ProcessedAt:          domainLoan.ProcessedAt.Format(dateLayout),
		CreatedAt:            domainLoan.CreatedAt,
		UpdatedAt:            domainLoan.UpdatedAt,
	}

	if includeSchedule && domainLoan.ScheduledRepayments != nil {
		resp.Schedule = NewScheduleResponse(domainLoan.ScheduledRepayments)
	}
	return resp
}

func NewScheduleResponse(schedule []loan.ScheduledRepayment) []ScheduledRepaymentResponse {
	resp := make([]ScheduledRepaymentResponse, len(schedule))
	for i := range schedule {
		resp[i] = NewScheduledRepaymentResponse(&schedule[i])
	}
	return resp
}

func NewScheduledRepaymentResponse(entry *loan.ScheduledRepayment) ScheduledRepaymentResponse {
	code := entry.CurrencyCode
	return ScheduledRepaymentResponse{
		ID:                   strconv.FormatInt(entry.ID, 10),
		DueDate:              entry.DueDate.Format(dateLayout),
		Amount:               entry.Amount,
		AmountFormatted:      code.Format(entry.Amount),
		OutstandingAmount:    entry.OutstandingAmount,
		OutstandingFormatted: code.Format(entry.OutstandingAmount),
		CurrencyCode:         code.String(),
		Status:               string(entry.Status),
	}
}

func NewOutstandingResponse(o *loan.Outstanding) OutstandingResponse {
	return OutstandingResponse{
		LoanID:               strconv.FormatInt(o.LoanID, 10),
		OutstandingAmount:    o.Amount,
		OutstandingFormatted: o.CurrencyCode.Format(o.Amount),
		CurrencyCode:         o.CurrencyCode.String(),
		Status:               string(o.Status),
	}
}

func NewReceivedRepaymentResponse(r *loan.ReceivedRepayment) ReceivedRepaymentResponse {
	code := r.CurrencyCode
	return ReceivedRepaymentResponse{
		ID:                strconv.FormatInt(r.ID, 10),
		LoanID:            strconv.FormatInt(r.LoanID, 10),
		Amount:            r.Amount,
		AmountFormatted:   code.Format(r.Amount),
		AbsorbedAmount:    r.AbsorbedAmount,
		OverpaidAmount:    r.Overpaid(),
		OverpaidFormatted: code.Format(r.Overpaid()),
		CurrencyCode:      code.String(),
		ReceivedAt:        r.ReceivedAt,
	}
}

func NewReceivedRepaymentsResponse(received []loan.ReceivedRepayment) []ReceivedRepaymentResponse {
	resp := make([]ReceivedRepaymentResponse, len(received))
	for i := range received {
		resp[i] = NewReceivedRepaymentResponse(&received[i])
	}
	return resp
}
