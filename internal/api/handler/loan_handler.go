package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"repayment-engine/internal/api/handler/dto"
	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/pkg/apperrors"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

// CreateLoan disburses a loan and generates its monthly schedule.
//
// @Summary Create a new loan
// @Description Disburses a loan of `amount` minor units to an active user. The amount is split into `terms` monthly scheduled repayments; the last one absorbs the rounding remainder.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.CreateLoanRequest true "Loan creation request payload"
// @Success 201 {object} dto.LoanResponse "Loan successfully created, schedule included"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload, unknown or inactive user"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
// @Security BearerAuth
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateLoan(r.Context(), req.UserID, req.Amount, req.Currency(), req.Terms, req.ProcessedDate())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to create loan", "userID", req.UserID, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewLoanResponse(created, true))
}

// GetLoan retrieves the details of a specific loan.
//
// @Summary Retrieve loan details
// @Description Retrieves a loan by its ID. Add `include=schedule` to embed the scheduled repayments.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID"
// @Param include query string false "Optional parameter to include repayment schedule (use 'schedule')"
// @Success 200 {object} dto.LoanResponse "Loan details successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := idFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	domainLoan, err := h.service.GetLoan(r.Context(), loanID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get loan", "loanID", loanID, "error", err)
		respondError(w, err)
		return
	}

	includeSchedule := r.URL.Query().Get("include") == "schedule"
	respondJSON(w, http.StatusOK, dto.NewLoanResponse(domainLoan, includeSchedule))
}

// GetSchedule lists the scheduled repayments of a loan.
//
// @Summary Retrieve repayment schedule
// @Description Lists scheduled repayments ordered by due date with their outstanding amounts and statuses.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID"
// @Success 200 {array} dto.ScheduledRepaymentResponse "Schedule successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/schedule [get]
// @Security BearerAuth
func (h *LoanHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	loanID, err := idFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), loanID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get schedule", "loanID", loanID, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewScheduleResponse(schedule))
}

// GetOutstanding retrieves the outstanding amount for a specific loan.
//
// @Summary Retrieve outstanding loan amount
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID"
// @Success 200 {object} dto.OutstandingResponse "Outstanding amount successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/outstanding [get]
// @Security BearerAuth
func (h *LoanHandler) GetOutstanding(w http.ResponseWriter, r *http.Request) {
	loanID, err := idFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	outstanding, err := h.service.GetOutstanding(r.Context(), loanID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get outstanding", "loanID", loanID, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewOutstandingResponse(outstanding))
}

// ListRepayments lists the payments received for a loan.
//
// @Summary List received repayments
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID"
// @Success 200 {array} dto.ReceivedRepaymentResponse "Received repayments in arrival order"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/repayments [get]
// @Security BearerAuth
func (h *LoanHandler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	loanID, err := idFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	received, err := h.service.ListRepayments(r.Context(), loanID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to list repayments", "loanID", loanID, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewReceivedRepaymentsResponse(received))
}

// RepayLoan records a received payment and allocates it to the schedule.
//
// @Summary Make a loan repayment
// @Description Allocates the payment to outstanding scheduled repayments, earliest due date first. Any amount left after every scheduled repayment is settled is reported as `overpaidAmount` and is not applied.
// @Tags Loans
// @Accept json
// @Produce json
// @Param loanID path int true "Loan ID"
// @Param request body dto.RepayLoanRequest true "Repayment request payload"
// @Success 201 {object} dto.ReceivedRepaymentResponse "Repayment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload, amount or currency"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update, retry"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/repayments [post]
// @Security BearerAuth
func (h *LoanHandler) RepayLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := idFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.RepayLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	received, err := h.service.RepayLoan(r.Context(), loanID, req.Amount, req.Currency(), req.ReceivedTime())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to apply repayment", "loanID", loanID, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewReceivedRepaymentResponse(received))
}
