package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"repayment-engine/internal/api/handler/dto"
	"repayment-engine/internal/domain/currency"
	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/pkg/apperrors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleLoan() *loan.Loan {
	due := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	return &loan.Loan{
		ID:                123,
		UserID:            7,
		Amount:            1000,
		CurrencyCode:      currency.SGD,
		Terms:             1,
		OutstandingAmount: 1000,
		Status:            loan.StatusDue,
		ProcessedAt:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		ScheduledRepayments: []loan.ScheduledRepayment{
			{ID: 1, LoanID: 123, Amount: 1000, OutstandingAmount: 1000, CurrencyCode: currency.SGD, DueDate: due, Status: loan.RepaymentStatusDue},
		},
	}
}

func TestLoanHandlerCreateLoan(t *testing.T) {
	mockService := new(MockLoanService)
	handler := NewLoanHandler(mockService, logger)
	processed := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates loan and returns schedule", func(t *testing.T) {
		mockService.On("CreateLoan", mock.Anything, int64(7), int64(1000), currency.SGD, 1, processed).Return(sampleLoan(), nil).Once()

		body := `{"userId":7,"amount":1000,"currencyCode":"sgd","terms":1,"processedAt":"2025-01-15"}`
		rec := httptest.NewRecorder()
		handler.CreateLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.LoanResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "123", resp.ID)
		assert.Equal(t, "10.00", resp.AmountFormatted)
		require.Len(t, resp.Schedule, 1)
		assert.Equal(t, "2025-02-15", resp.Schedule[0].DueDate)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		body := `{"userId":7,"amount":1000,"currencyCode":"SGD","terms":1,"processedAt":"2025-01-15","rate":5}`
		rec := httptest.NewRecorder()
		handler.CreateLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reports the failing field", func(t *testing.T) {
		body := `{"userId":7,"amount":1000,"currencyCode":"USD","terms":1,"processedAt":"2025-01-15"}`
		rec := httptest.NewRecorder()
		handler.CreateLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "currencyCode", resp.Error.Field)
	})

	t.Run("rejects terms above the limit before calling the service", func(t *testing.T) {
		untouched := new(MockLoanService)
		body := `{"userId":7,"amount":1000,"currencyCode":"SGD","terms":100000000,"processedAt":"2025-01-15"}`
		rec := httptest.NewRecorder()
		NewLoanHandler(untouched, logger).CreateLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "terms", resp.Error.Field)
		untouched.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("inactive user is a client error", func(t *testing.T) {
		mockService.On("CreateLoan", mock.Anything, int64(8), int64(1000), currency.VND, 2, processed).
			Return(nil, apperrors.ErrInactiveUser).Once()

		body := `{"userId":8,"amount":1000,"currencyCode":"VND","terms":2,"processedAt":"2025-01-15"}`
		rec := httptest.NewRecorder()
		handler.CreateLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestLoanHandlerGetLoan(t *testing.T) {
	mockService := new(MockLoanService)
	handler := NewLoanHandler(mockService, logger)

	t.Run("successfully retrieves loan details", func(t *testing.T) {
		mockService.On("GetLoan", mock.Anything, int64(123)).Return(sampleLoan(), nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/123?include=schedule", nil), "loanID", "123")
		rec := httptest.NewRecorder()
		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.LoanResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "123", resp.ID)
		assert.Len(t, resp.Schedule, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("omits schedule unless requested", func(t *testing.T) {
		mockService.On("GetLoan", mock.Anything, int64(123)).Return(sampleLoan(), nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/123", nil), "loanID", "123")
		rec := httptest.NewRecorder()
		handler.GetLoan(rec, req)

		var resp dto.LoanResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Nil(t, resp.Schedule)
	})

	t.Run("returns error for invalid loan ID", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/invalid", nil), "loanID", "invalid")
		rec := httptest.NewRecorder()
		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Error.Message, "invalid loanID format")
	})

	t.Run("returns error when loan not found", func(t *testing.T) {
		mockService.On("GetLoan", mock.Anything, int64(2)).Return(nil, apperrors.ErrNotFound).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/2", nil), "loanID", "2")
		rec := httptest.NewRecorder()
		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Resource not found.", resp.Error.Message)
	})

	t.Run("returns internal server error for unexpected errors", func(t *testing.T) {
		mockService.On("GetLoan", mock.Anything, int64(3)).Return(nil, errors.New("unexpected error")).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/3", nil), "loanID", "3")
		rec := httptest.NewRecorder()
		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "An unexpected error occurred.", resp.Error.Message)
		mockService.AssertExpectations(t)
	})
}

func TestLoanHandlerGetScheduleAndOutstanding(t *testing.T) {
	mockService := new(MockLoanService)
	handler := NewLoanHandler(mockService, logger)

	mockService.On("GetSchedule", mock.Anything, int64(123)).Return(sampleLoan().ScheduledRepayments, nil).Once()
	mockService.On("GetOutstanding", mock.Anything, int64(123)).
		Return(&loan.Outstanding{LoanID: 123, Amount: 450, CurrencyCode: currency.SGD, Status: loan.StatusDue}, nil).Once()

	rec := httptest.NewRecorder()
	handler.GetSchedule(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/loans/123/schedule", nil), "loanID", "123"))
	assert.Equal(t, http.StatusOK, rec.Code)
	var schedule []dto.ScheduledRepaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&schedule))
	assert.Len(t, schedule, 1)

	rec = httptest.NewRecorder()
	handler.GetOutstanding(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/loans/123/outstanding", nil), "loanID", "123"))
	assert.Equal(t, http.StatusOK, rec.Code)
	var outstanding dto.OutstandingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&outstanding))
	assert.Equal(t, "4.50", outstanding.OutstandingFormatted)
	assert.Equal(t, "SGD", outstanding.CurrencyCode)

	mockService.AssertExpectations(t)
}

func TestLoanHandlerRepayLoan(t *testing.T) {
	mockService := new(MockLoanService)
	handler := NewLoanHandler(mockService, logger)
	receivedAt := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)

	t.Run("records repayment with overpayment", func(t *testing.T) {
		mockService.On("RepayLoan", mock.Anything, int64(123), int64(1500), currency.SGD, receivedAt).
			Return(&loan.ReceivedRepayment{ID: 9, LoanID: 123, Amount: 1500, AbsorbedAmount: 1000, CurrencyCode: currency.SGD, ReceivedAt: receivedAt}, nil).Once()

		body := `{"amount":1500,"currencyCode":"SGD","receivedAt":"2025-02-01T09:30:00Z"}`
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/loans/123/repayments", strings.NewReader(body)), "loanID", "123")
		rec := httptest.NewRecorder()
		handler.RepayLoan(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.ReceivedRepaymentResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(500), resp.OverpaidAmount)
		assert.Equal(t, "5.00", resp.OverpaidFormatted)
	})

	t.Run("maps currency mismatch to bad request", func(t *testing.T) {
		mockService.On("RepayLoan", mock.Anything, int64(123), int64(10), currency.VND, time.Time{}).
			Return(nil, apperrors.ErrCurrencyMismatch).Once()

		body := `{"amount":10,"currencyCode":"VND"}`
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/loans/123/repayments", strings.NewReader(body)), "loanID", "123")
		rec := httptest.NewRecorder()
		handler.RepayLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps exhausted retries to conflict", func(t *testing.T) {
		mockService.On("RepayLoan", mock.Anything, int64(124), int64(10), currency.SGD, time.Time{}).
			Return(nil, apperrors.ErrConcurrencyConflict).Once()

		body := `{"amount":10,"currencyCode":"SGD"}`
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/loans/124/repayments", strings.NewReader(body)), "loanID", "124")
		rec := httptest.NewRecorder()
		handler.RepayLoan(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rejects negative amount before calling the service", func(t *testing.T) {
		body := `{"amount":-5,"currencyCode":"SGD"}`
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/loans/123/repayments", strings.NewReader(body)), "loanID", "123")
		rec := httptest.NewRecorder()
		handler.RepayLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "amount", resp.Error.Field)
	})

	mockService.AssertExpectations(t)
}

func TestLoanHandlerListRepayments(t *testing.T) {
	mockService := new(MockLoanService)
	handler := NewLoanHandler(mockService, logger)

	mockService.On("ListRepayments", mock.Anything, int64(5)).Return([]loan.ReceivedRepayment{}, nil).Once()
	mockService.On("ListRepayments", mock.Anything, int64(6)).Return(nil, apperrors.ErrNotFound).Once()

	rec := httptest.NewRecorder()
	handler.ListRepayments(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/loans/5/repayments", nil), "loanID", "5"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ListRepayments(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/loans/6/repayments", nil), "loanID", "6"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	mockService.AssertExpectations(t)
}
