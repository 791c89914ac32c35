package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"repayment-engine/internal/domain/currency"
	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/user"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateLoan(ctx context.Context, userID int64, amount int64, code currency.Code, terms int, processedAt time.Time) (*loan.Loan, error) {
	args := m.Called(ctx, userID, amount, code, terms, processedAt)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) RepayLoan(ctx context.Context, loanID int64, amount int64, code currency.Code, receivedAt time.Time) (*loan.ReceivedRepayment, error) {
	args := m.Called(ctx, loanID, amount, code, receivedAt)
	if r, ok := args.Get(0).(*loan.ReceivedRepayment); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, loanID)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) GetSchedule(ctx context.Context, loanID int64) ([]loan.ScheduledRepayment, error) {
	args := m.Called(ctx, loanID)
	if s, ok := args.Get(0).([]loan.ScheduledRepayment); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) GetOutstanding(ctx context.Context, loanID int64) (*loan.Outstanding, error) {
	args := m.Called(ctx, loanID)
	if o, ok := args.Get(0).(*loan.Outstanding); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) ListRepayments(ctx context.Context, loanID int64) ([]loan.ReceivedRepayment, error) {
	args := m.Called(ctx, loanID)
	if r, ok := args.Get(0).([]loan.ReceivedRepayment); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, name string) (*user.User, error) {
	args := m.Called(ctx, name)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
