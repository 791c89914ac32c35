package loan

import (
	"context"
	"repayment-engine/internal/domain/user"
	"repayment-engine/internal/event"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

var _ Repository = (*MockRepository)(nil)

type TxMock struct {
	pgx.Tx
}

var tx pgx.Tx = &TxMock{}

func (m *MockRepository) CreateLoan(ctx context.Context, loan *Loan, schedule []ScheduledRepayment) (*Loan, error) {
	args := m.Called(ctx, loan, schedule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Loan), args.Error(1)
}

func (m *MockRepository) GetLoanByID(ctx context.Context, loanID int64) (*Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Loan), args.Error(1)
}

func (m *MockRepository) GetScheduleByLoanID(ctx context.Context, loanID int64) ([]ScheduledRepayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ScheduledRepayment), args.Error(1)
}

func (m *MockRepository) GetReceivedRepaymentsByLoanID(ctx context.Context, loanID int64) ([]ReceivedRepayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReceivedRepayment), args.Error(1)
}

func (m *MockRepository) GetLoanIDsByStatus(ctx context.Context, status LoanStatus) ([]int64, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRepository) FindLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error) {
	args := m.Called(ctx, tx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Loan), args.Error(1)
}

func (m *MockRepository) FindOutstandingRepaymentsForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) ([]ScheduledRepayment, error) {
	args := m.Called(ctx, tx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ScheduledRepayment), args.Error(1)
}

func (m *MockRepository) CreateReceivedRepaymentInTx(ctx context.Context, tx pgx.Tx, received *ReceivedRepayment) error {
	args := m.Called(ctx, tx, received)
	return args.Error(0)
}

func (m *MockRepository) UpdateScheduledRepaymentInTx(ctx context.Context, tx pgx.Tx, entry *ScheduledRepayment) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockRepository) UpdateLoanOutstandingInTx(ctx context.Context, tx pgx.Tx, loan *Loan) error {
	args := m.Called(ctx, tx, loan)
	return args.Error(0)
}

func (m *MockRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

var _ user.UserService = (*MockUserService)(nil)

func (_m *MockUserService) CreateUser(ctx context.Context, name string) (*user.User, error) {
	ret := _m.Called(ctx, name)

	var r0 *user.User
	if rf, ok := ret.Get(0).(func(context.Context, string) *user.User); ok {
		r0 = rf(ctx, name)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*user.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockUserService) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	ret := _m.Called(ctx, userID)

	var r0 *user.User
	if rf, ok := ret.Get(0).(func(context.Context, int64) *user.User); ok {
		r0 = rf(ctx, userID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*user.User)
	}

	return r0, ret.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

var _ event.EventPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishLoanCreated(ctx context.Context, e event.LoanCreatedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishRepaymentReceived(ctx context.Context, e event.RepaymentReceivedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishLoanRepaid(ctx context.Context, e event.LoanRepaidEvent) error {
	return m.Called(ctx, e).Error(0)
}
