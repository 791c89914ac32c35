package loan

import (
	"context"
	"errors"
	"repayment-engine/internal/pkg/apperrors"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"
)

var errInjected = errors.New("injected store failure")

// memRepository keeps committed state in maps and stages writes on memTx
// until CommitTx, so rollback behaviour can be asserted end to end.
type memRepository struct {
	mu       sync.Mutex
	nextID   int64
	loans    map[int64]Loan
	schedule map[int64][]ScheduledRepayment
	received map[int64][]ReceivedRepayment
	failOn   string
}

type memTx struct {
	pgx.Tx
	loans    map[int64]Loan
	entries  map[int64]ScheduledRepayment
	received []ReceivedRepayment
}

var _ Repository = (*memRepository)(nil)

func newMemRepository() *memRepository {
	return &memRepository{
		loans:    map[int64]Loan{},
		schedule: map[int64][]ScheduledRepayment{},
		received: map[int64][]ReceivedRepayment{},
	}
}

func (r *memRepository) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *memRepository) fail(method string) error {
	if r.failOn == method {
		return errInjected
	}
	return nil
}

func (r *memRepository) CreateLoan(ctx context.Context, loan *Loan, schedule []ScheduledRepayment) (*Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("CreateLoan"); err != nil {
		return nil, err
	}

	created := *loan
	created.ID = r.id()
	created.ScheduledRepayments = nil
	r.loans[created.ID] = created

	stored := make([]ScheduledRepayment, len(schedule))
	for i, s := range schedule {
		s.ID = r.id()
		s.LoanID = created.ID
		stored[i] = s
	}
	r.schedule[created.ID] = stored

	created.ScheduledRepayments = append([]ScheduledRepayment(nil), stored...)
	return &created, nil
}

func (r *memRepository) GetLoanByID(ctx context.Context, loanID int64) (*Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (r *memRepository) GetScheduleByLoanID(ctx context.Context, loanID int64) ([]ScheduledRepayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ScheduledRepayment{}, r.schedule[loanID]...), nil
}

func (r *memRepository) GetReceivedRepaymentsByLoanID(ctx context.Context, loanID int64) ([]ReceivedRepayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ReceivedRepayment{}, r.received[loanID]...), nil
}

func (r *memRepository) GetLoanIDsByStatus(ctx context.Context, status LoanStatus) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for id, l := range r.loans {
		if l.Status == status {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *memRepository) FindLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error) {
	if err := r.fail("FindLoanForUpdate"); err != nil {
		return nil, err
	}
	return r.GetLoanByID(ctx, loanID)
}

func (r *memRepository) FindOutstandingRepaymentsForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) ([]ScheduledRepayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ScheduledRepayment
	for _, s := range r.schedule[loanID] {
		if !s.IsRepaid() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepository) CreateReceivedRepaymentInTx(ctx context.Context, tx pgx.Tx, received *ReceivedRepayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("CreateReceivedRepaymentInTx"); err != nil {
		return err
	}
	received.ID = r.id()
	t := tx.(*memTx)
	t.received = append(t.received, *received)
	return nil
}

func (r *memRepository) UpdateScheduledRepaymentInTx(ctx context.Context, tx pgx.Tx, entry *ScheduledRepayment) error {
	if err := r.fail("UpdateScheduledRepaymentInTx"); err != nil {
		return err
	}
	tx.(*memTx).entries[entry.ID] = *entry
	return nil
}

func (r *memRepository) UpdateLoanOutstandingInTx(ctx context.Context, tx pgx.Tx, loan *Loan) error {
	if err := r.fail("UpdateLoanOutstandingInTx"); err != nil {
		return err
	}
	tx.(*memTx).loans[loan.ID] = *loan
	return nil
}

func (r *memRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return &memTx{loans: map[int64]Loan{}, entries: map[int64]ScheduledRepayment{}}, nil
}

func (r *memRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := tx.(*memTx)
	for id, l := range t.loans {
		r.loans[id] = l
	}
	for _, e := range t.entries {
		entries := r.schedule[e.LoanID]
		for i := range entries {
			if entries[i].ID == e.ID {
				entries[i] = e
			}
		}
	}
	for _, rr := range t.received {
		r.received[rr.LoanID] = append(r.received[rr.LoanID], rr)
	}
	return nil
}

func (r *memRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return nil
}
