package loan

import (
	"fmt"
	"repayment-engine/internal/pkg/apperrors"
	"sort"
)

// Allocation is the outcome of spreading one payment over a schedule.
type Allocation struct {
	// Touched holds the indices (into the candidates slice) of every
	// scheduled repayment whose balance changed, in allocation order.
	Touched   []int
	Absorbed  int64
	Remaining int64
}

// Allocate applies amount to candidates, earliest due date first (ties broken
// by id). Each candidate is paid in full before the next one is touched; the
// walk stops as soon as the payment is used up. Whatever is left after the
// last candidate is reported in Remaining and is not credited anywhere.
//
// Candidates are mutated in place through SetOutstanding.
func Allocate(candidates []ScheduledRepayment, amount int64) (Allocation, error) {
	if amount <= 0 {
		return Allocation{}, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrInvalidPaymentAmount)
	}

	order := make([]int, 0, len(candidates))
	for i := range candidates {
		if !candidates[i].IsRepaid() {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := candidates[order[a]], candidates[order[b]]
		if !ca.DueDate.Equal(cb.DueDate) {
			return ca.DueDate.Before(cb.DueDate)
		}
		return ca.ID < cb.ID
	})

	result := Allocation{Remaining: amount}
	for _, idx := range order {
		if result.Remaining == 0 {
			break
		}
		candidate := &candidates[idx]

		if result.Remaining >= candidate.OutstandingAmount {
			result.Remaining -= candidate.OutstandingAmount
			if err := candidate.SetOutstanding(0); err != nil {
				return Allocation{}, err
			}
		} else {
			if err := candidate.SetOutstanding(candidate.OutstandingAmount - result.Remaining); err != nil {
				return Allocation{}, err
			}
			result.Remaining = 0
		}
		result.Touched = append(result.Touched, idx)
	}

	result.Absorbed = amount - result.Remaining
	return result, nil
}

// ApplyAllocation decrements the loan by what the schedule actually absorbed.
func (l *Loan) ApplyAllocation(a Allocation) error {
	return l.SetOutstanding(l.OutstandingAmount - a.Absorbed)
}
