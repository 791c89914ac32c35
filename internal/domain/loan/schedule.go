package loan

import (
	"fmt"
	"repayment-engine/internal/domain/currency"
	"repayment-engine/internal/pkg/apperrors"
	"time"
)

// GenerateSchedule splits amount into terms monthly repayments. Every
// repayment gets amount/terms and the last one also takes the remainder,
// so the amounts always sum to amount exactly.
func GenerateSchedule(amount int64, terms int, code currency.Code, startDate time.Time) ([]ScheduledRepayment, error) {
	if terms <= 0 || terms > MaxTerms {
		return nil, fmt.Errorf("%w: terms must be between 1 and %d", apperrors.ErrInvalidArgument, MaxTerms)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrInvalidArgument)
	}

	share := amount / int64(terms)
	remainder := amount % int64(terms)
	start := truncateToDate(startDate)

	schedule := make([]ScheduledRepayment, 0, terms)
	for i := 1; i <= terms; i++ {
		termAmount := share
		if i == terms {
			termAmount += remainder
		}

		entry := ScheduledRepayment{
			Amount:       termAmount,
			CurrencyCode: code,
			DueDate:      AddMonths(start, i),
		}
		// zero-amount entries (amount < terms) derive straight to repaid
		if err := entry.SetOutstanding(termAmount); err != nil {
			return nil, err
		}
		schedule = append(schedule, entry)
	}

	return schedule, nil
}

// AddMonths moves t forward by n calendar months. When the target month is
// shorter than t's day of month, the day is clipped to the month's last day
// instead of overflowing: Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}

// SumAmounts returns the total original amount of a schedule.
func SumAmounts(schedule []ScheduledRepayment) int64 {
	var total int64
	for _, s := range schedule {
		total += s.Amount
	}
	return total
}

// SumOutstanding returns the total remaining balance of a schedule.
func SumOutstanding(schedule []ScheduledRepayment) int64 {
	var total int64
	for _, s := range schedule {
		total += s.OutstandingAmount
	}
	return total
}
