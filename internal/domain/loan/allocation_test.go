package loan

import (
	"repayment-engine/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeTerms() []ScheduledRepayment {
	schedule := []ScheduledRepayment{
		{ID: 1, Amount: 333, DueDate: date(2025, 2, 1)},
		{ID: 2, Amount: 333, DueDate: date(2025, 3, 1)},
		{ID: 3, Amount: 334, DueDate: date(2025, 4, 1)},
	}
	for i := range schedule {
		_ = schedule[i].SetOutstanding(schedule[i].Amount)
	}
	return schedule
}

func TestAllocate_SingleInstallment(t *testing.T) {
	candidates := threeTerms()

	a, err := Allocate(candidates, 333)

	require.NoError(t, err)
	assert.Equal(t, []int{0}, a.Touched)
	assert.Equal(t, int64(333), a.Absorbed)
	assert.Zero(t, a.Remaining)
	assert.Equal(t, RepaymentStatusRepaid, candidates[0].Status)
	assert.Equal(t, RepaymentStatusDue, candidates[1].Status)
}

func TestAllocate_SpansInstallments(t *testing.T) {
	candidates := threeTerms()

	a, err := Allocate(candidates, 500)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, a.Touched)
	assert.Zero(t, candidates[0].OutstandingAmount)
	assert.Equal(t, int64(166), candidates[1].OutstandingAmount)
	assert.Equal(t, RepaymentStatusPartial, candidates[1].Status)
	assert.Equal(t, int64(334), candidates[2].OutstandingAmount)
}

func TestAllocate_EarliestDueFirstRegardlessOfOrder(t *testing.T) {
	candidates := threeTerms()
	candidates[0], candidates[2] = candidates[2], candidates[0]

	a, err := Allocate(candidates, 333)

	require.NoError(t, err)
	assert.Equal(t, []int{2}, a.Touched)
	assert.Equal(t, int64(1), candidates[2].ID)
	assert.True(t, candidates[2].IsRepaid())
}

func TestAllocate_TiesBrokenByID(t *testing.T) {
	candidates := []ScheduledRepayment{
		{ID: 9, Amount: 10, OutstandingAmount: 10, DueDate: date(2025, 1, 1)},
		{ID: 4, Amount: 10, OutstandingAmount: 10, DueDate: date(2025, 1, 1)},
	}

	a, err := Allocate(candidates, 10)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, a.Touched)
}

func TestAllocate_SkipsRepaid(t *testing.T) {
	candidates := threeTerms()
	require.NoError(t, candidates[0].SetOutstanding(0))

	a, err := Allocate(candidates, 100)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, a.Touched)
}

func TestAllocate_Overpayment(t *testing.T) {
	candidates := []ScheduledRepayment{{ID: 1, Amount: 100, OutstandingAmount: 100, Status: RepaymentStatusDue}}

	a, err := Allocate(candidates, 150)

	require.NoError(t, err)
	assert.Equal(t, int64(100), a.Absorbed)
	assert.Equal(t, int64(50), a.Remaining)
	assert.True(t, candidates[0].IsRepaid())
}

func TestAllocate_NoCandidates(t *testing.T) {
	a, err := Allocate(nil, 80)

	require.NoError(t, err)
	assert.Empty(t, a.Touched)
	assert.Zero(t, a.Absorbed)
	assert.Equal(t, int64(80), a.Remaining)
}

func TestAllocate_RejectsNonPositive(t *testing.T) {
	candidates := threeTerms()
	for _, amount := range []int64{0, -5} {
		_, err := Allocate(candidates, amount)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentAmount)
	}
	assert.Equal(t, int64(1000), SumOutstanding(candidates))
}

func TestApplyAllocation(t *testing.T) {
	l := &Loan{Amount: 1000}
	require.NoError(t, l.SetOutstanding(1000))
	candidates := threeTerms()

	a, err := Allocate(candidates, 1200)
	require.NoError(t, err)
	require.NoError(t, l.ApplyAllocation(a))

	assert.Zero(t, l.OutstandingAmount)
	assert.True(t, l.IsRepaid())
	assert.Equal(t, SumOutstanding(candidates), l.OutstandingAmount)
}
