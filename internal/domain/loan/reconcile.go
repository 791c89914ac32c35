package loan

import "fmt"

type DiscrepancyKind string

const (
	DiscrepancyPrincipal   DiscrepancyKind = "principal_mismatch"
	DiscrepancyOutstanding DiscrepancyKind = "outstanding_mismatch"
	DiscrepancyStatus      DiscrepancyKind = "status_mismatch"
	DiscrepancyRange       DiscrepancyKind = "outstanding_out_of_range"
)

// Discrepancy is one broken ledger invariant found by Reconcile.
// ScheduledRepaymentID is zero when the finding concerns the loan itself.
type Discrepancy struct {
	LoanID               int64
	ScheduledRepaymentID int64
	Kind                 DiscrepancyKind
	Detail               string
}

// Reconcile checks a loan against its schedule without modifying either.
func Reconcile(l *Loan, schedule []ScheduledRepayment) []Discrepancy {
	var found []Discrepancy
	add := func(entryID int64, kind DiscrepancyKind, format string, args ...any) {
		found = append(found, Discrepancy{
			LoanID:               l.ID,
			ScheduledRepaymentID: entryID,
			Kind:                 kind,
			Detail:               fmt.Sprintf(format, args...),
		})
	}

	if total := SumAmounts(schedule); total != l.Amount {
		add(0, DiscrepancyPrincipal, "schedule sums to %d, loan amount is %d", total, l.Amount)
	}
	if total := SumOutstanding(schedule); total != l.OutstandingAmount {
		add(0, DiscrepancyOutstanding, "schedule outstanding %d, loan outstanding %d", total, l.OutstandingAmount)
	}
	if l.OutstandingAmount < 0 || l.OutstandingAmount > l.Amount {
		add(0, DiscrepancyRange, "loan outstanding %d outside [0, %d]", l.OutstandingAmount, l.Amount)
	}
	if want := DeriveLoanStatus(l.OutstandingAmount); l.Status != want {
		add(0, DiscrepancyStatus, "loan status %q, derived %q", l.Status, want)
	}

	for _, s := range schedule {
		if s.OutstandingAmount < 0 || s.OutstandingAmount > s.Amount {
			add(s.ID, DiscrepancyRange, "outstanding %d outside [0, %d]", s.OutstandingAmount, s.Amount)
		}
		if want := DeriveRepaymentStatus(s.OutstandingAmount, s.Amount); s.Status != want {
			add(s.ID, DiscrepancyStatus, "status %q, derived %q", s.Status, want)
		}
	}

	return found
}
