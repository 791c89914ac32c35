package loan

// DeriveLoanStatus maps a loan balance to its status. A loan is never partial.
func DeriveLoanStatus(outstanding int64) LoanStatus {
	if outstanding == 0 {
		return StatusRepaid
	}
	return StatusDue
}

// DeriveRepaymentStatus maps a scheduled repayment balance to its status.
func DeriveRepaymentStatus(outstanding, amount int64) RepaymentStatus {
	switch {
	case outstanding == 0:
		return RepaymentStatusRepaid
	case outstanding > 0 && outstanding < amount:
		return RepaymentStatusPartial
	default:
		return RepaymentStatusDue
	}
}
