package leave

// Remaining derives the remaining leave count. It does not clamp at
// zero; stored balances stay non-negative because debits are guarded by
// the sufficiency check at apply time.
func Remaining(total, used float64) float64 {
	return total - used
}
