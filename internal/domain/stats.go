package domain

// RowsProcessedStats counts rows through one stage. It is additive across
// batches; after a stage completes RowsSuccess+RowsFailed == RowsProcessed.
type RowsProcessedStats struct {
	RowsProcessed int
	RowsSuccess   int
	RowsFailed    int
}

// Add returns the field-wise sum of s and other.
func (s RowsProcessedStats) Add(other RowsProcessedStats) RowsProcessedStats {
	return RowsProcessedStats{
		RowsProcessed: s.RowsProcessed + other.RowsProcessed,
		RowsSuccess:   s.RowsSuccess + other.RowsSuccess,
		RowsFailed:    s.RowsFailed + other.RowsFailed,
	}
}

// Consistent reports whether success and failure account for every
// processed row.
func (s RowsProcessedStats) Consistent() bool {
	return s.RowsSuccess+s.RowsFailed == s.RowsProcessed
}

// FailedStats returns stats with every one of n rows counted failed.
func FailedStats(n int) RowsProcessedStats {
	return RowsProcessedStats{RowsProcessed: n, RowsFailed: n}
}
