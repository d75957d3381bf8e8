package trace

// TraceSummary aggregates statistics from an ExecutionTrace.
type TraceSummary struct {
	TotalRecords      int
	TotalDuration     int64
	FirstTimestamp    int64
	LastEnd           int64
	LabelDistribution map[string]int // label → count of records
	Contiguous        bool           // every record starts where the previous one ended
}

// Summarize computes aggregate statistics from an ExecutionTrace.
// Safe for nil or empty traces (returns zero-value fields, Contiguous=true).
func Summarize(et *ExecutionTrace) *TraceSummary {
	summary := &TraceSummary{
		LabelDistribution: make(map[string]int),
		Contiguous:        true,
	}
	if et == nil || len(et.Records) == 0 {
		return summary
	}

	summary.TotalRecords = len(et.Records)
	summary.FirstTimestamp = et.Records[0].Timestamp
	for i, r := range et.Records {
		summary.TotalDuration += r.Duration
		summary.LabelDistribution[r.Label]++
		if i > 0 && et.Records[i-1].End() != r.Timestamp {
			summary.Contiguous = false
		}
	}
	summary.LastEnd = et.Records[len(et.Records)-1].End()

	return summary
}
