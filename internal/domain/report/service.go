package report

import "context"

type Service interface {
	// Today builds the recap over today's punch rows: per-person status
	// line plus aggregate on-time/late/absent counts.
	Today(ctx context.Context) (TodayRecapResponse, error)
}
