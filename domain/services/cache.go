package services

import (
	"context"
	"time"
)

// ReportCache stores finished daily reports. Only days strictly in the past
// are cacheable; today's report keeps changing until midnight.
type ReportCache interface {
	GetDailyReport(ctx context.Context, day time.Time) ([]ReportLine, bool, error)
	SetDailyReport(ctx context.Context, day time.Time, lines []ReportLine) error
}
