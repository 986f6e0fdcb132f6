package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"faceattend/domain/services"
)

const (
	reportKeyPrefix = "faceattend:report:daily:"
	reportTTL       = 24 * time.Hour
)

type ReportCacheImpl struct {
	client *goredis.Client
}

// NewReportCache caches finished daily reports by calendar day.
func NewReportCache(client *goredis.Client) services.ReportCache {
	return &ReportCacheImpl{client: client}
}

func reportKey(day time.Time) string {
	return reportKeyPrefix + day.Format("2006-01-02")
}

func (c *ReportCacheImpl) GetDailyReport(ctx context.Context, day time.Time) ([]services.ReportLine, bool, error) {
	data, err := c.client.Get(ctx, reportKey(day)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read report cache: %w", err)
	}

	var lines []services.ReportLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, false, fmt.Errorf("failed to decode report cache: %w", err)
	}
	return lines, true, nil
}

func (c *ReportCacheImpl) SetDailyReport(ctx context.Context, day time.Time, lines []services.ReportLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, reportKey(day), data, reportTTL).Err(); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}
