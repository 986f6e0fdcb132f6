package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"faceattend/domain/matching"
	"faceattend/domain/repositories"
)

const (
	rosterKey = "faceattend:roster"
	rosterTTL = 10 * time.Minute
)

// cachedRosterEntry is the wire form of one roster entry.
type cachedRosterEntry struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Embedding  []float32 `json:"embedding"`
}

type RosterCacheImpl struct {
	client *goredis.Client
}

// NewRosterCache caches the ordered roster snapshot. The TTL bounds staleness
// for writers outside this process; local writers invalidate explicitly.
func NewRosterCache(client *goredis.Client) repositories.RosterCache {
	return &RosterCacheImpl{client: client}
}

func (c *RosterCacheImpl) GetRoster(ctx context.Context) ([]matching.RosterEntry, bool, error) {
	data, err := c.client.Get(ctx, rosterKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read roster cache: %w", err)
	}

	var cached []cachedRosterEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to decode roster cache: %w", err)
	}

	roster := make([]matching.RosterEntry, len(cached))
	for i, entry := range cached {
		roster[i] = matching.RosterEntry{
			EmployeeID: entry.EmployeeID,
			Embedding:  entry.Embedding,
		}
	}
	return roster, true, nil
}

func (c *RosterCacheImpl) SetRoster(ctx context.Context, roster []matching.RosterEntry) error {
	cached := make([]cachedRosterEntry, len(roster))
	for i, entry := range roster {
		cached[i] = cachedRosterEntry{
			EmployeeID: entry.EmployeeID,
			Embedding:  entry.Embedding,
		}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode roster cache: %w", err)
	}

	if err := c.client.Set(ctx, rosterKey, data, rosterTTL).Err(); err != nil {
		return fmt.Errorf("failed to write roster cache: %w", err)
	}
	return nil
}

func (c *RosterCacheImpl) InvalidateRoster(ctx context.Context) error {
	if err := c.client.Del(ctx, rosterKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate roster cache: %w", err)
	}
	return nil
}
