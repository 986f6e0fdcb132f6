package repositories

import (
	"context"

	"faceattend/domain/matching"
)

// RosterCache holds a snapshot of the enrolled roster so the check-in path
// can skip the employee table on the hot path. Implementations are best
// effort: a miss or an error falls back to the repository.
type RosterCache interface {
	GetRoster(ctx context.Context) ([]matching.RosterEntry, bool, error)
	SetRoster(ctx context.Context, roster []matching.RosterEntry) error
	InvalidateRoster(ctx context.Context) error
}
