package services

import (
	"context"
)

// RecognitionService ties signature extraction, matching and the ledger into
// the image check-in flow.
type RecognitionService interface {
	// CheckInByImage extracts every face in the image, matches each against
	// the roster and checks in the recognized set. threshold <= 0 selects
	// the configured default. An empty result means nobody was recognized;
	// that is a normal outcome, not an error.
	CheckInByImage(ctx context.Context, image []byte, mimeType string, threshold float64) ([]CheckInResult, error)
}
