package services

import "context"

// SignatureExtractor produces face signatures from raw image bytes. The
// production implementation calls the external face service; tests substitute
// a canned extractor.
type SignatureExtractor interface {
	ExtractSignatures(ctx context.Context, image []byte, mimeType string) ([][]float32, error)
}
