package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FaceClient talks to the external face signature service over HTTP.
// The service detects faces in an image and returns one 128-dim
// embedding per face.
type FaceClient struct {
	baseURL    string
	httpClient *http.Client
}

type DetectedFace struct {
	// Bounding box, normalized to [0, 1].
	BboxX      float64 `json:"bbox_x"`
	BboxY      float64 `json:"bbox_y"`
	BboxWidth  float64 `json:"bbox_width"`
	BboxHeight float64 `json:"bbox_height"`

	Embedding  []float32 `json:"embedding"`
	Confidence float64   `json:"confidence"`
}

type ExtractResponse struct {
	Success          bool           `json:"success"`
	Faces            []DetectedFace `json:"faces"`
	Error            string         `json:"error,omitempty"`
	ProcessingTimeMs int            `json:"processing_time_ms"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Version string `json:"version"`
}

func NewFaceClient(baseURL string) *FaceClient {
	return &FaceClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Detection on CPU-only deployments is slow.
			Timeout: 120 * time.Second,
		},
	}
}

// ExtractFacesFromBytes submits raw image bytes for detection.
func (c *FaceClient) ExtractFacesFromBytes(ctx context.Context, imageData []byte, mimeType string) (*ExtractResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract-bytes", bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call face API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ExtractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("face extraction failed: %s", result.Error)
	}

	return &result, nil
}

// ExtractSignatures returns just the embeddings, one per detected face. Zero
// faces is a valid response; the caller decides what that means.
func (c *FaceClient) ExtractSignatures(ctx context.Context, imageData []byte, mimeType string) ([][]float32, error) {
	result, err := c.ExtractFacesFromBytes(ctx, imageData, mimeType)
	if err != nil {
		return nil, err
	}

	signatures := make([][]float32, len(result.Faces))
	for i, face := range result.Faces {
		signatures[i] = face.Embedding
	}
	return signatures, nil
}

func (c *FaceClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call health API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

func (c *FaceClient) IsAvailable(ctx context.Context) bool {
	health, err := c.Health(ctx)
	return err == nil && health.Status == "ok"
}
