package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"faceattend/domain/models"
)

var (
	ErrNoFaceDetected     = errors.New("no face detected in the uploaded image")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeHasRecords = errors.New("employee has attendance records and cannot be deleted")
)

// EmployeeService manages the roster of enrolled identities.
type EmployeeService interface {
	// Enroll extracts face signatures from the image and stores the first
	// one as the employee's embedding. An image without a detectable face
	// fails with ErrNoFaceDetected.
	Enroll(ctx context.Context, name, role string, image []byte, mimeType string) (*models.Employee, error)

	Get(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)

	// Update changes name/role; when image is non-nil the embedding is
	// replaced by re-extraction (explicit re-enrollment).
	Update(ctx context.Context, id uuid.UUID, name, role string, image []byte, mimeType string) (*models.Employee, error)

	// Delete removes the employee. Rejected with ErrEmployeeHasRecords when
	// attendance records still reference the identity.
	Delete(ctx context.Context, id uuid.UUID) error
}
