package repositories

import (
	"context"

	"github.com/google/uuid"

	"faceattend/domain/models"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)

	// List returns all employees in enrollment order (created_at, then id).
	// The matcher scans the roster in exactly this order, so it must be
	// stable across calls.
	List(ctx context.Context) ([]models.Employee, error)

	Update(ctx context.Context, id uuid.UUID, employee *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
