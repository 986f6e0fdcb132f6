package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"faceattend/domain/models"
	"faceattend/domain/repositories"
	"faceattend/domain/services"
	"faceattend/pkg/logger"
)

type EmployeeServiceImpl struct {
	employeeRepo   repositories.EmployeeRepository
	attendanceRepo repositories.AttendanceRepository
	extractor      services.SignatureExtractor
	rosterCache    repositories.RosterCache
}

// NewEmployeeService creates the roster manager. rosterCache may be nil.
func NewEmployeeService(
	employeeRepo repositories.EmployeeRepository,
	attendanceRepo repositories.AttendanceRepository,
	extractor services.SignatureExtractor,
	rosterCache repositories.RosterCache,
) services.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		extractor:      extractor,
		rosterCache:    rosterCache,
	}
}

// Enroll stores a new employee with the first face found in the image.
func (s *EmployeeServiceImpl) Enroll(ctx context.Context, name, role string, image []byte, mimeType string) (*models.Employee, error) {
	embedding, err := s.extractEmbedding(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		Name:      name,
		Role:      role,
		Embedding: pgvector.NewVector(embedding),
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.invalidateRoster(ctx)

	logger.Face("enroll", "Employee enrolled", map[string]interface{}{
		"employee_id": employee.ID.String(),
		"name":        name,
		"role":        role,
	})

	return employee, nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Update changes name and role; a non-nil image re-enrolls the embedding.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id uuid.UUID, name, role string, image []byte, mimeType string) (*models.Employee, error) {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		employee.Name = name
	}
	if role != "" {
		employee.Role = role
	}
	if image != nil {
		embedding, err := s.extractEmbedding(ctx, image, mimeType)
		if err != nil {
			return nil, err
		}
		employee.Embedding = pgvector.NewVector(embedding)
	}

	if err := s.employeeRepo.Update(ctx, id, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	s.invalidateRoster(ctx)

	return employee, nil
}

// Delete removes an employee. Refused while attendance records still
// reference the identity, so history never loses its owner.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.attendanceRepo.CountByEmployee(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count attendance records: %w", err)
	}
	if count > 0 {
		return services.ErrEmployeeHasRecords
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.invalidateRoster(ctx)

	logger.Face("delete_employee", "Employee deleted", map[string]interface{}{
		"employee_id": id.String(),
	})
	return nil
}

func (s *EmployeeServiceImpl) extractEmbedding(ctx context.Context, image []byte, mimeType string) ([]float32, error) {
	signatures, err := s.extractor.ExtractSignatures(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract face signatures: %w", err)
	}
	if len(signatures) == 0 {
		return nil, services.ErrNoFaceDetected
	}
	// Enrollment photos are expected to show one person; take the first face.
	return signatures[0], nil
}

func (s *EmployeeServiceImpl) invalidateRoster(ctx context.Context) {
	if s.rosterCache == nil {
		return
	}
	if err := s.rosterCache.InvalidateRoster(ctx); err != nil {
		logger.FaceError("roster_cache_invalidate", "Roster cache invalidation failed", err, nil)
	}
}
