package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"faceattend/domain/models"
	"faceattend/domain/repositories"
)

type EmployeeRepositoryImpl struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) repositories.EmployeeRepository {
	return &EmployeeRepositoryImpl{db: db}
}

func (r *EmployeeRepositoryImpl) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *EmployeeRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// List orders by enrollment so the matcher always scans the roster the same
// way.
func (r *EmployeeRepositoryImpl) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepositoryImpl) Update(ctx context.Context, id uuid.UUID, employee *models.Employee) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Updates(employee).Error
}

func (r *EmployeeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Employee{}).Error
}

func (r *EmployeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error
	return count, err
}
