package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"faceattend/domain/models"
	"faceattend/domain/repositories"
)

type AttendanceRepositoryImpl struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) repositories.AttendanceRepository {
	return &AttendanceRepositoryImpl{db: db}
}

// Create inserts the record. The unique (employee_id, attendance_date) index
// turns a same-day duplicate into ErrDuplicateCheckIn.
func (r *AttendanceRepositoryImpl) Create(ctx context.Context, record *models.AttendanceRecord) error {
	err := r.db.WithContext(ctx).Create(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicateCheckIn
		}
		return err
	}
	return nil
}

func (r *AttendanceRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepositoryImpl) List(ctx context.Context, offset, limit int) ([]models.AttendanceRecord, int64, error) {
	var records []models.AttendanceRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("check_in_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *AttendanceRepositoryImpl) ExistsForDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("employee_id = ? AND attendance_date >= ? AND attendance_date < ?",
			employeeID, day, day.Add(24*time.Hour)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AttendanceRepositoryImpl) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("attendance_date >= ? AND attendance_date < ?", start, end).
		Order("check_in_time ASC, id ASC").
		Find(&records).Error
	return records, err
}

// Update saves all fields, including zero values. The admin correction path
// needs to be able to clear a check-out time.
func (r *AttendanceRepositoryImpl) Update(ctx context.Context, id uuid.UUID, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("id = ?", id).
		Select("employee_id", "check_in_time", "check_out_time", "attendance_date").
		Updates(record).Error
}

func (r *AttendanceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AttendanceRecord{}).Error
}

func (r *AttendanceRepositoryImpl) CountByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}
