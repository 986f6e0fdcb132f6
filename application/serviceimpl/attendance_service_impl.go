package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"faceattend/domain/models"
	"faceattend/domain/repositories"
	"faceattend/domain/services"
	"faceattend/pkg/logger"
)

type AttendanceServiceImpl struct {
	attendanceRepo repositories.AttendanceRepository
	employeeRepo   repositories.EmployeeRepository
	notifier       services.CheckInNotifier

	// Per-employee locks serialize check-then-insert within this process.
	// The unique (employee_id, attendance_date) index is the backstop for
	// anything the locks cannot see, e.g. a second replica.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	employeeRepo repositories.EmployeeRepository,
	notifier services.CheckInNotifier,
) services.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		notifier:       notifier,
		locks:          make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *AttendanceServiceImpl) lockFor(employeeID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[employeeID] = lock
	}
	return lock
}

func (s *AttendanceServiceImpl) HasCheckedInToday(ctx context.Context, employeeID uuid.UUID, ref time.Time) (bool, error) {
	exists, err := s.attendanceRepo.ExistsForDay(ctx, employeeID, models.DayOf(ref))
	if err != nil {
		return false, fmt.Errorf("failed to query attendance for day: %w", err)
	}
	return exists, nil
}

// CheckIn records today's attendance for every id, at most once per employee.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, ids []uuid.UUID) ([]services.CheckInResult, error) {
	now := time.Now().UTC()
	day := models.DayOf(now)

	results := make([]services.CheckInResult, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			results = append(results, services.CheckInResult{
				EmployeeID: id,
				Outcome:    services.OutcomeAlreadyCheckedIn,
			})
			continue
		}
		seen[id] = struct{}{}

		result, err := s.checkInOne(ctx, id, now, day)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *AttendanceServiceImpl) checkInOne(ctx context.Context, employeeID uuid.UUID, now, day time.Time) (services.CheckInResult, error) {
	lock := s.lockFor(employeeID)
	lock.Lock()
	defer lock.Unlock()

	exists, err := s.attendanceRepo.ExistsForDay(ctx, employeeID, day)
	if err != nil {
		return services.CheckInResult{}, fmt.Errorf("failed to query attendance for day: %w", err)
	}
	if exists {
		return services.CheckInResult{
			EmployeeID: employeeID,
			Outcome:    services.OutcomeAlreadyCheckedIn,
		}, nil
	}

	record := &models.AttendanceRecord{
		EmployeeID:     employeeID,
		CheckInTime:    now,
		AttendanceDate: day,
	}

	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		// Lost the race against a writer this process never saw. The unique
		// index already holds a row for today, so the outcome is the same.
		if errors.Is(err, repositories.ErrDuplicateCheckIn) {
			logger.Attendance("check_in_race", "Duplicate check-in absorbed by unique index", map[string]interface{}{
				"employee_id": employeeID.String(),
				"date":        day.Format("2006-01-02"),
			})
			return services.CheckInResult{
				EmployeeID: employeeID,
				Outcome:    services.OutcomeAlreadyCheckedIn,
			}, nil
		}
		return services.CheckInResult{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	logger.Attendance("check_in", "Employee checked in", map[string]interface{}{
		"employee_id": employeeID.String(),
		"record_id":   record.ID.String(),
		"date":        day.Format("2006-01-02"),
	})

	s.publishCheckIn(ctx, employeeID, now)

	return services.CheckInResult{
		EmployeeID: employeeID,
		Outcome:    services.OutcomeCheckedIn,
		Record:     record,
	}, nil
}

// publishCheckIn pushes the event to the live feed. Best effort only.
func (s *AttendanceServiceImpl) publishCheckIn(ctx context.Context, employeeID uuid.UUID, checkInTime time.Time) {
	if s.notifier == nil {
		return
	}

	name := ""
	if employee, err := s.employeeRepo.GetByID(ctx, employeeID); err == nil {
		name = employee.Name
	}

	s.notifier.NotifyCheckIn(services.CheckInEvent{
		EmployeeID:  employeeID,
		Name:        name,
		CheckInTime: checkInTime,
	})
}

// CheckOut stamps the check-out time once. Calling it again returns the
// record unchanged.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, recordID uuid.UUID) (*models.AttendanceRecord, error) {
	record, err := s.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if record.CheckOutTime != nil {
		return record, nil
	}

	now := time.Now().UTC()
	record.CheckOutTime = &now

	if err := s.attendanceRepo.Update(ctx, recordID, record); err != nil {
		return nil, fmt.Errorf("failed to update attendance record: %w", err)
	}

	logger.Attendance("check_out", "Employee checked out", map[string]interface{}{
		"employee_id": record.EmployeeID.String(),
		"record_id":   recordID.String(),
	})

	return record, nil
}

func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, recordID uuid.UUID) (*models.AttendanceRecord, error) {
	record, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return record, nil
}

func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, offset, limit int) ([]models.AttendanceRecord, int64, error) {
	records, total, err := s.attendanceRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, total, nil
}

// UpdateRecord is the administrative correction path. It applies the given
// fields as-is and does not re-check the once-per-day rule.
func (s *AttendanceServiceImpl) UpdateRecord(ctx context.Context, recordID uuid.UUID, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	if _, err := s.GetRecord(ctx, recordID); err != nil {
		return nil, err
	}

	if err := s.attendanceRepo.Update(ctx, recordID, record); err != nil {
		return nil, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return s.GetRecord(ctx, recordID)
}

func (s *AttendanceServiceImpl) DeleteRecord(ctx context.Context, recordID uuid.UUID) error {
	if _, err := s.GetRecord(ctx, recordID); err != nil {
		return err
	}

	if err := s.attendanceRepo.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}

	logger.Attendance("delete_record", "Attendance record deleted", map[string]interface{}{
		"record_id": recordID.String(),
	})
	return nil
}
