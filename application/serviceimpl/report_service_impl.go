package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"faceattend/domain/models"
	"faceattend/domain/repositories"
	"faceattend/domain/services"
	"faceattend/pkg/logger"
)

type ReportServiceImpl struct {
	attendanceRepo repositories.AttendanceRepository
	employeeRepo   repositories.EmployeeRepository
	reportCache    services.ReportCache
}

// NewReportService creates the report aggregator. reportCache may be nil.
func NewReportService(
	attendanceRepo repositories.AttendanceRepository,
	employeeRepo repositories.EmployeeRepository,
	reportCache services.ReportCache,
) services.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		reportCache:    reportCache,
	}
}

// Daily covers the half-open window [day, day+24h) for the UTC day of date.
// Finished days are served from the cache when one is wired.
func (s *ReportServiceImpl) Daily(ctx context.Context, date time.Time) ([]services.ReportLine, error) {
	day := models.DayOf(date)
	finished := day.Before(models.DayOf(time.Now().UTC()))

	if s.reportCache != nil && finished {
		if lines, ok, err := s.reportCache.GetDailyReport(ctx, day); err != nil {
			logger.ReportError("cache_get", "Daily report cache read failed", err, map[string]interface{}{
				"date": day.Format("2006-01-02"),
			})
		} else if ok {
			return lines, nil
		}
	}

	lines, err := s.generate(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	if s.reportCache != nil && finished {
		if err := s.reportCache.SetDailyReport(ctx, day, lines); err != nil {
			logger.ReportError("cache_set", "Daily report cache write failed", err, map[string]interface{}{
				"date": day.Format("2006-01-02"),
			})
		}
	}

	return lines, nil
}

// Weekly covers [weekStart, weekStart+7d).
func (s *ReportServiceImpl) Weekly(ctx context.Context, weekStart time.Time) ([]services.ReportLine, error) {
	start := models.DayOf(weekStart)
	return s.generate(ctx, start, start.AddDate(0, 0, 7))
}

// Monthly covers [first of month, first of next month). time.Date normalizes
// month+1, so December rolls into January of the next year and short months
// never leak days from their neighbors.
func (s *ReportServiceImpl) Monthly(ctx context.Context, year int, month time.Month) ([]services.ReportLine, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return s.generate(ctx, start, end)
}

// generate folds all records in [start, end) into one line per employee, in
// order of each employee's first record.
func (s *ReportServiceImpl) generate(ctx context.Context, start, end time.Time) ([]services.ReportLine, error) {
	records, err := s.attendanceRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance records: %w", err)
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	byID := make(map[uuid.UUID]*models.Employee, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	var order []uuid.UUID
	lines := make(map[uuid.UUID]*services.ReportLine, len(employees))

	for i := range records {
		record := &records[i]

		line, ok := lines[record.EmployeeID]
		if !ok {
			employee, found := byID[record.EmployeeID]
			if !found {
				return nil, fmt.Errorf("%w: %s", services.ErrEmployeeMissing, record.EmployeeID)
			}
			line = &services.ReportLine{
				EmployeeID: employee.ID,
				Name:       employee.Name,
				Role:       employee.Role,
			}
			lines[record.EmployeeID] = line
			order = append(order, record.EmployeeID)
		}

		line.TotalCheckIns++
		if record.CheckOutTime != nil {
			line.TotalHours += record.CheckOutTime.Sub(record.CheckInTime).Hours()
		}
	}

	result := make([]services.ReportLine, 0, len(order))
	for _, id := range order {
		result = append(result, *lines[id])
	}

	logger.Report("generate", "Report generated", map[string]interface{}{
		"start":     start.Format("2006-01-02"),
		"end":       end.Format("2006-01-02"),
		"records":   len(records),
		"employees": len(result),
	})

	return result, nil
}
