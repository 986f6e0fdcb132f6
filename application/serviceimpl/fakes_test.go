package serviceimpl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"faceattend/domain/matching"
	"faceattend/domain/models"
	"faceattend/domain/repositories"
	"faceattend/domain/services"
)

// In-memory repository fakes. They enforce the same contracts as the
// Postgres implementations, including the unique (employee, day) constraint.

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	order     []uuid.UUID
	employees map[uuid.UUID]models.Employee
	listCalls int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[uuid.UUID]models.Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	employee.CreatedAt = time.Now().UTC()
	r.employees[employee.ID] = *employee
	r.order = append(r.order, employee.ID)
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	employee, ok := r.employees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &employee, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	result := make([]models.Employee, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.employees[id])
	}
	return result, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, id uuid.UUID, employee *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return repositories.ErrNotFound
	}
	employee.ID = id
	r.employees[id] = *employee
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.employees, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeEmployeeRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.employees)), nil
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records []models.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, record *models.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.EmployeeID == record.EmployeeID && existing.AttendanceDate.Equal(record.AttendanceDate) {
			return repositories.ErrDuplicateCheckIn
		}
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id uuid.UUID) (*models.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.ID == id {
			copied := record
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAttendanceRepo) List(_ context.Context, offset, limit int) ([]models.AttendanceRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := int64(len(r.records))
	if offset >= len(r.records) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(r.records) {
		end = len(r.records)
	}
	return append([]models.AttendanceRecord(nil), r.records[offset:end]...), total, nil
}

func (r *fakeAttendanceRepo) ExistsForDay(_ context.Context, employeeID uuid.UUID, day time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	end := day.Add(24 * time.Hour)
	for _, record := range r.records {
		if record.EmployeeID == employeeID &&
			!record.AttendanceDate.Before(day) && record.AttendanceDate.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) GetByDateRange(_ context.Context, start, end time.Time) ([]models.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.AttendanceRecord
	for _, record := range r.records {
		if !record.AttendanceDate.Before(start) && record.AttendanceDate.Before(end) {
			result = append(result, record)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CheckInTime.Before(result[j].CheckInTime)
	})
	return result, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, id uuid.UUID, record *models.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.records {
		if existing.ID == id {
			updated := *record
			updated.ID = id
			r.records[i] = updated
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.records {
		if existing.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeAttendanceRepo) CountByEmployee(_ context.Context, employeeID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, record := range r.records {
		if record.EmployeeID == employeeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAttendanceRepo) recordCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, id uuid.UUID, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	user.ID = id
	r.users[id] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := user
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// fakeExtractor returns canned signatures.
type fakeExtractor struct {
	signatures [][]float32
	err        error
}

func (e *fakeExtractor) ExtractSignatures(context.Context, []byte, string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.signatures, nil
}

// fakeNotifier records published events.
type fakeNotifier struct {
	mu     sync.Mutex
	events []services.CheckInEvent
}

func (n *fakeNotifier) NotifyCheckIn(event services.CheckInEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *fakeNotifier) published() []services.CheckInEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]services.CheckInEvent(nil), n.events...)
}

// fakeRosterCache is an always-available in-memory cache.
type fakeRosterCache struct {
	mu          sync.Mutex
	roster      []matching.RosterEntry
	populated   bool
	sets        int
	invalidates int
}

func (c *fakeRosterCache) GetRoster(context.Context) ([]matching.RosterEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.populated {
		return nil, false, nil
	}
	return append([]matching.RosterEntry(nil), c.roster...), true, nil
}

func (c *fakeRosterCache) SetRoster(_ context.Context, roster []matching.RosterEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roster = append([]matching.RosterEntry(nil), roster...)
	c.populated = true
	c.sets++
	return nil
}

func (c *fakeRosterCache) InvalidateRoster(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roster = nil
	c.populated = false
	c.invalidates++
	return nil
}

// fakeReportCache stores daily reports keyed by day.
type fakeReportCache struct {
	mu      sync.Mutex
	reports map[string][]services.ReportLine
	hits    int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{reports: make(map[string][]services.ReportLine)}
}

func (c *fakeReportCache) GetDailyReport(_ context.Context, day time.Time) ([]services.ReportLine, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines, ok := c.reports[day.Format("2006-01-02")]
	if ok {
		c.hits++
	}
	return lines, ok, nil
}

func (c *fakeReportCache) SetDailyReport(_ context.Context, day time.Time, lines []services.ReportLine) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[day.Format("2006-01-02")] = append([]services.ReportLine(nil), lines...)
	return nil
}
