package handlers

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"faceattend/domain/services"
	"faceattend/infrastructure/faceapi"
)

// Services contains all the services needed for handlers
type Services struct {
	AuthService        services.AuthService
	EmployeeService    services.EmployeeService
	AttendanceService  services.AttendanceService
	ReportService      services.ReportService
	RecognitionService services.RecognitionService
}

// Infra contains infrastructure handles the health handler probes directly
type Infra struct {
	DB          *gorm.DB
	RedisClient *goredis.Client
	FaceClient  *faceapi.FaceClient
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth       *AuthHandler
	Employee   *EmployeeHandler
	Attendance *AttendanceHandler
	Report     *ReportHandler
	Health     *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services, infra *Infra) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(services.AuthService),
		Employee:   NewEmployeeHandler(services.EmployeeService),
		Attendance: NewAttendanceHandler(services.AttendanceService, services.RecognitionService),
		Report:     NewReportHandler(services.ReportService),
		Health:     NewHealthHandler(infra.DB, infra.RedisClient, infra.FaceClient),
	}
}
