package di

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"faceattend/application/serviceimpl"
	"faceattend/domain/repositories"
	"faceattend/domain/services"
	"faceattend/infrastructure/faceapi"
	"faceattend/infrastructure/postgres"
	"faceattend/infrastructure/redis"
	"faceattend/interfaces/api/websocket"
	"faceattend/pkg/config"
	"faceattend/pkg/logger"
	"faceattend/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *goredis.Client
	EventScheduler scheduler.EventScheduler
	FaceClient     *faceapi.FaceClient
	Hub            *websocket.Hub

	// Repositories
	UserRepository       repositories.UserRepository
	EmployeeRepository   repositories.EmployeeRepository
	AttendanceRepository repositories.AttendanceRepository

	// Caches (nil when Redis is disabled or unreachable)
	RosterCache repositories.RosterCache
	ReportCache services.ReportCache

	// Services
	AuthService        services.AuthService
	EmployeeService    services.EmployeeService
	AttendanceService  services.AttendanceService
	ReportService      services.ReportService
	RecognitionService services.RecognitionService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Startup("config_loaded", "Configuration loaded", nil)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	// Initialize Redis. The caches are optional; everything falls back to
	// Postgres when Redis is missing.
	if c.Config.Redis.Enabled {
		client, err := redis.NewClient(redis.Config{
			Host:     c.Config.Redis.Host,
			Port:     c.Config.Redis.Port,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if err != nil {
			logger.StartupWarn("redis_connection_failed", "Redis connection failed, caches disabled", map[string]interface{}{"error": err.Error()})
		} else {
			c.RedisClient = client
			c.RosterCache = redis.NewRosterCache(client)
			c.ReportCache = redis.NewReportCache(client)
			logger.Startup("redis_connected", "Redis connected", nil)
		}
	}

	// Initialize WebSocket hub for the live check-in feed
	c.Hub = websocket.NewHub()
	c.Hub.Run()
	logger.Startup("websocket_hub_started", "WebSocket hub started", nil)

	return nil
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.EmployeeRepository = postgres.NewEmployeeRepository(c.DB)
	c.AttendanceRepository = postgres.NewAttendanceRepository(c.DB)
	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	c.AuthService = serviceimpl.NewAuthService(c.UserRepository, c.Config.JWT.Secret)
	c.AttendanceService = serviceimpl.NewAttendanceService(c.AttendanceRepository, c.EmployeeRepository, c.Hub)
	c.ReportService = serviceimpl.NewReportService(c.AttendanceRepository, c.EmployeeRepository, c.ReportCache)

	// Services that extract face signatures exist only when the face API is
	// enabled; handlers answer 503 on their routes otherwise.
	if c.Config.FaceAPI.Enabled {
		c.FaceClient = faceapi.NewFaceClient(c.Config.FaceAPI.BaseURL)
		c.EmployeeService = serviceimpl.NewEmployeeService(c.EmployeeRepository, c.AttendanceRepository, c.FaceClient, c.RosterCache)
		c.RecognitionService = serviceimpl.NewRecognitionService(c.FaceClient, c.EmployeeRepository, c.RosterCache, c.AttendanceService, c.Config.Matching.Threshold)
	} else {
		logger.StartupWarn("face_api_disabled", "Face API disabled, enrollment and image check-in unavailable", nil)
	}

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()
	c.EventScheduler.Start()
	logger.Startup("scheduler_started", "Event scheduler started", nil)

	if c.Config.Scheduler.DailySummaryEnabled {
		c.scheduleDailySummary()
	}

	return nil
}

// scheduleDailySummary registers the job that computes yesterday's report
// shortly after midnight, warming the report cache and logging totals.
func (c *Container) scheduleDailySummary() {
	err := c.EventScheduler.AddJob("daily-attendance-summary", c.Config.Scheduler.DailySummaryCron, func() {
		ctx := context.Background()
		yesterday := time.Now().UTC().AddDate(0, 0, -1)

		lines, err := c.ReportService.Daily(ctx, yesterday)
		if err != nil {
			logger.SchedulerError("daily_summary_failed", "Daily attendance summary failed", err, nil)
			return
		}

		totalCheckIns := 0
		totalHours := 0.0
		for _, line := range lines {
			totalCheckIns += line.TotalCheckIns
			totalHours += line.TotalHours
		}

		logger.Scheduler("daily_summary_done", "Daily attendance summary completed", map[string]interface{}{
			"date":            yesterday.Format("2006-01-02"),
			"employees":       len(lines),
			"total_check_ins": totalCheckIns,
			"total_hours":     totalHours,
		})
	})

	if err != nil {
		logger.StartupWarn("daily_summary_schedule_failed", "Failed to schedule daily summary job", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Startup("daily_summary_scheduled", "Daily attendance summary job scheduled", map[string]interface{}{"cron": c.Config.Scheduler.DailySummaryCron})
	}
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	// Stop scheduler
	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Startup("scheduler_stopped", "Event scheduler stopped", nil)
	}

	// Stop WebSocket hub
	if c.Hub != nil {
		c.Hub.Stop()
		logger.Startup("websocket_hub_stopped", "WebSocket hub stopped", nil)
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	// Close database connection
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database connection", map[string]interface{}{"error": err.Error()})
			} else {
				logger.Startup("db_closed", "Database connection closed", nil)
			}
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}
