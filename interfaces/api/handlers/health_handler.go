package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"faceattend/infrastructure/faceapi"
)

type HealthHandler struct {
	db          *gorm.DB
	redisClient *goredis.Client
	faceClient  *faceapi.FaceClient
}

func NewHealthHandler(db *gorm.DB, redisClient *goredis.Client, faceClient *faceapi.FaceClient) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		faceClient:  faceClient,
	}
}

type ComponentHealth struct {
	Status  string `json:"status"` // ok, error, unavailable
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // healthy, degraded, unhealthy
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

// Health answers the basic liveness probe.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// DetailedHealth probes every dependency. The database is the only
// critical one: without it the service is unhealthy and answers 503.
// A dead Redis or face service only degrades the status, since check-ins
// on cached rosters and report reads keep working.
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	components := map[string]ComponentHealth{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
		"face_api": h.checkFaceAPI(ctx),
	}

	status := "healthy"
	if components["redis"].Status == "error" || components["face_api"].Status == "error" {
		status = "degraded"
	}
	if components["database"].Status != "ok" {
		status = "unhealthy"
	}

	code := fiber.StatusOK
	if status == "unhealthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(DetailedHealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.db == nil {
		return ComponentHealth{Status: "error", Message: "Database not configured"}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return ComponentHealth{Status: "error", Message: "Failed to get database connection: " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return ComponentHealth{Status: "error", Message: "Database ping failed: " + err.Error()}
	}

	return ComponentHealth{Status: "ok", Message: "Connected", Latency: time.Since(start).String()}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.redisClient == nil {
		return ComponentHealth{Status: "unavailable", Message: "Redis not configured"}
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		return ComponentHealth{Status: "error", Message: "Redis ping failed: " + err.Error()}
	}

	return ComponentHealth{Status: "ok", Message: "Connected", Latency: time.Since(start).String()}
}

func (h *HealthHandler) checkFaceAPI(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.faceClient == nil {
		return ComponentHealth{Status: "unavailable", Message: "Face processing disabled"}
	}

	health, err := h.faceClient.Health(ctx)
	if err != nil {
		return ComponentHealth{Status: "error", Message: "Face API health check failed: " + err.Error()}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Model: " + health.Model + ", Version: " + health.Version,
		Latency: time.Since(start).String(),
	}
}
