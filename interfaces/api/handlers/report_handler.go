package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"faceattend/domain/services"
	"faceattend/pkg/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

type reportResponse struct {
	Period string                `json:"period"`
	Start  string                `json:"start"`
	End    string                `json:"end"`
	Lines  []services.ReportLine `json:"lines"`
}

// Daily returns per-employee totals for one calendar day
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	year, _ := c.ParamsInt("year", 0)
	month, _ := c.ParamsInt("month", 0)
	day, _ := c.ParamsInt("day", 0)
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return utils.BadRequestResponse(c, "Invalid date")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		return utils.BadRequestResponse(c, "Invalid date")
	}

	lines, err := h.reportService.Daily(c.Context(), date)
	if err != nil {
		return h.reportError(c, err)
	}

	return utils.SuccessResponse(c, "Daily report generated", reportResponse{
		Period: "daily",
		Start:  date.Format("2006-01-02"),
		End:    date.AddDate(0, 0, 1).Format("2006-01-02"),
		Lines:  lines,
	})
}

// Weekly returns totals for an ISO week (Monday through Sunday)
func (h *ReportHandler) Weekly(c *fiber.Ctx) error {
	year, _ := c.ParamsInt("year", 0)
	week, _ := c.ParamsInt("week", 0)
	if year < 1 || week < 1 || week > 53 {
		return utils.BadRequestResponse(c, "Invalid week")
	}

	start := isoWeekStart(year, week)
	lines, err := h.reportService.Weekly(c.Context(), start)
	if err != nil {
		return h.reportError(c, err)
	}

	return utils.SuccessResponse(c, "Weekly report generated", reportResponse{
		Period: "weekly",
		Start:  start.Format("2006-01-02"),
		End:    start.AddDate(0, 0, 7).Format("2006-01-02"),
		Lines:  lines,
	})
}

// Monthly returns totals for one calendar month
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	year, _ := c.ParamsInt("year", 0)
	month, _ := c.ParamsInt("month", 0)
	if year < 1 || month < 1 || month > 12 {
		return utils.BadRequestResponse(c, "Invalid month")
	}

	lines, err := h.reportService.Monthly(c.Context(), year, time.Month(month))
	if err != nil {
		return h.reportError(c, err)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return utils.SuccessResponse(c, "Monthly report generated", reportResponse{
		Period: "monthly",
		Start:  start.Format("2006-01-02"),
		End:    time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		Lines:  lines,
	})
}

func (h *ReportHandler) reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrEmployeeMissing) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Report references a missing employee", err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate report", err)
}

// isoWeekStart returns the Monday starting the given ISO week. January 4th is
// always inside week 1.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)

	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := jan4.AddDate(0, 0, 1-weekday)

	return monday.AddDate(0, 0, (week-1)*7)
}
