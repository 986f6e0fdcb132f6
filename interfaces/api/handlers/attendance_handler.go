package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"faceattend/domain/dto"
	"faceattend/domain/models"
	"faceattend/domain/services"
	"faceattend/pkg/utils"
)

type AttendanceHandler struct {
	attendanceService  services.AttendanceService
	recognitionService services.RecognitionService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, recognitionService services.RecognitionService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService:  attendanceService,
		recognitionService: recognitionService,
	}
}

type updateRecordRequest struct {
	EmployeeID   uuid.UUID  `json:"employee_id" validate:"required"`
	CheckInTime  time.Time  `json:"check_in_time" validate:"required"`
	CheckOutTime *time.Time `json:"check_out_time"`
}

// CheckIn takes a photo, recognizes everyone in it and records today's
// attendance for the recognized set. An empty result is a normal answer, not
// an error.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	if h.recognitionService == nil {
		return utils.ServiceUnavailableResponse(c, "Face processing is disabled")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.BadRequestResponse(c, "Image file is required")
	}

	image, mimeType, err := readImageFile(fileHeader)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid image upload", err)
	}

	// Optional per-request threshold override
	threshold := 0.0
	if raw := c.FormValue("threshold"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil || threshold <= 0 {
			return utils.BadRequestResponse(c, "Invalid threshold value")
		}
	}

	results, err := h.recognitionService.CheckInByImage(c.Context(), image, mimeType, threshold)
	if err != nil {
		if errors.Is(err, services.ErrNoFaceDetected) {
			return utils.BadRequestResponse(c, "No face detected in the uploaded image")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process check-in", err)
	}

	message := "Check-in processed"
	if len(results) == 0 {
		message = "No employees recognized"
	}

	return utils.SuccessResponse(c, message, dto.CheckInResultsToResponses(results))
}

// CheckOut stamps the check-out time on a record; repeating the call is a
// no-op
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid record id")
	}

	record, err := h.attendanceService.CheckOut(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Attendance record not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check out", err)
	}

	return utils.SuccessResponse(c, "Checked out successfully", dto.RecordToRecordResponse(record))
}

func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	records, total, err := h.attendanceService.ListRecords(c.Context(), offset, limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list attendance records", err)
	}

	return utils.SuccessResponse(c, "Attendance records retrieved successfully", dto.AttendanceListResponse{
		Records: dto.RecordsToRecordResponses(records),
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	})
}

func (h *AttendanceHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid record id")
	}

	record, err := h.attendanceService.GetRecord(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Attendance record not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get attendance record", err)
	}

	return utils.SuccessResponse(c, "Attendance record retrieved successfully", dto.RecordToRecordResponse(record))
}

// Update is the administrative correction path; it rewrites the record as
// given
func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid record id")
	}

	var req updateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	record, err := h.attendanceService.GetRecord(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Attendance record not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get attendance record", err)
	}

	record.EmployeeID = req.EmployeeID
	record.CheckInTime = req.CheckInTime
	record.CheckOutTime = req.CheckOutTime
	record.AttendanceDate = models.DayOf(req.CheckInTime)

	updated, err := h.attendanceService.UpdateRecord(c.Context(), id, record)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update attendance record", err)
	}

	return utils.SuccessResponse(c, "Attendance record updated successfully", dto.RecordToRecordResponse(updated))
}

func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid record id")
	}

	if err := h.attendanceService.DeleteRecord(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Attendance record not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete attendance record", err)
	}

	return utils.SuccessResponse(c, "Attendance record deleted successfully", nil)
}
