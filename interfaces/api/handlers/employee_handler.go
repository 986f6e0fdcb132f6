package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"faceattend/domain/dto"
	"faceattend/domain/services"
	"faceattend/pkg/utils"
)

// maxImageSize caps uploaded enrollment and check-in photos.
const maxImageSize = 10 << 20 // 10 MB

type EmployeeHandler struct {
	employeeService services.EmployeeService
}

func NewEmployeeHandler(employeeService services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// readImageFile loads an uploaded image part, enforcing size and content type.
func readImageFile(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	if fileHeader.Size > maxImageSize {
		return nil, "", errors.New("image too large")
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		return nil, "", errors.New("unsupported image type, expected image/jpeg or image/png")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, mimeType, nil
}

// Enroll registers a new employee from a multipart form with name, role and
// an image file
func (h *EmployeeHandler) Enroll(c *fiber.Ctx) error {
	if h.employeeService == nil {
		return utils.ServiceUnavailableResponse(c, "Face processing is disabled")
	}

	name := c.FormValue("name")
	role := c.FormValue("role")
	if name == "" || role == "" {
		return utils.BadRequestResponse(c, "Fields 'name' and 'role' are required")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.BadRequestResponse(c, "Image file is required")
	}

	image, mimeType, err := readImageFile(fileHeader)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid image upload", err)
	}

	employee, err := h.employeeService.Enroll(c.Context(), name, role, image, mimeType)
	if err != nil {
		if errors.Is(err, services.ErrNoFaceDetected) {
			return utils.BadRequestResponse(c, "No face detected in the uploaded image")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll employee", err)
	}

	return utils.CreatedResponse(c, "Employee enrolled successfully", dto.EmployeeToEmployeeResponse(employee))
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	if h.employeeService == nil {
		return utils.ServiceUnavailableResponse(c, "Face processing is disabled")
	}

	employees, err := h.employeeService.List(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list employees", err)
	}

	return utils.SuccessResponse(c, "Employees retrieved successfully", dto.EmployeesToEmployeeResponses(employees))
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	if h.employeeService == nil {
		return utils.ServiceUnavailableResponse(c, "Face processing is disabled")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid employee id")
	}

	employee, err := h.employeeService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return utils.NotFoundResponse(c, "Employee not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get employee", err)
	}

	return utils.SuccessResponse(c, "Employee retrieved successfully", dto.EmployeeToEmployeeResponse(employee))
}

// Update changes name/role, and re-enrolls the face when a new image part is
// present
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	if h.employeeService == nil {
		return utils.ServiceUnavailableResponse(c, "Face processing is disabled")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid employee id")
	}

	name := c.FormValue("name")
	role := c.FormValue("role")

	var image []byte
	var mimeType string
	if fileHeader, err := c.FormFile("image"); err == nil {
		image, mimeType, err = readImageFile(fileHeader)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid image upload", err)
		}
	}

	employee, err := h.employeeService.Update(c.Context(), id, name, role, image, mimeType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return utils.NotFoundResponse(c, "Employee not found")
		case errors.Is(err, services.ErrNoFaceDetected):
			return utils.BadRequestResponse(c, "No face detected in the uploaded image")
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update employee", err)
		}
	}

	return utils.SuccessResponse(c, "Employee updated successfully", dto.EmployeeToEmployeeResponse(employee))
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if h.employeeService == nil {
		return utils.ServiceUnavailableResponse(c, "Face processing is disabled")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid employee id")
	}

	if err := h.employeeService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return utils.NotFoundResponse(c, "Employee not found")
		case errors.Is(err, services.ErrEmployeeHasRecords):
			return utils.ConflictResponse(c, "Employee has attendance records and cannot be deleted")
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete employee", err)
		}
	}

	return utils.SuccessResponse(c, "Employee deleted successfully", nil)
}
