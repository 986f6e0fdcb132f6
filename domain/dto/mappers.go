package dto

import (
	"faceattend/domain/models"
	"faceattend/domain/services"
)

func UserToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func EmployeeToEmployeeResponse(employee *models.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        employee.ID,
		Name:      employee.Name,
		Role:      employee.Role,
		CreatedAt: employee.CreatedAt,
		UpdatedAt: employee.UpdatedAt,
	}
}

func EmployeesToEmployeeResponses(employees []models.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = EmployeeToEmployeeResponse(&employees[i])
	}
	return responses
}

func RecordToRecordResponse(record *models.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ID:             record.ID,
		EmployeeID:     record.EmployeeID,
		CheckInTime:    record.CheckInTime,
		CheckOutTime:   record.CheckOutTime,
		AttendanceDate: record.AttendanceDate.Format("2006-01-02"),
	}
}

func RecordsToRecordResponses(records []models.AttendanceRecord) []AttendanceRecordResponse {
	responses := make([]AttendanceRecordResponse, len(records))
	for i := range records {
		responses[i] = RecordToRecordResponse(&records[i])
	}
	return responses
}

func CheckInResultToResponse(result services.CheckInResult) CheckInResultResponse {
	response := CheckInResultResponse{
		EmployeeID: result.EmployeeID,
		Outcome:    string(result.Outcome),
	}
	if result.Record != nil {
		record := RecordToRecordResponse(result.Record)
		response.Record = &record
	}
	return response
}

func CheckInResultsToResponses(results []services.CheckInResult) []CheckInResultResponse {
	responses := make([]CheckInResultResponse, len(results))
	for i, result := range results {
		responses[i] = CheckInResultToResponse(result)
	}
	return responses
}
