package dto

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeResponse is the outward shape of an enrolled identity. The raw
// embedding stays server-side.
type EmployeeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
