package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is the length of a face signature vector. The extraction
// service produces 128-dimension encodings; every enrolled and probe vector
// must have exactly this length.
const EmbeddingDim = 128

// Employee is an enrolled identity: a person plus the face signature their
// check-ins are matched against. The embedding is replaced only by explicit
// re-enrollment.
type Employee struct {
	ID   uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name string    `gorm:"not null;index:idx_employees_name_role"`
	Role string    `gorm:"not null;index:idx_employees_name_role"`

	// Face embedding vector (128 dimensions)
	Embedding pgvector.Vector `gorm:"type:vector(128);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Attendances []AttendanceRecord `gorm:"foreignKey:EmployeeID"`
}

func (Employee) TableName() string {
	return "employees"
}
