package services

import (
	"time"

	"github.com/google/uuid"
)

// CheckInEvent is published to the live feed for every successful check-in.
type CheckInEvent struct {
	EmployeeID  uuid.UUID `json:"employee_id"`
	Name        string    `json:"name"`
	CheckInTime time.Time `json:"check_in_time"`
}

// CheckInNotifier receives ledger events. Implementations must not block;
// a failed or absent notifier never fails the ledger write.
type CheckInNotifier interface {
	NotifyCheckIn(event CheckInEvent)
}
