package repositories

import "errors"

var (
	// ErrNotFound is returned when a record addressed by id (or another
	// unique key) does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateCheckIn is returned by AttendanceRepository.Create when a
	// record for the same (employee, attendance date) pair already exists.
	// The ledger recovers from it; it never reaches callers raw.
	ErrDuplicateCheckIn = errors.New("attendance record already exists for this employee and date")
)
