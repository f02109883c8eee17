package models

import (
	"time"
)

// CheckInEvent is an append-only record of a guest being admitted on an event day.
type CheckInEvent struct {
	Day         string    `json:"day" db:"day"`
	Timestamp   time.Time `json:"timestamp" db:"checked_in_at"`
	ScannerName string    `json:"scannerName,omitempty" db:"scanner_name"`
}

// CheckInRequest accepts either a bare token or the scanned pass URL in Token.
type CheckInRequest struct {
	Token       string `json:"token" binding:"required"`
	Day         string `json:"day" binding:"required"`
	ScannerName string `json:"scannerName"`
}

type CheckInResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	Guest            *Guest `json:"guest,omitempty"`
	AlreadyCheckedIn bool   `json:"alreadyCheckedIn"`
}
