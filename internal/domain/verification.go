package domain

import "time"

// VerificationCode is the outstanding one-time code for an email address.
// At most one exists per email; issuing a new code replaces the old record.
type VerificationCode struct {
	Email      string    `json:"email"`
	Code       string    `json:"-"` // write-only: never serialized into a response
	TrackingID string    `json:"tracking_id"`
	Opened     bool      `json:"opened"`
	IssuedAt   time.Time `json:"issued_at"`
}
