package contact

import (
	"time"

	"github.com/google/uuid"
)

// Status is the delivery state of a stored submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// Meta describes the request a submission arrived with.
type Meta struct {
	Locale    string
	IP        string
	RequestID string
	UserAgent string
}

// Record is a stored submission.
type Record struct {
	ID uuid.UUID
	Submission
	Locale    string
	IP        string
	RequestID string
	UserAgent string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
