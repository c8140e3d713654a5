package contact

import "errors"

var (
	ErrSubmitInProgress = errors.New("contact: submission already in progress")
	ErrUnknownField     = errors.New("contact: unknown form field")
	ErrDeliveryFailed   = errors.New("contact: notification delivery failed")
	ErrStoreFailed      = errors.New("contact: failed to store submission")
	ErrNotFound         = errors.New("contact: submission not found")
	ErrAlreadyExists    = errors.New("contact: submission already exists")
	ErrNilDependency    = errors.New("contact: store and notifier are required")
)
