package notification

import (
	"time"
)

// Audience is who a notification is addressed to.
type Audience string

const (
	AudienceEmployee Audience = "pegawai"
	AudienceAdmin    Audience = "admin"
)

func (a Audience) Valid() bool {
	return a == AudienceEmployee || a == AudienceAdmin
}

const (
	CategoryLeave    = "cuti"
	CategoryTraining = "pelatihan"
)

// Notification represents a notification entity
type Notification struct {
	ID         string
	EmployeeID string
	Message    string
	Audience   Audience
	Category   string
	IsRead     bool
	CreatedAt  time.Time
}
