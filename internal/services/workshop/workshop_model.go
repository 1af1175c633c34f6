package workshop

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a recognized workshop status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// Workshop represents a scheduled workshop open for registration
type Workshop struct {
	ID                   uuid.UUID      `json:"id" db:"id"`
	Title                string         `json:"title" db:"title"`
	Description          string         `json:"description" db:"description"`
	Date                 string         `json:"date" db:"date"`
	Time                 string         `json:"time" db:"time"`
	Location             string         `json:"location" db:"location"`
	Audience             string         `json:"audience" db:"audience"`
	Duration             string         `json:"duration" db:"duration"`
	Fee                  *float64       `json:"fee,omitempty" db:"fee"`
	RegistrationDeadline string         `json:"registrationDeadline" db:"registration_deadline"`
	LearningOutcomes     pq.StringArray `json:"learningOutcomes" db:"learning_outcomes"`
	Status               Status         `json:"status" db:"status"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at" db:"updated_at"`
}

// CreateWorkshopRequest captures payload for creating a workshop
type CreateWorkshopRequest struct {
	Title                string   `json:"title" validate:"required,min=1,max=255"`
	Description          string   `json:"description"`
	Date                 string   `json:"date" validate:"required"`
	Time                 string   `json:"time"`
	Location             string   `json:"location"`
	Audience             string   `json:"audience"`
	Duration             string   `json:"duration"`
	Fee                  *float64 `json:"fee,omitempty"`
	RegistrationDeadline string   `json:"registrationDeadline"`
	LearningOutcomes     []string `json:"learningOutcomes"`
}

// UpdateWorkshopRequest captures payload for updating a workshop
type UpdateWorkshopRequest struct {
	Title                *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description          *string   `json:"description,omitempty"`
	Date                 *string   `json:"date,omitempty"`
	Time                 *string   `json:"time,omitempty"`
	Location             *string   `json:"location,omitempty"`
	Audience             *string   `json:"audience,omitempty"`
	Duration             *string   `json:"duration,omitempty"`
	Fee                  *float64  `json:"fee,omitempty"`
	RegistrationDeadline *string   `json:"registrationDeadline,omitempty"`
	LearningOutcomes     *[]string `json:"learningOutcomes,omitempty"`
}
