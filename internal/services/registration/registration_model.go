package registration

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatus reports whether s is a recognized registration status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Registration is one person's sign-up for a workshop. UserID is nil for
// anonymous interest-form submissions.
type Registration struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UserID           *string   `json:"userId,omitempty" db:"user_id"`
	WorkshopID       uuid.UUID `json:"workshopId" db:"workshop_id"`
	Name             string    `json:"name" db:"name"`
	Email            string    `json:"email" db:"email"`
	Phone            string    `json:"phone" db:"phone"`
	Age              string    `json:"age" db:"age"`
	WorkshopInterest string    `json:"workshopInterest" db:"workshop_interest"`
	Message          *string   `json:"message,omitempty" db:"message"`
	AgreeToTerms     bool      `json:"agreeToTerms" db:"agree_to_terms"`
	Status           Status    `json:"registrationStatus" db:"status"`
	CreatedAt        time.Time `json:"registrationDate" db:"created_at"`
}

// CreateRegistrationRequest captures payload for registering for a workshop
type CreateRegistrationRequest struct {
	WorkshopID       uuid.UUID `json:"workshopId" validate:"required"`
	Name             string    `json:"name" validate:"required,min=1,max=255"`
	Email            string    `json:"email" validate:"required,email"`
	Phone            string    `json:"phone"`
	Age              string    `json:"age"`
	WorkshopInterest string    `json:"workshopInterest"`
	Message          *string   `json:"message,omitempty"`
	AgreeToTerms     bool      `json:"agreeToTerms"`
}

// ListFilter narrows List results. Nil fields match everything.
type ListFilter struct {
	WorkshopID *uuid.UUID
	Status     *Status
}

// InterestCount is one row of the interest breakdown aggregation
type InterestCount struct {
	Interest string `json:"interest" db:"workshop_interest"`
	Count    int    `json:"count" db:"count"`
}

// DashboardStats summarizes registration activity for the admin dashboard
type DashboardStats struct {
	TotalRegistrations      int             `json:"totalRegistrations"`
	RecentRegistrations     int             `json:"recentRegistrations"`
	InterestBreakdown       []InterestCount `json:"workshopInterestBreakdown"`
	MostPopularInterest     string          `json:"mostPopularInterest"`
	PopularInterestCount    int             `json:"popularInterestRegistrations"`
	RecentRegistrationsList []*Registration `json:"recentRegistrationsList"`
}
