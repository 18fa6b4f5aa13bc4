// internal/models/service_request.go
package models

import "time"

// RequestStatus defines the possible statuses for a service request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityMedium RequestPriority = "medium"
	PriorityHigh   RequestPriority = "high"
)

// ServiceRequest represents a customer request in the system.
type ServiceRequest struct {
	ID            int             `json:"id"`
	Reference     string          `json:"reference"`
	UserID        int             `json:"user_id"`
	ServiceType   string          `json:"service_type"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Status        RequestStatus   `json:"status"`
	Priority      RequestPriority `json:"priority"`
	AssignedPMID  *int            `json:"assigned_pm_id,omitempty"`
	AdminResponse *string         `json:"admin_response,omitempty"`
	ContactName   string          `json:"contact_name"`
	ContactEmail  string          `json:"contact_email"`
	ContactPhone  string          `json:"contact_phone"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// RequestFilter defines the available parameters for the admin list.
type RequestFilter struct {
	Status       *RequestStatus
	Priority     *RequestPriority
	AssignedPMID *int
}
