package events

import "time"

const EmployeeLifecycleTopic = "laundry.employee.lifecycle.v1"

const (
	EmployeeCreated     = "employee_created"
	EmployeeDeactivated = "employee_deactivated"
	EmployeeDeleted     = "employee_deleted"
)

type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
