package timesheet

type ClockInRequest struct {
	EmployeeName string `json:"employeeName" binding:"required"`
	ClockIn      string `json:"clockIn"`
}

type ClockOutRequest struct {
	ClockOut string `json:"clockOut"`
}

type UpdateTimesheetRequest struct {
	ClockIn  *string `json:"clockIn"`
	ClockOut *string `json:"clockOut"`
}

// BulkEntry is one line of the summary sheet: a calendar date and a compact
// "Xh Ym" duration string.
type BulkEntry struct {
	Date     string `json:"date" binding:"required"`
	Duration string `json:"duration"`
}

type BulkTimesheetRequest struct {
	EmployeeName string      `json:"employeeName" binding:"required"`
	Entries      []BulkEntry `json:"entries" binding:"required"`
	TotalHours   string      `json:"totalHours"`
}

type BulkTimesheetResponse struct {
	Message    string      `json:"message"`
	SavedCount int         `json:"savedCount"`
	Errors     []BulkError `json:"errors,omitempty"`
}

type BulkError struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}

type ListQuery struct {
	EmployeeName string
	Status       string
	StartDate    string
	EndDate      string
}

type TimesheetResponse struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employeeName"`
	Date         string `json:"date"`
	ClockIn      string `json:"clockIn"`
	ClockOut     string `json:"clockOut,omitempty"`
	Duration     int    `json:"duration"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}
