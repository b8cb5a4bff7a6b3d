package sync

import "github.com/creesler/laundry-pos-backend/internal/shared/numeric"

// SyncRequest is the offline dashboard's reconciliation payload. Every
// category is optional; absent categories are skipped.
type SyncRequest struct {
	Sales         []SaleEntry      `json:"sales"`
	Timesheet     []TimesheetEntry `json:"timesheet"`
	Inventory     []InventoryEntry `json:"inventory"`
	InventoryLogs []LogEntry       `json:"inventoryLogs"`
}

type SaleEntry struct {
	Date           string         `json:"Date"`
	Coin           numeric.Amount `json:"Coin"`
	Hopper         numeric.Amount `json:"Hopper"`
	Soap           numeric.Amount `json:"Soap"`
	Vending        numeric.Amount `json:"Vending"`
	DropOffAmount1 numeric.Amount `json:"Drop Off Amount 1"`
	DropOffCode    string         `json:"Drop Off Code"`
	DropOffAmount2 numeric.Amount `json:"Drop Off Amount 2"`
	IsSaved        any            `json:"isSaved"`
}

type TimesheetEntry struct {
	EmployeeName string `json:"employeeName"`
	Date         string `json:"date"`
	ClockIn      string `json:"clockIn"`
	ClockOut     string `json:"clockOut"`
}

type InventoryEntry struct {
	Name         string         `json:"name"`
	CurrentStock numeric.Amount `json:"currentStock"`
	MaxStock     numeric.Amount `json:"maxStock"`
	Unit         string         `json:"unit"`
	IsDeleted    bool           `json:"isDeleted"`
}

type LogEntry struct {
	ItemName      string         `json:"itemName"`
	PreviousStock numeric.Amount `json:"previousStock"`
	NewStock      numeric.Amount `json:"newStock"`
	UpdateType    string         `json:"updateType"`
	Timestamp     string         `json:"timestamp"`
	UpdatedBy     string         `json:"updatedBy"`
	Notes         string         `json:"notes"`
}

type SyncError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// InventoryResult echoes each processed inventory entry back to the caller,
// tagging the ones that were removed.
type InventoryResult struct {
	Name    string `json:"name"`
	Deleted bool   `json:"deleted,omitempty"`
}

type SyncResponse struct {
	Message              string            `json:"message"`
	SavedSalesCount      int               `json:"savedSalesCount"`
	SavedTimesheetsCount int               `json:"savedTimesheetsCount"`
	SavedInventoryCount  int               `json:"savedInventoryCount"`
	SavedLogsCount       int               `json:"savedLogsCount"`
	Inventory            []InventoryResult `json:"inventory,omitempty"`
	Errors               []SyncError       `json:"errors,omitempty"`
}
