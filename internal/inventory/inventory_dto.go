package inventory

import "github.com/creesler/laundry-pos-backend/internal/shared/numeric"

type CreateItemRequest struct {
	Name         string         `json:"name" binding:"required"`
	CurrentStock numeric.Amount `json:"currentStock"`
	MaxStock     numeric.Amount `json:"maxStock"`
	Unit         string         `json:"unit"`
}

type UpdateItemRequest struct {
	Name         *string         `json:"name"`
	CurrentStock *numeric.Amount `json:"currentStock"`
	MaxStock     *numeric.Amount `json:"maxStock"`
	Unit         *string         `json:"unit"`
}

type ItemResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CurrentStock float64 `json:"currentStock"`
	MaxStock     float64 `json:"maxStock"`
	Unit         string  `json:"unit"`
	LastUpdated  string  `json:"lastUpdated"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type LogQuery struct {
	StartDate string
	EndDate   string
}

type LogResponse struct {
	ID            string  `json:"id"`
	ItemName      string  `json:"itemName"`
	PreviousStock float64 `json:"previousStock"`
	NewStock      float64 `json:"newStock"`
	UpdateType    string  `json:"updateType"`
	Timestamp     string  `json:"timestamp"`
	UpdatedBy     string  `json:"updatedBy,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}
