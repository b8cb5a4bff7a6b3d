package sale

import "github.com/creesler/laundry-pos-backend/internal/shared/numeric"

// Amount fields use numeric.Amount so the dashboard may send numbers,
// numeric strings or blanks; everything lands as a float >= 0.
type CreateSaleRequest struct {
	Date           string         `json:"date"`
	Coin           numeric.Amount `json:"coin"`
	Hopper         numeric.Amount `json:"hopper"`
	Soap           numeric.Amount `json:"soap"`
	Vending        numeric.Amount `json:"vending"`
	DropOffAmount1 numeric.Amount `json:"dropOffAmount1"`
	DropOffCode    string         `json:"dropOffCode"`
	DropOffAmount2 numeric.Amount `json:"dropOffAmount2"`
	RecordedBy     string         `json:"recordedBy"`
}

type UpdateSaleRequest struct {
	Date           *string         `json:"date"`
	Coin           *numeric.Amount `json:"coin"`
	Hopper         *numeric.Amount `json:"hopper"`
	Soap           *numeric.Amount `json:"soap"`
	Vending        *numeric.Amount `json:"vending"`
	DropOffAmount1 *numeric.Amount `json:"dropOffAmount1"`
	DropOffCode    *string         `json:"dropOffCode"`
	DropOffAmount2 *numeric.Amount `json:"dropOffAmount2"`
	RecordedBy     *string         `json:"recordedBy"`
}

// BulkEntry mirrors the sheet-style column names the front end exports.
type BulkEntry struct {
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

type BulkSalesRequest struct {
	Entries []BulkEntry `json:"entries" binding:"required"`
}

type BulkSalesResponse struct {
	Message        string `json:"message"`
	NInserted      int64  `json:"nInserted"`
	TotalAttempted int    `json:"totalAttempted"`
}

type SaleResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Coin           float64 `json:"coin"`
	Hopper         float64 `json:"hopper"`
	Soap           float64 `json:"soap"`
	Vending        float64 `json:"vending"`
	DropOffAmount1 float64 `json:"dropOffAmount1"`
	DropOffCode    string  `json:"dropOffCode,omitempty"`
	DropOffAmount2 float64 `json:"dropOffAmount2"`
	IsSaved        bool    `json:"isSaved"`
	RecordedBy     string  `json:"recordedBy,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

type SummaryResponse struct {
	CoinTotal           float64 `json:"coinTotal"`
	HopperTotal         float64 `json:"hopperTotal"`
	SoapTotal           float64 `json:"soapTotal"`
	VendingTotal        float64 `json:"vendingTotal"`
	DropOffAmount1Total float64 `json:"dropOffAmount1Total"`
	DropOffAmount2Total float64 `json:"dropOffAmount2Total"`
	Total               float64 `json:"total"`
}
