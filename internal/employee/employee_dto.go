package employee

type CreateEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Role          string `json:"role" binding:"omitempty,oneof=staff admin"`
}

type UpdateEmployeeRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Status        string `json:"status" binding:"omitempty,oneof=active inactive"`
	Role          string `json:"role" binding:"omitempty,oneof=staff admin"`
}

// PatchStatusRequest carries the soft-delete transition
// (PATCH with status "inactive") and reactivation.
type PatchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type EmployeeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Address       string `json:"address,omitempty"`
	Status        string `json:"status"`
	Role          string `json:"role"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}
