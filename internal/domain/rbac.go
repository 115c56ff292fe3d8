package domain

// EnforceRequest is one access-control question: may this employee
// perform the action on the resource.
type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}
