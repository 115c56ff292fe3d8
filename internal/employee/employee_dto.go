package employee

type CreateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	HireDate string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	HireDate string `json:"hire_date" binding:"required"`
}

type EmployeeResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	HireDate string `json:"hire_date"`
}
