package salary

type AssignSalaryRequest struct {
	Amount int `json:"amount" binding:"gte=0"`
}

type AmendSalaryRequest struct {
	Amount        int    `json:"amount" binding:"gte=0"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	EffectiveTo   string `json:"effective_to"`
}

type SalaryResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Amount        int     `json:"amount"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
	Active        bool    `json:"active"`
}

// EmployeeSalaryView is the caller-facing projection: the owning
// employee's current name and email resolved at request time, never
// cached on the record.
type EmployeeSalaryView struct {
	EmployeeName  string  `json:"employee_name"`
	Email         string  `json:"email"`
	Amount        int     `json:"amount"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}
