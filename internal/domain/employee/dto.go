package employee

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        *string `json:"email,omitempty"`
	SalaryType   string  `json:"salary_type"`
	IsActive     bool    `json:"is_active"`
	HireDate     string  `json:"hire_date"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		SalaryType:   string(e.SalaryType),
		IsActive:     e.IsActive,
		HireDate:     e.HireDate.Format("2006-01-02"),
	}
}
