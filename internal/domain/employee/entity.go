package employee

import (
	"time"
)

// Employee is a read-only reference owned by the external directory service.
// The attendance and payroll core never mutates it.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        *string
	SalaryType   SalaryType
	IsActive     bool
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "MONTHLY"
	SalaryTypeDaily   SalaryType = "DAILY"
)

// ParseSalaryType rejects unrecognized salary types instead of defaulting.
func ParseSalaryType(s string) (SalaryType, error) {
	switch SalaryType(s) {
	case SalaryTypeMonthly, SalaryTypeDaily:
		return SalaryType(s), nil
	}
	return "", ErrUnknownSalaryType
}
