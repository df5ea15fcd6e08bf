package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrUnknownSalaryType = errors.New("unknown salary type")
)
