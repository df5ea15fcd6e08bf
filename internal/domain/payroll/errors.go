package payroll

import "errors"

var (
	ErrMissingSalaryStructure = errors.New("no salary structure configured for employee")
	ErrDuplicateRun           = errors.New("a payroll run already exists for this period")
	ErrRunInProgress          = errors.New("a payroll run is still in progress for this period")
	ErrRunNotFound            = errors.New("payroll run not found")
	ErrPayslipNotFound        = errors.New("payslip not found")
	ErrAlreadyPaid            = errors.New("payslip is already paid")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrUnknownPaymentStatus   = errors.New("unknown payment status")
)
