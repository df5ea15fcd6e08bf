package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/employee"
	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	"github.com/corehive/corehive-backend-go/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== SERVICE STUBS =====

type stubAttendanceService struct{}

func (stubAttendanceService) CheckIn(context.Context, string) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{Status: string(attendance.StatusPresent)}, nil
}

func (stubAttendanceService) CheckOut(context.Context, string) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, nil
}

func (stubAttendanceService) SetStatus(context.Context, attendance.SetStatusRequest) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, nil
}

func (stubAttendanceService) TodayRoster(context.Context) ([]attendance.RosterEntry, error) {
	return nil, nil
}

func (stubAttendanceService) DailySummary(context.Context, time.Time) (attendance.DailySummaryResponse, error) {
	return attendance.DailySummaryResponse{}, nil
}

func (stubAttendanceService) MonthlySummary(context.Context, string, int, int) (attendance.MonthlySummaryResponse, error) {
	return attendance.MonthlySummaryResponse{}, nil
}

func (stubAttendanceService) MonthlyTotals(context.Context, string, int, int) (attendance.MonthlyTotals, error) {
	return attendance.MonthlyTotals{}, nil
}

func (stubAttendanceService) MarkAbsentForDate(context.Context, time.Time) (int, error) {
	return 0, nil
}

type stubPayrollService struct{}

func (stubPayrollService) RunPayroll(context.Context, payroll.RunPayrollRequest) (payroll.RunReportResponse, error) {
	return payroll.RunReportResponse{}, nil
}

func (stubPayrollService) ListPayslips(context.Context, int, int) ([]payroll.PayslipResponse, error) {
	return nil, nil
}

func (stubPayrollService) MarkPaid(context.Context, string) (payroll.PayslipResponse, error) {
	return payroll.PayslipResponse{}, nil
}

func (stubPayrollService) GetSalaryStructure(context.Context, string) (payroll.SalaryStructureResponse, error) {
	return payroll.SalaryStructureResponse{}, nil
}

func (stubPayrollService) UpdateSalaryStructure(context.Context, payroll.UpdateSalaryStructureRequest) (payroll.SalaryStructureResponse, error) {
	return payroll.SalaryStructureResponse{}, nil
}

type stubEmployeeRepo struct{}

func (stubEmployeeRepo) GetByID(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (stubEmployeeRepo) GetActive(context.Context) ([]employee.Employee, error) { return nil, nil }

func (stubEmployeeRepo) List(context.Context) ([]employee.Employee, error) { return nil, nil }

// ===== HELPERS =====

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	verifier := token.NewVerifier("test-secret")
	_, bearer, err := verifier.JWTAuth().Encode(map[string]interface{}{"type": "access"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(
		logger,
		verifier,
		NewAttendanceHandler(stubAttendanceService{}),
		NewPayrollHandler(stubPayrollService{}),
		NewEmployeeHandler(stubEmployeeRepo{}),
	)
	return router, bearer
}

func doRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ===== MIDDLEWARE STACK =====

func TestRouter_RequiresBearerToken(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/today-all", nil)
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AcceptsJSONBody(t *testing.T) {
	t.Parallel()
	router, bearer := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in/e1", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RejectsNonJSONBody(t *testing.T) {
	t.Parallel()
	router, bearer := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/run", strings.NewReader("year=2025"))
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// ===== MONTHLY SUMMARY PARAMS =====

func TestRouter_MonthlySummary_PeriodValidation(t *testing.T) {
	t.Parallel()
	router, bearer := newTestRouter(t)

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"valid period", "year=2025&month=3", http.StatusOK},
		{"month out of range", "year=2025&month=13", http.StatusBadRequest},
		{"year zero", "year=0&month=5", http.StatusBadRequest},
		{"negative year", "year=-3&month=5", http.StatusBadRequest},
		{"missing params", "", http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/monthly/e1?"+c.query, nil)
			req.Header.Set("Authorization", "Bearer "+bearer)
			rec := doRequest(router, req)

			assert.Equal(t, c.want, rec.Code)
		})
	}
}
