package http

import (
	"log/slog"

	"github.com/corehive/corehive-backend-go/internal/handler/http/middleware"
	"github.com/corehive/corehive-backend-go/internal/pkg/token"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	verifier *token.Verifier,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(verifier.JWTAuth()))
			r.Use(middleware.AuthRequired(verifier.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in/{employeeId}", attendanceHandler.CheckIn)
				r.Post("/check-out/{employeeId}", attendanceHandler.CheckOut)
				r.Put("/status/{employeeId}", attendanceHandler.SetStatus)
				r.Get("/today-all", attendanceHandler.TodayAll)
				r.Get("/summary", attendanceHandler.DailySummary)
				r.Get("/monthly/{employeeId}", attendanceHandler.MonthlySummary)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/run", payrollHandler.Run)
				r.Get("/payslips", payrollHandler.ListPayslips)
				r.Post("/{payslipId}/pay", payrollHandler.MarkPaid)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Get("/salary-breakdown", payrollHandler.GetSalaryBreakdown)
					r.Patch("/salary-breakdown", payrollHandler.UpdateSalaryBreakdown)
				})
			})
		})
	})

	return r
}
