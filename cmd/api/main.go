package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corehive/corehive-backend-go/internal/config"
	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/domain/payroll"
	appHTTP "github.com/corehive/corehive-backend-go/internal/handler/http"
	"github.com/corehive/corehive-backend-go/internal/pkg/cron"
	"github.com/corehive/corehive-backend-go/internal/pkg/database"
	"github.com/corehive/corehive-backend-go/internal/pkg/token"
	"github.com/corehive/corehive-backend-go/internal/repository/postgresql"
	attendanceService "github.com/corehive/corehive-backend-go/internal/service/attendance"
	payrollService "github.com/corehive/corehive-backend-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "corehive-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	location, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		logger.Error("invalid COMPANY_TIMEZONE", "timezone", cfg.Attendance.Timezone, "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	structureRepo := postgresql.NewSalaryStructureRepository(db)
	runRepo := postgresql.NewPayrollRunRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)

	attendancePolicy := attendance.Policy{
		ShiftStartHour:   cfg.Attendance.ShiftStartHour,
		ShiftStartMinute: cfg.Attendance.ShiftStartMinute,
		GracePeriod:      cfg.Attendance.GracePeriod,
	}
	payrollPolicy := payroll.Policy{
		LatePenaltyPerMinute: cfg.Payroll.LatePenaltyPerMinute,
		HalfDayWeight:        cfg.Payroll.HalfDayWeight,
		Workers:              cfg.Payroll.Workers,
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		employeeRepo,
		attendancePolicy,
		cfg.Payroll.HalfDayWeight,
		location,
	)
	payrollSvc := payrollService.NewPayrollService(
		runRepo,
		payslipRepo,
		structureRepo,
		employeeRepo,
		attendanceSvc,
		payrollPolicy,
		logger,
	)

	verifier := token.NewVerifier(cfg.JWT.Secret)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)

	router := appHTTP.NewRouter(
		logger,
		verifier,
		attendanceHandler,
		payrollHandler,
		employeeHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Attendance.AutoMarkAbsent {
		attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, location)
		attendanceJobs.RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
