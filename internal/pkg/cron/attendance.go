package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
)

// AttendanceJobs owns the background maintenance of attendance records.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	location      *time.Location
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		location:      location,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills ABSENT records for active employees who have
// no record for the previous day. Runs hourly but only acts in the first hour
// after midnight, so each day is swept once.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := time.Now().In(j.location)
	if now.Hour() != 0 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)

	marked, err := j.attendanceSvc.MarkAbsentForDate(ctx, yesterday)
	if err != nil {
		return err
	}

	if marked > 0 {
		slog.Info("Cron: marked absent employees",
			"date", yesterday.Format("2006-01-02"),
			"count", marked)
	}

	return nil
}
