package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corehive/corehive-backend-go/internal/domain/attendance"
	"github.com/corehive/corehive-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository. A concurrent first
// check-in for the same (employee, date) loses the insert on the unique
// constraint and gets the surviving row back instead.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, check_in_time, check_out_time, status, late_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.CheckInTime,
		record.CheckOutTime,
		record.Status,
		record.LateMinutes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, getErr := a.GetByEmployeeAndDate(ctx, record.EmployeeID, record.Date)
			if getErr != nil {
				return attendance.AttendanceRecord{}, getErr
			}
			if existing == nil {
				return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
			}
			return *existing, nil
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	return a.getByEmployeeAndDate(ctx, employeeID, date, false)
}

// GetByEmployeeAndDateForUpdate implements attendance.AttendanceRepository.
// The row stays locked until the surrounding transaction ends.
func (a *attendanceRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	return a.getByEmployeeAndDate(ctx, employeeID, date, true)
}

func (a *attendanceRepository) getByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, forUpdate bool) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, check_in_time, check_out_time, status,
			   late_minutes, created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Status, &rec.LateMinutes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_in_time = $1, check_out_time = $2, status = $3,
			late_minutes = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		record.CheckInTime,
		record.CheckOutTime,
		record.Status,
		record.LateMinutes,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ar.id, ar.employee_id, ar.date, ar.check_in_time, ar.check_out_time,
			   ar.status, ar.late_minutes, ar.created_at, ar.updated_at,
			   e.full_name
		FROM attendance_records ar
		JOIN employees e ON e.id = ar.employee_id
		WHERE ar.date = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.Status, &rec.LateMinutes, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}

// ListByEmployeeAndPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, check_in_time, check_out_time, status,
			   late_minutes, created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1
		  AND EXTRACT(YEAR FROM date) = $2
		  AND EXTRACT(MONTH FROM date) = $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.Status, &rec.LateMinutes, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}

// BulkCreate implements attendance.AttendanceRepository. Existing
// (employee, date) rows are left untouched.
func (a *attendanceRepository) BulkCreate(ctx context.Context, records []attendance.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, status, late_minutes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query, rec.EmployeeID, rec.Date, rec.Status, rec.LateMinutes)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to bulk create attendance records: %w", err)
		}
	}

	return nil
}
