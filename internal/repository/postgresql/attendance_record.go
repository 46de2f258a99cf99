package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/absensia/absensi-backend-go/internal/domain/record"
	"github.com/absensia/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type AttendanceRecordRepository struct {
	db *database.DB
}

func NewAttendanceRecordRepository(db *database.DB) *AttendanceRecordRepository {
	return &AttendanceRecordRepository{db: db}
}

// DescribeTarget probes the live schema once so the projection can be
// deployed against older attendance tables that lack the optional columns.
func (r *AttendanceRecordRepository) DescribeTarget(ctx context.Context) (record.Capabilities, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT
			EXISTS (SELECT 1 FROM information_schema.columns
				WHERE table_name = 'attendance_records' AND column_name = 'leave_reason'),
			EXISTS (SELECT 1 FROM information_schema.columns
				WHERE table_name = 'attendance_records' AND column_name = 'notes'),
			EXISTS (SELECT 1 FROM information_schema.columns
				WHERE table_name = 'attendance_records' AND column_name = 'status_id'),
			EXISTS (SELECT 1 FROM information_schema.columns
				WHERE table_name = 'attendance_records' AND column_name = 'reason_id'),
			to_regclass('attendance_statuses') IS NOT NULL,
			to_regclass('attendance_reasons') IS NOT NULL`

	var caps record.Capabilities
	err := querier.QueryRow(ctx, query).Scan(
		&caps.HasLeaveReason,
		&caps.HasNotes,
		&caps.HasStatusID,
		&caps.HasReasonID,
		&caps.HasStatusLookup,
		&caps.HasReasonLookup,
	)
	if err != nil {
		return record.Capabilities{}, fmt.Errorf("failed to describe attendance target: %w", err)
	}

	return caps, nil
}

// Upsert builds the column list from caps so absent columns are simply left
// out of the statement. The lookup ids are resolved in-statement; an unknown
// code resolves to NULL rather than failing the write.
func (r *AttendanceRecordRepository) Upsert(ctx context.Context, rec record.Record, caps record.Capabilities) error {
	querier := GetQuerier(ctx, r.db)

	columns := []string{"employee_id", "attendance_date", "status", "check_in_time", "check_out_time", "late_minutes"}
	values := []string{"$1", "$2::date", "$3", "$4::time", "$5::time", "$6"}
	args := []any{rec.EmployeeID, rec.AttendanceDate, rec.Status, rec.CheckInTime, rec.CheckOutTime, rec.LateMinutes}

	if caps.HasLeaveReason {
		args = append(args, rec.LeaveReason)
		columns = append(columns, "leave_reason")
		values = append(values, fmt.Sprintf("$%d", len(args)))
	}
	if caps.HasNotes {
		args = append(args, rec.Notes)
		columns = append(columns, "notes")
		values = append(values, fmt.Sprintf("$%d", len(args)))
	}
	if caps.HasStatusID && caps.HasStatusLookup {
		args = append(args, rec.Status)
		columns = append(columns, "status_id")
		values = append(values, fmt.Sprintf("(SELECT id FROM attendance_statuses WHERE code = $%d)", len(args)))
	}
	if caps.HasReasonID && caps.HasReasonLookup {
		args = append(args, rec.LeaveReason)
		columns = append(columns, "reason_id")
		values = append(values, fmt.Sprintf("(SELECT id FROM attendance_reasons WHERE code = $%d)", len(args)))
	}

	updates := make([]string, 0, len(columns))
	for _, column := range columns[2:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	updates = append(updates, "updated_at = NOW()")

	query := fmt.Sprintf(`
		INSERT INTO attendance_records (%s)
		VALUES (%s)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE SET %s`,
		strings.Join(columns, ", "),
		strings.Join(values, ", "),
		strings.Join(updates, ", "),
	)

	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return nil
}

// recordRow mirrors the table through to_jsonb, so reading tolerates the
// same schema variance the writer does.
type recordRow struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date"`
	Status         string  `json:"status"`
	CheckInTime    *string `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time"`
	LateMinutes    int     `json:"late_minutes"`
	LeaveReason    *string `json:"leave_reason"`
	Notes          *string `json:"notes"`
}

func (r *AttendanceRecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*record.Record, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT to_jsonb(r)
		FROM attendance_records r
		WHERE employee_id = $1 AND attendance_date = $2::date`

	var payload []byte
	err := querier.QueryRow(ctx, query, employeeID, date).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	var row recordRow
	if err := json.Unmarshal(payload, &row); err != nil {
		return nil, fmt.Errorf("failed to decode attendance record: %w", err)
	}

	return &record.Record{
		ID:             row.ID,
		EmployeeID:     row.EmployeeID,
		AttendanceDate: row.AttendanceDate,
		Status:         row.Status,
		CheckInTime:    row.CheckInTime,
		CheckOutTime:   row.CheckOutTime,
		LateMinutes:    row.LateMinutes,
		LeaveReason:    row.LeaveReason,
		Notes:          row.Notes,
	}, nil
}
