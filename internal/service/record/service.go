package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/absensia/absensi-backend-go/internal/domain/punch"
	"github.com/absensia/absensi-backend-go/internal/domain/record"
	"github.com/absensia/absensi-backend-go/internal/domain/schedule"
	"github.com/absensia/absensi-backend-go/internal/pkg/metrics"
)

type SynchronizerImpl struct {
	record.Repository
	window  schedule.Window
	caps    record.Capabilities
	metrics metrics.Recorder
}

// NewSynchronizer wires the projection writer. caps comes from
// Repository.DescribeTarget at startup; the schema is not re-probed per
// write.
func NewSynchronizer(recordRepo record.Repository, window schedule.Window, caps record.Capabilities, collector metrics.Recorder) record.Synchronizer {
	return &SynchronizerImpl{
		Repository: recordRepo,
		window:     window,
		caps:       caps,
		metrics:    collector,
	}
}

// Sync implements record.Synchronizer.
func (s *SynchronizerImpl) Sync(ctx context.Context, p punch.Punch, employeeID string) error {
	if employeeID == "" {
		return nil
	}

	status, leaveReason, notes := s.deriveStatus(p)

	rec := record.Record{
		EmployeeID:     employeeID,
		AttendanceDate: p.Day,
		Status:         status,
		CheckInTime:    p.CheckInTime,
		CheckOutTime:   p.CheckOutTime,
		LeaveReason:    leaveReason,
		Notes:          notes,
	}

	// A reason override blanks the projected times even if the source row
	// still carries them.
	if strings.TrimSpace(p.Meta.ReasonName) != "" {
		rec.CheckInTime = nil
		rec.CheckOutTime = nil
	}

	if status == record.StatusLate && p.CheckInTime != nil {
		rec.LateMinutes = schedule.LateMinutes(*p.CheckInTime, s.window)
	}

	if err := s.Repository.Upsert(ctx, rec, s.caps); err != nil {
		s.metrics.RecordSync(false)
		return fmt.Errorf("failed to sync attendance record: %w", err)
	}

	s.metrics.RecordSync(true)
	return nil
}

// deriveStatus maps a punch row to the projection status. An explicit
// absence reason always wins; otherwise the stored check-in status is
// trusted when it says Late, and re-derived from the check-in time when it
// says anything else.
func (s *SynchronizerImpl) deriveStatus(p punch.Punch) (status string, leaveReason, notes *string) {
	if reason := strings.TrimSpace(p.Meta.ReasonName); reason != "" {
		return mapReason(reason)
	}

	if p.CheckInStatus != nil && *p.CheckInStatus == schedule.StatusLate {
		return record.StatusLate, nil, nil
	}

	if p.CheckInTime != nil && schedule.ClassifyEntry(*p.CheckInTime, s.window) == schedule.StatusLate {
		return record.StatusLate, nil, nil
	}

	return record.StatusPresent, nil, nil
}

func mapReason(reason string) (status string, leaveReason, notes *string) {
	switch strings.ToLower(reason) {
	case "sakit":
		code := record.ReasonSick
		return record.StatusSick, &code, nil
	case "izin":
		code := record.ReasonOther
		note := "Izin"
		return record.StatusLeave, &code, &note
	case "tanpa keterangan":
		code := record.ReasonAlpa
		return record.StatusAbsent, &code, nil
	default:
		code := record.ReasonAlpa
		return record.StatusAbsent, &code, &reason
	}
}
