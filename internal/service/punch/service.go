package punch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/absensia/absensi-backend-go/internal/domain/employee"
	"github.com/absensia/absensi-backend-go/internal/domain/punch"
	"github.com/absensia/absensi-backend-go/internal/domain/record"
	"github.com/absensia/absensi-backend-go/internal/domain/schedule"
	"github.com/absensia/absensi-backend-go/internal/pkg/facematch"
	"github.com/absensia/absensi-backend-go/internal/pkg/metrics"
)

type PunchServiceImpl struct {
	punch.Repository
	resolver     employee.Resolver
	employeeRepo employee.Repository
	synchronizer record.Synchronizer
	face         *facematch.Client
	window       schedule.Window
	metrics      metrics.Recorder
	logger       *slog.Logger
}

func NewPunchService(
	punchRepo punch.Repository,
	employeeRepo employee.Repository,
	resolver employee.Resolver,
	synchronizer record.Synchronizer,
	face *facematch.Client,
	window schedule.Window,
	collector metrics.Recorder,
	logger *slog.Logger,
) punch.Service {
	return &PunchServiceImpl{
		Repository:   punchRepo,
		resolver:     resolver,
		employeeRepo: employeeRepo,
		synchronizer: synchronizer,
		face:         face,
		window:       window,
		metrics:      collector,
		logger:       logger,
	}
}

// RecordPunch implements punch.Service.
func (s *PunchServiceImpl) RecordPunch(ctx context.Context, req punch.PunchRequest) (punch.Outcome, error) {
	if err := req.Validate(); err != nil {
		return punch.Outcome{}, err
	}

	now := time.Now()
	day := schedule.Day(now)
	clock := schedule.Clock(now)

	p, err := s.Repository.GetOrCreate(ctx, req.Name, day, now)
	if err != nil {
		return punch.Outcome{}, err
	}

	phase := req.Phase
	if phase == "" {
		switch {
		case p.CheckInTime == nil:
			phase = punch.PhaseIn
		case p.CheckOutTime == nil:
			phase = punch.PhaseOut
		default:
			s.metrics.RecordDuplicate(punch.PhaseOut)
			return punch.Outcome{
				Status:  punch.OutcomeAlready,
				Phase:   punch.PhaseOut,
				Message: "attendance already complete for today",
				Punch:   p,
			}, nil
		}
	}

	var outcome punch.Outcome
	switch phase {
	case punch.PhaseIn:
		outcome, err = s.recordCheckIn(ctx, req, p, day, clock)
	default:
		outcome, err = s.recordCheckOut(ctx, req, p, day, clock)
	}
	if err != nil {
		return punch.Outcome{}, err
	}

	if outcome.Status == punch.OutcomeSuccess {
		s.syncProjection(ctx, outcome.Punch)
	}

	return outcome, nil
}

func (s *PunchServiceImpl) recordCheckIn(ctx context.Context, req punch.PunchRequest, p punch.Punch, day, clock string) (punch.Outcome, error) {
	if p.CheckInTime != nil {
		s.metrics.RecordDuplicate(punch.PhaseIn)
		return punch.Outcome{
			Status:  punch.OutcomeAlready,
			Phase:   punch.PhaseIn,
			Message: "check-in already recorded",
			Punch:   p,
		}, nil
	}

	status := schedule.ClassifyEntry(clock, s.window)
	updated, claimed, err := s.Repository.ClaimCheckIn(ctx, req.Name, day, clock, status, req.Distance, req.Gap)
	if err != nil {
		return punch.Outcome{}, err
	}
	if !claimed {
		s.metrics.RecordDuplicate(punch.PhaseIn)
		return punch.Outcome{
			Status:  punch.OutcomeAlready,
			Phase:   punch.PhaseIn,
			Message: "check-in already recorded",
			Punch:   updated,
		}, nil
	}

	s.metrics.RecordPunch(punch.PhaseIn)
	return punch.Outcome{
		Status:  punch.OutcomeSuccess,
		Phase:   punch.PhaseIn,
		Message: "check-in recorded",
		Punch:   updated,
	}, nil
}

func (s *PunchServiceImpl) recordCheckOut(ctx context.Context, req punch.PunchRequest, p punch.Punch, day, clock string) (punch.Outcome, error) {
	if p.CheckInTime == nil {
		s.metrics.RecordPreconditionFailure()
		return punch.Outcome{}, punch.ErrNotCheckedIn
	}
	if p.CheckOutTime != nil {
		s.metrics.RecordDuplicate(punch.PhaseOut)
		return punch.Outcome{
			Status:  punch.OutcomeAlready,
			Phase:   punch.PhaseOut,
			Message: "check-out already recorded",
			Punch:   p,
		}, nil
	}

	status := schedule.ClassifyExit(clock, s.window)
	updated, claimed, err := s.Repository.ClaimCheckOut(ctx, req.Name, day, clock, status, req.Distance, req.Gap)
	if err != nil {
		return punch.Outcome{}, err
	}
	if !claimed {
		// The claim also guards on an existing check-in, so losing it with
		// no check-out stored means the check-in vanished underneath us.
		if updated.CheckOutTime == nil {
			s.metrics.RecordPreconditionFailure()
			return punch.Outcome{}, punch.ErrNotCheckedIn
		}
		s.metrics.RecordDuplicate(punch.PhaseOut)
		return punch.Outcome{
			Status:  punch.OutcomeAlready,
			Phase:   punch.PhaseOut,
			Message: "check-out already recorded",
			Punch:   updated,
		}, nil
	}

	s.metrics.RecordPunch(punch.PhaseOut)
	return punch.Outcome{
		Status:  punch.OutcomeSuccess,
		Phase:   punch.PhaseOut,
		Message: "check-out recorded",
		Punch:   updated,
	}, nil
}

// VerifyFace implements punch.Service.
func (s *PunchServiceImpl) VerifyFace(ctx context.Context, req punch.FaceVerifyRequest) (punch.Outcome, error) {
	start := time.Now()
	result, err := s.face.Verify(ctx, req.Image, req.Filename, req.ContentType)
	s.metrics.RecordFaceLatency(time.Since(start))
	if err != nil {
		s.metrics.RecordFaceReject()
		return punch.Outcome{}, err
	}

	user := strings.TrimSpace(result.User)
	if user == "" || strings.EqualFold(user, "unknown") {
		s.metrics.RecordFaceReject()
		return punch.Outcome{}, punch.ErrUnknownFace
	}

	return s.RecordPunch(ctx, punch.PunchRequest{
		Name:     user,
		Phase:    req.Phase,
		Distance: result.Distance,
		Gap:      result.Gap,
	})
}

// AdminUpdate implements punch.Service.
func (s *PunchServiceImpl) AdminUpdate(ctx context.Context, req punch.AdminUpdateRequest) (punch.Punch, error) {
	if err := req.Validate(); err != nil {
		return punch.Punch{}, err
	}

	now := time.Now()
	day := schedule.Day(now)

	name, err := s.resolveRowName(ctx, req)
	if err != nil {
		return punch.Punch{}, err
	}

	p, err := s.Repository.GetOrCreate(ctx, name, day, now)
	if err != nil {
		return punch.Punch{}, err
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = p.Meta.EmployeeID
	}
	if employeeID == "" {
		employeeID, err = s.resolver.Resolve(ctx, name)
		if err != nil {
			return punch.Punch{}, err
		}
	}

	meta := p.Meta
	if employeeID != "" {
		meta.EmployeeID = employeeID
	}

	if !req.Auto && req.Status == "Absent" {
		reason := req.Reason
		if reason == "" {
			reason = "Tanpa Keterangan"
		}
		meta.ReasonName = reason

		p, err = s.Repository.MarkAbsent(ctx, name, day, meta)
		if err != nil {
			return punch.Punch{}, err
		}
	} else {
		// A time edit revokes any standing absence override.
		meta.ReasonName = ""

		if req.Phase == punch.PhaseOut && p.CheckInTime == nil {
			s.metrics.RecordPreconditionFailure()
			return punch.Punch{}, punch.ErrNotCheckedIn
		}

		// Explicit time wins, then the phase's existing time, then now.
		clock := req.Time
		if clock == "" {
			if req.Phase == punch.PhaseOut && p.CheckOutTime != nil {
				clock = *p.CheckOutTime
			} else if req.Phase == punch.PhaseIn && p.CheckInTime != nil {
				clock = *p.CheckInTime
			}
		}
		clock = schedule.NormalizeClockOrNow(clock)

		status := req.Status
		if req.Auto {
			if req.Phase == punch.PhaseOut {
				status = schedule.ClassifyExit(clock, s.window)
			} else {
				status = schedule.ClassifyEntry(clock, s.window)
			}
		}

		p, err = s.Repository.SetPhase(ctx, name, day, req.Phase, clock, status, meta)
		if err != nil {
			return punch.Punch{}, err
		}
	}

	if employeeID != "" {
		if err := s.synchronizer.Sync(ctx, p, employeeID); err != nil {
			return punch.Punch{}, err
		}
	}

	return p, nil
}

// resolveRowName finds the display name keying the punch row. Edits by
// employee id alone go through the roster.
func (s *PunchServiceImpl) resolveRowName(ctx context.Context, req punch.AdminUpdateRequest) (string, error) {
	if req.Name != "" {
		return req.Name, nil
	}

	roster, err := s.employeeRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to look up employee %s: %w", req.EmployeeID, err)
	}
	for _, e := range roster {
		if e.ID == req.EmployeeID {
			return e.FullName, nil
		}
	}

	return "", employee.ErrEmployeeNotFound
}

// syncProjection runs the attendance projection after a successful punch.
// The punch row is already durable at this point, so a projection failure
// is logged and counted but never unwinds the punch.
func (s *PunchServiceImpl) syncProjection(ctx context.Context, p punch.Punch) {
	employeeID := p.Meta.EmployeeID
	if employeeID == "" {
		resolved, err := s.resolver.Resolve(ctx, p.Name)
		if err != nil {
			s.logger.Warn("employee resolution failed, projection deferred",
				slog.String("name", p.Name), slog.Any("error", err))
			return
		}
		employeeID = resolved
	}
	if employeeID == "" {
		return
	}

	if err := s.synchronizer.Sync(ctx, p, employeeID); err != nil {
		s.logger.Warn("attendance projection failed",
			slog.String("name", p.Name),
			slog.String("employee_id", employeeID),
			slog.Any("error", err))
	}
}
