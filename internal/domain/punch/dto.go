package punch

import (
	"io"
	"strings"

	"github.com/absensia/absensi-backend-go/internal/pkg/validator"
)

// Reconciliation outcomes. Already is a successful no-op: the targeted
// phase was recorded before, the stored row is returned untouched, and a
// retried punch stays safe.
const (
	OutcomeSuccess = "success"
	OutcomeAlready = "already"
)

type Outcome struct {
	Status  string
	Phase   string
	Message string
	Punch   Punch
}

// PunchRequest is an automatic punch produced by face identification.
type PunchRequest struct {
	Name     string   `json:"name"`
	Phase    string   `json:"type"` // IN | OUT, optional unless PhaseRequired
	Distance *float64 `json:"distance,omitempty"`
	Gap      *float64 `json:"gap,omitempty"`

	// PhaseRequired is set by the JSON ingestion route, where the device
	// pipeline always states the phase explicitly.
	PhaseRequired bool `json:"-"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Phase = strings.ToUpper(strings.TrimSpace(r.Phase))

	if validator.IsEmpty(r.Name) || strings.EqualFold(r.Name, "unknown") {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "recognized name is required; unknown faces are not stored",
		})
	}

	if r.PhaseRequired && !validator.IsInSlice(r.Phase, []string{PhaseIn, PhaseOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	} else if r.Phase != "" && !validator.IsInSlice(r.Phase, []string{PhaseIn, PhaseOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// FaceVerifyRequest carries a raw image to identify and turn into a punch.
type FaceVerifyRequest struct {
	Image       io.Reader
	Filename    string
	ContentType string
	Phase       string // IN | OUT | "" (auto-select)
}

// AdminUpdateRequest is an administrative edit of today's punch row.
type AdminUpdateRequest struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"` // On Time | Late | Absent (Early for OUT); optional when Auto
	Reason     string `json:"reason"`
	Time       string `json:"time"`  // HH:MM or HH:MM:SS
	Phase      string `json:"phase"` // IN | OUT, default IN
	Auto       bool   `json:"auto"`  // derive status from the time window
}

func (r *AdminUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Status = strings.TrimSpace(r.Status)
	r.Reason = strings.TrimSpace(r.Reason)
	r.Time = strings.TrimSpace(r.Time)
	r.Phase = strings.ToUpper(strings.TrimSpace(r.Phase))
	if r.Phase == "" {
		r.Phase = PhaseIn
	}

	if r.Name == "" && r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name or employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Phase, []string{PhaseIn, PhaseOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "phase",
			Message: "phase must be IN or OUT",
		})
	}

	if !r.Auto {
		allowed := []string{"On Time", "Late", "Absent"}
		if r.Phase == PhaseOut {
			allowed = []string{"On Time", "Early", "Absent"}
		}
		if !validator.IsInSlice(r.Status, allowed) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(allowed, ", "),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Day            string   `json:"day"`
	CheckInTime    *string  `json:"check_in_time"`
	CheckInStatus  *string  `json:"check_in_status"`
	CheckOutTime   *string  `json:"check_out_time"`
	CheckOutStatus *string  `json:"check_out_status"`
	Distance       *float64 `json:"distance,omitempty"`
	Gap            *float64 `json:"gap,omitempty"`
}

// MapPunchToResponse converts a Punch entity to its JSON shape.
func MapPunchToResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:             p.ID,
		Name:           p.Name,
		Day:            p.Day,
		CheckInTime:    p.CheckInTime,
		CheckInStatus:  p.CheckInStatus,
		CheckOutTime:   p.CheckOutTime,
		CheckOutStatus: p.CheckOutStatus,
		Distance:       p.Distance,
		Gap:            p.Gap,
	}
}
