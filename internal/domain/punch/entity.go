package punch

import (
	"encoding/json"
	"fmt"
	"time"
)

// Phase identifies which half of the daily cycle a punch belongs to.
const (
	PhaseIn  = "IN"
	PhaseOut = "OUT"
)

// Punch is the mutable per-(name, day) attendance row. One row exists per
// person per calendar day; the check-out fields extend the same row rather
// than creating a second one. Rows are never deleted.
type Punch struct {
	ID         string
	Name       string
	Day        string    // YYYY-MM-DD
	CapturedAt time.Time // timestamp of the first event that created the row

	CheckInTime    *string // "HH:MM:SS"
	CheckInStatus  *string // On Time | Late
	CheckOutTime   *string // "HH:MM:SS"
	CheckOutStatus *string // On Time | Early

	// Biometric match quality, when the punch came from face recognition.
	Distance *float64
	Gap      *float64

	Meta Meta
}

// Complete reports whether both phases are recorded for the day.
func (p Punch) Complete() bool {
	return p.CheckInTime != nil && p.CheckOutTime != nil
}

// Meta is the open-ended per-row annotation bag. Only EmployeeID and
// ReasonName are contractually recognized; every other key round-trips
// through Extra untouched so older writers keep working.
type Meta struct {
	EmployeeID string
	ReasonName string
	Extra      map[string]any
}

// IsZero reports whether the meta carries nothing worth persisting.
func (m Meta) IsZero() bool {
	return m.EmployeeID == "" && m.ReasonName == "" && len(m.Extra) == 0
}

// ParseMeta decodes a stored meta payload. Anything that is not a JSON
// object (including invalid JSON and NULL) decodes to an empty Meta; a
// bad annotation must never make the row unreadable.
func ParseMeta(raw []byte) Meta {
	var m Meta
	if len(raw) == 0 {
		return m
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return m
	}
	for key, value := range fields {
		switch key {
		case "employee_id":
			m.EmployeeID = stringifyID(value)
		case "reason_name":
			if s, ok := value.(string); ok {
				m.ReasonName = s
			}
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]any)
			}
			m.Extra[key] = value
		}
	}
	return m
}

// JSON encodes the meta back to its storage form, merging the recognized
// fields over the pass-through keys.
func (m Meta) JSON() ([]byte, error) {
	fields := make(map[string]any, len(m.Extra)+2)
	for key, value := range m.Extra {
		fields[key] = value
	}
	if m.EmployeeID != "" {
		fields["employee_id"] = m.EmployeeID
	}
	if m.ReasonName != "" {
		fields["reason_name"] = m.ReasonName
	}
	return json.Marshal(fields)
}

// stringifyID tolerates legacy rows where employee_id was numeric.
func stringifyID(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
