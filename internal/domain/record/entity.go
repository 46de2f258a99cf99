package record

// Daily statuses carried by the attendance projection.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusSick    = "sick"
	StatusLeave   = "leave"
	StatusAbsent  = "absent"
)

// Leave reason codes.
const (
	ReasonSick  = "sakit"
	ReasonOther = "other"
	ReasonAlpa  = "alpa"
)

// Record is the report-facing daily attendance projection, derived from a
// punch row once the employee identity is known. It is recomputed in full
// on every change to the source row; the synchronizer is its only writer.
type Record struct {
	ID             string
	EmployeeID     string
	AttendanceDate string // YYYY-MM-DD
	Status         string
	CheckInTime    *string // "HH:MM:SS"
	CheckOutTime   *string // "HH:MM:SS"
	LateMinutes    int
	LeaveReason    *string
	Notes          *string
}

// Capabilities describes which optional parts of the target schema exist.
// Populated once at startup and consulted per write, so existence checks
// do not leak into the projection logic.
type Capabilities struct {
	HasLeaveReason  bool
	HasNotes        bool
	HasStatusID     bool
	HasReasonID     bool
	HasStatusLookup bool // attendance_statuses code->id table
	HasReasonLookup bool // attendance_reasons code->id table
}
