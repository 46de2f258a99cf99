package punch

import (
	"context"
	"time"
)

// Repository defines data access for the per-(name, day) punch table.
//
// The table carries a unique constraint on (name, day). GetOrCreate and the
// Claim methods are single conditional statements so that two concurrent
// events for the same key cannot both win: the loser of a claim observes
// claimed=false and reports "already recorded" instead of overwriting.
type Repository interface {
	// GetOrCreate inserts an empty row for (name, day) unless one exists,
	// then returns the current row.
	GetOrCreate(ctx context.Context, name, day string, capturedAt time.Time) (Punch, error)

	// Get returns the row for (name, day), or ErrPunchNotFound.
	Get(ctx context.Context, name, day string) (Punch, error)

	// ClaimCheckIn sets the check-in time iff it is still unset. The status
	// is only written when no status was set before, so an administrative
	// override is never clobbered by background inference. Returns the
	// updated row and whether this call won the claim.
	ClaimCheckIn(ctx context.Context, name, day, clock, status string, distance, gap *float64) (Punch, bool, error)

	// ClaimCheckOut is the check-out counterpart of ClaimCheckIn.
	ClaimCheckOut(ctx context.Context, name, day, clock, status string, distance, gap *float64) (Punch, bool, error)

	// MarkAbsent clears all four check-in/out fields and replaces the meta.
	// Used by the administrative Absent override.
	MarkAbsent(ctx context.Context, name, day string, meta Meta) (Punch, error)

	// SetPhase overwrites one phase's time and status and replaces the
	// meta. Administrative edits only; automatic punches go through Claim.
	SetPhase(ctx context.Context, name, day, phase, clock, status string, meta Meta) (Punch, error)

	// ListByDay returns every punch row for one calendar day.
	ListByDay(ctx context.Context, day string) ([]Punch, error)
}
