package record

import (
	"context"

	"github.com/absensia/absensi-backend-go/internal/domain/punch"
)

// Synchronizer projects a reconciled punch row into the attendance record.
type Synchronizer interface {
	// Sync upserts the projection for the punch row. A blank employeeID is
	// a no-op: synchronization is deferred until identity is resolved by a
	// later edit.
	Sync(ctx context.Context, p punch.Punch, employeeID string) error
}
