package record

import "context"

type Repository interface {
	// DescribeTarget inspects the live schema for the optional columns and
	// lookup tables the projection may write.
	DescribeTarget(ctx context.Context) (Capabilities, error)

	// Upsert writes the projection keyed by (employee_id, attendance_date),
	// updating in place when the key exists. Fields whose columns are
	// absent per caps are omitted from the write, not errors.
	Upsert(ctx context.Context, rec Record, caps Capabilities) error

	// GetByEmployeeAndDate returns the stored projection, or nil when the
	// key has never been written.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Record, error)
}
