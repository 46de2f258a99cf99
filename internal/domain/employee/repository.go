package employee

import "context"

type Repository interface {
	// GetIDByName matches full_name case-insensitively against any of the
	// given candidate spellings. Returns ErrEmployeeNotFound when no row
	// matches.
	GetIDByName(ctx context.Context, candidates ...string) (string, error)

	// List returns the whole roster, used by the slug-fallback scan.
	List(ctx context.Context) ([]Employee, error)

	Create(ctx context.Context, newEmployee Employee) (Employee, error)
}
