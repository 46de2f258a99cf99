package employee

import "context"

// Resolver maps a free-text display name, as captured by face
// identification, to a stable employee id. Names drift in casing and
// spacing, so resolution is two-pass: exact case-insensitive match first,
// then a normalized-slug comparison over the roster.
type Resolver interface {
	// Resolve returns the employee id for the display name, or "" when no
	// roster entry matches. An unresolved name is not an error; the punch
	// is still reconciled and the projection is deferred.
	Resolve(ctx context.Context, displayName string) (string, error)
}
