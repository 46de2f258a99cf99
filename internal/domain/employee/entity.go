package employee

import "time"

// Employee is the authoritative roster entry. The engine only consumes it
// for identity resolution; roster management lives elsewhere.
type Employee struct {
	ID        string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
