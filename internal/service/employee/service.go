package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/absensia/absensi-backend-go/internal/domain/employee"
)

type ResolverImpl struct {
	employee.Repository
}

func NewResolver(employeeRepo employee.Repository) employee.Resolver {
	return &ResolverImpl{Repository: employeeRepo}
}

// Resolve implements employee.Resolver.
func (r *ResolverImpl) Resolve(ctx context.Context, displayName string) (string, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return "", nil
	}

	// Face enrollment replaces spaces with underscores, so both spellings
	// are tried before falling back to the slug scan.
	candidates := []string{name}
	if spaced := strings.ReplaceAll(name, "_", " "); spaced != name {
		candidates = append(candidates, spaced)
	}

	id, err := r.Repository.GetIDByName(ctx, candidates...)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return "", fmt.Errorf("failed to resolve employee by name: %w", err)
	}

	target := Slug(name)
	roster, err := r.Repository.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list employees for resolution: %w", err)
	}
	for _, e := range roster {
		if Slug(e.FullName) == target {
			return e.ID, nil
		}
	}

	return "", nil
}

// Slug normalizes a display name the same way the face service derives its
// enrollment labels: lowercase, restricted character set, whitespace runs
// collapsed to a single underscore.
func Slug(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	collapsed := strings.Join(strings.Fields(b.String()), "_")
	if collapsed == "" {
		return fmt.Sprintf("user_%d", time.Now().Unix())
	}
	return collapsed
}
