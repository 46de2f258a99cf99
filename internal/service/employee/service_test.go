package employee

import (
	"context"
	"strings"
	"testing"

	"github.com/absensia/absensi-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	roster []employee.Employee
}

func (f *fakeEmployeeRepo) GetIDByName(ctx context.Context, candidates ...string) (string, error) {
	for _, candidate := range candidates {
		for _, e := range f.roster {
			if strings.EqualFold(e.FullName, candidate) {
				return e.ID, nil
			}
		}
	}
	return "", employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.roster, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	f.roster = append(f.roster, newEmployee)
	return newEmployee, nil
}

func TestSlug(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Jane Doe", "jane_doe"},
		{"  Jane   Doe  ", "jane_doe"},
		{"jane_doe", "jane_doe"},
		{"Budi Santoso Jr.", "budi_santoso_jr."},
		{"O'Connor", "oconnor"},
		{"user-42", "user-42"},
	}
	for _, c := range cases {
		got := Slug(c.input)
		if got != c.want {
			t.Errorf("Slug(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestSlugEmptyInput(t *testing.T) {
	assert.True(t, strings.HasPrefix(Slug(""), "user_"))
	assert.True(t, strings.HasPrefix(Slug("!!!"), "user_"))
}

func TestResolveExactMatch(t *testing.T) {
	repo := &fakeEmployeeRepo{roster: []employee.Employee{
		{ID: "e-1", FullName: "Jane Doe"},
		{ID: "e-2", FullName: "Budi Santoso"},
	}}
	resolver := NewResolver(repo)

	id, err := resolver.Resolve(context.Background(), "JANE DOE")
	require.NoError(t, err)
	assert.Equal(t, "e-1", id)
}

func TestResolveUnderscoredSpelling(t *testing.T) {
	repo := &fakeEmployeeRepo{roster: []employee.Employee{
		{ID: "e-1", FullName: "Jane Doe"},
	}}
	resolver := NewResolver(repo)

	id, err := resolver.Resolve(context.Background(), "jane_doe")
	require.NoError(t, err)
	assert.Equal(t, "e-1", id)
}

func TestResolveSlugFallback(t *testing.T) {
	// Punctuation in the roster name defeats the exact match but not the
	// slug comparison.
	repo := &fakeEmployeeRepo{roster: []employee.Employee{
		{ID: "e-3", FullName: "Budi  Santoso"},
	}}
	resolver := NewResolver(repo)

	id, err := resolver.Resolve(context.Background(), "budi_santoso")
	require.NoError(t, err)
	assert.Equal(t, "e-3", id)
}

func TestResolveNoMatchIsNotAnError(t *testing.T) {
	repo := &fakeEmployeeRepo{roster: []employee.Employee{
		{ID: "e-1", FullName: "Jane Doe"},
	}}
	resolver := NewResolver(repo)

	id, err := resolver.Resolve(context.Background(), "Someone Else")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestResolveBlankName(t *testing.T) {
	resolver := NewResolver(&fakeEmployeeRepo{})

	id, err := resolver.Resolve(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, id)
}
