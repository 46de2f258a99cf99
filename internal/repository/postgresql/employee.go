package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/absensia/absensi-backend-go/internal/domain/employee"
	"github.com/absensia/absensi-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetIDByName(ctx context.Context, candidates ...string) (string, error) {
	querier := GetQuerier(ctx, r.db)

	lowered := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		lowered = append(lowered, candidate)
	}
	if len(lowered) == 0 {
		return "", employee.ErrEmployeeNotFound
	}

	query := `
		SELECT id FROM employees
		WHERE LOWER(full_name) = ANY(SELECT LOWER(unnest($1::text[])))
		LIMIT 1`

	var id string
	err := querier.QueryRow(ctx, query, lowered).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to get employee by name: %w", err)
	}

	return id, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := `SELECT id, full_name, created_at, updated_at FROM employees ORDER BY full_name`

	rows, err := querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (id, full_name)
		VALUES ($1, $2)
		RETURNING id, full_name, created_at, updated_at`

	var e employee.Employee
	err = querier.QueryRow(ctx, query, id.String(), newEmployee.FullName).
		Scan(&e.ID, &e.FullName, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}
