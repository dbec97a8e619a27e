package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/talos/internal/models"
)

// CreateEmployee inserts a new employee record with the provided name and returns
// the created row, including the identifier assigned by the database.
func (r *Repository) CreateEmployee(ctx context.Context, name string) (models.Employee, error) {
	var result models.Employee

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("create_employee").Observe(duration)
	}()
	query := `
		INSERT INTO employees (name)
		VALUES ($1)
		RETURNING id, name, created_at;
	`

	err := r.db.QueryRow(ctx, query, name).Scan(&result.ID, &result.Name, &result.CreatedAt)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return result, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error) {
	var result models.Employee

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("get_employee_by_id").Observe(duration)
	}()
	query := `SELECT id, name, created_at FROM employees WHERE id=$1`

	err := r.db.QueryRow(ctx, query, identifier).Scan(&result.ID, &result.Name, &result.CreatedAt)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return result, nil
}

// ListEmployees retrieves all employee records ordered by identifier.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("list_employees").Observe(duration)
	}()
	query := `SELECT id, name, created_at FROM employees ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var result []models.Employee
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(&employee.ID, &employee.Name, &employee.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		result = append(result, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return result, nil
}
