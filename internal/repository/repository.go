package repository

import (
	"context"

	"github.com/UnknownOlympus/talos/internal/metrics"
	"github.com/UnknownOlympus/talos/internal/models"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	CreateEmployee(ctx context.Context, name string) (models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

func NewEmployeeRepository(db Database, mtr *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: mtr}
}
