package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"

	"github.com/UnknownOlympus/talos/internal/metrics"
	"github.com/UnknownOlympus/talos/internal/models"
	"github.com/UnknownOlympus/talos/internal/repository"
)

// maxNameLength caps employee names at the width of the backing column.
const maxNameLength = 255

var (
	// ErrNotFound is returned when the requested employee does not exist.
	ErrNotFound = errors.New("employee not found")
	// ErrInvalidName is returned when the employee name is empty or too long.
	ErrInvalidName = errors.New("employee name is invalid")
)

type Staff struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, mtr *metrics.Metrics) *Staff {
	return &Staff{log: log, repo: repo, metrics: mtr}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// CreateEmployee validates the given name and persists a new employee record,
// returning the created row with its database-assigned identifier.
func (s *Staff) CreateEmployee(ctx context.Context, name string) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		log.DebugContext(ctx, "Rejected employee name", "error", err)
		return models.Employee{}, err
	}

	employee, err := s.repo.CreateEmployee(ctx, name)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to create employee %q: %w", name, err)
	}

	s.metrics.EmployeesCreated.Inc()
	log.InfoContext(ctx, "Employee created", "id", employee.ID, "name", employee.Name)

	return employee, nil
}

// GetEmployee retrieves an employee by identifier. It returns ErrNotFound when
// no record with the given identifier exists.
func (s *Staff) GetEmployee(ctx context.Context, identifier int) (models.Employee, error) {
	const opn = "Employee.Get"
	log := s.initLogger(opn)

	employee, err := s.repo.GetEmployeeByID(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.DebugContext(ctx, "Employee does not exist", "id", identifier)
			return models.Employee{}, ErrNotFound
		}
		return models.Employee{}, fmt.Errorf("failed to get employee %d: %w", identifier, err)
	}

	return employee, nil
}

// ListEmployees retrieves all employee records.
func (s *Staff) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// ValidateName reports whether the given name is acceptable for an employee record.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidName, maxNameLength)
	}

	return nil
}
