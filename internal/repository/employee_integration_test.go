package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/UnknownOlympus/talos/internal/metrics"
	"github.com/UnknownOlympus/talos/internal/repository"
)

// TestEmployeeRepository_Integration runs the full create/get/list round trip
// against a real PostgreSQL instance, including the goose migrations.
func TestEmployeeRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("talos_test"),
		tcpostgres.WithUsername("talos"),
		tcpostgres.WithPassword("talos-secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	require.NoError(t, goose.Up(sqlDB, "../../migrations"))

	repo := repository.NewEmployeeRepository(pool, metrics.NewMetrics(prometheus.NewRegistry()))

	created, err := repo.CreateEmployee(ctx, "jenkins-test")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "jenkins-test", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetEmployeeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)

	second, err := repo.CreateEmployee(ctx, "second")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}
