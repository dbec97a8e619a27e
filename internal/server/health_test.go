package server_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/talos/internal/server"
)

type MockDBPinger struct {
	ShouldFail bool
}

func (m *MockDBPinger) Ping(_ context.Context) error {
	if m.ShouldFail {
		return errors.New("mock db error")
	}
	return nil
}

func TestHealthChecker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("database ok", func(t *testing.T) {
		mockDB := &MockDBPinger{ShouldFail: false}
		healthChecker := server.NewHealthChecker(mockDB, logger)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		expectedBody := `{"status":"ok","db":"ok"}`
		require.JSONEq(t, expectedBody, rr.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		mockDB := &MockDBPinger{ShouldFail: true}
		healthChecker := server.NewHealthChecker(mockDB, logger)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		expectedBody := `{"status":"ok","db":"down"}`
		require.JSONEq(t, expectedBody, rr.Body.String())
	})
}
