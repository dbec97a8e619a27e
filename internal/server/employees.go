package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/UnknownOlympus/talos/internal/lib/logger/sl"
	"github.com/UnknownOlympus/talos/internal/models"
	"github.com/UnknownOlympus/talos/internal/services/employees"
)

// EmployeeHandler serves the employee resource routes.
type EmployeeHandler struct {
	staff *employees.Staff
	log   *slog.Logger
}

func NewEmployeeHandler(staff *employees.Staff, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{staff: staff, log: log}
}

type createEmployeeRequest struct {
	Name string `json:"name"`
}

// Create handles POST /employees.
func (h *EmployeeHandler) Create(writer http.ResponseWriter, req *http.Request) {
	var payload createEmployeeRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(writer, http.StatusBadRequest, "invalid request body")
		return
	}

	employee, err := h.staff.CreateEmployee(req.Context(), payload.Name)
	if err != nil {
		if errors.Is(err, employees.ErrInvalidName) {
			writeError(writer, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(req.Context(), "Failed to create employee", sl.Err(err))
		writeError(writer, http.StatusServiceUnavailable, "failed to create employee")
		return
	}

	writeJSON(writer, http.StatusCreated, employee)
}

// GetByID handles GET /employees/{id}.
func (h *EmployeeHandler) GetByID(writer http.ResponseWriter, req *http.Request) {
	identifier, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		writeError(writer, http.StatusBadRequest, "employee id must be an integer")
		return
	}

	employee, err := h.staff.GetEmployee(req.Context(), identifier)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			writeError(writer, http.StatusNotFound, "employee not found")
			return
		}
		h.log.ErrorContext(req.Context(), "Failed to get employee", "id", identifier, sl.Err(err))
		writeError(writer, http.StatusServiceUnavailable, "failed to get employee")
		return
	}

	writeJSON(writer, http.StatusOK, employee)
}

// List handles GET /employees.
func (h *EmployeeHandler) List(writer http.ResponseWriter, req *http.Request) {
	list, err := h.staff.ListEmployees(req.Context())
	if err != nil {
		h.log.ErrorContext(req.Context(), "Failed to list employees", sl.Err(err))
		writeError(writer, http.StatusServiceUnavailable, "failed to list employees")
		return
	}
	if list == nil {
		list = []models.Employee{}
	}

	writeJSON(writer, http.StatusOK, list)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(writer http.ResponseWriter, status int, data any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(data)
}

// writeError writes a JSON error body with the given status code.
func writeError(writer http.ResponseWriter, status int, message string) {
	writeJSON(writer, status, map[string]string{"error": message})
}
