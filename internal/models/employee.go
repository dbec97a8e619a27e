package models

import "time"

// Employee represents an employee entity.
type Employee struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
