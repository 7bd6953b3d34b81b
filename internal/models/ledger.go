package models

import (
	"time"

	"github.com/google/uuid"
)

// Ledger rows are append-only: they are inserted once and never updated or
// deleted, so accounting always derives from the full history.

// HoursLog records billable hours for a Sales user. Rate is captured at
// logging time so later rate changes do not rewrite history.
type HoursLog struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Hours  float64   `json:"hours"`
	Rate   float64   `json:"rate"`
	Date   time.Time `json:"date"`
}

type Bonus struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes,omitempty"`
}

// Payment goes to either a user or a printer, never both.
type Payment struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	PrinterID *uuid.UUID `json:"printer_id,omitempty"`
	Amount    float64    `json:"amount"`
	Date      time.Time  `json:"date"`
	Notes     string     `json:"notes,omitempty"`
}

func (p Payment) Validate() error {
	if (p.UserID == nil) == (p.PrinterID == nil) {
		return &ValidationError{Field: "user_id/printer_id"}
	}
	if p.Amount <= 0 {
		return &ValidationError{Field: "amount"}
	}
	return nil
}
