package models

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is a single expense record. The JSON form is what the file store
// persists and what the API returns.
type Receipt struct {
	ID          uuid.UUID   `json:"id"`
	Sum         float64     `json:"sum"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description"`
	ExpenseType ExpenseType `json:"expenseType"`
	Location    string      `json:"location"`
}

// WithID returns a copy of r carrying id.
func (r Receipt) WithID(id uuid.UUID) Receipt {
	r.ID = id
	return r
}
