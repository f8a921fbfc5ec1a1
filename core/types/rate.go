// Package types - Hourly rate table types
package types

import "github.com/shopspring/decimal"

// RateKey identifies one row of the external hourly-rate table.
// It is comparable and used directly as a lookup map key.
type RateKey struct {
	// DisciplineID is the discipline classification key
	DisciplineID string `json:"discipline_id"`

	// RoleID is the role classification key
	RoleID string `json:"role_id"`

	// Designation refines the role; empty when the row has none
	Designation string `json:"designation,omitempty"`
}

// HourlyRate is one row of the external, read-only rate table
type HourlyRate struct {
	// Key identifies the row
	Key RateKey `json:"key"`

	// Rate is the hourly rate
	Rate decimal.Decimal `json:"rate"`
}
