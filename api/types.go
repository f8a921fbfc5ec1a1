// Package api - Request/response types
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"proposal-cost/core/proposal"
)

// SaveProposalRequest is the payload for creating or replacing a
// proposal record
type SaveProposalRequest struct {
	// Name is the proposal display name
	Name string `json:"name"`

	// ClientID links the proposal to a client
	ClientID string `json:"client_id,omitempty"`

	// ProjectData is the serialized proposal state
	ProjectData json.RawMessage `json:"project_data"`
}

// ProposalResponse is a stored proposal with its rollup attached
type ProposalResponse struct {
	// ID is the server-assigned record id
	ID string `json:"id"`

	// Name is the proposal display name
	Name string `json:"name"`

	// ClientID links the proposal to a client
	ClientID string `json:"client_id,omitempty"`

	// ProjectData is the serialized proposal state
	ProjectData json.RawMessage `json:"project_data"`

	// Totals is the computed rollup
	Totals TotalsResponse `json:"totals"`
}

// TotalsResponse is the rollup of a proposal
type TotalsResponse struct {
	// GrandTotal is the overall fee total
	GrandTotal decimal.Decimal `json:"grand_total"`

	// GrandTotalFormatted is the display rendering of the grand total
	GrandTotalFormatted string `json:"grand_total_formatted"`

	// Categories is the per-category breakdown
	Categories []proposal.CategoryTotal `json:"categories"`

	// Construction is the per-structure construction cost breakdown
	Construction []proposal.ConstructionTotal `json:"construction"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
