package model

import "time"

// RunStatus represents the current state of a price discovery run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusPricing  RunStatus = "pricing"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// PriceRun records one price discovery attempt for a card.
type PriceRun struct {
	ID        string      `json:"id"`
	SKU       string      `json:"sku"`
	Card      Card        `json:"card"`
	Status    RunStatus   `json:"status"`
	Result    *CompResult `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
