package model

import "github.com/shopspring/decimal"

// TierLabel identifies one query specificity level, from strictest to loosest.
type TierLabel string

const (
	TierExact     TierLabel = "exact"
	TierNoGrade   TierLabel = "no_grade"
	TierNoSerial  TierLabel = "no_serial"
	TierPlayerSet TierLabel = "player_set"
	TierLoose     TierLabel = "loose"
)

// Confidence is a coarse quality signal derived from which tier matched and
// how many comparable sales were found.
type Confidence string

const (
	ConfidenceHigh    Confidence = "HIGH"
	ConfidenceMed     Confidence = "MED"
	ConfidenceLow     Confidence = "LOW"
	ConfidenceVeryLow Confidence = "VERY_LOW"
)

// CompResult is the final outcome of comp discovery for one card. A result
// is always produced; when no tier yielded an estimate, Median and Suggested
// are null and Confidence is VERY_LOW.
type CompResult struct {
	Tier       TierLabel           `json:"tier"`
	Confidence Confidence          `json:"confidence"`
	CompCount  int                 `json:"comp_count"`
	Median     decimal.NullDecimal `json:"median"`
	Suggested  decimal.NullDecimal `json:"suggested_price"`
	Query      string              `json:"query,omitempty"`
	QueryURL   string              `json:"query_url,omitempty"`
}
