package model

// Card represents a single collectible card from the inventory, enriched
// with the derived fields the pricing engine queries on. Inventory loading
// fills the raw columns; inference fills Year/Parallel/Serial/Auto when the
// sheet leaves them implicit.
type Card struct {
	CardName   string `json:"card_name"`
	Player     string `json:"player"`
	Sport      string `json:"sport,omitempty"`
	CardNumber string `json:"card_number,omitempty"`
	Features   string `json:"features,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	League     string `json:"league,omitempty"`
	Team       string `json:"team,omitempty"`
	Season     string `json:"season,omitempty"`
	Condition  string `json:"condition,omitempty"`
	Brand      string `json:"brand,omitempty"`
	Set        string `json:"set"`

	// Derived / optional.
	Year         string `json:"year,omitempty"`
	SetShort     string `json:"set_short,omitempty"`
	Parallel     string `json:"parallel,omitempty"`
	Auto         bool   `json:"auto,omitempty"`
	Serial       string `json:"serial,omitempty"` // print-run denominator, e.g. "25" for /25
	GradeCompany string `json:"grade_company,omitempty"`
	Grade        string `json:"grade,omitempty"`
}
