package models

// Threshold is a currency-level deviation threshold row. These rows are the
// source of truth; the group view is derived from them on every read.
// Threshold values are kept as text exactly as uploaded and parsed to
// float64 where arithmetic is needed.
type Threshold struct {
	ID                int64  `json:"id"`
	LegalEntity       string `json:"legalEntity"`
	Currency          string `json:"currency"`
	OriginalGroup     string `json:"originalGroup"`
	OriginalThreshold string `json:"originalThreshold"`
	ProposedGroup     string `json:"proposedGroup"`
	ProposedThreshold string `json:"proposedThreshold"`
	AdjustedGroup     string `json:"adjustedGroup"`
	AdjustedThreshold string `json:"adjustedThreshold"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}

// GroupThreshold is the derived group-wise view: one row per distinct
// OriginalGroup, with each threshold column averaged over the currencies in
// that group and rounded to two decimals. Never persisted.
type GroupThreshold struct {
	ID                int64   `json:"id"`
	Group             string  `json:"group"`
	OriginalThreshold float64 `json:"originalThreshold"`
	ProposedThreshold float64 `json:"proposedThreshold"`
	AdjustedThreshold float64 `json:"adjustedThreshold"`
}
