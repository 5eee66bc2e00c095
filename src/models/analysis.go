package models

// DeviationBucket is one row of the deviation-bucket grid: alert counts per
// currency falling into a deviation range.
type DeviationBucket struct {
	Range  string         `json:"range"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// ImpactSummary summarises the alert impact of a threshold proposal run.
type ImpactSummary struct {
	TotalAlerts      int `json:"totalAlerts"`
	ReducedAlerts    int `json:"reducedAlerts"`
	PercentReduction int `json:"percentReduction"`
}

// ThresholdImpact compares alert counts before and after changing a single
// threshold value.
type ThresholdImpact struct {
	CurrentAlerts    int    `json:"currentAlerts"`
	NewAlerts        int    `json:"newAlerts"`
	Difference       int    `json:"difference"`
	PercentageChange string `json:"percentageChange"`
}

// AnalysisResults is the payload returned by a manual analysis run.
type AnalysisResults struct {
	DeviationBuckets []DeviationBucket `json:"deviationBuckets"`
	ImpactSummary    ImpactSummary     `json:"impactSummary"`
}
