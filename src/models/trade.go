package models

// Trade is an FX trade observation with its price deviation against the
// reference price. AlertDescription is set when the deviation breached a
// threshold at ingestion time.
type Trade struct {
	ID               int64  `json:"id"`
	TradeID          string `json:"tradeId"`
	ProductType      string `json:"productType"`
	LegalEntity      string `json:"legalEntity"`
	SourceSystem     string `json:"sourceSystem"`
	CcyPair          string `json:"ccyPair"`
	TradeDate        string `json:"tradeDate"`
	DeviationPercent string `json:"deviationPercent"`
	AlertDescription string `json:"alertDescription,omitempty"`
	IsOutOfScope     bool   `json:"isOutOfScope"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// TradeFilters narrows GET /api/trades results. Zero values mean "no filter".
type TradeFilters struct {
	ProductType  string
	LegalEntity  string
	SourceSystem string
	StartDate    string
	EndDate      string
}

// Exception is an operational exception raised against a trade.
type Exception struct {
	ID            int64  `json:"id"`
	TradeID       string `json:"tradeId"`
	ExceptionType string `json:"exceptionType"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// DashboardConfig holds the per-user filter selection for the dashboard.
type DashboardConfig struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	ProductType   string `json:"productType,omitempty"`
	LegalEntity   string `json:"legalEntity,omitempty"`
	SourceSystem  string `json:"sourceSystem,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	ThresholdMode string `json:"thresholdMode,omitempty"`
	AnalysisRun   bool   `json:"analysisRun"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}
