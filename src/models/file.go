package models

// FileUpload is the metadata record for one uploaded trade file. The
// product type, legal entity, source system and date are parsed out of the
// filename (ProductType_LegalEntity_SourceSystem_Date.csv|xlsx). Records are
// immutable once created.
type FileUpload struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	ProductType  string `json:"productType"`
	LegalEntity  string `json:"legalEntity"`
	SourceSystem string `json:"sourceSystem"`
	Environment  string `json:"environment"` // UAT or PROD
	UploadDate   string `json:"uploadDate"`
	FileSize     int64  `json:"fileSize"`
	RecordCount  int64  `json:"recordCount"`
	Status       string `json:"status"`
	UploadedAt   string `json:"uploadedAt,omitempty"`
}

// ConsolidatedDataset joins the UAT and PROD file uploads sharing a
// (productType, legalEntity, sourceSystem) key into one dataset covering the
// combined date range. Only groups with files on both sides produce one.
type ConsolidatedDataset struct {
	ID                  int64   `json:"id"`
	DatasetName         string  `json:"datasetName"`
	ProductType         string  `json:"productType"`
	LegalEntity         string  `json:"legalEntity"`
	SourceSystem        string  `json:"sourceSystem"`
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
	UatFileIDs          []int64 `json:"uatFileIds"`
	ProdFileIDs         []int64 `json:"prodFileIds"`
	TotalUatTrades      int64   `json:"totalUatTrades"`
	TotalProdTrades     int64   `json:"totalProdTrades"`
	MatchedTrades       int64   `json:"matchedTrades"`
	UnmatchedUatTrades  int64   `json:"unmatchedUatTrades"`
	UnmatchedProdTrades int64   `json:"unmatchedProdTrades"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"createdAt,omitempty"`
}
