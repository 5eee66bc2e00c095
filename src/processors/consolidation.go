package processors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/username/fxmonitor/src/models"
)

// BuildConsolidatedDatasets groups uploaded trade files by (productType,
// legalEntity, sourceSystem), splits each group into its UAT and PROD files,
// and emits one dataset per group that has files on both sides. The dataset
// covers the ascending range of distinct upload dates in the group and sums
// the record counts per environment. Groups present in only one environment
// produce nothing. Emission follows the first-seen order of the group key,
// so the same input sequence always yields the same output sequence.
func BuildConsolidatedDatasets(files []models.FileUpload) []models.ConsolidatedDataset {
	type fileGroup struct {
		productType  string
		legalEntity  string
		sourceSystem string
		uat          []models.FileUpload
		prod         []models.FileUpload
		dates        map[string]bool
	}

	groups := make(map[string]*fileGroup)
	var order []string

	for _, f := range files {
		key := fmt.Sprintf("%s|%s|%s", f.ProductType, f.LegalEntity, f.SourceSystem)
		g, ok := groups[key]
		if !ok {
			g = &fileGroup{
				productType:  f.ProductType,
				legalEntity:  f.LegalEntity,
				sourceSystem: f.SourceSystem,
				dates:        make(map[string]bool),
			}
			groups[key] = g
			order = append(order, key)
		}

		// Anything other than an exact "UAT" tag is treated as PROD.
		if f.Environment == "UAT" {
			g.uat = append(g.uat, f)
		} else {
			g.prod = append(g.prod, f)
		}
		g.dates[datePortion(f.UploadDate)] = true
	}

	datasets := make([]models.ConsolidatedDataset, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if len(g.uat) == 0 || len(g.prod) == 0 {
			continue
		}

		dates := make([]string, 0, len(g.dates))
		for d := range g.dates {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		startDate := dates[0]
		endDate := dates[len(dates)-1]

		datasetName := fmt.Sprintf("%s_%s_%s_%s", g.productType, g.legalEntity, g.sourceSystem, startDate)
		if len(dates) > 1 {
			datasetName += "_" + endDate
		}

		datasets = append(datasets, models.ConsolidatedDataset{
			DatasetName:     datasetName,
			ProductType:     g.productType,
			LegalEntity:     g.legalEntity,
			SourceSystem:    g.sourceSystem,
			StartDate:       startDate,
			EndDate:         endDate,
			UatFileIDs:      fileIDs(g.uat),
			ProdFileIDs:     fileIDs(g.prod),
			TotalUatTrades:  sumRecordCounts(g.uat),
			TotalProdTrades: sumRecordCounts(g.prod),
			// Matched/unmatched counts stay zero until trade-level matching
			// is implemented.
			Status: "completed",
		})
	}
	return datasets
}

// datePortion reduces a timestamp to its ISO date part.
func datePortion(date string) string {
	if idx := strings.IndexAny(date, "T "); idx >= 0 {
		return date[:idx]
	}
	return date
}

func fileIDs(files []models.FileUpload) []int64 {
	ids := make([]int64, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return ids
}

func sumRecordCounts(files []models.FileUpload) int64 {
	var total int64
	for _, f := range files {
		total += f.RecordCount
	}
	return total
}
