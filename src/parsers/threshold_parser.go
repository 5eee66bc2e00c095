// Package parsers turns uploaded threshold CSV files into threshold rows.
package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/models"
)

// ThresholdParser parses a threshold CSV upload into currency-level rows.
type ThresholdParser interface {
	Parse(file io.Reader) ([]models.Threshold, error)
}

type thresholdCSVParser struct{}

func NewThresholdParser() ThresholdParser {
	return &thresholdCSVParser{}
}

// Parse reads the whole file and produces one Threshold per non-blank data
// line. Parsing is positional: the header line is skipped, not validated.
// Columns: LegalEntity, CCY, Original_Group, Original_Threshold,
// Proposed_Group, Proposed_Threshold. The proposed columns fall back to the
// original values when absent, and the adjusted fields always start equal to
// the resolved proposed values. Fields are split on bare commas; quoted
// values are not supported.
func (p *thresholdCSVParser) Parse(file io.Reader) ([]models.Threshold, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read threshold CSV: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) <= 1 {
		return []models.Threshold{}, nil
	}

	thresholds := make([]models.Threshold, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := strings.Split(line, ",")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}

		t := models.Threshold{
			LegalEntity:       valueOr(values, 0, "Unknown"),
			Currency:          valueOr(values, 1, "USD"),
			OriginalGroup:     valueOr(values, 2, "Group 1"),
			OriginalThreshold: valueOr(values, 3, "0.5"),
		}
		t.ProposedGroup = valueOr(values, 4, t.OriginalGroup)
		t.ProposedThreshold = valueOr(values, 5, t.OriginalThreshold)
		t.AdjustedGroup = t.ProposedGroup
		t.AdjustedThreshold = t.ProposedThreshold

		thresholds = append(thresholds, t)
	}

	if logger.L != nil {
		logger.L.Debug("Parsed threshold CSV", "rowCount", len(thresholds))
	}
	return thresholds, nil
}

func valueOr(values []string, idx int, fallback string) string {
	if idx < len(values) && values[idx] != "" {
		return values[idx]
	}
	return fallback
}
