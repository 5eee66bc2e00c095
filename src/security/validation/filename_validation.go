package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// FilenameParts holds the metadata encoded in a trade filename of the form
// ProductType_LegalEntity_SourceSystem_Date.csv|xlsx.
type FilenameParts struct {
	ProductType  string
	LegalEntity  string
	SourceSystem string
	DateToken    string
}

var tradeFileExtRe = regexp.MustCompile(`(?i)\.(csv|xlsx)$`)

// ParseTradeFilename splits a trade filename into its four metadata
// segments. The split is strictly positional: a product type containing an
// underscore will bleed into the following segments, which is the documented
// behavior of the naming convention, not a defect. Segments beyond the
// fourth are ignored. Fewer than four segments is a validation failure
// naming the offending file.
func ParseTradeFilename(filename string) (FilenameParts, error) {
	nameWithoutExt := tradeFileExtRe.ReplaceAllString(filename, "")
	parts := strings.Split(nameWithoutExt, "_")

	if len(parts) < 4 {
		return FilenameParts{}, fmt.Errorf("%w: invalid filename format: %s. Expected: ProductType_LegalEntity_SourceSystem_Date.csv/xlsx", ErrValidationFailed, filename)
	}

	return FilenameParts{
		ProductType:  parts[0],
		LegalEntity:  parts[1],
		SourceSystem: parts[2],
		DateToken:    parts[3],
	}, nil
}
