package usecase

import (
	"path/filepath"
	"strings"
)

// ParsePropertyName returns the leading underscore-separated token of an
// export's file name, e.g. "BERHG_DailyTotals_2024.csv" gives "BERHG".
// The label is for display only.
func ParsePropertyName(fileName string) string {
	if fileName == "" {
		return ""
	}
	base := filepath.Base(strings.ReplaceAll(fileName, `\`, "/"))
	name, _, _ := strings.Cut(base, "_")
	return name
}
