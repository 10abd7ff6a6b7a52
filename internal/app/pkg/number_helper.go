package pkg

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundScore rounds an aggregate score to two decimal places.
func RoundScore(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}

// RoundScorePtr is RoundScore for nullable aggregates.
func RoundScorePtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	rounded := RoundScore(*value)
	return &rounded
}

// ParseUintList parses "1,2,3" into ids, skipping blanks.
func ParseUintList(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range SplitList(raw) {
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// SplitList splits a comma separated query value.
func SplitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}
