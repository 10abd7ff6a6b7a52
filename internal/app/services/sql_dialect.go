package services

import (
	"fmt"

	"gorm.io/gorm"
)

// sqlDialect renders the few date and string expressions that differ
// between postgres and sqlite. Everything else in the query catalog is
// plain SQL shared by both engines.
type sqlDialect struct {
	name string
}

func dialectOf(db *gorm.DB) sqlDialect {
	return sqlDialect{name: db.Dialector.Name()}
}

func (d sqlDialect) isSQLite() bool {
	return d.name == "sqlite"
}

// month renders col as YYYY-MM
func (d sqlDialect) month(col string) string {
	if d.isSQLite() {
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", col)
	}
	return fmt.Sprintf("to_char(date_trunc('month', %s), 'YYYY-MM')", col)
}

func (d sqlDialect) year(col string) string {
	if d.isSQLite() {
		return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", col)
	}
	return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", col)
}

func (d sqlDialect) quarter(col string) string {
	if d.isSQLite() {
		return fmt.Sprintf("((CAST(strftime('%%m', %s) AS INTEGER) + 2) / 3)", col)
	}
	return fmt.Sprintf("CAST(EXTRACT(QUARTER FROM %s) AS INTEGER)", col)
}

// daysBetween renders the fractional number of days from one timestamp
// column to another.
func (d sqlDialect) daysBetween(from, to string) string {
	if d.isSQLite() {
		return fmt.Sprintf("(julianday(%s) - julianday(%s))", to, from)
	}
	return fmt.Sprintf("(EXTRACT(EPOCH FROM (%s - %s)) / 86400.0)", to, from)
}

// distinctList joins the distinct values of col with ", ". sqlite only
// supports the default separator for DISTINCT aggregates, so it comes out
// as ",".
func (d sqlDialect) distinctList(col string) string {
	if d.isSQLite() {
		return fmt.Sprintf("GROUP_CONCAT(DISTINCT %s)", col)
	}
	return fmt.Sprintf("STRING_AGG(DISTINCT %s, ', ')", col)
}
