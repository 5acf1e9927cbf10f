package fts

import (
	"fmt"
	"time"

	"ftscli/internal/errors"
)

// dateLayouts are the formats the FTS API is known to emit for date fields
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDates parses the named columns' string cells into time.Time in
// place. It is skipped entirely on zero-row tables, where the columns carry
// no cells to convert against. A missing column on a non-empty table or an
// unparseable date string is an error that propagates to the caller.
func NormalizeDates(t *Table, columns []string) error {
	if t.IsEmpty() {
		return nil
	}

	for _, name := range columns {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			return errors.NewValidationError(
				fmt.Sprintf("date column %q not present in table", name))
		}

		for rowNum, row := range t.Rows {
			cell := row[idx]
			switch v := cell.(type) {
			case nil:
				// field missing from the record, nothing to convert
			case time.Time:
				// already normalized
			case string:
				parsed, err := parseDate(v)
				if err != nil {
					return errors.NewParsingError(
						fmt.Sprintf("column %q row %d", name, rowNum), err)
				}
				row[idx] = parsed
			default:
				return errors.NewParsingError(
					fmt.Sprintf("column %q row %d holds non-string value %v", name, rowNum, v), nil)
			}
		}
	}

	return nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date string %q", value)
}
