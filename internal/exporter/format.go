package exporter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// timestampLayout matches the format downstream CKAN ingestion expects
const timestampLayout = "2006-01-02 15:04:05"

// formatCell renders a table cell for CSV output. Numbers are emitted
// exactly as they appeared on the wire, nulls as empty fields.
func formatCell(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(timestampLayout)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
