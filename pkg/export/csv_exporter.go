package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// TimetableHeaders is the column order for timetable exports. It doubles as
// the default column set for datasets that name no headers of their own.
var TimetableHeaders = []string{"Day", "Start", "End", "Course Code", "Course Name", "Faculty", "Room"}

// Dataset defines tabular export content. Rows are keyed by header name so
// the column order lives in one place.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders datasets into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces one CSV record per dataset row, columns in header order.
// Datasets without headers render with the timetable column set.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	headers := data.Headers
	if len(headers) == 0 {
		headers = TimetableHeaders
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(headers))
	for _, row := range data.Rows {
		for i, header := range headers {
			record[i] = row[header]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
