package feedex

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
)

// csvColumns is the fixed export column order.
var csvColumns = []string{"name", "title", "period", "details", "company", "location", "post_index"}

// MarshalRecordsCSV renders records as CSV with a fixed column order,
// one row per record.
func MarshalRecordsCSV(records []*Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvColumns); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			rec.Name,
			rec.Title,
			rec.Period,
			rec.Details,
			rec.Company,
			rec.Location,
			strconv.Itoa(rec.PostIndex),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportDocument is the JSON export envelope: the record sequence plus
// its quality report.
type ExportDocument struct {
	Records []*Record      `json:"records"`
	Report  *QualityReport `json:"report,omitempty"`
}

// MarshalResultJSON renders records and their quality report as an
// indented JSON document.
func MarshalResultJSON(records []*Record, report *QualityReport) ([]byte, error) {
	doc := ExportDocument{Records: records, Report: report}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalResultJSON parses a JSON export back into records and
// report. Exporting and re-importing yields an identical record
// sequence, field for field.
func UnmarshalResultJSON(data []byte) ([]*Record, *QualityReport, error) {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, Errorf(EINVALID, "invalid export document: %v", err)
	}
	return doc.Records, doc.Report, nil
}
