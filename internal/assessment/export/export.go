// Package export renders a response collection in the two interchange
// formats: CSV (one encoded row per record) and JSON (array of record
// objects with multi-valued fields as arrays).
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/utechsu/councilpulse/internal/assessment"
)

// WriteCSV writes the collection as tabular data: header row of field
// names, then one encoded row per record.
func WriteCSV(w io.Writer, rs []assessment.Response) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(assessment.FieldNames); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rs {
		if err := cw.Write(assessment.EncodeRow(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteJSON writes the collection as an indented JSON array of records.
func WriteJSON(w io.Writer, rs []assessment.Response) error {
	if rs == nil {
		rs = []assessment.Response{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs); err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	return nil
}

// ReadJSON parses an interchange file. A single record object is accepted
// in place of an array, matching historic export files.
func ReadJSON(r io.Reader) ([]assessment.Response, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}

	var rs []assessment.Response
	if err := json.Unmarshal(data, &rs); err == nil {
		return normalizeAll(rs), nil
	}

	var single assessment.Response
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	return normalizeAll([]assessment.Response{single}), nil
}

func normalizeAll(rs []assessment.Response) []assessment.Response {
	for i := range rs {
		rs[i].Normalize()
	}
	return rs
}
