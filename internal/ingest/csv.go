package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadCSV loads a whole CSV upload. The upstream exports are messy:
// latin-1 or UTF-8 with or without BOM, and either ';' or ',' as the
// separator, so the decoder sniffs both before parsing.
func ReadCSV(r io.Reader) (*RawTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leyendo csv: %w", err)
	}
	return parseCSV(decodeText(raw), sniffSeparator(raw))
}

// ReadCSVWithSeparator loads a CSV with a fixed separator (the audit
// export is always semicolon-separated, commas appear inside scores).
func ReadCSVWithSeparator(r io.Reader, sep rune) (*RawTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leyendo csv: %w", err)
	}
	return parseCSV(decodeText(raw), sep)
}

// decodeText strips the BOM and falls back to latin-1 when the payload
// is not valid UTF-8.
func decodeText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// sniffSeparator picks ';' when it outnumbers ',' in the payload.
func sniffSeparator(raw []byte) rune {
	if bytes.Count(raw, []byte{';'}) > bytes.Count(raw, []byte{','}) {
		return ';'
	}
	return ','
}

func parseCSV(text string, sep rune) (*RawTable, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parseando csv: %w", err)
	}
	if len(rows) == 0 {
		return &RawTable{}, nil
	}
	return &RawTable{
		Headers: cleanHeaders(rows[0]),
		Records: rows[1:],
	}, nil
}
