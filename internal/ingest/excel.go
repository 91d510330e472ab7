package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadExcel loads the first sheet of an .xlsx upload. Cell values come
// back as display strings; Excel serial dates survive as their numeric
// text and are recognized downstream.
func ReadExcel(r io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abriendo xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &RawTable{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leyendo hoja %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &RawTable{}, nil
	}
	return &RawTable{
		Headers: cleanHeaders(rows[0]),
		Records: rows[1:],
	}, nil
}
