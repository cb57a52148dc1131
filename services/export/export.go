package exportsvc

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/campusdesk/portal/core/progress"
)

// SheetName is the title of the exported report.
const SheetName = "Combined Progress Report"

type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown format, must be one of json, xlsx or csv")

// ParseFormat parses a format name; an empty name is FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatXLSX, FormatCSV:
		return f, nil
	}
	return "", ErrUnknownFormat
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/json; charset=UTF-8"
}

// Filename is the attachment name of a report in this format.
func (f Format) Filename() string {
	return "progress-report." + string(f)
}

// Write renders the rows in the given file format.
func Write(f Format, w io.Writer, rows []progress.ReportRow) error {
	switch f {
	case FormatXLSX:
		return XLSX(w, rows)
	case FormatCSV:
		return CSV(w, rows)
	}
	return ErrUnknownFormat
}

// XLSX writes the rows as a spreadsheet: a header row then one row per report row.
func XLSX(w io.Writer, rows []progress.ReportRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return errors.Wrap(err, "creating sheet")
	}
	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "deleting default sheet")
	}

	if err = setRow(f, 1, progress.Columns); err != nil {
		return err
	}
	for i, cells := range progress.RenderAll(rows) {
		values := cells.Values()
		if err = setRow(f, i+2, values); err != nil {
			return err
		}
		// keep SR numeric
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err = f.SetCellValue(SheetName, cell, cells.SR); err != nil {
			return errors.Wrap(err, "setting cell value")
		}
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "writing spreadsheet")
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return errors.Wrap(err, "getting cell name")
		}
		if err = f.SetCellValue(SheetName, cell, v); err != nil {
			return errors.Wrap(err, "setting cell value")
		}
	}
	return nil
}

// CSV writes the rows as comma separated values with a header line.
func CSV(w io.Writer, rows []progress.ReportRow) error {
	cells := progress.RenderAll(rows)
	if len(cells) == 0 {
		_, err := io.WriteString(w, strings.Join(progress.Columns, ",")+"\n")
		return err
	}
	if err := gocsv.Marshal(&cells, w); err != nil {
		return errors.Wrap(err, "writing csv")
	}
	return nil
}
