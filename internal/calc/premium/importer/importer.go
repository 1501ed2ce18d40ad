// Package importer reads conveyor specs from an xlsx workbook and runs them
// through the batch evaluator.
//
// The first sheet is read. Row 1 is a header; each following row is
//
//	material | capacity_tph | width_mm | speed_mps | length_m | lift_m | trough_deg | lump_mm
//
// lump_mm may be left blank.
package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Beltline/internal/calc/conveyor"
	"Beltline/internal/calc/premium/batch"
	errs "Beltline/internal/errors"
	"Beltline/internal/material"
)

// Columns is the header row written by Template.
var Columns = []string{
	"material", "capacity_tph", "width_mm", "speed_mps",
	"length_m", "lift_m", "trough_deg", "lump_mm",
}

const requiredColumns = 7

// RowError is a spreadsheet row that could not be turned into a spec.
// Row is 1-based, as shown in a spreadsheet application.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type Sheet struct {
	Items []batch.Item `json:"items"`
	Rows  []int        `json:"rows"`
	Bad   []RowError   `json:"bad,omitempty"`
}

type Result struct {
	Batch   batch.Result `json:"batch"`
	Rows    []int        `json:"rows"`
	Skipped []RowError   `json:"skipped,omitempty"`
}

// Parse reads the workbook. Malformed rows are collected in Sheet.Bad
// rather than failing the whole file.
func Parse(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, errs.Wrapf(errs.ErrInvalidInput, "open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Sheet{}, errs.Wrapf(errs.ErrInvalidInput, "read sheet: %v", err)
	}
	if len(rows) < 2 {
		return Sheet{}, errs.Wrap(errs.ErrInvalidInput, "sheet has no data rows")
	}

	var s Sheet
	for i, row := range rows[1:] {
		line := i + 2
		if blank(row) {
			continue
		}
		item, err := parseRow(row)
		if err != nil {
			s.Bad = append(s.Bad, RowError{Row: line, Error: err.Error()})
			continue
		}
		s.Items = append(s.Items, item)
		s.Rows = append(s.Rows, line)
	}
	if len(s.Items) == 0 {
		return s, errs.WithHint(
			errs.Wrap(errs.ErrInvalidInput, "no usable rows"),
			"columns: "+strings.Join(Columns, ", "))
	}
	return s, nil
}

// Import parses the workbook and evaluates every usable row.
func Import(cat *material.Catalog, r io.Reader) (Result, error) {
	s, err := Parse(r)
	if err != nil {
		return Result{}, err
	}
	b, err := batch.Evaluate(cat, s.Items)
	if err != nil {
		return Result{}, err
	}
	return Result{Batch: b, Rows: s.Rows, Skipped: s.Bad}, nil
}

func parseRow(row []string) (batch.Item, error) {
	if len(row) < requiredColumns {
		return batch.Item{}, errs.Newf("expected at least %d columns, got %d", requiredColumns, len(row))
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return batch.Item{}, errs.New("material is empty")
	}

	vals := make([]float64, len(Columns)-1)
	for c := 1; c < len(Columns); c++ {
		if c >= len(row) || strings.TrimSpace(row[c]) == "" {
			if c < requiredColumns {
				return batch.Item{}, errs.Newf("%s is empty", Columns[c])
			}
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
		if err != nil {
			return batch.Item{}, errs.Newf("%s: %q is not a number", Columns[c], row[c])
		}
		vals[c-1] = v
	}

	return batch.Item{
		Material: name,
		Spec: conveyor.Spec{
			CapacityTPH: vals[0],
			BeltWidthMM: vals[1],
			SpeedMPS:    vals[2],
			LengthM:     vals[3],
			LiftM:       vals[4],
			TroughDeg:   vals[5],
			MaxLumpMM:   vals[6],
		},
	}, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Template returns an empty workbook with the header row filled in.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(f.GetSheetName(0), "A1", &header); err != nil {
		f.Close()
		return nil, errs.Wrap(err, "write header")
	}
	return f, nil
}
