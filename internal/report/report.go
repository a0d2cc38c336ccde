// Package report appends measurement records to a CSV file.
//
// The file has one header row followed by one row per measurement:
//
//	backend,algorithm,size,time_setup,min_time,rate
//
// Rows are only ever appended; existing rows are never read or rewritten
// when recording.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
)

// Header is the first row of every report.
var Header = []string{"backend", "algorithm", "size", "time_setup", "min_time", "rate"}

// Common errors.
var (
	ErrBadHeader = errors.New("report: unexpected header")
	ErrBadRow    = errors.New("report: malformed row")
)

// Row is one measurement record.
type Row struct {
	Backend   string
	Algorithm string
	Size      int
	TimeSetup bool
	MinTime   float64 // seconds
	Rate      float64 // evaluations per second
}

// Record returns the CSV fields of r in Header order.
func (r Row) Record() []string {
	return []string{
		r.Backend,
		r.Algorithm,
		strconv.Itoa(r.Size),
		strconv.FormatBool(r.TimeSetup),
		strconv.FormatFloat(r.MinTime, 'g', -1, 64),
		strconv.FormatFloat(r.Rate, 'g', 6, 64),
	}
}

// Append adds row to the report at path, creating the file with a header if
// it does not exist or is empty. The row is formatted completely before a
// single write so a failure never leaves a partial record.
func Append(path string, row Row) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("report: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("report: stat %s: %w", path, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return err
		}
	}
	if err := w.Write(row.Record()); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return f.Close()
}

// ReadAll parses every row of the report at path.
func ReadAll(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("report: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("report: read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if !slices.Equal(records[0], Header) {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, records[0])
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	size, err := strconv.Atoi(rec[2])
	if err != nil {
		return Row{}, fmt.Errorf("%w: size: %w", ErrBadRow, err)
	}
	timeSetup, err := strconv.ParseBool(rec[3])
	if err != nil {
		return Row{}, fmt.Errorf("%w: time_setup: %w", ErrBadRow, err)
	}
	minTime, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: min_time: %w", ErrBadRow, err)
	}
	rate, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: rate: %w", ErrBadRow, err)
	}
	return Row{
		Backend:   rec[0],
		Algorithm: rec[1],
		Size:      size,
		TimeSetup: timeSetup,
		MinTime:   minTime,
		Rate:      rate,
	}, nil
}
