package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// readRecords reads an entire CSV stream and splits it into header and data
// rows. An empty file or a header-only file yields a nil row slice, which
// loaders turn into an empty table rather than an error.
func readRecords(r io.Reader) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

// openFile opens a dataset file for one of the LoadXxxFile variants.
func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, nil
}

// field returns the trimmed cell for a resolved column index, or "" when the
// row is too short.
func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseCount coerces a cell to a non-negative integer. Vote totals sometimes
// arrive with thousands separators; strip them before converting.
func parseCount(s string) (int, bool) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseFloat(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PadFIPS zero-pads a county FIPS code to five digits. CSV exports routinely
// drop the leading zero for states 01-09.
func PadFIPS(s string) string {
	s = strings.TrimSpace(s)
	for len(s) < 5 {
		s = "0" + s
	}
	return s
}
