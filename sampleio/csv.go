// Package sampleio reads and writes flip-count samples.
package sampleio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVHeader is the single column name of a sample file.
const CSVHeader = "number of cards flipped"

// ErrMalformedSample is returned for entries that are not non-negative integers.
var ErrMalformedSample = errors.New("malformed sample entry")

// WriteCSV writes the header followed by one flip count per row.
func WriteCSV(w io.Writer, sample []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{CSVHeader}); err != nil {
		return err
	}
	for _, flips := range sample {
		if err := cw.Write([]string{strconv.Itoa(flips)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a sample. Header rows are skipped wherever they appear;
// only the first column of each row is read.
func ReadCSV(r io.Reader) ([]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var sample []int
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		field := strings.TrimSpace(record[0])
		if field == CSVHeader {
			continue
		}
		flips, err := strconv.Atoi(field)
		if err != nil || flips < 0 {
			return nil, fmt.Errorf("%w: row %d: %q", ErrMalformedSample, row, field)
		}
		sample = append(sample, flips)
	}
	return sample, nil
}

// WriteCSVFile creates or truncates path and writes the sample to it.
func WriteCSVFile(path string, sample []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sample file: %w", err)
	}
	if err := WriteCSV(f, sample); err != nil {
		f.Close()
		return fmt.Errorf("failed to write sample file %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSVFile reads the sample stored at path.
func ReadCSVFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer f.Close()

	sample, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sample, nil
}

// NormalizeCSVName falls back to def for an empty name and makes sure
// the name ends in .csv.
func NormalizeCSVName(name, def string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = def
	}
	if !strings.HasSuffix(name, ".csv") {
		name += ".csv"
	}
	return name
}
