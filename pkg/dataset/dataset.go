// Package dataset reads golden datasets from CSV files. Each row supplies
// template variables by column name plus one distinguished expected-output
// column.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// DefaultExpectedColumn is the column holding the expected-output spec when
// no override is configured.
const DefaultExpectedColumn = "expected_output"

// DatasetError indicates the dataset source was unreadable or malformed.
type DatasetError struct {
	Path string
	Err  error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }

// Row is a single dataset entry: the template variables keyed by column name
// and the expected-output spec extracted from the distinguished column.
type Row struct {
	// Index is the 1-based position of the row in the file, header excluded.
	Index    int
	Vars     map[string]string
	Expected string
}

// Load reads all rows from the CSV file at path, in file order. The column
// named expectedColumn (DefaultExpectedColumn if empty) is removed from each
// row's variable map and stored as the expected-output spec; a dataset
// without that column simply yields rows with no assertion. Variable names
// are not checked against any template; unused columns are harmless.
func Load(path, expectedColumn string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DatasetError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := parse(f, expectedColumn)
	if err != nil {
		return nil, &DatasetError{Path: path, Err: err}
	}
	return rows, nil
}

func parse(r io.Reader, expectedColumn string) ([]Row, error) {
	if expectedColumn == "" {
		expectedColumn = DefaultExpectedColumn
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}

		row := Row{
			Index: len(rows) + 1,
			Vars:  make(map[string]string, len(header)),
		}
		for i, name := range header {
			if name == expectedColumn {
				row.Expected = record[i]
				continue
			}
			row.Vars[name] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
