package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
)

// ParseCSV reads people from a table with "Name" and "Start Date" columns.
// Column order is free and extra columns are ignored. The whole file is validated
// before anything is returned: a single bad row fails the import with engine.ErrImportFailure.
func ParseCSV(r io.Reader) ([]engine.Person, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, importFailure(config.ErrCSVHeader, err)
		}
		return nil, importFailure(config.ErrCSVRead, err)
	}

	nameCol, dateCol := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, config.UTF8BOM))
		switch h {
		case config.ColumnName:
			nameCol = i
		case config.ColumnStartDate:
			dateCol = i
		}
	}
	if nameCol < 0 || dateCol < 0 {
		return nil, importFailure(config.ErrCSVHeader, fmt.Errorf("got %q", header))
	}

	var people []engine.Person
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, importFailure(config.ErrCSVRead, err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		if nameCol >= len(record) || dateCol >= len(record) {
			return nil, importFailure(config.ErrCSVRow, fmt.Errorf("line %d: missing columns", line))
		}

		start, err := engine.ParseDate(record[dateCol])
		if err != nil {
			return nil, importFailure(config.ErrCSVRow, fmt.Errorf("line %d: %w", line, err))
		}
		p, err := engine.NewPerson(record[nameCol], start)
		if err != nil {
			return nil, importFailure(config.ErrCSVRow, fmt.Errorf("line %d: %w", line, err))
		}
		people = append(people, p)
	}

	return people, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func importFailure(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", engine.ErrImportFailure, msg, err)
}
