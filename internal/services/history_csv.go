package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const PeriodStartColumn = "period_start"

var (
	ErrHistoryUnreadable    = errors.New("history file unreadable")
	ErrHistoryColumnMissing = errors.New("history period_start column missing")
	ErrHistoryEmpty         = errors.New("history has no rows")
)

var historyDelimiters = []rune{',', ';', '\t', '|'}

// ReadPeriodStartColumn returns the raw period_start cells of a delimited file, one per
// data row, in file order. Values are not validated here.
func ReadPeriodStartColumn(reader io.Reader) ([]string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryUnreadable, err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrHistoryEmpty
	}

	csvReader := csv.NewReader(bytes.NewReader(content))
	csvReader.Comma = sniffDelimiter(content)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, ErrHistoryEmpty
	}

	column := -1
	for index, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), PeriodStartColumn) {
			column = index
			break
		}
	}
	if column < 0 {
		return nil, ErrHistoryColumnMissing
	}

	values := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if column >= len(row) {
			values = append(values, "")
			continue
		}
		values = append(values, row[column])
	}
	if len(values) == 0 {
		return nil, ErrHistoryEmpty
	}
	return values, nil
}

func sniffDelimiter(content []byte) rune {
	headerLine := content
	if newline := bytes.IndexByte(content, '\n'); newline >= 0 {
		headerLine = content[:newline]
	}

	best := ','
	bestCount := 0
	for _, delimiter := range historyDelimiters {
		count := bytes.Count(headerLine, []byte(string(delimiter)))
		if count > bestCount {
			best = delimiter
			bestCount = count
		}
	}
	return best
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
