// Package importer reads word lists uploaded as CSV or XLSX files.
//
// Each row is (term, translation, part_of_speech, example); the last two
// columns are optional.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/VA-creat/eassylang/internal/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file extensions other than .csv, .txt and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// SupportedExtensions lists accepted upload extensions.
var SupportedExtensions = []string{".csv", ".txt", ".xlsx"}

// Supported reports whether filename has an accepted extension.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadRows reads every row of r, choosing the format from filename's extension.
func ReadRows(filename string, r io.Reader) ([]models.ImportRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadCSV reads UTF-8 CSV rows with a variable number of fields. Invalid UTF-8
// bytes are dropped.
func ReadCSV(r io.Reader) ([]models.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []models.ImportRow
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if line == 1 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}
		rows = append(rows, rowFromCells(line, record))
	}
	return dropHeader(rows), nil
}

// ReadXLSX reads rows from the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([]models.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	rows := make([]models.ImportRow, 0, len(cells))
	for i, record := range cells {
		rows = append(rows, rowFromCells(i+1, record))
	}
	return dropHeader(rows), nil
}

func rowFromCells(line int, cells []string) models.ImportRow {
	cell := func(i int) string {
		if i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(strings.ToValidUTF8(cells[i], ""))
	}
	return models.ImportRow{
		Line:        line,
		Term:        cell(0),
		Translation: cell(1),
		Part:        cell(2),
		Example:     cell(3),
	}
}

// dropHeader removes a leading "term,translation,..." header row.
func dropHeader(rows []models.ImportRow) []models.ImportRow {
	if len(rows) == 0 {
		return rows
	}
	first := rows[0]
	if strings.EqualFold(first.Term, "term") && strings.EqualFold(first.Translation, "translation") {
		return rows[1:]
	}
	return rows
}

// Words turns raw rows into words for languageID. Blank rows are ignored;
// rows missing a term or translation are counted as invalid.
func Words(languageID int64, rows []models.ImportRow) (words []models.Word, invalid int) {
	for _, row := range rows {
		if row.Blank() {
			continue
		}
		if row.Term == "" || row.Translation == "" {
			invalid++
			continue
		}
		words = append(words, models.Word{
			LanguageID:   languageID,
			Term:         row.Term,
			Translation:  row.Translation,
			PartOfSpeech: models.ParsePartOfSpeech(row.Part),
			Example:      row.Example,
		})
	}
	return words, invalid
}
