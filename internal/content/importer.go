package content

import (
	"fmt"
	"strings"

	"lingo-days/internal/domain"

	"github.com/xuri/excelize/v2"
)

// VocabularySheet describes where vocabulary columns live in a workbook.
type VocabularySheet struct {
	SheetName           string
	WordColumn          int // zero-based
	TranslationColumn   int
	PronunciationColumn int // -1 when absent
	ExampleColumn       int // -1 when absent
	SkipHeader          bool
}

// DefaultVocabularySheet matches the course team's template: word, translation,
// pronunciation, example, with a header row.
func DefaultVocabularySheet() VocabularySheet {
	return VocabularySheet{
		SheetName:           "Sheet1",
		WordColumn:          0,
		TranslationColumn:   1,
		PronunciationColumn: 2,
		ExampleColumn:       3,
		SkipHeader:          true,
	}
}

// ImportResult summarizes a vocabulary import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
}

// ReadVocabularyXLSX reads vocabulary rows from an Excel workbook.
func ReadVocabularyXLSX(path string, sheet VocabularySheet) ([]domain.VocabularyItem, *ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	return readVocabulary(f, sheet)
}

func readVocabulary(f *excelize.File, sheet VocabularySheet) ([]domain.VocabularyItem, *ImportResult, error) {
	rows, err := f.GetRows(sheet.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet.SheetName, err)
	}

	result := &ImportResult{}
	items := make([]domain.VocabularyItem, 0, len(rows))
	for i, row := range rows {
		if i == 0 && sheet.SkipHeader {
			continue
		}
		word := cell(row, sheet.WordColumn)
		translation := cell(row, sheet.TranslationColumn)
		if word == "" && translation == "" {
			result.Skipped++
			continue
		}
		if word == "" || translation == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: word and translation are both required", i+1))
			continue
		}
		items = append(items, domain.VocabularyItem{
			Word:          word,
			Translation:   translation,
			Pronunciation: cell(row, sheet.PronunciationColumn),
			Example:       cell(row, sheet.ExampleColumn),
		})
		result.Imported++
	}
	return items, result, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
