package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pathfinder/internal/eligibility"
)

// SheetName is the sheet written by ExportXLSX.
const SheetName = "Scholarships"

// columns lists the spreadsheet header, in export order. Tag and facet
// columns hold comma-separated values.
var columns = []string{
	"id", "name", "message", "source", "description", "url", "permalink_url",
	"location", "fundingType", "amount", "deadline", "eligibility", "education_level",
	"eligibilityTags", "study_destinations", "fields", "education_levels",
}

func setColumn(s *eligibility.Scholarship, column, value string) {
	value = strings.TrimSpace(value)
	switch column {
	case "id":
		s.ID = eligibility.Text(value)
	case "name":
		s.Name = value
	case "message":
		s.Message = value
	case "source":
		s.Source = value
	case "description":
		s.Description = value
	case "url":
		s.URL = value
	case "permalink_url":
		s.PermalinkURL = value
	case "location":
		s.Location = value
	case "fundingtype", "funding_type":
		s.FundingType = value
	case "amount":
		s.Amount = eligibility.Text(value)
	case "deadline":
		s.Deadline = value
	case "eligibility":
		s.Eligibility = value
	case "education_level":
		s.EducationLevel = value
	case "eligibilitytags", "eligibility_tags", "tags":
		s.EligibilityTags = eligibility.ParseTokens(value)
	case "study_destinations":
		s.StudyDestinations = eligibility.ParseTokens(value)
	case "fields":
		s.Fields = eligibility.ParseTokens(value)
	case "education_levels":
		s.EducationLevels = eligibility.ParseTokens(value)
	}
}

func columnValues(s *eligibility.Scholarship) []any {
	join := func(t eligibility.TokenSet) string { return strings.Join(t, ", ") }
	return []any{
		string(s.ID), s.Name, s.Message, s.Source, s.Description, s.URL, s.PermalinkURL,
		s.Location, s.FundingType, string(s.Amount), s.Deadline, s.Eligibility, s.EducationLevel,
		join(s.EligibilityTags), join(s.StudyDestinations), join(s.Fields), join(s.EducationLevels),
	}
}

// ReadXLSX reads the first sheet of a workbook. The first row is a header
// naming the columns; unknown columns are ignored and blank rows skipped.
func ReadXLSX(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return New(nil), nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	records := make([]eligibility.Scholarship, 0, len(rows)-1)
	for n, row := range rows[1:] {
		var s eligibility.Scholarship
		blank := true
		for i, cell := range row {
			if i >= len(header) || strings.TrimSpace(cell) == "" {
				continue
			}
			blank = false
			setColumn(&s, header[i], cell)
		}
		if blank {
			continue
		}
		if s.Title() == "Untitled" {
			slog.Warn("scholarship row has no name or message", "row", n+2)
		}
		records = append(records, s)
	}
	return New(records), nil
}

// ImportXLSX reads a catalog from a workbook file.
func ImportXLSX(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer file.Close()

	return ReadXLSX(file)
}

// WriteXLSX writes the catalog as a single-sheet workbook.
func (c *Catalog) WriteXLSX(w io.Writer) error {
	f, err := c.workbook()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// ExportXLSX writes the catalog to a workbook file.
func (c *Catalog) ExportXLSX(path string) error {
	f, err := c.workbook()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func (c *Catalog) workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i := range c.records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		values := columnValues(&c.records[i])
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f, nil
}
