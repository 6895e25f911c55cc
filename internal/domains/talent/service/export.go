package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/shared/apperror"
)

const rosterSheet = "Talents"

// ExportRoster renders every talent, in listing order, as csv or xlsx.
func (s *talentService) ExportRoster(ctx context.Context, format model.ExportFormat) (*model.RosterExport, error) {
	if format == "" {
		format = model.ExportCSV
	}
	if format != model.ExportCSV && format != model.ExportXLSX {
		return nil, apperror.Validation("format must be csv or xlsx", nil)
	}

	talents, err := s.repo.List(ctx, model.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list talents: %w", err)
	}

	rows := make([][]string, 0, len(talents))
	for _, t := range talents {
		rows = append(rows, rosterRow(t))
	}

	stamp := s.now().Format("20060102_150405")
	switch format {
	case model.ExportXLSX:
		data, err := buildRosterExcel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to build excel file: %w", err)
		}
		return &model.RosterExport{
			Filename:    fmt.Sprintf("talents_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		data, err := buildRosterCSV(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to build csv file: %w", err)
		}
		return &model.RosterExport{
			Filename:    fmt.Sprintf("talents_%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	}
}

func rosterRow(t *model.Talent) []string {
	return []string{
		escapeCell(t.Name),
		escapeCell(t.Email),
		escapeCell(t.Phone),
		escapeCell(t.InstagramID),
		escapeCell(string(t.Category)),
		string(t.Status),
		strconv.Itoa(t.Rank),
		strconv.Itoa(t.VoteCount),
	}
}

// escapeCell keeps spreadsheet apps from evaluating talent-supplied text as a formula
func escapeCell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}

func buildRosterCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.RosterHeaders); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildRosterExcel(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, err
	}

	for colIdx, header := range model.RosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(rosterSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(model.RosterHeaders), 1)
		f.SetCellStyle(rosterSheet, "A1", last, headerStyle)
	}

	// Rank and Votes are written as numbers so the sheet sorts correctly
	numeric := map[int]bool{6: true, 7: true}
	for i, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, i+2)
			if numeric[colIdx] {
				n, _ := strconv.Atoi(value)
				f.SetCellValue(rosterSheet, cell, n)
				continue
			}
			f.SetCellValue(rosterSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
