package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"github.com/xuri/excelize/v2"
)

const (
	// ReportFileName is the default name of the project report workbook.
	ReportFileName = "planejamento_semanal.xlsx"

	SheetProjects = "Projetos"
	SheetSummary  = "Resumo"
)

// Report is everything written to a project workbook.
type Report struct {
	Rows        []Row
	Summary     tracking.Summary
	GeneratedAt time.Time
	Location    *time.Location
}

// BuildReport derives rows and the status summary for projects at now.
func BuildReport(projects []domain.Project, now time.Time, loc *time.Location) Report {
	return Report{
		Rows:        BuildRows(projects, now, loc),
		Summary:     tracking.Summarize(projects, now, loc),
		GeneratedAt: now,
		Location:    loc,
	}
}

// WriteReport serializes r as an xlsx workbook with the project sheet
// followed by the summary sheet.
func WriteReport(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetProjects); err != nil {
		return fmt.Errorf("naming project sheet: %w", err)
	}
	if err := writeProjectSheet(f, r.Rows); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, r); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveReport writes r to path.
func SaveReport(path string, r Report) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteReport(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeProjectSheet(f *excelize.File, rows []Row) error {
	if err := writeHeader(f, SheetProjects, Headers); err != nil {
		return err
	}

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("creating wrap style: %w", err)
	}

	for i, r := range rows {
		cells := make([]any, len(r))
		for j, c := range r {
			cells[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetProjects, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	for i, w := range ColumnWidths(rows) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetProjects, col, col, float64(w)); err != nil {
			return fmt.Errorf("setting width of %s: %w", col, err)
		}
	}

	for i, h := range RowHeights(rows) {
		if h == 0 {
			continue
		}
		if err := f.SetRowHeight(SheetProjects, i+2, h); err != nil {
			return fmt.Errorf("setting height of row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(Headers), len(rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetProjects, "A2", last, wrap); err != nil {
			return fmt.Errorf("styling rows: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r Report) error {
	if err := writeHeader(f, SheetSummary, []string{"Status", "Quantidade"}); err != nil {
		return err
	}

	lines := make([][]any, 0, len(domain.Statuses)+4)
	for _, st := range domain.Statuses {
		lines = append(lines, []any{string(st), r.Summary.Count(st)})
	}
	lines = append(lines,
		[]any{"Total", r.Summary.Total},
		[]any{"Críticos", r.Summary.Critical},
		[]any{"Criados hoje", r.Summary.ProjectsCreated},
		[]any{"Concluídos hoje", r.Summary.ProjectsCompleted},
		[]any{"Gerado em", FormatDateTime(at(r.GeneratedAt), r.Location)},
	)

	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &line); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+2, err)
		}
	}
	return f.SetColWidth(SheetSummary, "A", "A", 20)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, bold)
}
