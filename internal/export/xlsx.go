package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/multikids/portage/internal/report"
	"github.com/multikids/portage/internal/scoring"
)

// Sheet names of the spreadsheet export.
const (
	SheetSummary  = "Resumo"
	SheetTimeline = "Linha do tempo"
	SheetGoals    = "Metas"
)

var (
	summaryHeader  = []string{"Área", "Faixa etária", "Pontos", "Máximo", "Percentual", "Ideal", "Classificação"}
	timelineHeader = []string{"Data", "Área", "Faixa etária", "Pontos", "Máximo", "Percentual"}
	goalsHeader    = []string{"Área", "Classificação", "Atual", "Meta", "Ideal", "Progresso", "Ações recomendadas"}
)

// XLSX writes the report as a workbook with a summary, timeline and goals sheet.
func XLSX(w io.Writer, in Input) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := buildWorkbook(f, in); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f      *excelize.File
	header int
	tiers  map[scoring.Class]int
}

func buildWorkbook(f *excelize.File, in Input) error {
	sw := &sheetWriter{f: f, tiers: map[scoring.Class]int{}}

	var err error
	sw.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	for _, c := range []scoring.Class{scoring.Adequado, scoring.Atencao, scoring.Intervencao} {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{c.Color()}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("create %s style: %w", c.Label(), err)
		}
		sw.tiers[c] = id
	}

	index, err := f.NewSheet(SheetSummary)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := sw.summary(in); err != nil {
		return err
	}
	if err := sw.timeline(in); err != nil {
		return err
	}
	return sw.goals(in)
}

func (sw *sheetWriter) summary(in Input) error {
	const sheet = SheetSummary
	if err := sw.headerRow(sheet, summaryHeader); err != nil {
		return err
	}
	row := 2
	for _, s := range in.Full.Report.Summaries {
		values := []any{string(s.Category), s.AgeBand, s.Raw, s.Max, s.Percentage, s.Ideal, s.Class.Label()}
		if err := sw.row(sheet, row, values); err != nil {
			return err
		}
		if err := sw.tierCell(sheet, 7, row, s.Class); err != nil {
			return err
		}
		row++
	}

	row++
	footer := [][]any{
		{"Criança", in.Full.Child.Name},
		{"Idade", in.Full.Child.Age},
		{"Total de avaliações", in.Full.Report.TotalEvaluations},
		{"Média geral", in.Full.Report.Average},
		{"Data", formatDate(in.Full.GeneratedAt)},
	}
	if in.Therapist != "" {
		footer = append(footer, []any{"Terapeuta", in.Therapist})
	}
	for _, values := range footer {
		if err := sw.row(sheet, row, values); err != nil {
			return err
		}
		row++
	}
	return sw.f.SetColWidth(sheet, "A", "G", 16)
}

func (sw *sheetWriter) timeline(in Input) error {
	const sheet = SheetTimeline
	if _, err := sw.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := sw.headerRow(sheet, timelineHeader); err != nil {
		return err
	}
	for i, e := range in.Full.Timeline {
		values := []any{formatDate(e.Date), string(e.Category), e.AgeBand, e.Raw, e.Max, e.Percentage()}
		if err := sw.row(sheet, i+2, values); err != nil {
			return err
		}
	}
	return sw.f.SetColWidth(sheet, "A", "F", 16)
}

func (sw *sheetWriter) goals(in Input) error {
	const sheet = SheetGoals
	if _, err := sw.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := sw.headerRow(sheet, goalsHeader); err != nil {
		return err
	}
	row := 2
	for _, g := range in.Full.Goals {
		for i, action := range g.Actions {
			values := []any{"", "", "", "", "", "", action}
			if i == 0 {
				values = []any{string(g.Category), g.Class.Label(), g.Current, g.Target, g.Ideal, g.Progress, action}
			}
			if err := sw.row(sheet, row, values); err != nil {
				return err
			}
			if i == 0 {
				if err := sw.tierCell(sheet, 2, row, g.Class); err != nil {
					return err
				}
			}
			row++
		}
	}
	if len(in.Full.Goals) == 0 {
		if err := sw.row(sheet, row, []any{report.NoGoalsText}); err != nil {
			return err
		}
		row++
	}

	row++
	plan := [][]any{
		{"Próxima avaliação", formatDate(in.Full.Plan.NextEvaluation)},
		{"Acompanhamento", in.Full.Plan.FollowUp},
		{"Atividades em casa", in.Full.Plan.HomeActivities},
	}
	for _, values := range plan {
		if err := sw.row(sheet, row, values); err != nil {
			return err
		}
		row++
	}
	if err := sw.f.SetColWidth(sheet, "A", "F", 16); err != nil {
		return err
	}
	return sw.f.SetColWidth(sheet, "G", "G", 55)
}

func (sw *sheetWriter) headerRow(sheet string, header []string) error {
	values := make([]any, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := sw.row(sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := sw.f.SetCellStyle(sheet, "A1", last, sw.header); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	return nil
}

func (sw *sheetWriter) row(sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := sw.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func (sw *sheetWriter) tierCell(sheet string, col, row int, c scoring.Class) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return sw.f.SetCellStyle(sheet, cell, cell, sw.tiers[c])
}
