// Package export writes skill-gap analyses to spreadsheet workbooks.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Sheet names
const (
	SheetJobMatches      = "Job Matches"
	SheetMissingSkills   = "Missing Skills"
	SheetRecommendations = "Recommendations"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// priority fill colours
var priorityColors = map[string]string{
	types.PriorityHigh:   "FFC7CE",
	types.PriorityMedium: "FFEB9C",
	types.PriorityLow:    "C6EFCE",
}

// WriteInsightWorkbook writes the per-job results, missing-skill frequency and
// recommendations to an .xlsx file and returns the path written. The extension
// is added when missing. recs may be nil.
func WriteInsightWorkbook(insight *types.AggregatedInsight, recs *types.RecommendationSet, outputPath string) (string, error) {
	if insight == nil {
		return "", fmt.Errorf("insight is required")
	}
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetJobMatches); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetMissingSkills, SheetRecommendations} {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeJobMatches(f, header, insight); err != nil {
		return "", fmt.Errorf("failed to write job matches: %w", err)
	}
	if err := writeMissingSkills(f, header, insight); err != nil {
		return "", fmt.Errorf("failed to write missing skills: %w", err)
	}
	if err := writeRecommendations(f, header, recs); err != nil {
		return "", fmt.Errorf("failed to write recommendations: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return outputPath, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string, widths []float64) error {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func writeJobMatches(f *excelize.File, header int, insight *types.AggregatedInsight) error {
	headers := []string{"Rank", "Job", "Company", "Match %", "Gap Score", "Matching Skills", "Missing Skills"}
	if err := writeHeader(f, SheetJobMatches, header, headers, []float64{8, 30, 25, 10, 10, 40, 40}); err != nil {
		return err
	}
	for i, r := range insight.PerJobResults {
		row := []any{
			i + 1,
			r.JobTitle,
			r.Company,
			r.MatchPercentage,
			r.SkillGapScore,
			strings.Join(r.MatchingSkills, ", "),
			strings.Join(r.MissingSkills, ", "),
		}
		if err := writeRow(f, SheetJobMatches, i+2, row); err != nil {
			return err
		}
	}

	// Summary below the table
	summary := len(insight.PerJobResults) + 3
	if err := writeRow(f, SheetJobMatches, summary, []any{"Average Match %", insight.AverageMatchPercentage}); err != nil {
		return err
	}
	if err := writeRow(f, SheetJobMatches, summary+1, []any{"Jobs Analyzed", insight.TotalJobsAnalyzed}); err != nil {
		return err
	}
	return writeRow(f, SheetJobMatches, summary+2, []any{"Resume Skills", insight.ResumeSkillsCount})
}

func writeMissingSkills(f *excelize.File, header int, insight *types.AggregatedInsight) error {
	if err := writeHeader(f, SheetMissingSkills, header, []string{"Skill", "Jobs Missing", "Frequency %"}, []float64{30, 14, 14}); err != nil {
		return err
	}
	for i, m := range insight.MissingSkillFrequency {
		if err := writeRow(f, SheetMissingSkills, i+2, []any{m.Skill, m.Count, m.FrequencyPercent}); err != nil {
			return err
		}
	}
	return nil
}

func writeRecommendations(f *excelize.File, header int, recs *types.RecommendationSet) error {
	headers := []string{"Skill", "Priority", "Demand %", "Jobs Requiring"}
	if err := writeHeader(f, SheetRecommendations, header, headers, []float64{30, 12, 12, 16}); err != nil {
		return err
	}
	if recs == nil {
		return nil
	}

	styles := make(map[string]int, len(priorityColors))
	for priority, color := range priorityColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		styles[priority] = id
	}

	for i, r := range recs.Recommendations {
		row := i + 2
		if err := writeRow(f, SheetRecommendations, row, []any{r.Skill, r.Priority, r.DemandFrequency, r.JobsRequiring}); err != nil {
			return err
		}
		if style, ok := styles[r.Priority]; ok {
			cell := fmt.Sprintf("B%d", row)
			if err := f.SetCellStyle(SheetRecommendations, cell, cell, style); err != nil {
				return err
			}
		}
	}

	summary := len(recs.Recommendations) + 3
	if err := writeRow(f, SheetRecommendations, summary, []any{"Current Match %", recs.CurrentMatchPercentage}); err != nil {
		return err
	}
	return writeRow(f, SheetRecommendations, summary+1, []any{"Potential Improvement %", recs.PotentialImprovement})
}
