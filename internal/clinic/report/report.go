// Package report renders an analytics snapshot as JSON or as an Excel
// workbook.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "json" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Write renders r in the given format.
func Write(w io.Writer, f Format, r domain.AnalyticsReport) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}

type jsonReport struct {
	GeneratedAt         string         `json:"generated_at"`
	Counts              map[string]int `json:"counts"`
	PatientsByStatus    map[string]int `json:"patients_by_status"`
	ScenariosByType     map[string]int `json:"scenarios_by_type"`
	InterventionsByType map[string]int `json:"interventions_by_type"`
}

func WriteJSON(w io.Writer, r domain.AnalyticsReport) error {
	out := jsonReport{
		GeneratedAt:         r.GeneratedAt.UTC().Format(time.RFC3339),
		Counts:              totals(r),
		PatientsByStatus:    nonNil(r.PatientsByStatus),
		ScenariosByType:     nonNil(r.ScenariosByType),
		InterventionsByType: nonNil(r.InterventionsByType),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

const (
	summarySheet   = "Summary"
	breakdownSheet = "Breakdown"
)

var (
	summaryHeader   = []string{"Metric", "Count"}
	breakdownHeader = []string{"Group", "Key", "Count"}
)

// WriteXLSX writes a workbook with a Summary sheet of totals and a Breakdown
// sheet of the grouped counts.
func WriteXLSX(w io.Writer, r domain.AnalyticsReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(breakdownSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	summary := [][]any{{"Generated At", r.GeneratedAt.UTC().Format(time.RFC3339)}}
	t := totals(r)
	for _, k := range slices.Sorted(maps.Keys(t)) {
		summary = append(summary, []any{k, t[k]})
	}
	if err := writeSheet(f, summarySheet, summaryHeader, summary, headerStyle); err != nil {
		return err
	}

	var breakdown [][]any
	groups := []struct {
		name   string
		counts map[string]int
	}{
		{"patients_by_status", r.PatientsByStatus},
		{"scenarios_by_type", r.ScenariosByType},
		{"interventions_by_type", r.InterventionsByType},
	}
	for _, g := range groups {
		for _, k := range slices.Sorted(maps.Keys(g.counts)) {
			breakdown = append(breakdown, []any{g.name, k, g.counts[k]})
		}
	}
	if err := writeSheet(f, breakdownSheet, breakdownHeader, breakdown, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, style int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "C", 18)
}

func totals(r domain.AnalyticsReport) map[string]int {
	return map[string]int{
		"therapists":       r.Therapists,
		"clinics":          r.Clinics,
		"patients":         r.Patients,
		"scenarios":        r.Scenarios,
		"interventions":    r.Interventions,
		"evidence_entries": r.EvidenceEntries,
	}
}

func nonNil(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
