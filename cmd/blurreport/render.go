package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/blur-lab/go-blurbench/hotspot"
	"github.com/blur-lab/go-blurbench/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func renderSummaryTable(rows []report.SummaryRow) string {
	t := newTable("IMAGE", "RADIUS", "BASELINE", "BASE s", "BEST t", "BEST s", "SPEEDUP")

	for _, r := range rows {
		t.Row(
			r.Image,
			strconv.Itoa(r.Radius),
			string(r.BaselineEngine),
			fmt.Sprintf("%.3f", r.BaselineTimeS),
			strconv.Itoa(r.BestThreads),
			fmt.Sprintf("%.3f", r.BestTimeS),
			fmt.Sprintf("%.2fx", r.BestSpeedup),
		)
	}

	return t.Render()
}

func renderHotspotTable(records []hotspot.Record) string {
	t := newTable("RANK", "FUNCTION", "COST", "COST %", "CALLS")

	for i, r := range records {
		t.Row(
			strconv.Itoa(i+1),
			r.Function,
			int64Cell(r.CostCount),
			percentCell(r.CostPercent),
			int64Cell(r.Calls),
		)
	}

	return t.Render()
}

func int64Cell(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func percentCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v)
}
