package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"plexsubs/internal/subtitle"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderSummary(stats subtitle.Stats) string {
	rows := [][]string{
		{"Processed", strconv.Itoa(stats.Total)},
		{"Saved", strconv.Itoa(stats.Saved)},
		{"Overwritten", strconv.Itoa(stats.Overwritten)},
		{"Ignored", strconv.Itoa(stats.Skipped)},
		{"Failed", strconv.Itoa(stats.Failed)},
		{"No matching media", strconv.Itoa(stats.Unmatched)},
	}
	return renderTable([]string{"Subtitles", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
