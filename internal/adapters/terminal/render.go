// Package terminal prints a report as text tables.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"catalogstats/internal/domain/entities"
	"catalogstats/internal/ports/input"
	"catalogstats/internal/ports/output"
)

type Renderer struct {
	tr      output.T
	seasons input.SeasonFormatter
}

func NewRenderer(tr output.T, seasons input.SeasonFormatter) *Renderer {
	return &Renderer{tr: tr, seasons: seasons}
}

// Render writes the summary followed by every report table.
func (r *Renderer) Render(w io.Writer, report *entities.Report) error {
	locale := report.Locale
	printer := message.NewPrinter(language.Make(locale))
	s := report.Summary

	summary := renderTable(
		r.tr.T(locale, "page.title", nil),
		nil,
		[][]string{
			{r.tr.T(locale, "summary.titles", nil), printer.Sprintf("%d", s.Titles)},
			{r.tr.T(locale, "summary.films", nil), printer.Sprintf("%d", s.Films)},
			{r.tr.T(locale, "summary.series", nil), printer.Sprintf("%d", s.Series)},
			{r.tr.T(locale, "summary.max_seasons", nil), r.seasons.Format(locale, s.MaxSeasons)},
		},
	)
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}

	empty := r.tr.T(locale, "page.empty", nil)
	for _, t := range report.Tables {
		rows := t.Rows
		if len(rows) == 0 && len(t.Headers) > 0 {
			rows = [][]string{{empty}}
		}
		if _, err := fmt.Fprintln(w, "\n"+renderTable(t.Caption, t.Headers, rows)); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(title string, headers []string, rows [][]string) string {
	columns := len(headers)
	for _, row := range rows {
		columns = max(columns, len(row))
	}
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	if len(headers) > 0 {
		header := make(table.Row, columns)
		for i := range header {
			if i < len(headers) {
				header[i] = headers[i]
			}
		}
		tw.AppendHeader(header)
	}

	numeric := make([]bool, columns)
	for i := range numeric {
		numeric[i] = len(rows) > 0
	}
	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			r[i] = cell
			numeric[i] = numeric[i] && isNumber(cell)
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if numeric[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// isNumber reports whether s is a grouped integer such as "1 234" or "1,234".
func isNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != ',' && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
