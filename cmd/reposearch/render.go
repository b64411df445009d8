package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"repo-search-api/web"
)

var styles = struct {
	title   lipgloss.Style
	header  lipgloss.Style
	name    lipgloss.Style
	score   lipgloss.Style
	dim     lipgloss.Style
	failure lipgloss.Style
}{
	title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
	header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")),
	name:    lipgloss.NewStyle().Bold(true),
	score:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	dim:     lipgloss.NewStyle().Faint(true),
	failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
}

// column widths
const (
	nameWidth     = 32
	languageWidth = 12
	countWidth    = 8
	recencyWidth  = 15
)

func cell(style lipgloss.Style, width int, text string) string {
	return style.Width(width).MaxWidth(width).Render(text)
}

func render(w io.Writer, state web.State) {
	switch s := state.(type) {
	case web.Success:
		if len(s.Results) == 0 {
			fmt.Fprintln(w, styles.dim.Render("No repositories found."))
			return
		}

		fmt.Fprintln(w, styles.title.Render(fmt.Sprintf("Found %d repositories", len(s.Results))))
		plain := lipgloss.NewStyle()
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
			cell(styles.header, nameWidth, "NAME"),
			cell(styles.header, languageWidth, "LANGUAGE"),
			cell(styles.header, countWidth, "STARS"),
			cell(styles.header, countWidth, "FORKS"),
			cell(styles.header, recencyWidth, "CREATED"),
			cell(styles.header, 6, "SCORE"),
		))
		for _, r := range s.Results {
			fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
				cell(styles.name, nameWidth, r.Name),
				cell(plain, languageWidth, r.Language),
				cell(plain, countWidth, strconv.Itoa(r.Stars)),
				cell(plain, countWidth, strconv.Itoa(r.Forks)),
				cell(plain, recencyWidth, r.Recency),
				cell(styles.score, 6, strconv.FormatFloat(r.PopularityScore, 'f', 1, 64)),
			))
			fmt.Fprintln(w, styles.dim.Render("  "+r.URL))
		}

	case web.Failure:
		fmt.Fprintln(w, styles.failure.Render("Error: ")+s.Message)

	default:
		fmt.Fprintln(w, styles.dim.Render(state.Name()))
	}
}
