package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const title = "Math Modeling Contest Report"

// WriteText renders the report as plain text.
func WriteText(w io.Writer, r *Report) error {
	b := bufio.NewWriter(w)

	fmt.Fprintln(b, title)
	fmt.Fprintln(b, strings.Repeat("=", len(title)))
	fmt.Fprintf(b, "Run: %s\n", r.RunID)
	fmt.Fprintf(b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "Institutions: %d | Teams: %d\n\n", r.Institutions, r.Teams)

	fmt.Fprintf(b, "Average number of teams per institution: %s\n\n", formatMean(r))

	fmt.Fprintln(b, "Institutions by number of teams:")
	if len(r.TeamCounts) == 0 {
		fmt.Fprintln(b, "None")
	}
	for _, c := range r.TeamCounts {
		fmt.Fprintf(b, "%s: %s\n", c.Name, pluralTeams(c.Teams))
	}

	fmt.Fprintf(b, "\nInstitutions with an %s team:\n", RankingOutstandingWinner)
	writeList(b, r.OutstandingWinners)

	fmt.Fprintf(b, "\nUSA teams ranked %s:\n", strings.Join(USARankings, ", "))
	ids := make([]string, 0, len(r.USATeams))
	for _, id := range r.USATeams {
		ids = append(ids, strconv.Itoa(id))
	}
	writeList(b, ids)

	return b.Flush()
}

// WriteFile writes the text report to path.
func WriteFile(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating report: %w", err)
	}
	if err := WriteText(file, r); err != nil {
		file.Close()
		return fmt.Errorf("error writing report: %w", err)
	}
	return file.Close()
}

// RenderTables prints the report as console tables.
func RenderTables(w io.Writer, r *Report) {
	heading := color.New(color.FgYellow)

	heading.Fprintf(w, "\nAverage teams per institution: %s\n", formatMean(r))

	heading.Fprintln(w, "\nInstitutions by Number of Teams")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Institution", "Teams"})
	for _, c := range r.TeamCounts {
		table.Append([]string{c.Name, strconv.Itoa(c.Teams)})
	}
	table.Render()

	heading.Fprintf(w, "\nInstitutions with an %s Team\n", RankingOutstandingWinner)
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Institution"})
	for _, name := range r.OutstandingWinners {
		table.Append([]string{name})
	}
	table.Render()

	heading.Fprintln(w, "\nQualifying USA Teams")
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Team Number"})
	for _, id := range r.USATeams {
		table.Append([]string{strconv.Itoa(id)})
	}
	table.Render()
}

func formatMean(r *Report) string {
	if !r.HasData {
		return "no data"
	}
	return fmt.Sprintf("%.2f", r.MeanTeams)
}

func pluralTeams(n int) string {
	if n == 1 {
		return "1 team"
	}
	return fmt.Sprintf("%d teams", n)
}

func writeList(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "None")
		return
	}
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}
