package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/specgest/internal/pipeline"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for labels
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	// boxStyle for the run summary
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// FormatSummary renders the summary box printed after a run.
func FormatSummary(w io.Writer, input, output string, res *pipeline.Result) {
	s := res.Summary
	content := fmt.Sprintf("%s\n%s %s\n%s %s\n\n%s %d  %s %d\n%s %d  %s %d\n%s %d  %s %.2f\n%s %d  %s %d",
		titleStyle.Render("specgest"),
		dimStyle.Render("Input: "), input,
		dimStyle.Render("Output:"), successStyle.Render(output),
		dimStyle.Render("Pages:"), res.Pages,
		dimStyle.Render("Sections:"), s.TotalSections,
		dimStyle.Render("Requirements:"), s.TotalRequirements,
		dimStyle.Render("With requirements:"), s.SectionsWithRequirements,
		dimStyle.Render("References:"), s.TotalReferences,
		dimStyle.Render("Avg per section:"), s.AverageRequirementsPerSection,
		dimStyle.Render("Max depth:"), s.MaxHierarchyDepth,
		dimStyle.Render("Words:"), s.TotalWords,
	)
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatBatchLine prints one line per finished batch input.
func FormatBatchLine(w io.Writer, input, output string, res *pipeline.Result) {
	fmt.Fprintf(w, "%s %s %s %s\n",
		successStyle.Render("✓"),
		input,
		dimStyle.Render("→"),
		fmt.Sprintf("%s (%d sections, %d requirements)", output, res.Summary.TotalSections, res.Summary.TotalRequirements),
	)
}
