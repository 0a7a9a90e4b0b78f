package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockscope/internal/model"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1).
		MarginBottom(1)

	reportStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(1, 2).
		Width(80)

	sectionHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	bullishStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	bearishStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	neutralStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6"))

	successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := `
 ███████╗████████╗ ██████╗  ██████╗██╗  ██╗███████╗ ██████╗ ██████╗ ██████╗ ███████╗
 ██╔════╝╚══██╔══╝██╔═══██╗██╔════╝██║ ██╔╝██╔════╝██╔════╝██╔═══██╗██╔══██╗██╔════╝
 ███████╗   ██║   ██║   ██║██║     █████╔╝ ███████╗██║     ██║   ██║██████╔╝█████╗
 ╚════██║   ██║   ██║   ██║██║     ██╔═██╗ ╚════██║██║     ██║   ██║██╔═══╝ ██╔══╝
 ███████║   ██║   ╚██████╔╝╚██████╗██║  ██╗███████║╚██████╗╚██████╔╝██║     ███████╗
 ╚══════╝   ╚═╝    ╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚═════╝ ╚═╝     ╚══════╝
`

	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Align(lipgloss.Center).
		Width(88)

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		Align(lipgloss.Center).
		Width(88).
		MarginBottom(1)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Println()
	fmt.Print(taglineStyle.Render("Historical price analysis, technical indicators and strategy notes"))
	fmt.Println()
}

func trendStyle(trend model.Trend) lipgloss.Style {
	switch trend {
	case model.TrendBullish:
		return bullishStyle
	case model.TrendBearish:
		return bearishStyle
	default:
		return neutralStyle
	}
}

// DisplayReport renders the full analysis report to the terminal.
func DisplayReport(report *model.AnalysisReport) {
	title := fmt.Sprintf("Stock Analysis for %s (%s)", report.Ticker, report.Timeframe)
	fmt.Println(titleStyle.Render(title))

	var body strings.Builder
	fmt.Fprintf(&body, "Current Price: $%.2f\n", report.CurrentPrice)
	fmt.Fprintf(&body, "Highest Peak: $%.2f on %s\n", report.HighestClose, report.HighestDate.Format("2006-01-02"))
	fmt.Fprintf(&body, "Lowest Peak: $%.2f on %s\n", report.LowestClose, report.LowestDate.Format("2006-01-02"))
	body.WriteString(trendStyle(report.Trend).Render(fmt.Sprintf("Trend: %s", report.Trend)))
	body.WriteString("\n\n")
	body.WriteString(report.Sections.SMAStatus + "\n")
	body.WriteString(report.Sections.RSIStatus + "\n\n")

	sections := []struct {
		header string
		text   string
	}{
		{"Long-term Strategy", report.Sections.LongTermStrategy},
		{"Short-term Strategy", report.Sections.ShortTermStrategy},
		{"Long-term Risk Analysis", report.Sections.LongTermRisk},
		{"Short-term Risk Analysis", report.Sections.ShortTermRisk},
		{"Recommendation", report.Sections.Recommendation},
	}
	for i, s := range sections {
		body.WriteString(sectionHeaderStyle.Render(s.header+":") + "\n")
		body.WriteString(s.text)
		if i < len(sections)-1 {
			body.WriteString("\n\n")
		}
	}

	fmt.Println(reportStyle.Render(body.String()))
}

// DisplayError shows an error message
func DisplayError(err error) {
	fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %s", err.Error())))
}

// DisplayInfo shows an info message
func DisplayInfo(message string) {
	fmt.Println(infoStyle.Render(message))
}

// DisplaySuccess shows a success message
func DisplaySuccess(message string) {
	fmt.Println(successStyle.Render(message))
}
