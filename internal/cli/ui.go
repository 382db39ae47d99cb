package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. mint and slate are the two ends of the chart's depth ramp.
var (
	colorMint  = lipgloss.Color("#a3f5cf")
	colorSlate = lipgloss.Color("#475485")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
	colorWhite = lipgloss.Color("255")
	colorGreen = lipgloss.Color("35")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorMint)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorMint)
	styleCommand     = lipgloss.NewStyle().Foreground(colorMint).Underline(true)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconCached = "cached"
	iconFresh  = "fresh"
)

// marker is the coloured glyph in front of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = marker{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markFail = marker{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarn = marker{"!", lipgloss.NewStyle().Foreground(colorAmber)}
	markInfo = marker{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (m marker) line(text string) {
	fmt.Fprintln(os.Stdout, m.style.Render(m.glyph), text)
}

func printSuccess(format string, args ...any) { markOK.line(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markFail.line(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.line(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarn.line(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints a dimmed line under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(os.Stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact.
func printFile(path string) {
	fmt.Fprintln(os.Stdout, "  "+StyleDim.Render("→"), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(os.Stdout, styleLabel.Render(key), StyleValue.Render(value))
}

func printStats(nodeCount, leafCount int, focus string, cached bool) {
	fmt.Fprintln(os.Stdout, statsLine(nodeCount, leafCount, focus, cached))
}

// statsLine summarises a render: hierarchy size, focus and whether the
// artifacts came from the cache.
func statsLine(nodeCount, leafCount int, focus string, cached bool) string {
	fields := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)),
		StyleDim.Render(fmt.Sprintf("%d leaves", leafCount)),
	}
	if focus != "" {
		fields = append(fields, StyleDim.Render("focus "+focus))
	}
	if cached {
		fields = append(fields, lipgloss.NewStyle().Foreground(colorGreen).Render(iconCached))
	} else {
		fields = append(fields, lipgloss.NewStyle().Foreground(colorSlate).Render(iconFresh))
	}
	return "  " + strings.Join(fields, StyleDim.Render(" · "))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(os.Stdout, StyleDim.Render(description+":"), styleCommand.Render(cmd))
}
