package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/packview/pkg/hierarchy"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FocusPickerModel - Interactive focus selection
// =============================================================================

// FocusPickerModel is the bubbletea model for choosing the zoom focus. Only
// internal nodes are listed; leaves cannot be focused.
type FocusPickerModel struct {
	Items    []*hierarchy.Item
	Cursor   int
	Selected *hierarchy.Item
	Height   int
	Offset   int
}

// NewFocusPickerModel lists the internal nodes of t in breadth-first order.
func NewFocusPickerModel(t *hierarchy.Tree) FocusPickerModel {
	var items []*hierarchy.Item
	for _, it := range t.Items {
		if !it.IsLeaf() {
			items = append(items, it)
		}
	}
	return FocusPickerModel{Items: items, Height: 15}
}

func (m FocusPickerModel) Init() tea.Cmd {
	return nil
}

func (m FocusPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Items) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Items[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m FocusPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Focus"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			pathLabel(it),
			strconv.Itoa(it.Depth),
			strconv.Itoa(len(it.Children)),
			strconv.FormatFloat(it.Value, 'g', 6, 64),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Depth", "Children", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// pathLabel renders an item as its ancestor path, e.g. "flare / analytics".
func pathLabel(it *hierarchy.Item) string {
	anc := it.Ancestors()
	names := make([]string, 0, len(anc))
	for i := len(anc) - 1; i >= 0; i-- {
		names = append(names, anc[i].Name())
	}
	return strings.Join(names, " / ")
}
