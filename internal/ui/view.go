package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/format/row"
	"github.com/atomicstack/keyring-tui/internal/format/table"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	"github.com/atomicstack/keyring-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	fallbackWidth    = 80
	fallbackHeight   = 24
	// borderSize is the width and height taken by a box border.
	borderSize       = 2
	indicatorWidth   = 2
	columnGap        = 2
	minColumnWidth   = 8
	optionsPadding   = 2
	rowIndicator     = "▶ "
	promptArrowLeft  = "< "
	promptArrowRight = " >"
)

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.size()
	bodyHeight := max(height-1, 1)
	var body string
	switch {
	case m.showOptions:
		body = m.viewOptions(width, bodyHeight)
	case m.tab.Help:
		body = m.viewHelp(width, bodyHeight)
	default:
		body = m.viewKeys(width, bodyHeight)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewPrompt(width))
}

func (m *Model) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}
	return width, height
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	m.applyMinimizeThreshold()
	events.App.Resize(size.Width, size.Height, m.settings.Minimized)
	return nil
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

// box draws a framed box of exactly width x height cells around lines, with
// title embedded in the top border.
func box(style *lipgloss.Style, title *lipgloss.Style, name string, lines []string, width, height int) string {
	frame := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder())
	if style != nil {
		frame = *style
	}
	innerWidth := max(width-frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-frame.GetVerticalFrameSize(), 1)
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	padded := make([]string, innerHeight)
	for i := range padded {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		padded[i] = table.Pad(clip(line, innerWidth), innerWidth)
	}
	out := frame.Render(strings.Join(padded, "\n"))
	if name == "" {
		return out
	}
	border := frame.GetBorderStyle()
	edge := lipgloss.NewStyle().Foreground(frame.GetBorderTopForeground())
	label := " " + render(title, name) + " "
	left := border.TopLeft + border.Top
	fill := table.Width(strings.SplitN(out, "\n", 2)[0]) - table.Width(left) - table.Width(label) - table.Width(border.TopRight)
	if fill < 0 {
		return out
	}
	rows := strings.SplitN(out, "\n", 2)
	rows[0] = edge.Render(left) + label + edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)
	return strings.Join(rows, "\n")
}

func clip(line string, width int) string {
	if table.Width(line) <= width {
		return line
	}
	return truncate.StringWithTail(line, uint(width), "…")
}

// tableLayout is the geometry of the key table.
type tableLayout struct {
	innerHeight int
	left        int
	right       int
}

func (m *Model) layout() tableLayout {
	width, height := m.size()
	inner := max(width-borderSize-indicatorWidth-columnGap, 2*minColumnWidth)
	left := inner / 2
	if m.settings.Minimized {
		left = inner * 2 / 5
	}
	longest := 0
	for _, key := range m.table.Items {
		for _, line := range key.SubkeyInfo(m.settings.Minimized) {
			longest = max(longest, table.Width(line))
		}
	}
	if longest > 0 && longest < left {
		left = max(longest, minColumnWidth)
	}
	return tableLayout{
		innerHeight: max(height-1-borderSize, 1),
		left:        left,
		right:       max(inner-left, minColumnWidth),
	}
}

// project builds the two cells of a key's row.
func (m *Model) project(key *keyring.Key, l tableLayout, scroll int) (row.Item, row.Item) {
	opts := row.Options{Minimized: m.settings.Minimized, MaxHeight: l.innerHeight, Scroll: scroll}
	subOpts, uidOpts := opts, opts
	subOpts.MaxWidth = l.left
	uidOpts.MaxWidth = l.right
	return row.New(key.SubkeyFields(m.settings.Minimized), subOpts), row.New(key.UserFields(m.settings.Minimized), uidOpts)
}

// rowOverflow is the scroll bound of the selected row.
func (m *Model) rowOverflow() int {
	key, ok := m.table.Selected()
	if !ok {
		return 0
	}
	sub, uid := m.project(key, m.layout(), 0)
	return max(sub.Overflow, uid.Overflow)
}

func (m *Model) rowHeight(index int, l tableLayout) int {
	scroll := 0
	if index == m.table.Cursor {
		scroll = m.table.Scroll
	}
	sub, uid := m.project(m.table.Items[index], l, scroll)
	return row.Height(sub, uid)
}

func (m *Model) tableTitle() string {
	title := m.tab.String()
	if n := m.table.Len(); n > 0 {
		title += fmt.Sprintf(" (%d/%d)", m.table.Cursor+1, n)
	}
	return title
}

func (m *Model) viewKeys(width, height int) string {
	l := m.layout()
	if m.table.Len() == 0 {
		msg := "no keys"
		if query := m.prompt.Query(); query != "" {
			msg = fmt.Sprintf("no keys match %q", query)
		}
		return box(m.styles.Border, m.styles.Title, m.tableTitle(), []string{render(m.styles.Info, msg)}, width, height)
	}
	m.table.EnsureCursorVisible(l.innerHeight, func(i int) int {
		return m.rowHeight(i, l) + m.settings.Margin
	})
	lines := make([]string, 0, l.innerHeight)
	for i := m.table.ViewportOffset; i < m.table.Len() && len(lines) < l.innerHeight; i++ {
		scroll := 0
		if i == m.table.Cursor {
			scroll = m.table.Scroll
		}
		sub, uid := m.project(m.table.Items[i], l, scroll)
		lines = append(lines, m.renderRow(sub, uid, l, i == m.table.Cursor)...)
		for j := 0; j < m.settings.Margin; j++ {
			lines = append(lines, "")
		}
	}
	return box(m.styles.Border, m.styles.Title, m.tableTitle(), lines, width, height)
}

func (m *Model) renderRow(sub, uid row.Item, l tableLayout, selected bool) []string {
	height := row.Height(sub, uid)
	lines := make([]string, height)
	for i := 0; i < height; i++ {
		left, right := "", ""
		if i < len(sub.Lines) {
			left = sub.Lines[i]
		}
		if i < len(uid.Lines) {
			right = uid.Lines[i]
		}
		text := table.Pad(clip(left, l.left), l.left) + strings.Repeat(" ", columnGap) + clip(right, l.right)
		indicator := strings.Repeat(" ", indicatorWidth)
		if selected {
			if i == 0 {
				indicator = render(m.styles.RowIndicator, rowIndicator)
			}
			lines[i] = indicator + render(m.styles.SelectedRow, table.Pad(text, l.left+columnGap+l.right))
			continue
		}
		lines[i] = indicator + render(m.styles.Row, text)
	}
	return lines
}

func (m *Model) viewOptions(width, height int) string {
	labels := make([]string, len(m.options.Items))
	longest := 0
	for i, cmd := range m.options.Items {
		labels[i] = cmd.String()
		longest = max(longest, table.Width(labels[i]))
	}
	innerHeight := max(min(len(labels), height-borderSize), 1)
	m.options.EnsureCursorVisible(innerHeight)
	boxWidth := min(longest+borderSize+optionsPadding, width)
	lines := make([]string, 0, innerHeight)
	end := min(m.options.ViewportOffset+innerHeight, len(labels))
	for i := m.options.ViewportOffset; i < end; i++ {
		label := table.Pad(clip(labels[i], boxWidth-borderSize-optionsPadding), boxWidth-borderSize-optionsPadding)
		if i == m.options.Cursor {
			lines = append(lines, render(m.styles.Selected, label))
			continue
		}
		lines = append(lines, render(m.styles.Option, label))
	}
	menu := box(m.styles.OptionsBox, m.styles.Title, "options", lines, boxWidth, innerHeight+borderSize)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, menu)
}

func (m *Model) viewHelp(width, height int) string {
	innerHeight := max(height-borderSize, 1)
	listWidth := max(width/2, 1)
	plain := make([][]string, len(m.help.Items))
	styled := make([][]string, len(m.help.Items))
	for i, b := range m.help.Items {
		plain[i] = []string{b.keys, b.desc}
		styled[i] = []string{render(m.styles.HelpKey, b.keys), render(m.styles.HelpDesc, b.desc)}
	}
	alignments := []table.Alignment{table.AlignRight, table.AlignLeft}
	plainLines := table.Format(plain, alignments, columnGap)
	styledLines := table.Format(styled, alignments, columnGap)
	m.help.EnsureCursorVisible(innerHeight)
	lines := make([]string, 0, innerHeight)
	end := min(m.help.ViewportOffset+innerHeight, len(plainLines))
	for i := m.help.ViewportOffset; i < end; i++ {
		if i == m.help.Cursor {
			line := table.Pad(clip(plainLines[i], listWidth-borderSize), listWidth-borderSize)
			lines = append(lines, render(m.styles.Selected, line))
			continue
		}
		lines = append(lines, styledLines[i])
	}
	list := box(m.styles.Border, m.styles.Title, "key bindings", lines, listWidth, height)
	info := box(m.styles.Border, m.styles.Title, "about", m.infoLines(), max(width-listWidth, 1), height)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, info)
}

// infoLines describes the engine and the current settings.
func (m *Model) infoLines() []string {
	if m.info == "" && m.engine != nil {
		info, err := m.engine.Info()
		if err != nil {
			events.Engine.Error("info", err)
			info = "engine error: " + err.Error()
		}
		m.info = info
	}
	lines := strings.Split(m.info, "\n")
	output := m.settings.OutputDir
	if output == "" {
		output = "."
	}
	rows := [][]string{
		{"mode", m.mode.Name()},
		{"armor", fmt.Sprint(m.settings.Armor)},
		{"output", output},
		{"detail", m.settings.Detail.String()},
		{"minimized", fmt.Sprint(m.settings.Minimized)},
		{"margin", fmt.Sprint(m.settings.Margin)},
		{"color", m.settings.Accent.Hex()},
	}
	lines = append(lines, "")
	for _, line := range table.Format(rows, nil, columnGap) {
		lines = append(lines, render(m.styles.Info, line))
	}
	return lines
}

func (m *Model) viewPrompt(width int) string {
	if m.prompt.Text != "" {
		return clip(m.renderEntry(), width)
	}
	if m.prompt.Message != "" {
		text := clip(m.prompt.Output.Prefix()+m.prompt.Message, width)
		return render(m.outputStyle(m.prompt.Output), text)
	}
	status := m.tab.String()
	if !m.tab.Help && m.table.Len() > 0 {
		status += fmt.Sprintf(" (%d/%d)", m.table.Cursor+1, m.table.Len())
	}
	if m.mode != command.ModeNormal {
		status = m.mode.String() + " " + status
	}
	line := render(m.styles.PromptArrow, promptArrowLeft) + render(m.styles.Prompt, status) + render(m.styles.PromptArrow, promptArrowRight)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, line)
}

func (m *Model) outputStyle(kind command.OutputType) *lipgloss.Style {
	switch kind {
	case command.OutputSuccess:
		return m.styles.Success
	case command.OutputWarning:
		return m.styles.Warning
	case command.OutputFailure:
		return m.styles.Failure
	case command.OutputAction:
		return m.styles.Action
	}
	return m.styles.Prompt
}

// renderEntry draws the prompt text with the cursor over the rune at the
// cursor position.
func (m *Model) renderEntry() string {
	runes := []rune(m.prompt.Text)
	pos := m.prompt.CursorPos()
	char := " "
	after := ""
	if pos < len(runes) {
		char = string(runes[pos])
		after = string(runes[pos+1:])
	}
	m.promptCursor.SetChar(char)
	return render(m.styles.Prompt, string(runes[:pos])) + m.promptCursor.View() + render(m.styles.Prompt, after)
}
