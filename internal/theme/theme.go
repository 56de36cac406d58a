// Package theme holds the Lip Gloss styles of the interface. Styles are built
// from an accent colour and can be rendered without colours.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultAccent is the accent colour used when none is configured.
const DefaultAccent = "#5fafff"

var namedColors = map[string]string{
	"black":   "#000000",
	"red":     "#d75f5f",
	"green":   "#87af5f",
	"yellow":  "#d7af5f",
	"blue":    "#5f87d7",
	"magenta": "#af5faf",
	"cyan":    "#5fafaf",
	"gray":    "#8a8a8a",
	"grey":    "#8a8a8a",
	"white":   "#eeeeee",
}

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Accent colorful.Color

	Row          *lipgloss.Style
	SelectedRow  *lipgloss.Style
	RowIndicator *lipgloss.Style
	Border       *lipgloss.Style
	Title        *lipgloss.Style
	Prompt       *lipgloss.Style
	PromptArrow  *lipgloss.Style
	Success      *lipgloss.Style
	Warning      *lipgloss.Style
	Failure      *lipgloss.Style
	Action       *lipgloss.Style
	Cursor       *lipgloss.Style
	Option       *lipgloss.Style
	Selected     *lipgloss.Style
	OptionsBox   *lipgloss.Style
	HelpKey      *lipgloss.Style
	HelpDesc     *lipgloss.Style
	Info         *lipgloss.Style
}

// ParseColor accepts a colour name or a hex triplet.
func ParseColor(value string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color: %q", value)
	}
	return c, nil
}

// New builds the style set. Without colours only text attributes are kept.
func New(colored bool, accent colorful.Color) *Styles {
	if !colored {
		return plain(accent)
	}
	accentColor := lipgloss.Color(accent.Hex())
	// The selection background is the accent darkened towards black.
	selection := lipgloss.Color(accent.BlendLab(colorful.Color{}, 0.7).Clamped().Hex())
	return &Styles{
		Accent:       accent,
		Row:          ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("252"))),
		SelectedRow:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(selection).Bold(true)),
		RowIndicator: ptr(lipgloss.NewStyle().Foreground(accentColor).Bold(true)),
		Border:       ptr(lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))),
		Title:        ptr(lipgloss.NewStyle().Foreground(accentColor).Bold(true)),
		Prompt:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("252"))),
		PromptArrow:  ptr(lipgloss.NewStyle().Foreground(accentColor)),
		Success:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)),
		Warning:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true)),
		Failure:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)),
		Action:       ptr(lipgloss.NewStyle().Foreground(accentColor).Bold(true)),
		Cursor:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accentColor)),
		Option:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("250"))),
		Selected:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(selection).Bold(true)),
		OptionsBox:   ptr(lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1)),
		HelpKey:      ptr(lipgloss.NewStyle().Foreground(accentColor).Bold(true)),
		HelpDesc:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("250"))),
		Info:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245"))),
	}
}

func plain(accent colorful.Color) *Styles {
	bold := lipgloss.NewStyle().Bold(true)
	base := lipgloss.NewStyle()
	box := lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder())
	return &Styles{
		Accent:       accent,
		Row:          ptr(base),
		SelectedRow:  ptr(base.Reverse(true)),
		RowIndicator: ptr(bold),
		Border:       ptr(box),
		Title:        ptr(bold),
		Prompt:       ptr(base),
		PromptArrow:  ptr(base),
		Success:      ptr(bold),
		Warning:      ptr(bold),
		Failure:      ptr(bold),
		Action:       ptr(bold),
		Cursor:       ptr(base.Reverse(true)),
		Option:       ptr(base),
		Selected:     ptr(base.Reverse(true)),
		OptionsBox:   ptr(box.Padding(0, 1)),
		HelpKey:      ptr(bold),
		HelpDesc:     ptr(base),
		Info:         ptr(base),
	}
}

// Default exposes the coloured style set with the default accent.
func Default() *Styles {
	accent, _ := colorful.Hex(DefaultAccent)
	return New(true, accent)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
