package report

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const defaultThemeName = "kanagawa"

// --- Kanagawa palette (dark / light) ---
const (
	kanagawaDarkGreen   = "#98BB6C"
	kanagawaDarkYellow  = "#FF9E3B"
	kanagawaDarkRed     = "#FF5D62"
	kanagawaDarkOrange  = "#FFA066"
	kanagawaDarkCyan    = "#7E9CD8"
	kanagawaDarkBlue    = "#7FB4CA"
	kanagawaDarkViolet  = "#957FB8"
	kanagawaLightGreen  = "#4E7C5A"
	kanagawaLightYellow = "#A68A64"
	kanagawaLightRed    = "#C34043"
	kanagawaLightOrange = "#CC6B4E"
	kanagawaLightCyan   = "#5B8BBE"
	kanagawaLightBlue   = "#4F7CAC"
	kanagawaLightViolet = "#674D7A"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen  = "2"
	terminalYellow = "3"
	terminalRed    = "1"
	terminalOrange = "208"
	terminalCyan   = "6"
	terminalBlue   = "4"
	terminalViolet = "5"
)

// Colors is the palette a Theme is built from.
type Colors struct {
	Green  lipgloss.TerminalColor
	Yellow lipgloss.TerminalColor
	Red    lipgloss.TerminalColor
	Orange lipgloss.TerminalColor
	Cyan   lipgloss.TerminalColor
	Blue   lipgloss.TerminalColor
	Violet lipgloss.TerminalColor
}

// Theme holds the styles used for terminal output.
type Theme struct {
	Colors Colors

	Title   lipgloss.Style
	Section lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Italic  lipgloss.Style
	Accent  lipgloss.Style
	Flag    lipgloss.Style
}

// NewTheme builds the named theme on r. Unknown names fall back to the default palette.
func NewTheme(r *lipgloss.Renderer, name string) *Theme {
	colors := resolveColors(name)
	return &Theme{
		Colors:  colors,
		Title:   r.NewStyle().Bold(true).Foreground(colors.Orange),
		Section: r.NewStyle().Italic(true).Foreground(colors.Orange),
		Success: r.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   r.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: r.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    r.NewStyle().Foreground(colors.Cyan).Bold(true),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Faint(true),
		Italic:  r.NewStyle().Italic(true),
		Accent:  r.NewStyle().Foreground(colors.Blue).Bold(true),
		Flag:    r.NewStyle().Foreground(colors.Violet),
	}
}

// ThemeName returns the theme selected by HOOKCHECK_THEME.
func ThemeName() string {
	if name := normalizeThemeName(os.Getenv("HOOKCHECK_THEME")); name != "" {
		return name
	}
	return defaultThemeName
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func resolveColors(name string) Colors {
	if normalizeThemeName(name) == "terminal" {
		return Colors{
			Green:  lipgloss.Color(terminalGreen),
			Yellow: lipgloss.Color(terminalYellow),
			Red:    lipgloss.Color(terminalRed),
			Orange: lipgloss.Color(terminalOrange),
			Cyan:   lipgloss.Color(terminalCyan),
			Blue:   lipgloss.Color(terminalBlue),
			Violet: lipgloss.Color(terminalViolet),
		}
	}
	return Colors{
		Green:  lipgloss.AdaptiveColor{Light: kanagawaLightGreen, Dark: kanagawaDarkGreen},
		Yellow: lipgloss.AdaptiveColor{Light: kanagawaLightYellow, Dark: kanagawaDarkYellow},
		Red:    lipgloss.AdaptiveColor{Light: kanagawaLightRed, Dark: kanagawaDarkRed},
		Orange: lipgloss.AdaptiveColor{Light: kanagawaLightOrange, Dark: kanagawaDarkOrange},
		Cyan:   lipgloss.AdaptiveColor{Light: kanagawaLightCyan, Dark: kanagawaDarkCyan},
		Blue:   lipgloss.AdaptiveColor{Light: kanagawaLightBlue, Dark: kanagawaDarkBlue},
		Violet: lipgloss.AdaptiveColor{Light: kanagawaLightViolet, Dark: kanagawaDarkViolet},
	}
}

// ColorProfile picks the colour profile for output written to w. NO_COLOR
// disables colour; CLICOLOR_FORCE=1 or COLORTERM=truecolor force it even
// when w is not a terminal.
func ColorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		return termenv.TrueColor
	}
	if f, ok := w.(*os.File); ok {
		return termenv.NewOutput(f).EnvColorProfile()
	}
	return termenv.Ascii
}
