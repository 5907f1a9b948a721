package colors

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Base colors
const (
	Black       = lipgloss.Color("#000000")
	Grey        = lipgloss.Color("#737373")
	LighterGrey = lipgloss.Color("250")
	White       = lipgloss.Color("#ffffff")
	Grey240     = lipgloss.Color("240") // Dim/disabled text

	Red         = lipgloss.Color("#FF5353")
	Orange      = lipgloss.Color("214")
	Yellow      = lipgloss.Color("#DBBD70")
	BrightGreen = lipgloss.Color("42")
	Turquoise   = lipgloss.Color("86")
	Green       = lipgloss.Color("34")
	DarkBlue    = lipgloss.Color("18")
	DeepBlue    = lipgloss.Color("39")
	SelectedBg  = lipgloss.Color("110")
	WhiteTerm   = lipgloss.Color("15")
)

// Semantic color names
var (
	HelpKey  = lipgloss.AdaptiveColor{Dark: "ff", Light: ""}
	HelpDesc = lipgloss.AdaptiveColor{Dark: "248", Light: "246"}

	BorderFocused = DeepBlue
	BorderNormal  = Grey240

	SelectedBackground = SelectedBg
	SelectedForeground = Black
	HeaderForeground   = lipgloss.AdaptiveColor{Dark: string(Turquoise), Light: string(Green)}

	InputFocusedBorder = DeepBlue
	InputNormalBorder  = Grey240
	InputLabelFg       = Orange
	InputRequiredStar  = Red
	InputTypeFg        = Grey240
	InputErrorFg       = Red

	SuccessColor = BrightGreen
	ErrorColor   = Red
	WarningColor = Yellow
	InfoColor    = DeepBlue
	DimColor     = Grey240

	TabActiveBg   = DarkBlue
	TabActiveFg   = WhiteTerm
	TabInactiveFg = LighterGrey
)

// Gradient colors for the title bar
var (
	GradientStart = "#5A56E0" // Purple
	GradientEnd   = "#EE6FF8" // Pink
)

// ApplyGradient colors every line of text from GradientStart to GradientEnd.
// Spaces are kept as is.
func ApplyGradient(lines []string) []string {
	colorA, _ := colorful.Hex(GradientStart)
	colorB, _ := colorful.Hex(GradientEnd)
	profile := termenv.ColorProfile()

	gradientLines := make([]string, 0, len(lines))
	for _, line := range lines {
		var gradientLine strings.Builder
		runes := []rune(line)
		for i, char := range runes {
			if char == ' ' {
				gradientLine.WriteRune(char)
				continue
			}
			p := 0.5
			if len(runes) > 1 {
				p = float64(i) / float64(len(runes)-1)
			}
			c := colorA.BlendLuv(colorB, p).Hex()
			gradientLine.WriteString(termenv.String(string(char)).Foreground(profile.Color(c)).String())
		}
		gradientLines = append(gradientLines, gradientLine.String())
	}
	return gradientLines
}
