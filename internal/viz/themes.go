package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/arbor/internal/grow"
)

// Theme defines the color scheme of the viewer. Branch colors run from Bark
// at the trunk to Twig at the deepest order.
type Theme struct {
	Name   string
	Bark   lipgloss.Color
	Twig   lipgloss.Color
	Leaf   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Paused lipgloss.Color
}

var (
	ThemeForest = Theme{
		Name:   "forest",
		Bark:   lipgloss.Color("#8b5a2b"),
		Twig:   lipgloss.Color("#c8a165"),
		Leaf:   lipgloss.Color("#5fd068"),
		Accent: lipgloss.Color("#9be564"),
		Text:   lipgloss.Color("#f0f5e8"),
		Muted:  lipgloss.Color("#6b7a5e"),
		Paused: lipgloss.Color("#ffc048"),
	}

	ThemeAutumn = Theme{
		Name:   "autumn",
		Bark:   lipgloss.Color("#5a3300"),
		Twig:   lipgloss.Color("#a0703c"),
		Leaf:   lipgloss.Color("#e07b1a"),
		Accent: lipgloss.Color("#ffd166"),
		Text:   lipgloss.Color("#fff5e6"),
		Muted:  lipgloss.Color("#8b6b4c"),
		Paused: lipgloss.Color("#ff6b6b"),
	}

	ThemeWinter = Theme{
		Name:   "winter",
		Bark:   lipgloss.Color("#4d4d45"),
		Twig:   lipgloss.Color("#b3aa99"),
		Leaf:   lipgloss.Color("#e0f0ff"),
		Accent: lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Paused: lipgloss.Color("#ffcc00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Bark:   lipgloss.Color("#ffffff"),
		Twig:   lipgloss.Color("#aaaaaa"),
		Leaf:   lipgloss.Color("#0088ff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Paused: lipgloss.Color("#ffaa00"),
	}

	CurrentTheme = ThemeForest

	Themes = []Theme{
		ThemeForest,
		ThemeAutumn,
		ThemeWinter,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to forest.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeForest
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeForest
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// OrderColor blends from Bark to Twig in Lab space by branch order.
func (t Theme) OrderColor(order int) lipgloss.Color {
	bark, err := colorful.Hex(string(t.Bark))
	if err != nil {
		return t.Bark
	}
	twig, err := colorful.Hex(string(t.Twig))
	if err != nil {
		return t.Bark
	}
	f := float64(order-1) / float64(grow.MaxOrder-1)
	f = max(0, min(1, f))
	return lipgloss.Color(bark.BlendLab(twig, f).Clamped().Hex())
}

// PenStyle colors a canvas pen: orders 1..4 by OrderColor, leaves by Leaf.
func (t Theme) PenStyle(pen uint8) lipgloss.Style {
	if pen == LeafPen {
		return lipgloss.NewStyle().Foreground(t.Leaf)
	}
	return lipgloss.NewStyle().Foreground(t.OrderColor(int(pen)))
}
