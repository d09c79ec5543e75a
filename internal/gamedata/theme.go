package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// ThemeDef holds the hex colors used to draw the maze.
type ThemeDef struct {
	Wall      string `json:"wall"`
	Floor     string `json:"floor"`
	FloorAlt  string `json:"floorAlt"` // Checkerboard partner of Floor
	Food      string `json:"food"`
	Player    string `json:"player"`
	Text      string `json:"text"`
	Highlight string `json:"highlight"`
}

// Palette is a ThemeDef resolved to terminal colors.
type Palette struct {
	Wall      tcell.Color
	Floor     tcell.Color
	FloorAlt  tcell.Color
	Food      tcell.Color
	Player    tcell.Color
	Text      tcell.Color
	Highlight tcell.Color
}

// LoadTheme loads the embedded theme.json file.
func LoadTheme() (ThemeDef, error) {
	return Load[ThemeDef]("theme.json")
}

// Palette parses every color in the theme.
func (t ThemeDef) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"wall", t.Wall, &p.Wall},
		{"floor", t.Floor, &p.Floor},
		{"floorAlt", t.FloorAlt, &p.FloorAlt},
		{"food", t.Food, &p.Food},
		{"player", t.Player, &p.Player},
		{"text", t.Text, &p.Text},
		{"highlight", t.Highlight, &p.Highlight},
	}

	for _, f := range fields {
		color, err := ParseHexColor(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("theme color %s: %w", f.name, err)
		}
		*f.dst = color
	}
	return p, nil
}

// MustLoadPalette loads the embedded theme and resolves it, panicking on error.
func MustLoadPalette() Palette {
	theme, err := LoadTheme()
	if err != nil {
		panic(err)
	}
	palette, err := theme.Palette()
	if err != nil {
		panic(err)
	}
	return palette
}
