package core

import "math"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for scene elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// palette holds the approximate sRGB value of each named color, in [0,1].
// ColorDefault is treated as black for matching purposes.
var palette = map[Color][3]float64{
	ColorDefault:       {0, 0, 0},
	ColorRed:           {0.50, 0, 0},
	ColorGreen:         {0, 0.50, 0},
	ColorYellow:        {0.50, 0.50, 0},
	ColorBlue:          {0, 0, 0.50},
	ColorMagenta:       {0.50, 0, 0.50},
	ColorCyan:          {0, 0.50, 0.50},
	ColorWhite:         {0.75, 0.75, 0.75},
	ColorBrightRed:     {1, 0, 0},
	ColorBrightGreen:   {0, 1, 0},
	ColorBrightYellow:  {1, 1, 0},
	ColorBrightBlue:    {0.36, 0.36, 1},
	ColorBrightMagenta: {1, 0, 1},
	ColorBrightCyan:    {0.60, 0.90, 1},
	ColorBrightWhite:   {1, 1, 1},
	ColorOrange:        {1, 0.53, 0},
	ColorGray:          {0.54, 0.54, 0.54},
}

// NearestColor maps an RGB triple in [0,1] to the closest palette color.
func NearestColor(r, g, b float64) Color {
	best := ColorDefault
	bestDist := math.MaxFloat64
	// Iterate in declaration order so ties resolve deterministically
	for c := ColorDefault; c <= ColorGray; c++ {
		p := palette[c]
		dr, dg, db := r-p[0], g-p[1], b-p[2]
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
