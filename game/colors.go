package game

// Palette is the fixed set of color names a round draws from. Both target
// words and display colors come from the same set.
var Palette = []string{"RED", "BLUE", "GREEN", "YELLOW", "PURPLE", "ORANGE", "WHITE"}

// ColorHex maps palette names to the hex values clients render with.
var ColorHex = map[string]string{
	"RED":    "#EF4444",
	"BLUE":   "#3B82F6",
	"GREEN":  "#22C55E",
	"YELLOW": "#EAB308",
	"PURPLE": "#A855F7",
	"ORANGE": "#F97316",
	"WHITE":  "#FFFFFF",
}
