package game

import (
	"errors"
	"math/rand"
)

// GridSize is the number of slots in the answer grid; OptionCount of them are
// populated each round, the rest stay nil.
const (
	GridSize    = 9
	OptionCount = 3
)

// ErrPaletteExhausted is returned when no draw sequence can satisfy the
// distinct-color constraints. With 4 or more colors a valid round always
// exists and generation succeeds; smaller palettes fail closed.
var ErrPaletteExhausted = errors.New("palette too small to satisfy round constraints")

// Cell is one populated grid slot: a color word rendered in some other color.
type Cell struct {
	Word  string `json:"word"`
	Color string `json:"color"`
}

// Round is one Stroop challenge. The correct click target is the cell whose
// Word equals TargetColor.
type Round struct {
	TargetWord  string
	TargetColor string
	Cells       [GridSize]*Cell
}

// Generator produces rounds from a seeded random source so tests can replay
// exact sequences.
type Generator struct {
	rng     *rand.Rand
	palette []string
}

func NewGenerator(rng *rand.Rand, palette []string) *Generator {
	return &Generator{rng: rng, palette: palette}
}

// maxAttempts bounds the whole-round retry in Generate, so a call always
// returns within a fixed draw budget.
const maxAttempts = 256

func (g *Generator) pick() string {
	return g.palette[g.rng.Intn(len(g.palette))]
}

// pickExcept draws uniformly among the palette names not in the exclusion
// set; false when the exclusions cover the whole palette.
func (g *Generator) pickExcept(excluded map[string]bool) (string, bool) {
	candidates := make([]string, 0, len(g.palette))
	for _, name := range g.palette {
		if !excluded[name] {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[g.rng.Intn(len(candidates))], true
}

// Generate builds a new round:
//   - target word and target color differ,
//   - exactly one cell's word equals the target color (the correct target),
//   - no two cells share a word, no two cells share a color,
//   - no cell is rendered in the color its own word names,
//   - the populated cells land on three uniformly random grid slots.
//
// A draw sequence can paint itself into a corner on a tight palette (the last
// cell's color exclusions may cover every name), so dead ends retry the whole
// option set rather than erroring out while valid rounds exist.
func (g *Generator) Generate() (*Round, error) {
	targetWord := g.pick()
	targetColor, ok := g.pickExcept(map[string]bool{targetWord: true})
	if !ok {
		return nil, ErrPaletteExhausted
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		options, ok := g.buildOptions(targetColor)
		if !ok {
			continue
		}

		// Shuffle option order, then scatter them over the grid.
		g.rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		round := &Round{TargetWord: targetWord, TargetColor: targetColor}
		for i, pos := range g.rng.Perm(GridSize)[:OptionCount] {
			round.Cells[pos] = options[i]
		}
		return round, nil
	}
	return nil, ErrPaletteExhausted
}

// buildOptions draws one complete option set, reporting false on a dead end.
func (g *Generator) buildOptions(targetColor string) ([]*Cell, bool) {
	usedWords := map[string]bool{targetColor: true}
	usedColors := map[string]bool{}

	// The correct option displays the target color's name. Its own display
	// color must not be the target color and must not match its word.
	correctColor, ok := g.pickExcept(map[string]bool{targetColor: true})
	if !ok {
		return nil, false
	}
	usedColors[correctColor] = true

	options := []*Cell{{Word: targetColor, Color: correctColor}}

	for len(options) < OptionCount {
		word, ok := g.pickExcept(usedWords)
		if !ok {
			return nil, false
		}
		color, ok := g.pickExcept(mergeSets(usedColors, map[string]bool{targetColor: true, word: true}))
		if !ok {
			return nil, false
		}
		usedWords[word] = true
		usedColors[color] = true
		options = append(options, &Cell{Word: word, Color: color})
	}
	return options, true
}

func mergeSets(sets ...map[string]bool) map[string]bool {
	merged := make(map[string]bool)
	for _, set := range sets {
		for k := range set {
			merged[k] = true
		}
	}
	return merged
}
