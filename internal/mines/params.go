package mines

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxCells caps the board area accepted by [GameParams.Validate].
const MaxCells = 1 << 20

// Expansion selects how opening a safe cell spreads to its neighbours.
type Expansion uint8

const (
	// ExpandOrthogonal spreads to the 4 orthogonal neighbours of every newly
	// opened cell, whatever its mine count.
	ExpandOrthogonal Expansion = iota
	// ExpandZero spreads to all 8 neighbours, and only from cells that have no
	// adjacent mines.
	ExpandZero
)

func (e Expansion) String() string {
	switch e {
	case ExpandOrthogonal:
		return "orthogonal"
	case ExpandZero:
		return "zero"
	default:
		return fmt.Sprintf("Expansion(%d)", uint8(e))
	}
}

func ParseExpansion(s string) (Expansion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "orthogonal":
		return ExpandOrthogonal, nil
	case "zero":
		return ExpandZero, nil
	default:
		return 0, fmt.Errorf("unknown expansion %q (want orthogonal or zero)", s)
	}
}

type GameParams struct {
	Width, Height, MineCount int
	Expansion                Expansion
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Seed is the compact "width:height:mines" notation accepted by [ParseSeed].
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (GameParams, error) {
	var p GameParams
	parts := strings.Split(seed, ":")
	if len(parts) != 3 {
		return p, fmt.Errorf(`invalid game params seed "%s": want width:height:mines`, seed)
	}
	fields := [...]*int{&p.Width, &p.Height, &p.MineCount}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return GameParams{}, fmt.Errorf(`invalid game params seed "%s": %w`, seed, err)
		}
		*fields[i] = n
	}
	return p, nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

// Validate reports a [*ParamsError] for boards that cannot host the
// requested mines with one safe first click.
func (p GameParams) Validate() error {
	switch {
	case p.Width < 1:
		return &ParamsError{Params: p, reason: "width must be positive"}
	case p.Height < 1:
		return &ParamsError{Params: p, reason: "height must be positive"}
	case p.Height > math.MaxInt/p.Width || p.Width*p.Height > MaxCells:
		return &ParamsError{Params: p, reason: fmt.Sprintf(
			"board larger than %d cells", MaxCells,
		)}
	case p.MineCount < 1:
		return &ParamsError{Params: p, reason: "mine count must be positive"}
	case p.MineCount >= p.Width*p.Height:
		return &ParamsError{Params: p, reason: fmt.Sprintf(
			"not enough space for %d mines on %dx%d", p.MineCount, p.Width, p.Height,
		)}
	case p.Expansion > ExpandZero:
		return &ParamsError{Params: p, reason: "unknown expansion " + p.Expansion.String()}
	}
	return nil
}
