package mines

import (
	"slices"
	"strconv"
	"strings"
)

// Snapshot is a detached copy of everything a renderer may show.
type Snapshot struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	MineCount      int    `json:"mine_count"`
	RemainingFlags int    `json:"remaining_flags"`
	Status         Status `json:"status"`
	Cheat          bool   `json:"cheat"`
	Exploded       *Point `json:"exploded,omitempty"`
	Cells          []Cell `json:"cells"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Width:          g.params.Width,
		Height:         g.params.Height,
		MineCount:      g.params.MineCount,
		RemainingFlags: g.remaining,
		Status:         g.status,
		Cheat:          g.cheat,
		Exploded:       g.Exploded(),
		Cells:          slices.Clone(g.grid.cells),
	}
}

func (s Snapshot) At(x, y int) Cell {
	return s.Cells[y*s.Width+x]
}

// Glyph renders one cell:
//
//	# closed        F flagged
//	. open, 0       1-8 open, adjacent mines
//	* mine          X the mine that lost the game
//
// Closed mines are only shown in cheat mode or once the game is over.
func (s Snapshot) Glyph(c Cell) string {
	switch {
	case c.Mine && s.Exploded != nil && s.Exploded.X == c.X && s.Exploded.Y == c.Y:
		return "X"
	case c.Open && c.Mine:
		return "*"
	case c.Open && c.AroundMines == 0:
		return "."
	case c.Open:
		return strconv.Itoa(c.AroundMines)
	case c.Flag:
		return "F"
	case c.Mine && (s.Cheat || s.Status.Terminal()):
		return "*"
	default:
		return "#"
	}
}

// [Snapshot] implements [fmt.Stringer]
func (s Snapshot) String() string {
	var b strings.Builder
	row := make([]string, s.Width)
	for y := range s.Height {
		for x := range s.Width {
			row[x] = s.Glyph(s.At(x, y))
		}
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
