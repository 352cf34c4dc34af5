package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Status uint8

const (
	Stop Status = iota
	Running
	Win
	Lose
)

func (s Status) String() string {
	switch s {
	case Stop:
		return "stop"
	case Running:
		return "running"
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Terminal() bool {
	return s == Win || s == Lose
}

// Game is a single minesweeper round. It is not safe for concurrent use.
//
// Mines are placed on the first Open, never under the opened cell. Every
// operation silently ignores coordinates outside the board and moves that
// the current status does not allow.
type Game struct {
	params     GameParams
	grid       grid
	rnd        *rand.Rand
	status     Status
	remaining  int
	firstClick bool
	cheat      bool
	exploded   int
	listeners  []Listener
}

// NewGame returns a stopped game with no mines. A nil rnd gets a randomly
// seeded source.
func NewGame(params GameParams, rnd *rand.Rand) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g := &Game{
		params:     params,
		grid:       newGrid(params.Width, params.Height),
		rnd:        rnd,
		status:     Stop,
		remaining:  params.MineCount,
		firstClick: true,
		exploded:   -1,
	}
	return g, nil
}

func (g *Game) Params() GameParams {
	return g.params
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) RemainingFlags() int {
	return g.remaining
}

func (g *Game) Cheat() bool {
	return g.cheat
}

// Started reports whether mines have been placed.
func (g *Game) Started() bool {
	return !g.firstClick
}

func (g *Game) Cell(x, y int) (Cell, bool) {
	i, ok := g.grid.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return g.grid.cells[i], true
}

// Listen registers l for win and loss notifications. They are delivered
// synchronously, after the status has changed.
func (g *Game) Listen(l Listener) {
	g.listeners = append(g.listeners, l)
}

func (g *Game) Open(x, y int) {
	if i, ok := g.grid.index(x, y); ok {
		g.open(i)
	}
}

func (g *Game) open(i int) {
	if g.firstClick && g.status == Stop {
		g.firstClick = false
		g.status = Running
		g.placeMines(i)
	}
	if g.status != Running {
		return
	}

	c := &g.grid.cells[i]
	if c.Flag || c.Open {
		return
	}
	if c.Mine {
		g.exploded = i
		g.lose()
		return
	}

	c.Open = true
	g.expand(i)
	g.checkStatus()
}

func (g *Game) Flag(x, y int) {
	i, ok := g.grid.index(x, y)
	if !ok || g.status != Running {
		return
	}

	c := &g.grid.cells[i]
	switch {
	case c.Open:
		return
	case c.Flag:
		c.Flag = false
		g.remaining++
	case g.remaining > 0:
		c.Flag = true
		g.remaining--
	}
}

// Chord opens every unflagged neighbour of (x, y) when the number of flagged
// neighbours equals its mine count.
func (g *Game) Chord(x, y int) {
	i, ok := g.grid.index(x, y)
	if !ok || g.status != Running {
		return
	}

	flagged := 0
	pending := make([]int, 0, len(aroundOffsets))
	for j := range g.grid.around(i) {
		if g.grid.cells[j].Flag {
			flagged++
		} else {
			pending = append(pending, j)
		}
	}
	if flagged != g.grid.cells[i].AroundMines {
		return
	}

	for _, j := range pending {
		g.open(j)
	}
}

func (g *Game) ToggleCheat() {
	g.cheat = !g.cheat
}

func (g *Game) checkStatus() {
	won := true
	for i, c := range g.grid.cells {
		if c.Mine && c.Open {
			g.exploded = i
			g.lose()
			return
		}
		if !c.Mine && !c.Open {
			won = false
		}
	}
	if won {
		g.win()
	}
}

func (g *Game) win() {
	g.status = Win
	Log.WithField("seed", g.params.Seed()).Debug("game won")

	for _, l := range g.listeners {
		l.GameWon(g)
	}
}

func (g *Game) lose() {
	g.status = Lose
	for i := range g.grid.cells {
		g.grid.cells[i].Open = true
	}
	Log.WithFields(logrus.Fields{
		"seed":     g.params.Seed(),
		"exploded": g.Exploded(),
	}).Debug("game lost")

	for _, l := range g.listeners {
		l.GameLost(g)
	}
}

// Exploded returns the mine that lost the game, or nil.
func (g *Game) Exploded() *Point {
	if g.exploded < 0 {
		return nil
	}
	c := g.grid.cells[g.exploded]
	return &Point{c.X, c.Y}
}
