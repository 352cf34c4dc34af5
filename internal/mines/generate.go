package mines

import "github.com/sirupsen/logrus"

// placeMines puts MineCount mines anywhere except the excluded cell. Picks
// without replacement, so it always terminates.
func (g *Game) placeMines(excluded int) {
	candidates := make([]int, 0, len(g.grid.cells)-1)
	for i := range g.grid.cells {
		if i != excluded {
			candidates = append(candidates, i)
		}
	}

	mines := make([]int, 0, g.params.MineCount)
	k := len(candidates)
	for range g.params.MineCount {
		i := g.rnd.IntN(k)
		mines = append(mines, candidates[i])
		k--
		candidates[i] = candidates[k]
	}

	g.plant(mines)

	start := g.grid.cells[excluded]
	Log.WithFields(logrus.Fields{
		"seed":  g.params.Seed(),
		"start": Point{start.X, start.Y},
	}).Debug("mines placed")
}

func (g *Game) plant(mines []int) {
	for _, i := range mines {
		g.grid.cells[i].Mine = true
		for j := range g.grid.around(i) {
			g.grid.cells[j].AroundMines++
		}
	}
}
