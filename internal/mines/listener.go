package mines

type Listener interface {
	GameWon(g *Game)
	GameLost(g *Game)
}

// ListenerFuncs adapts plain functions to [Listener]. Nil fields are skipped.
type ListenerFuncs struct {
	Won  func(g *Game)
	Lost func(g *Game)
}

func (f ListenerFuncs) GameWon(g *Game) {
	if f.Won != nil {
		f.Won(g)
	}
}

func (f ListenerFuncs) GameLost(g *Game) {
	if f.Lost != nil {
		f.Lost(g)
	}
}
