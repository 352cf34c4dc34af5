package main

import (
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// outcome is a finished game, as reported to the event log.
type outcome struct {
	Session  string
	Params   mines.GameParams
	Status   mines.Status
	Exploded *mines.Point
}

// eventListener forwards game results to a channel. It never blocks the
// game: results that do not fit in the buffer are logged and dropped.
type eventListener struct {
	session string
	events  chan<- outcome
}

func (l eventListener) send(g *mines.Game) {
	o := outcome{
		Session:  l.session,
		Params:   g.Params(),
		Status:   g.Status(),
		Exploded: g.Exploded(),
	}
	select {
	case l.events <- o:
	default:
		log.WithField("session", l.session).Warn("event buffer full, dropping ", o.Status)
	}
}

func (l eventListener) GameWon(g *mines.Game) {
	l.send(g)
}

func (l eventListener) GameLost(g *mines.Game) {
	l.send(g)
}

// drainEvents logs results until events is closed.
func drainEvents(events <-chan outcome) {
	for o := range events {
		fields := logrus.Fields{
			"session": o.Session,
			"params":  o.Params.Seed(),
			"status":  o.Status,
		}
		if o.Exploded != nil {
			fields["exploded"] = *o.Exploded
		}
		log.WithFields(fields).Info("game over")
	}
}
