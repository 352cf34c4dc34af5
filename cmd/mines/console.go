package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type command string

const (
	cmdRedraw command = "g"
	cmdOpen   command = "o"
	cmdFlag   command = "f"
	cmdChord  command = "c"
	cmdCheat  command = "t"
	cmdJSON   command = "j"
	cmdNew    command = "n"
	cmdQuit   command = "q"
)

// Maps known commands to number of arguments, -1 for any
var commandNargs = map[command]int{
	cmdRedraw: 0,
	cmdOpen:   2,
	cmdFlag:   2,
	cmdChord:  2,
	cmdCheat:  0,
	cmdJSON:   0,
	cmdNew:    -1,
	cmdQuit:   0,
}

var (
	errQuit           = errors.New("quit")
	errUnknownCommand = errors.New("unknown command")
)

var dec = schema.NewDecoder()

type newGameParams struct {
	Width     int    `schema:"width,required"`
	Height    int    `schema:"height,required"`
	MineCount int    `schema:"mine_count,required"`
	Expansion string `schema:"expansion"`
}

// console plays one game at a time over a line based text protocol.
type console struct {
	cfg     config.Config
	rnd     *rand.Rand
	out     io.Writer
	events  chan<- outcome
	game    *mines.Game
	session string
	log     *logrus.Entry
}

func newConsole(
	cfg config.Config, params mines.GameParams, rnd *rand.Rand,
	out io.Writer, events chan<- outcome,
) (*console, error) {
	c := &console{cfg: cfg, rnd: rnd, out: out, events: events}
	if err := c.reset(params); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *console) reset(params mines.GameParams) error {
	game, err := mines.NewGame(params, c.rnd)
	if err != nil {
		return err
	}
	c.game = game
	c.session = uuid.NewString()
	c.log = log.WithFields(logrus.Fields{
		"session": c.session,
		"params":  params.Seed(),
	})
	game.Listen(eventListener{session: c.session, events: c.events})
	c.log.Debug("new game")
	return nil
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func (c *console) point(args []string) (x, y int, err error) {
	if x, y, err = parseXY(args); err != nil {
		return
	}
	if !c.game.Params().PointInBounds(x, y) {
		err = fmt.Errorf("invalid square coordinates %d %d", x, y)
	}
	return
}

func (c *console) openCell(args []string) error {
	x, y, err := c.point(args)
	if err != nil {
		return err
	}
	c.game.Open(x, y)
	return c.render()
}

func (c *console) flagCell(args []string) error {
	x, y, err := c.point(args)
	if err != nil {
		return err
	}
	c.game.Flag(x, y)
	return c.render()
}

func (c *console) chordCell(args []string) error {
	x, y, err := c.point(args)
	if err != nil {
		return err
	}
	c.game.Chord(x, y)
	return c.render()
}

// parseNewGame accepts nothing (same board), a preset name, a w:h:m seed or
// width=.. height=.. mine_count=.. [expansion=..] pairs.
func (c *console) parseNewGame(args []string) (mines.GameParams, error) {
	switch {
	case len(args) == 0:
		return c.game.Params(), nil
	case len(args) == 1 && strings.Contains(args[0], ":"):
		params, err := mines.ParseSeed(args[0])
		if err != nil {
			return params, err
		}
		params.Expansion = c.game.Params().Expansion
		return params, nil
	case len(args) == 1 && !strings.Contains(args[0], "="):
		return c.cfg.Preset(args[0])
	}

	values := url.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return mines.GameParams{}, fmt.Errorf("expected key=value, got %q", arg)
		}
		values.Set(key, value)
	}
	var p newGameParams
	if err := dec.Decode(&p, values); err != nil {
		return mines.GameParams{}, fmt.Errorf("invalid new game params: %w", err)
	}
	params := mines.GameParams{
		Width:     p.Width,
		Height:    p.Height,
		MineCount: p.MineCount,
		Expansion: c.game.Params().Expansion,
	}
	if p.Expansion != "" {
		var err error
		if params.Expansion, err = mines.ParseExpansion(p.Expansion); err != nil {
			return params, err
		}
	}
	return params, nil
}

func (c *console) newGame(args []string) error {
	params, err := c.parseNewGame(args)
	if err != nil {
		return err
	}
	cheat := c.game.Cheat()
	if err := c.reset(params); err != nil {
		return err
	}
	if cheat {
		c.game.ToggleCheat()
	}
	return c.render()
}

func (c *console) printJSON() error {
	return jsoniter.NewEncoder(c.out).Encode(c.game.Snapshot())
}

func (c *console) render() error {
	s := c.game.Snapshot()
	status := fmt.Sprintf("flags: %d  status: %s", s.RemainingFlags, s.Status)
	if s.Cheat {
		status += "  (cheat)"
	}
	if _, err := fmt.Fprintf(c.out, "%s%s\n", s, status); err != nil {
		return err
	}

	var err error
	switch s.Status {
	case mines.Win:
		_, err = fmt.Fprintln(c.out, "you win!")
	case mines.Lose:
		_, err = fmt.Fprintln(c.out, "you lose!")
	}
	return err
}

func (c *console) execute(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := command(tokens[0]), tokens[1:]
	nargs, ok := commandNargs[cmd]
	if !ok {
		return fmt.Errorf("%w %q", errUnknownCommand, tokens[0])
	}
	if nargs >= 0 && nargs != len(args) {
		return fmt.Errorf("%s takes %d arguments, got %d", cmd, nargs, len(args))
	}

	switch cmd {
	case cmdRedraw:
		return c.render()
	case cmdOpen:
		return c.openCell(args)
	case cmdFlag:
		return c.flagCell(args)
	case cmdChord:
		return c.chordCell(args)
	case cmdCheat:
		c.game.ToggleCheat()
		return c.render()
	case cmdJSON:
		return c.printJSON()
	case cmdNew:
		return c.newGame(args)
	case cmdQuit:
		return errQuit
	}
	return errUnknownCommand
}

// scanLines feeds lines from r until EOF or ctx is done. A Read already in
// progress is not interrupted.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Error("unable to read input: ", err)
		}
	}()
	return lines
}

// run executes commands from r until q, end of input or ctx is done. Bad
// commands are reported and do not end the session.
func (c *console) run(ctx context.Context, r io.Reader) error {
	if err := c.render(); err != nil {
		return err
	}

	lines := scanLines(ctx, r)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := c.execute(line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				c.log.WithField("line", line).Debug(err)
				if _, err := fmt.Fprintf(c.out, "error: %s\n", err); err != nil {
					return err
				}
			}
		}
	}
}
