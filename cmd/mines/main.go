package main

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var log = logrus.New()

type options struct {
	configPath  string
	preset      string
	width       int
	height      int
	mineCount   int
	seed        uint64
	expansion   mines.Expansion
	cheat       bool
	logFile     string
	development bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "mines",
	Short: "Play minesweeper in the terminal",
	Long: `mines is a terminal minesweeper. Type one command per line:

	o x y    open a cell
	f x y    flag or unflag a cell
	c x y    open the neighbours of a satisfied number
	t        toggle cheat mode
	g        redraw the board
	j        print the board as JSON
	n [preset | w:h:m | width=.. height=.. mine_count=..]
	         start a new game
	q        quit
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

type expansionValue mines.Expansion

func newExpansionValue(val mines.Expansion, p *mines.Expansion) *expansionValue {
	*p = val
	return (*expansionValue)(p)
}

func (v *expansionValue) String() string {
	return mines.Expansion(*v).String()
}

func (v *expansionValue) Set(s string) error {
	e, err := mines.ParseExpansion(s)
	if err != nil {
		return err
	}
	*v = expansionValue(e)
	return nil
}

func (v *expansionValue) Type() string {
	return "expansion"
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", config.Path(), "config file path (MINES_CONFIG)")
	f.StringVarP(&opts.preset, "preset", "p", "", "board preset, e.g. beginner, intermediate, expert")
	f.IntVarP(&opts.width, "width", "w", 0, "width of the board, in cells")
	f.IntVarP(&opts.height, "height", "H", 0, "height of the board, in cells")
	f.IntVarP(&opts.mineCount, "mines", "m", 0, "number of mines")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed, 0 picks one")
	f.Var(newExpansionValue(mines.ExpandOrthogonal, &opts.expansion), "expand", `how opening a safe cell spreads:
orthogonal: to the 4 orthogonal neighbours of every opened cell
zero: to all 8 neighbours of cells with no adjacent mines`)
	f.BoolVar(&opts.cheat, "cheat", false, "start with mines visible")
	f.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this rotating file")
	f.BoolVar(&opts.development, "development", config.Development(), "debug logging (DEVELOPMENT)")
}

// loadConfig merges the config file and the command line, flags winning.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, fmt.Errorf("unable to load config %s: %w", opts.configPath, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("development") || opts.development {
		cfg.Development = opts.development
	}
	if flags.Changed("expand") {
		cfg.Expansion = opts.expansion.String()
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if flags.Changed("preset") {
		cfg.DefaultPreset = opts.preset
	}
	return cfg, nil
}

// gameParams resolves the starting board: the preset, then any explicit
// size flags on top of it.
func gameParams(cmd *cobra.Command, cfg config.Config) (mines.GameParams, error) {
	params, err := cfg.Preset(cfg.DefaultPreset)
	if err != nil {
		return params, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		params.Width = opts.width
	}
	if flags.Changed("height") {
		params.Height = opts.height
	}
	if flags.Changed("mines") {
		params.MineCount = opts.mineCount
	}
	return params, params.Validate()
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(),
			new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func setupLogging(cfg config.Config) error {
	logLevel := cfg.LogLevel()
	if cfg.Development {
		logLevel = logrus.DebugLevel
	}

	for _, l := range []*logrus.Logger{log, mines.Log} {
		l.SetLevel(logLevel)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
		l.SetOutput(os.Stderr)
	}

	if cfg.Log.File == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", cfg.Log.File, err)
	}
	log.AddHook(hook)
	mines.Log.AddHook(hook)
	return nil
}

func run(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	log.WithFields(cfg.Fields()).Debug("config")

	params, err := gameParams(cmd, cfg)
	if err != nil {
		return err
	}

	mainCtx, stop := signal.NotifyContext(
		cmd.Context(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	events := make(chan outcome, 16)
	con, err := newConsole(cfg, params, newRand(cfg.Seed), cmd.OutOrStdout(), events)
	if err != nil {
		return err
	}
	if opts.cheat {
		con.game.ToggleCheat()
	}

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		defer close(events)
		return con.run(gCtx, cmd.InOrStdin())
	})
	g.Go(func() error {
		drainEvents(events)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Debug("bye")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
