package pkg

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/qnkhuat/minerig/pkg/puzzle"
)

const (
	LogStandard = iota
	LogDebug
	LogVerbose
)

type GameConfig struct {
	Rig       string
	Balance   Balance
	Presenter Presenter

	Logger   *log.Logger
	LogLevel int

	// Now, Sleep and Rand default to the wall clock and a time seeded source.
	Now   func() time.Time
	Sleep func(time.Duration)
	Rand  *rand.Rand
}

// Game is one rig: the state, the command queue and the loop driving them.
// Only the loop goroutine touches State.
type Game struct {
	Rig     string
	State   *State
	Balance Balance

	LogLevel int

	queue     *CommandQueue
	presenter Presenter
	factory   *puzzle.Factory
	logger    *log.Logger
	now       func() time.Time
	sleep     func(time.Duration)

	running atomic.Bool
}

func NewGame(cfg GameConfig) *Game {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if cfg.Balance.TickInterval == 0 {
		cfg.Balance = DefaultBalance()
	}

	g := &Game{
		Rig:       cfg.Rig,
		State:     NewState(cfg.Balance, cfg.Now()),
		Balance:   cfg.Balance,
		LogLevel:  cfg.LogLevel,
		queue:     NewCommandQueue(),
		presenter: cfg.Presenter,
		factory:   puzzle.NewFactory(cfg.Rand, cfg.Now),
		logger:    cfg.Logger,
		now:       cfg.Now,
		sleep:     cfg.Sleep,
	}
	g.running.Store(true)
	return g
}

func (g *Game) Logf(level int, format string, a ...interface{}) {
	if g.logger == nil || level > g.LogLevel {
		return
	}
	g.logger.Printf("%s: %s", g.Rig, fmt.Sprintf(format, a...))
}

func (g *Game) Running() bool {
	return g.running.Load()
}

// Stop ends the loop after the current tick. The input collector exits on
// its next completed read.
func (g *Game) Stop() {
	g.running.Store(false)
}

// Queue is where typed lines wait for the next tick.
func (g *Game) Queue() *CommandQueue {
	return g.queue
}

// Run draws the dashboard, starts collecting input from in and drives the
// loop until quit or until ctx is done.
func (g *Game) Run(ctx context.Context, in LineReader) {
	g.Logf(LogStandard, "rig started with %.2f points", g.State.Points)

	g.presenter.Clear()
	g.presenter.Dashboard(g.snapshot())

	collector := &InputCollector{Queue: g.queue, Running: g.Running}
	go collector.Run(in)

	ticker := time.NewTicker(g.Balance.TickInterval)
	defer ticker.Stop()

	for g.Running() {
		g.Step()

		select {
		case <-ctx.Done():
			g.Logf(LogStandard, "rig stopped by context: %v", ctx.Err())
			g.Stop()
		case <-ticker.C:
		}
	}

	g.presenter.Notify(Notice{Kind: NoticeGameOver})
	g.Logf(LogStandard, "rig stopped with %.2f points", g.State.Points)
}

// Step runs one tick: economy, queued commands, then the puzzle deadline.
func (g *Game) Step() {
	if secs := g.State.Tick(g.now()); secs > 0 {
		g.Logf(LogVerbose, "credited %ds, balance %.2f", secs, g.State.Points)
	}
	g.ProcessCommands()
	g.CheckPuzzleTimeout()
}

// CheckPuzzleTimeout fails a multi puzzle whose deadline has passed, whether
// or not an answer is on its way.
func (g *Game) CheckPuzzleTimeout() {
	s := g.State
	if s.Mode != ModePuzzle || s.Area != puzzle.Multi || s.Puzzle == nil {
		return
	}
	if !s.Puzzle.Expired(g.now(), g.Balance.PuzzleDeadline) {
		return
	}

	g.Logf(LogStandard, "shaft exploded after %s", s.Puzzle.Elapsed(g.now()))

	g.presenter.Clear()
	g.presenter.Notify(Notice{Kind: NoticeExploded, Area: s.Area, Puzzle: *s.Puzzle})
	s.Puzzle = nil
	g.setMode(ModeIdle)
	g.sleep(g.Balance.ResolvePause)
	g.presenter.Dashboard(g.snapshot())
}

func (g *Game) setMode(m Mode) {
	if g.State.Mode != m {
		g.Logf(LogDebug, "mode %s -> %s", g.State.Mode, m)
	}
	g.State.Mode = m
}

func (g *Game) snapshot() Snapshot {
	return g.State.Snapshot(g.Rig)
}
