package pkg

import (
	"context"
	"io"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/qnkhuat/minerig/pkg/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu         sync.Mutex
	notices    []Notice
	dashboards int
	crews      int
	clears     int
}

func (r *recorder) Clear() {
	r.mu.Lock()
	r.clears++
	r.mu.Unlock()
}

func (r *recorder) Dashboard(Snapshot) {
	r.mu.Lock()
	r.dashboards++
	r.mu.Unlock()
}

func (r *recorder) Crew(Snapshot) {
	r.mu.Lock()
	r.crews++
	r.mu.Unlock()
}

func (r *recorder) Notify(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

func (r *recorder) last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{Kind: -1}
	}
	return r.notices[len(r.notices)-1]
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestGame(seed int64) (*Game, *recorder, *fakeClock) {
	clock := &fakeClock{t: time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)}
	rec := &recorder{}
	g := NewGame(GameConfig{
		Rig:       "test-rig",
		Balance:   DefaultBalance(),
		Presenter: rec,
		Now:       clock.Now,
		Sleep:     func(time.Duration) {},
		Rand:      rand.New(rand.NewSource(seed)),
	})
	return g, rec, clock
}

func TestNewGame(t *testing.T) {
	g, _, _ := newTestGame(1)
	s := g.State

	assert.Equal(t, 10000.0, s.Points)
	assert.Equal(t, 1.0, s.PointsPerSec)
	assert.Equal(t, ModeIdle, s.Mode)
	assert.Equal(t, puzzle.Prime, s.Area)
	assert.Nil(t, s.Puzzle)
	assert.True(t, s.Unlocked[puzzle.Prime])
	assert.False(t, s.Unlocked[puzzle.Binary])
	assert.False(t, s.Unlocked[puzzle.Multi])
	assert.Equal(t, 200.0, s.AreaCosts[puzzle.Binary])
	assert.Equal(t, 3000.0, s.AreaCosts[puzzle.Multi])
	require.Len(t, s.Crew, 1)
	assert.Equal(t, "Miner 1", s.Crew[0].Name)
	assert.True(t, s.Crew[0].Locked())
	assert.Equal(t, 5000.0, s.Crew[0].UnlockCost)
	assert.True(t, g.Running())
}

func TestModeTransitions(t *testing.T) {
	for _, tc := range []struct {
		name  string
		lines []string
		mode  Mode
		kind  NoticeKind
	}{
		{"unknown in idle", []string{"dance"}, ModeIdle, NoticeUnknownCommand},
		{"extra args in idle", []string{"prime now"}, ModeIdle, NoticeUnknownCommand},
		{"blank in idle", []string{"   "}, ModeIdle, NoticeUnknownCommand},
		{"enter prime", []string{"prime"}, ModeChooseDifficulty, NoticeEnterArea},
		{"case insensitive", []string{"  PRIME "}, ModeChooseDifficulty, NoticeEnterArea},
		{"bad difficulty", []string{"prime", "impossible"}, ModeChooseDifficulty, NoticeInvalidDifficulty},
		{"prime puzzle", []string{"prime", "easy"}, ModePuzzle, NoticeQuestion},
		{"bad prime answer", []string{"prime", "hard", "maybe"}, ModePuzzle, NoticeInvalidAnswer},
		{"unlock binary", []string{"binary"}, ModeIdle, NoticeAreaUnlocked},
		{"enter binary", []string{"binary", "binary"}, ModeChooseDifficulty, NoticeEnterArea},
		{"enter crew", []string{"crew"}, ModeCrewManagement, -1},
		{"unknown in crew", []string{"crew", "prime"}, ModeCrewManagement, NoticeCrewUnknown},
		{"back with args", []string{"crew", "back now"}, ModeCrewManagement, NoticeCrewUnknown},
		{"back", []string{"crew", "back"}, ModeIdle, -1},
		{"upgrade usage", []string{"crew", "upgrade"}, ModeCrewManagement, NoticeCrewUsage},
		{"upgrade not a number", []string{"crew", "upgrade one"}, ModeCrewManagement, NoticeCrewUsage},
		{"upgrade missing miner", []string{"crew", "upgrade 9"}, ModeCrewManagement, NoticeCrewNoSuchMiner},
		{"upgrade miner zero", []string{"crew", "upgrade 0"}, ModeCrewManagement, NoticeCrewNoSuchMiner},
		{"bad difficulty in binary", []string{"binary", "binary", "extreme"}, ModeChooseDifficulty, NoticeInvalidDifficulty},
		{"bad difficulty in multi", []string{"multi", "multi", "extreme"}, ModeChooseDifficulty, NoticeInvalidDifficulty},
		{"yes to binary", []string{"binary", "binary", "easy", "yes"}, ModeIdle, NoticeIncorrect},
		{"yes to multi", []string{"multi", "multi", "easy", "yes"}, ModeIdle, NoticeIncorrect},
		{"quit choosing difficulty", []string{"prime", "quit"}, ModeChooseDifficulty, NoticeInvalidDifficulty},
		{"quit in prime puzzle", []string{"prime", "easy", "quit"}, ModePuzzle, NoticeInvalidAnswer},
		{"quit in binary puzzle", []string{"binary", "binary", "normal", "quit"}, ModeIdle, NoticeIncorrect},
		{"quoted verb", []string{`"prime"`}, ModeChooseDifficulty, NoticeEnterArea},
		{"unterminated quote", []string{`prime "now`}, ModeIdle, NoticeUnknownCommand},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, rec, _ := newTestGame(3)
			for _, line := range tc.lines {
				g.Command(line)
			}
			assert.Equal(t, tc.mode, g.State.Mode)
			assert.Equal(t, tc.kind, rec.last().Kind)
			assert.True(t, g.Running(), "only quit in idle stops the rig")
			if tc.mode != ModePuzzle {
				assert.Nil(t, g.State.Puzzle)
			}
		})
	}
}

func TestStatusRedrawsDashboard(t *testing.T) {
	g, rec, _ := newTestGame(1)
	g.Command("status")
	assert.Equal(t, 1, rec.dashboards)
	assert.Empty(t, rec.notices)
	assert.Equal(t, ModeIdle, g.State.Mode)
}

func TestQuit(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Command("quit")
	assert.False(t, g.Running())
}

func TestAreaLocked(t *testing.T) {
	g, rec, _ := newTestGame(1)
	g.State.Points = 100

	g.Command("multi")
	n := rec.last()
	assert.Equal(t, NoticeAreaLocked, n.Kind)
	assert.Equal(t, puzzle.Multi, n.Area)
	assert.Equal(t, 2900.0, n.Amount)
	assert.False(t, g.State.Unlocked[puzzle.Multi])
	assert.Equal(t, 100.0, g.State.Points)
	assert.Equal(t, ModeIdle, g.State.Mode)
}

func TestAreaUnlockChargesOnce(t *testing.T) {
	g, _, _ := newTestGame(1)

	g.Command("binary")
	assert.True(t, g.State.Unlocked[puzzle.Binary])
	assert.Equal(t, 9800.0, g.State.Points)
	assert.Equal(t, ModeIdle, g.State.Mode)

	g.Command("binary")
	assert.Equal(t, 9800.0, g.State.Points)
	assert.Equal(t, ModeChooseDifficulty, g.State.Mode)
	assert.Equal(t, puzzle.Binary, g.State.Area)
}

func TestPrimeAnswer(t *testing.T) {
	g, rec, _ := newTestGame(5)
	g.Command("prime")
	g.Command("normal")
	require.NotNil(t, g.State.Puzzle)
	p := *g.State.Puzzle

	g.Command("perhaps")
	assert.Equal(t, NoticeInvalidAnswer, rec.last().Kind)
	require.NotNil(t, g.State.Puzzle)
	assert.Equal(t, p, *g.State.Puzzle)

	g.Command(p.Answer)
	n := rec.last()
	assert.Equal(t, NoticeCorrect, n.Kind)
	assert.Equal(t, 1.0, n.Amount)
	assert.Equal(t, 1.0, g.State.PointsPerSec)
	assert.Nil(t, g.State.Puzzle)
	assert.Equal(t, ModeIdle, g.State.Mode)
}

func TestBinaryWrongAnswer(t *testing.T) {
	g, rec, _ := newTestGame(5)
	g.Command("binary")
	g.Command("binary")
	g.Command("hard")
	require.NotNil(t, g.State.Puzzle)

	g.Command("2")
	n := rec.last()
	assert.Equal(t, NoticeIncorrect, n.Kind)
	assert.Equal(t, "2", n.Command)
	assert.Equal(t, 1.0, g.State.PointsPerSec)
	assert.Nil(t, g.State.Puzzle)
	assert.Equal(t, ModeIdle, g.State.Mode)
}

func TestMultiBoostsRate(t *testing.T) {
	g, rec, clock := newTestGame(7)
	g.Command("multi")
	g.Command("multi")
	g.Command("hard")
	require.NotNil(t, g.State.Puzzle)
	answer := g.State.Puzzle.Answer

	clock.Advance(2 * time.Second)
	g.Command(answer)

	n := rec.last()
	require.Equal(t, NoticeFastWork, n.Kind)
	assert.Equal(t, 2*time.Second, n.Elapsed)
	assert.InDelta(t, 1.64, n.Multiplier, 1e-9)
	assert.InDelta(t, 1.64, g.State.PointsPerSec, 1e-9)
	assert.Equal(t, ModeIdle, g.State.Mode)
}

func TestMultiWrongAnswerKeepsRate(t *testing.T) {
	g, rec, _ := newTestGame(7)
	g.Command("multi")
	g.Command("multi")
	g.Command("easy")

	g.Command("-1")
	assert.Equal(t, NoticeIncorrect, rec.last().Kind)
	assert.Equal(t, 1.0, g.State.PointsPerSec)
}

func TestMultiExplodesWithoutInput(t *testing.T) {
	g, rec, clock := newTestGame(9)
	g.Queue().Push("multi")
	g.Queue().Push("multi")
	g.Queue().Push("normal")
	g.Step()
	require.Equal(t, ModePuzzle, g.State.Mode)

	clock.Advance(10 * time.Second)
	g.Step()
	assert.Equal(t, ModePuzzle, g.State.Mode, "a puzzle at exactly the deadline is still alive")

	clock.Advance(time.Millisecond)
	g.Step()
	assert.Equal(t, NoticeExploded, rec.last().Kind)
	assert.Equal(t, ModeIdle, g.State.Mode)
	assert.Nil(t, g.State.Puzzle)
	assert.Equal(t, 1.0, g.State.PointsPerSec)
}

func TestLateAnswerShrinksRate(t *testing.T) {
	g, rec, clock := newTestGame(9)
	g.Command("multi")
	g.Command("multi")
	g.Command("easy")
	answer := g.State.Puzzle.Answer

	clock.Advance(11 * time.Second)
	g.Queue().Push(answer)
	g.Step()

	// The queued answer is graded before the deadline check.
	var kinds []NoticeKind
	for _, n := range rec.notices {
		kinds = append(kinds, n.Kind)
	}
	assert.Contains(t, kinds, NoticeFastWork)
	assert.NotContains(t, kinds, NoticeExploded)
	assert.Less(t, g.State.PointsPerSec, 1.0)
}

func TestCrewUnlockAndUpgrade(t *testing.T) {
	g, rec, _ := newTestGame(1)
	g.State.Points = 5000

	g.Command("crew")
	g.Command("upgrade 1")
	n := rec.last()
	require.Equal(t, NoticeCrewSuccess, n.Kind)
	assert.Equal(t, CrewUnlock, n.Action)
	assert.Equal(t, 0.0, g.State.Points)
	require.Len(t, g.State.Crew, 2)
	assert.Equal(t, 1, g.State.Crew[0].Level)
	assert.Equal(t, "Miner 2", g.State.Crew[1].Name)
	assert.Equal(t, 10000.0, g.State.Crew[1].UnlockCost)
	assert.Equal(t, 50.0, g.State.CrewPps())
	assert.Equal(t, 51.0, g.State.TotalPps())

	g.Command("upgrade 1")
	n = rec.last()
	assert.Equal(t, NoticeCrewNoFunds, n.Kind)
	assert.Equal(t, CrewUpgrade, n.Action)
	assert.Equal(t, 5000.0, n.Amount)
	assert.Equal(t, 5000.0, n.Shortfall)

	g.State.Points = 6000
	g.Command("upgrade 1")
	assert.Equal(t, NoticeCrewSuccess, rec.last().Kind)
	assert.Equal(t, 2, g.State.Crew[0].Level)
	assert.Equal(t, 1000.0, g.State.Points)
	assert.Len(t, g.State.Crew, 2)

	cost, action := g.State.NextCost(g.State.Crew[0])
	assert.Equal(t, CrewUpgrade, action)
	assert.InDelta(t, 5000*math.Pow(2, 1.5), cost, 1e-9)
}

func TestProcessCommandsDrainsInOrder(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Queue().Push("crew")
	g.Queue().Push("back")
	g.Queue().Push("prime")

	g.ProcessCommands()
	assert.Equal(t, 0, g.Queue().Len())
	assert.Equal(t, ModeChooseDifficulty, g.State.Mode)
}

func TestRunQuits(t *testing.T) {
	g, rec, _ := newTestGame(1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g.Run(ctx, NewLineReader(strings.NewReader("status\nquit\n")))

	assert.False(t, g.Running())
	assert.NoError(t, ctx.Err())
	assert.Equal(t, NoticeGameOver, rec.last().Kind)
	assert.GreaterOrEqual(t, rec.dashboards, 2)
}

func TestRunStopsOnCancel(t *testing.T) {
	g, rec, _ := newTestGame(1)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx, NewLineReader(pr))
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("game did not stop after cancel")
	}
	assert.False(t, g.Running())
	assert.Equal(t, NoticeGameOver, rec.last().Kind)
}
