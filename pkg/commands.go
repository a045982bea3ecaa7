package pkg

import (
	"strconv"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/qnkhuat/minerig/pkg/puzzle"
)

type handler func(g *Game, args []string)

// commands maps the verbs accepted in each mode to their handlers. Modes
// missing here read free text: a difficulty or a puzzle answer.
var commands = map[Mode]map[Action]handler{
	ModeIdle: {
		ActionCrew:   (*Game).enterCrew,
		ActionPrime:  func(g *Game, _ []string) { g.enterArea(puzzle.Prime) },
		ActionBinary: func(g *Game, _ []string) { g.enterArea(puzzle.Binary) },
		ActionMulti:  func(g *Game, _ []string) { g.enterArea(puzzle.Multi) },
		ActionStatus: func(g *Game, _ []string) { g.presenter.Dashboard(g.snapshot()) },
		ActionQuit:   func(g *Game, _ []string) { g.Stop() },
	},
	ModeCrewManagement: {
		ActionBack:    (*Game).leaveCrew,
		ActionUpgrade: (*Game).upgradeCrew,
	},
}

// ProcessCommands consumes every queued line in arrival order, including
// lines that arrive while earlier ones are being handled.
func (g *Game) ProcessCommands() {
	for {
		line, ok := g.queue.Pop()
		if !ok {
			return
		}
		g.Command(line)
	}
}

// Command interprets one line in the current mode.
func (g *Game) Command(line string) {
	line = strings.ToLower(strings.TrimSpace(line))
	g.Logf(LogDebug, "command %q in mode %s", line, g.State.Mode)

	g.presenter.Clear()

	switch g.State.Mode {
	case ModePuzzle:
		g.answerPuzzle(line)
		return
	case ModeChooseDifficulty:
		g.chooseDifficulty(line)
		return
	}

	tokens, err := shlex.Split(line, true)
	if err != nil || len(tokens) == 0 {
		g.unknownCommand(line)
		return
	}
	verb, args := Action(tokens[0]), tokens[1:]

	h, ok := commands[g.State.Mode][verb]
	if !ok || (g.State.Mode == ModeIdle && len(args) > 0) {
		g.unknownCommand(line)
		return
	}
	h(g, args)
}

func (g *Game) unknownCommand(line string) {
	if g.State.Mode == ModeCrewManagement {
		g.presenter.Notify(Notice{Kind: NoticeCrewUnknown, Command: line})
		g.sleep(g.Balance.ActionPause)
		g.presenter.Clear()
		g.presenter.Crew(g.snapshot())
		return
	}
	g.presenter.Notify(Notice{Kind: NoticeUnknownCommand, Command: line})
	g.presenter.Dashboard(g.snapshot())
}

func (g *Game) enterCrew(_ []string) {
	g.setMode(ModeCrewManagement)
	g.presenter.Crew(g.snapshot())
}

func (g *Game) leaveCrew(args []string) {
	if len(args) > 0 {
		g.unknownCommand(string(ActionBack) + " " + strings.Join(args, " "))
		return
	}
	g.setMode(ModeIdle)
	g.presenter.Clear()
	g.presenter.Dashboard(g.snapshot())
}

func (g *Game) enterArea(area puzzle.Area) {
	s := g.State
	if !s.Unlocked[area] {
		shortfall, ok := s.UnlockArea(area)
		if !ok {
			g.Logf(LogDebug, "%s locked, short %.2f", area, shortfall)
			g.presenter.Notify(Notice{Kind: NoticeAreaLocked, Area: area, Amount: shortfall})
			g.sleep(g.Balance.ActionPause)
			g.presenter.Dashboard(g.snapshot())
			return
		}

		g.Logf(LogStandard, "%s unlocked for %.2f", area, s.AreaCosts[area])
		g.presenter.Notify(Notice{Kind: NoticeAreaUnlocked, Area: area, Amount: s.AreaCosts[area]})
		g.sleep(g.Balance.ResolvePause)
		g.presenter.Dashboard(g.snapshot())
		return
	}

	s.Area = area
	g.setMode(ModeChooseDifficulty)
	g.presenter.Notify(Notice{Kind: NoticeEnterArea, Area: area})
}

func (g *Game) chooseDifficulty(line string) {
	d, err := puzzle.ParseDifficulty(line)
	if err != nil {
		g.presenter.Notify(Notice{Kind: NoticeInvalidDifficulty, Command: line, Area: g.State.Area})
		return
	}

	p := g.factory.Generate(g.State.Area, d)
	g.State.Difficulty = &d
	g.State.Puzzle = &p
	g.setMode(ModePuzzle)
	g.Logf(LogDebug, "%s %s puzzle: %q expects %q", p.Area, d, p.Question, p.Answer)

	g.presenter.Clear()
	g.presenter.Notify(Notice{Kind: NoticeQuestion, Area: p.Area, Puzzle: p, Deadline: g.Balance.PuzzleDeadline})
}

func (g *Game) answerPuzzle(line string) {
	s := g.State
	if s.Puzzle == nil {
		g.setMode(ModeIdle)
		g.unknownCommand(line)
		return
	}
	p := *s.Puzzle

	if s.Area == puzzle.Prime && line != string(ActionYes) && line != string(ActionNo) {
		g.presenter.Notify(Notice{Kind: NoticeInvalidAnswer, Command: line, Area: s.Area, Puzzle: p})
		return
	}

	switch {
	case line == p.Answer && s.Area == puzzle.Multi:
		elapsed := p.Elapsed(g.now())
		multiplier := puzzle.Multiplier(p.Difficulty, elapsed, g.Balance.PuzzleDeadline)
		old := s.PointsPerSec
		s.PointsPerSec *= multiplier

		g.Logf(LogStandard, "multi solved in %s, rate %.2f x %.2f = %.2f", elapsed, old, multiplier, s.PointsPerSec)
		g.presenter.Notify(Notice{
			Kind:       NoticeFastWork,
			Area:       s.Area,
			Puzzle:     p,
			Elapsed:    elapsed,
			Multiplier: multiplier,
			OldRate:    old,
			NewRate:    s.PointsPerSec,
		})
	case line == p.Answer:
		// The reward is shown but not credited to the rate.
		g.Logf(LogStandard, "%s solved, reward %.1f shown", s.Area, p.Reward)
		g.presenter.Notify(Notice{Kind: NoticeCorrect, Area: s.Area, Puzzle: p, Amount: p.Reward})
	default:
		g.Logf(LogStandard, "%s failed: got %q, want %q", s.Area, line, p.Answer)
		g.presenter.Notify(Notice{Kind: NoticeIncorrect, Command: line, Area: s.Area, Puzzle: p})
	}

	s.Puzzle = nil
	g.setMode(ModeIdle)
	g.sleep(g.Balance.ResolvePause)
	g.presenter.Clear()
	g.presenter.Dashboard(g.snapshot())
}

func (g *Game) upgradeCrew(args []string) {
	defer func() {
		g.sleep(g.Balance.ActionPause)
		g.presenter.Clear()
		g.presenter.Crew(g.snapshot())
	}()

	if len(args) == 0 {
		g.presenter.Notify(Notice{Kind: NoticeCrewUsage})
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		g.presenter.Notify(Notice{Kind: NoticeCrewUsage, Command: args[0]})
		return
	}

	s := g.State
	idx := id - 1
	if idx < 0 || idx >= len(s.Crew) {
		g.presenter.Notify(Notice{Kind: NoticeCrewNoSuchMiner, MinerID: id})
		return
	}

	cost, action, ok := s.BuyCrew(idx)
	if !ok {
		g.presenter.Notify(Notice{
			Kind:      NoticeCrewNoFunds,
			MinerID:   id,
			Action:    action,
			Amount:    cost,
			Shortfall: cost - s.Points,
			Miner:     s.Crew[idx],
		})
		return
	}

	g.Logf(LogStandard, "%s %s for %.2f, now level %d", action, s.Crew[idx].Name, cost, s.Crew[idx].Level)
	g.presenter.Notify(Notice{Kind: NoticeCrewSuccess, MinerID: id, Action: action, Amount: cost, Miner: s.Crew[idx]})
}
