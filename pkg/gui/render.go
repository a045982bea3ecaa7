// Package gui renders the rig as colored lines of text.
package gui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/qnkhuat/minerig/pkg"
	"github.com/qnkhuat/minerig/pkg/puzzle"
)

const separatorWidth = 30

// Terminal is a pkg.Presenter writing to any io.Writer
type Terminal struct {
	w     io.Writer
	theme Theme

	// ClearLines is how many blank lines push old output off screen. Zero
	// disables clearing, which is what pipes and tests want.
	ClearLines int
}

func NewTerminal(w io.Writer, colored bool) *Terminal {
	return &Terminal{
		w:          w,
		theme:      NewTheme(colored),
		ClearLines: 50,
	}
}

// gems formats an amount of currency rounded to cents
func gems(f float64) string {
	return humanize.CommafWithDigits(math.Round(f*100)/100, 2) + "💎"
}

// rate formats a production rate
func rate(f float64) string {
	return fmt.Sprintf("%.2f/sec", f)
}

// areaColor returns the theme's color of a shaft
func (t *Terminal) areaColor(a puzzle.Area) func(a ...interface{}) string {
	switch a {
	case puzzle.Binary:
		return t.theme.Binary.Sprint
	case puzzle.Multi:
		return t.theme.Multi.Sprint
	default:
		return t.theme.Prime.Sprint
	}
}

func (t *Terminal) println(a ...interface{}) {
	fmt.Fprintln(t.w, a...)
}

func (t *Terminal) printf(format string, a ...interface{}) {
	fmt.Fprintf(t.w, format, a...)
}

func (t *Terminal) Clear() {
	if t.ClearLines > 0 {
		io.WriteString(t.w, strings.Repeat("\n", t.ClearLines))
	}
}

// Dashboard draws balance, rates and the shafts
func (t *Terminal) Dashboard(s pkg.Snapshot) {
	th := t.theme
	t.println()
	title := "=== MATH MINING RIG ==="
	if s.Rig != "" {
		title = fmt.Sprintf("=== MATH MINING RIG: %s ===", s.Rig)
	}
	t.println(th.Title.Sprint(title))
	t.printf("Balance: %s\n", th.Balance.Sprint(gems(s.Points)))
	t.printf("Personal Rate: %s\n", th.Rate.Sprint(rate(s.PointsPerSec)))
	t.printf("Crew Rate:     %s\n", th.Crew.Sprint(rate(s.CrewPps)))
	t.printf("Total Output:  %s\n\n", th.Bold.Sprint(rate(s.TotalPps)))

	t.println(th.Bold.Sprint("Available Shafts:"))
	for _, a := range puzzle.Areas {
		name := fmt.Sprintf("%-6s", a)
		if s.Unlocked[a] {
			t.printf("  %s - The %s\n", t.areaColor(a)(name), a.Title())
			continue
		}
		t.printf("  %s - Cost: %s\n", th.Bad.Sprint("🔒 "+a.String()), th.Balance.Sprint(gems(s.Costs[a])))
	}

	t.printf("\n%s crew, status, quit\n", th.Bold.Sprint("Commands:"))
	t.println(strings.Repeat("-", separatorWidth))
}

// Crew draws the crew quarters
func (t *Terminal) Crew(s pkg.Snapshot) {
	th := t.theme
	t.println(th.Crew.Sprint("=== CREW QUARTERS ==="))
	for _, m := range s.Crew {
		if m.Locked() {
			t.printf(" %d. %s (LOCKED)\n", m.ID, th.Bad.Sprint("🔒 "+m.Name))
			t.printf("    Unlock Cost: %s\n", th.Balance.Sprint(gems(m.UnlockCost)))
			continue
		}
		t.printf(" %d. %s | Lvl: %s | Prod: %s\n", m.ID, th.Bold.Sprint(m.Name),
			th.Balance.Sprint(m.Level), th.Good.Sprint("+"+rate(m.Production())))
		t.printf("    Next Level: %s\n", th.Balance.Sprint(gems(m.NextCost)))
	}
	t.printf("\n Type %s or %s.\n", th.Bold.Sprint("upgrade [number]"), th.Bold.Sprint("back"))
}

// Notify draws an inline message
func (t *Terminal) Notify(n pkg.Notice) {
	th := t.theme
	switch n.Kind {
	case pkg.NoticeUnknownCommand:
		t.printf(" %s %s\n", th.Bad.Sprint("Unknown command:"), n.Command)

	case pkg.NoticeEnterArea:
		t.printf(" Entering %s...\n", t.areaColor(n.Area)(n.Area.Title()))
		t.printf(" Choose a difficulty: (%s/%s/%s)\n",
			th.Good.Sprint(puzzle.Easy), th.Warn.Sprint(puzzle.Normal), th.Bad.Sprint(puzzle.Hard))

	case pkg.NoticeAreaUnlocked:
		t.printf("\n\n")
		t.printf(" %s\n", th.Good.Sprint("★ CONGRATULATIONS! ★"))
		t.printf(" The %s has been blast-opened!\n", t.areaColor(n.Area)(n.Area.Title()))
		t.printf(" New %s puzzles are now available for mining.\n", n.Area)

	case pkg.NoticeAreaLocked:
		t.printf(" %s Need %s more\n", th.Bad.Sprint("✘ LOCKED!"), th.Balance.Sprint(gems(n.Amount)))

	case pkg.NoticeInvalidDifficulty:
		t.printf(" %s (easy/normal/hard)\n", th.Warn.Sprint("⚠ Invalid choice."))

	case pkg.NoticeQuestion:
		t.question(n.Puzzle, n.Deadline)

	case pkg.NoticeInvalidAnswer:
		t.printf(" %s Please type %s or %s.\n", th.Warn.Sprint("⚠ Invalid answer."), th.Bold.Sprint("yes"), th.Bold.Sprint("no"))

	case pkg.NoticeCorrect:
		t.printf(" %s +%.1f points/sec\n", th.Good.Sprint("✔ Correct!"), n.Amount)

	case pkg.NoticeFastWork:
		t.printf(" %s (%.1fs)\n", th.Good.Sprint("✔ FAST WORK!"), n.Elapsed.Seconds())
		t.printf(" %s\n", th.Bold.Sprintf("%s BONUS: %.2fx", strings.ToUpper(n.Puzzle.Difficulty.String()), n.Multiplier))
		t.printf(" %s %.2f * %.2f = %s / sec\n", th.Tip.Sprint("New rate:"), n.OldRate, n.Multiplier, th.Good.Sprintf("%.2f", n.NewRate))

	case pkg.NoticeIncorrect:
		t.printf(" %s\n", th.Bad.Sprint("✘ Incorrect."))
		t.printf(" %s %s\n", th.Tip.Sprint("Tip:"), Tip(n.Puzzle))

	case pkg.NoticeExploded:
		t.printf(" %s\n", th.Bad.Sprint("💥 BOOM! SHAFT EXPLODED!"))

	case pkg.NoticeCrewSuccess:
		t.printf(" %s %s is Level %d.\n", th.Good.Sprintf("✔ %s SUCCESS!", n.Action), n.Miner.Name, n.Miner.Level)

	case pkg.NoticeCrewNoFunds:
		t.printf(" %s Need %s, %s more.\n", th.Bad.Sprint("✘ Not enough points!"),
			th.Balance.Sprint(gems(n.Amount)), th.Balance.Sprint(gems(n.Shortfall)))

	case pkg.NoticeCrewNoSuchMiner:
		t.printf(" %s Miner ID %d does not exist.\n", th.Bad.Sprint("✘ ERROR:"), n.MinerID)

	case pkg.NoticeCrewUsage:
		t.printf(" %s\n", th.Bad.Sprint("Usage: upgrade [number]"))

	case pkg.NoticeCrewUnknown:
		t.printf(" %s %s\n", th.Bad.Sprint("Unknown command in Crew Quarters:"), n.Command)
		t.printf(" Type %s or %s.\n", th.Bold.Sprint("upgrade [number]"), th.Bold.Sprint("back"))

	case pkg.NoticeGameOver:
		t.println("Game Over!")
	}
}

// question draws a freshly generated puzzle
func (t *Terminal) question(p puzzle.Puzzle, deadline time.Duration) {
	th := t.theme
	switch p.Area {
	case puzzle.Prime:
		n, _ := p.Number()
		t.printf(" Is %d prime? (%s/%s)\n", n, th.Good.Sprint("yes"), th.Bad.Sprint("no"))
	case puzzle.Multi:
		pr, _ := p.Product()
		t.printf("\n %s Mining shaft collapsing in %s!\n", th.Bad.Sprint("⚠ EMERGENCY!"), th.Bold.Sprint(deadline))
		t.printf(" What is %d x %d?\n", pr.A, pr.B)
	default:
		t.printf(" %s\n", p.Question)
	}
}

// Tip explains the right answer of a failed puzzle from its payload
func Tip(p puzzle.Puzzle) string {
	switch p.Area {
	case puzzle.Prime:
		n, _ := p.Number()
		if p.Answer == "yes" {
			return fmt.Sprintf("%d is a prime number!", n)
		}
		return fmt.Sprintf("%d is not prime. Divisors: %v", n, puzzle.ProperDivisors(n))
	case puzzle.Binary:
		n, _ := p.Number()
		return fmt.Sprintf("The binary for %d is %s.", n, p.Answer)
	case puzzle.Multi:
		pr, _ := p.Product()
		return fmt.Sprintf("%dx%d=%s", pr.A, pr.B, p.Answer)
	}
	return ""
}
