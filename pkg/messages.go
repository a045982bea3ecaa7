package pkg

import (
	"time"

	"github.com/qnkhuat/minerig/pkg/puzzle"
)

type NoticeKind int

const (
	NoticeUnknownCommand NoticeKind = iota
	NoticeEnterArea
	NoticeAreaUnlocked
	NoticeAreaLocked
	NoticeInvalidDifficulty
	NoticeQuestion
	NoticeInvalidAnswer
	NoticeCorrect
	NoticeFastWork
	NoticeIncorrect
	NoticeExploded
	NoticeCrewSuccess
	NoticeCrewNoFunds
	NoticeCrewNoSuchMiner
	NoticeCrewUsage
	NoticeCrewUnknown
	NoticeGameOver
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeUnknownCommand:
		return "NoticeUnknownCommand"
	case NoticeEnterArea:
		return "NoticeEnterArea"
	case NoticeAreaUnlocked:
		return "NoticeAreaUnlocked"
	case NoticeAreaLocked:
		return "NoticeAreaLocked"
	case NoticeInvalidDifficulty:
		return "NoticeInvalidDifficulty"
	case NoticeQuestion:
		return "NoticeQuestion"
	case NoticeInvalidAnswer:
		return "NoticeInvalidAnswer"
	case NoticeCorrect:
		return "NoticeCorrect"
	case NoticeFastWork:
		return "NoticeFastWork"
	case NoticeIncorrect:
		return "NoticeIncorrect"
	case NoticeExploded:
		return "NoticeExploded"
	case NoticeCrewSuccess:
		return "NoticeCrewSuccess"
	case NoticeCrewNoFunds:
		return "NoticeCrewNoFunds"
	case NoticeCrewNoSuchMiner:
		return "NoticeCrewNoSuchMiner"
	case NoticeCrewUsage:
		return "NoticeCrewUsage"
	case NoticeCrewUnknown:
		return "NoticeCrewUnknown"
	case NoticeGameOver:
		return "NoticeGameOver"
	default:
		return "Unknown NoticeKind"
	}
}

// Notice is an inline message for the presenter. Only the fields relevant
// to Kind are set.
type Notice struct {
	Kind    NoticeKind
	Command string

	Area   puzzle.Area
	Puzzle puzzle.Puzzle

	// Amount is a cost, a shortfall or a reward depending on Kind.
	Amount    float64
	Shortfall float64

	Elapsed    time.Duration
	Deadline   time.Duration
	Multiplier float64
	OldRate    float64
	NewRate    float64

	Action  CrewAction
	MinerID int
	Miner   CrewMember
}

// Presenter draws the game. The core decides which view is shown and when;
// the presenter decides how it looks.
type Presenter interface {
	Clear()
	Dashboard(Snapshot)
	Crew(Snapshot)
	Notify(Notice)
}
