package pkg

import (
	"fmt"
	"math"
	"time"

	"github.com/qnkhuat/minerig/pkg/puzzle"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeChooseDifficulty
	ModePuzzle
	ModeCrewManagement
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeChooseDifficulty:
		return "choose_difficulty"
	case ModePuzzle:
		return "puzzle"
	case ModeCrewManagement:
		return "crew_management"
	default:
		return "unknown"
	}
}

type CrewAction string

const (
	CrewUnlock  CrewAction = "UNLOCK"
	CrewUpgrade CrewAction = "UPGRADE"
)

// CrewMember is a miner. Level 0 means locked.
type CrewMember struct {
	Name       string
	Level      int
	BasePps    float64
	UnlockCost float64
}

func (m CrewMember) Locked() bool {
	return m.Level == 0
}

func (m CrewMember) Production() float64 {
	return m.BasePps * float64(m.Level)
}

// State is the whole economy of one rig. It is owned by the game loop.
type State struct {
	Points       float64
	PointsPerSec float64

	Mode       Mode
	Area       puzzle.Area
	Puzzle     *puzzle.Puzzle
	Difficulty *puzzle.Difficulty

	// LastUpdate only moves in whole seconds.
	LastUpdate time.Time

	Unlocked  map[puzzle.Area]bool
	AreaCosts map[puzzle.Area]float64

	// Crew is ordered: index+1 is the miner ID shown to the player.
	Crew []CrewMember

	balance Balance
}

func NewState(b Balance, now time.Time) *State {
	costs := make(map[puzzle.Area]float64)
	for name, cost := range b.AreaCosts {
		if area, err := puzzle.ParseArea(name); err == nil && area != puzzle.Prime {
			costs[area] = cost
		}
	}

	s := &State{
		Points:       b.StartingPoints,
		PointsPerSec: b.PointsPerSec,
		Mode:         ModeIdle,
		Area:         puzzle.Prime,
		LastUpdate:   now,
		Unlocked:     map[puzzle.Area]bool{puzzle.Prime: true},
		AreaCosts:    costs,
		balance:      b,
	}
	s.Crew = []CrewMember{s.newMiner(1)}
	return s
}

func (s *State) newMiner(id int) CrewMember {
	return CrewMember{
		Name:       fmt.Sprintf("Miner %d", id),
		BasePps:    s.balance.MinerBasePps,
		UnlockCost: s.balance.MinerCost * float64(id),
	}
}

func (s *State) CrewPps() float64 {
	var pps float64
	for _, m := range s.Crew {
		pps += m.Production()
	}
	return pps
}

func (s *State) TotalPps() float64 {
	return s.PointsPerSec + s.CrewPps()
}

// NextCost returns what the next purchase on the miner costs.
func (s *State) NextCost(m CrewMember) (float64, CrewAction) {
	if m.Locked() {
		return m.UnlockCost, CrewUnlock
	}
	return s.balance.UpgradeBase * math.Pow(float64(m.Level), s.balance.UpgradeExponent), CrewUpgrade
}

// BuyCrew unlocks or upgrades the miner at index idx. Unlocking appends the
// next locked miner. ok is false when the balance does not cover the cost.
func (s *State) BuyCrew(idx int) (cost float64, action CrewAction, ok bool) {
	m := &s.Crew[idx]
	cost, action = s.NextCost(*m)
	if s.Points < cost {
		return cost, action, false
	}

	s.Points -= cost
	m.Level++
	if action == CrewUnlock {
		s.Crew = append(s.Crew, s.newMiner(len(s.Crew)+1))
	}
	return cost, action, true
}

// UnlockArea buys access to a shaft. ok is false when the balance does not
// cover the cost; shortfall is then the missing amount.
func (s *State) UnlockArea(area puzzle.Area) (shortfall float64, ok bool) {
	cost := s.AreaCosts[area]
	if s.Points < cost {
		return cost - s.Points, false
	}
	s.Points -= cost
	s.Unlocked[area] = true
	return 0, true
}

// Snapshot is a read only copy of the state handed to the presenter.
type Snapshot struct {
	Rig string

	Points       float64
	PointsPerSec float64
	CrewPps      float64
	TotalPps     float64

	Mode     Mode
	Area     puzzle.Area
	Unlocked map[puzzle.Area]bool
	Costs    map[puzzle.Area]float64
	Crew     []MinerView
}

type MinerView struct {
	ID int
	CrewMember
	NextCost float64
}

func (s *State) Snapshot(rig string) Snapshot {
	snap := Snapshot{
		Rig:          rig,
		Points:       s.Points,
		PointsPerSec: s.PointsPerSec,
		CrewPps:      s.CrewPps(),
		TotalPps:     s.TotalPps(),
		Mode:         s.Mode,
		Area:         s.Area,
		Unlocked:     make(map[puzzle.Area]bool, len(s.Unlocked)),
		Costs:        make(map[puzzle.Area]float64, len(s.AreaCosts)),
		Crew:         make([]MinerView, 0, len(s.Crew)),
	}
	for a, ok := range s.Unlocked {
		snap.Unlocked[a] = ok
	}
	for a, c := range s.AreaCosts {
		snap.Costs[a] = c
	}
	for i, m := range s.Crew {
		cost, _ := s.NextCost(m)
		snap.Crew = append(snap.Crew, MinerView{ID: i + 1, CrewMember: m, NextCost: cost})
	}
	return snap
}
