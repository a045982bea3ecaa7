package pkg

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/qnkhuat/minerig/pkg/puzzle"
	"gopkg.in/yaml.v3"
)

// Balance holds the tuning values of a rig. Any field missing from a balance
// file keeps its default.
type Balance struct {
	StartingPoints float64            `yaml:"starting_points"`
	PointsPerSec   float64            `yaml:"points_per_sec"`
	AreaCosts      map[string]float64 `yaml:"area_costs"`

	MinerCost       float64 `yaml:"miner_cost"`
	MinerBasePps    float64 `yaml:"miner_base_pps"`
	UpgradeBase     float64 `yaml:"upgrade_base"`
	UpgradeExponent float64 `yaml:"upgrade_exponent"`

	PuzzleDeadline time.Duration `yaml:"puzzle_deadline"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	ResolvePause   time.Duration `yaml:"resolve_pause"`
	ActionPause    time.Duration `yaml:"action_pause"`
}

func DefaultBalance() Balance {
	return Balance{
		StartingPoints: 10000,
		PointsPerSec:   1,
		AreaCosts: map[string]float64{
			puzzle.Binary.String(): 200,
			puzzle.Multi.String():  3000,
		},
		MinerCost:       5000,
		MinerBasePps:    50,
		UpgradeBase:     5000,
		UpgradeExponent: 1.5,
		PuzzleDeadline:  puzzle.Deadline,
		TickInterval:    50 * time.Millisecond,
		ResolvePause:    2 * time.Second,
		ActionPause:     time.Second,
	}
}

// LoadBalance reads a YAML balance file on top of DefaultBalance.
func LoadBalance(path string) (Balance, error) {
	b := DefaultBalance()
	defaults := b.AreaCosts

	f, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("read balance: %w", err)
	}
	if err := yaml.Unmarshal(f, &b); err != nil {
		return b, fmt.Errorf("parse balance %s: %w", path, err)
	}

	if b.AreaCosts == nil {
		b.AreaCosts = make(map[string]float64)
	}
	for name, cost := range defaults {
		if _, ok := b.AreaCosts[name]; !ok {
			b.AreaCosts[name] = cost
		}
	}

	if err := b.Validate(); err != nil {
		return b, fmt.Errorf("balance %s: %w", path, err)
	}
	return b, nil
}

func (b Balance) Validate() error {
	if b.StartingPoints < 0 || b.PointsPerSec < 0 {
		return errors.New("starting points and points per second must not be negative")
	}
	if b.MinerCost < 0 || b.MinerBasePps < 0 || b.UpgradeBase < 0 || b.UpgradeExponent < 0 {
		return errors.New("crew values must not be negative")
	}
	for name, cost := range b.AreaCosts {
		area, err := puzzle.ParseArea(name)
		if err != nil {
			return fmt.Errorf("area cost %q: %w", name, err)
		}
		if area == puzzle.Prime {
			return fmt.Errorf("area cost %q: the prime shaft is always open", name)
		}
		if cost < 0 {
			return fmt.Errorf("area cost %q must not be negative", name)
		}
	}
	if b.PuzzleDeadline <= 0 || b.TickInterval <= 0 {
		return errors.New("puzzle deadline and tick interval must be positive")
	}
	if b.ResolvePause < 0 || b.ActionPause < 0 {
		return errors.New("pauses must not be negative")
	}
	return nil
}
