package puzzle

import (
	"errors"
	"strings"
)

var (
	ErrUnknownArea       = errors.New("puzzle: unknown area")
	ErrUnknownDifficulty = errors.New("puzzle: unknown difficulty")
)

// Area is a puzzle domain. Each area is unlocked independently.
type Area int

const (
	Prime Area = iota
	Binary
	Multi
)

// Areas lists every area in display order.
var Areas = []Area{Prime, Binary, Multi}

func (a Area) String() string {
	switch a {
	case Prime:
		return "prime"
	case Binary:
		return "binary"
	case Multi:
		return "multi"
	default:
		return "unknown"
	}
}

// Title is the player facing name of the shaft.
func (a Area) Title() string {
	switch a {
	case Prime:
		return "Prime Pits"
	case Binary:
		return "Binary Cave"
	case Multi:
		return "Multiply Cavern"
	default:
		return "Unknown Shaft"
	}
}

func ParseArea(s string) (Area, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prime":
		return Prime, nil
	case "binary":
		return Binary, nil
	case "multi":
		return Multi, nil
	}
	return 0, ErrUnknownArea
}

type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return -1, ErrUnknownDifficulty
}
