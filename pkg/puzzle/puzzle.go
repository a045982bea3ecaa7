// Package puzzle generates the timed arithmetic and number theory questions
// answered in the mining shafts.
package puzzle

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// Deadline is how long a multi puzzle survives before the shaft collapses.
const Deadline = 10 * time.Second

// Payload is the area specific data needed to grade or explain an answer.
// It is either a Number or a Product.
type Payload interface {
	isPayload()
}

// Number is the payload of prime and binary puzzles.
type Number struct {
	N int
}

// Product is the payload of multi puzzles.
type Product struct {
	A, B  int
	Start time.Time
}

func (Number) isPayload()  {}
func (Product) isPayload() {}

type Puzzle struct {
	Area       Area
	Difficulty Difficulty
	Question   string
	Answer     string

	// Reward is display only and unset for multi puzzles, whose reward is a
	// rate multiplier computed when the answer arrives.
	Reward    float64
	HasReward bool

	Payload Payload
}

// Number returns the tested integer of a prime or binary puzzle.
func (p Puzzle) Number() (int, bool) {
	n, ok := p.Payload.(Number)
	return n.N, ok
}

// Product returns the operands of a multi puzzle.
func (p Puzzle) Product() (Product, bool) {
	pr, ok := p.Payload.(Product)
	return pr, ok
}

// Timed reports whether the puzzle carries a deadline.
func (p Puzzle) Timed() bool {
	_, ok := p.Payload.(Product)
	return ok
}

// Elapsed is the time since a timed puzzle was generated.
func (p Puzzle) Elapsed(now time.Time) time.Duration {
	pr, ok := p.Product()
	if !ok {
		return 0
	}
	return now.Sub(pr.Start)
}

// Expired reports whether a timed puzzle outlived its deadline.
func (p Puzzle) Expired(now time.Time, deadline time.Duration) bool {
	return p.Timed() && p.Elapsed(now) > deadline
}

type Factory struct {
	rng *rand.Rand
	now func() time.Time
}

func NewFactory(rng *rand.Rand, now func() time.Time) *Factory {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Factory{rng: rng, now: now}
}

// Generate builds a puzzle for the area. Difficulties outside easy, normal
// and hard use the fallback ranges.
func (f *Factory) Generate(area Area, d Difficulty) Puzzle {
	switch area {
	case Binary:
		return f.binary(d)
	case Multi:
		return f.multi(d)
	default:
		return f.prime(d)
	}
}

// between returns a uniform integer in [lo, hi].
func (f *Factory) between(lo, hi int) int {
	return lo + f.rng.Intn(hi-lo+1)
}

// oddBetween returns a uniform odd integer in [lo, hi]; lo must be odd.
func (f *Factory) oddBetween(lo, hi int) int {
	return lo + 2*f.rng.Intn((hi-lo)/2+1)
}

func (f *Factory) prime(d Difficulty) Puzzle {
	var (
		n      int
		reward float64
	)
	switch d {
	case Easy:
		n, reward = f.oddBetween(11, 49), 0.5
	case Normal:
		n, reward = f.oddBetween(51, 199), 1.0
	case Hard:
		n, reward = f.oddBetween(201, 999), 2.0
	default:
		n, reward = f.between(11, 50), 0.5
	}

	answer := "no"
	if IsPrime(n) {
		answer = "yes"
	}
	return Puzzle{
		Area:       Prime,
		Difficulty: d,
		Question:   fmt.Sprintf("Is %d prime? (yes/no)", n),
		Answer:     answer,
		Reward:     reward,
		HasReward:  true,
		Payload:    Number{N: n},
	}
}

func (f *Factory) binary(d Difficulty) Puzzle {
	var (
		n      int
		reward float64
	)
	switch d {
	case Normal:
		n, reward = f.between(11, 30), 4.0
	case Hard:
		n, reward = f.between(31, 100), 8.0
	default:
		n, reward = f.between(2, 10), 2.0
	}
	return Puzzle{
		Area:       Binary,
		Difficulty: d,
		Question:   fmt.Sprintf("Convert %d to binary:", n),
		Answer:     strconv.FormatInt(int64(n), 2),
		Reward:     reward,
		HasReward:  true,
		Payload:    Number{N: n},
	}
}

func (f *Factory) multi(d Difficulty) Puzzle {
	var a, b int
	switch d {
	case Easy:
		a, b = f.between(2, 9), f.between(2, 9)
	case Normal:
		a, b = f.between(10, 20), f.between(2, 9)
	case Hard:
		a, b = f.between(10, 50), f.between(10, 20)
	default:
		a, b = 5, 5
	}
	return Puzzle{
		Area:       Multi,
		Difficulty: d,
		Question:   fmt.Sprintf("What is %d x %d?", a, b),
		Answer:     strconv.Itoa(a * b),
		Payload:    Product{A: a, B: b, Start: f.now()},
	}
}
