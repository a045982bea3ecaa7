package pkg

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// CommandQueue is an unbounded FIFO shared by the input collector and the
// game loop. Input arrives at typing speed, so it is never capped.
type CommandQueue struct {
	mu    sync.Mutex
	lines []string
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

func (q *CommandQueue) Push(line string) {
	q.mu.Lock()
	q.lines = append(q.lines, line)
	q.mu.Unlock()
}

// Pop never blocks. ok is false when the queue is empty.
func (q *CommandQueue) Pop() (line string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.lines) == 0 {
		return "", false
	}
	line = q.lines[0]
	q.lines[0] = ""
	q.lines = q.lines[1:]
	return line, true
}

func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines)
}

// LineReader yields one line per call without its terminator.
// golang.org/x/term's Terminal satisfies it.
type LineReader interface {
	ReadLine() (string, error)
}

type bufReader struct {
	*bufio.Reader
}

// NewLineReader reads newline terminated lines of any length from r.
func NewLineReader(r io.Reader) LineReader {
	return bufReader{bufio.NewReader(r)}
}

// ReadLine returns a final unterminated line before io.EOF.
func (b bufReader) ReadLine() (string, error) {
	line, err := b.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// InputCollector feeds trimmed, non-empty lines into the queue. It never
// touches the game state.
type InputCollector struct {
	Queue   *CommandQueue
	Running func() bool
}

// Run blocks on the reader until end of input, a read error, or the first
// completed read after Running reports false. Call in a goroutine.
func (c *InputCollector) Run(r LineReader) {
	for c.running() {
		line, err := r.ReadLine()
		if err != nil {
			return
		}
		if line = strings.TrimSpace(line); line != "" {
			c.Queue.Push(line)
		}
	}
}

func (c *InputCollector) running() bool {
	return c.Running == nil || c.Running()
}
