package pkg

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandQueueOrder(t *testing.T) {
	q := NewCommandQueue()
	_, ok := q.Pop()
	assert.False(t, ok)

	for _, l := range []string{"prime", "easy", "yes"} {
		q.Push(l)
	}
	assert.Equal(t, 3, q.Len())

	for _, want := range []string{"prime", "easy", "yes"} {
		got, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, q.Len())
}

func TestCommandQueueConcurrentPush(t *testing.T) {
	q := NewCommandQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push("status")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, q.Len())
}

func TestInputCollector(t *testing.T) {
	q := NewCommandQueue()
	c := &InputCollector{Queue: q}
	c.Run(NewLineReader(strings.NewReader("prime\n\n   \n  easy  \r\nyes")))

	var got []string
	for {
		l, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, l)
	}
	assert.Equal(t, []string{"prime", "easy", "yes"}, got)
}

func TestInputCollectorStopped(t *testing.T) {
	q := NewCommandQueue()
	c := &InputCollector{Queue: q, Running: func() bool { return false }}
	c.Run(NewLineReader(strings.NewReader("prime\n")))
	assert.Equal(t, 0, q.Len())
}

func TestInputCollectorLongLine(t *testing.T) {
	q := NewCommandQueue()
	c := &InputCollector{Queue: q}
	long := strings.Repeat("x", 70*1024)
	c.Run(NewLineReader(strings.NewReader(long + "\nstatus\nquit\n")))

	require.Equal(t, 3, q.Len())
	got, _ := q.Pop()
	assert.Len(t, got, 70*1024)
	got, _ = q.Pop()
	assert.Equal(t, "status", got)
	got, _ = q.Pop()
	assert.Equal(t, "quit", got)
}
