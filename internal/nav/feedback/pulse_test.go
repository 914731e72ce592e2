package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/navepisode/internal/core/events/bus"
	"github.com/zeusync/navepisode/internal/nav/episode"
	"github.com/zeusync/navepisode/internal/nav/events"
)

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualClock struct {
	timers []*manualTimer
	delays []time.Duration
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &manualTimer{fn: fn}
	c.timers = append(c.timers, t)
	c.delays = append(c.delays, d)
	return t
}

func (c *manualClock) fire() {
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}
}

func TestFlashRestoresIdleColor(t *testing.T) {
	ground := &Swatch{color: Blue}
	clock := &manualClock{}
	p := NewPulser(ground, nil, clock, 500*time.Millisecond)
	require.Equal(t, Gray, ground.Color())

	p.Flash(Green)
	require.Equal(t, Green, ground.Color())
	require.Equal(t, []time.Duration{500 * time.Millisecond}, clock.delays)

	clock.fire()
	require.Equal(t, Gray, ground.Color())
}

func TestNewFlashReplacesPendingRestore(t *testing.T) {
	ground := &Swatch{}
	clock := &manualClock{}
	p := NewPulser(ground, nil, clock, time.Second)

	p.Flash(Green)
	p.Flash(Red)
	require.True(t, clock.timers[0].stopped)
	require.Equal(t, Red, ground.Color())

	clock.fire()
	require.Equal(t, Gray, ground.Color())
}

// firedTimer has already run, so Stop cannot cancel it.
type firedTimer struct{}

func (firedTimer) Stop() bool { return false }

// lateClock hands out fired timers and, when the next flash is scheduled,
// runs the previous restore concurrently as a timer goroutine would.
type lateClock struct {
	fns       []func()
	staleDone chan struct{}
}

func (c *lateClock) AfterFunc(_ time.Duration, fn func()) Timer {
	if n := len(c.fns); n > 0 {
		stale := c.fns[n-1]
		c.staleDone = make(chan struct{})
		go func() {
			stale()
			close(c.staleDone)
		}()
	}
	c.fns = append(c.fns, fn)
	return firedTimer{}
}

func TestStaleRestoreDoesNotCutNewFlash(t *testing.T) {
	ground := &Swatch{}
	clock := &lateClock{}
	p := NewPulser(ground, nil, clock, time.Second)

	p.Flash(Green)
	p.Flash(Red)
	<-clock.staleDone
	require.Equal(t, Red, ground.Color())

	p.mu.Lock()
	require.NotNil(t, p.pending)
	p.mu.Unlock()

	clock.fns[1]()
	require.Equal(t, Gray, ground.Color())
}

func TestCloseIgnoresLateRestore(t *testing.T) {
	ground := &Swatch{}
	clock := &lateClock{}
	p := NewPulser(ground, nil, clock, time.Second)

	p.Flash(Red)
	p.Close()
	clock.fns[0]()
	require.Equal(t, Red, ground.Color())
}

func TestAttachReactsToEpisodeEvents(t *testing.T) {
	eb := bus.New()
	ground, body := &Swatch{}, &Swatch{}
	clock := &manualClock{}
	p := NewPulser(ground, body, clock, time.Second)
	require.NoError(t, p.Attach(eb, "agent-1"))

	require.NoError(t, eb.PublishToTopic("agent-1", events.NewEpisodeBegin("agent-1", 1)))
	require.Equal(t, Blue, body.Color())

	rec := episode.Record{Cause: episode.CauseWall}
	require.NoError(t, eb.PublishToTopic("agent-1", events.NewEpisodeEnd("agent-1", rec)))
	require.Equal(t, Red, ground.Color())

	rec.Cause = episode.CauseBudget
	clock.fire()
	require.NoError(t, eb.PublishToTopic("agent-1", events.NewEpisodeEnd("agent-1", rec)))
	require.Equal(t, Gray, ground.Color())

	p.Close()
	rec.Cause = episode.CauseGoal
	require.NoError(t, eb.PublishToTopic("agent-1", events.NewEpisodeEnd("agent-1", rec)))
	require.Equal(t, Gray, ground.Color())
}

func TestWallClockFires(t *testing.T) {
	done := make(chan struct{})
	WallClock{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}
