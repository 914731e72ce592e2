// Package feedback renders cosmetic episode feedback: a tinted surface that
// flashes on terminal events and restores itself after a delay. Nothing here
// feeds back into reward or episode flow.
package feedback

import (
	"sync"
	"time"

	"github.com/zeusync/navepisode/internal/core/events/bus"
	"github.com/zeusync/navepisode/internal/nav/episode"
	"github.com/zeusync/navepisode/internal/nav/events"
)

type Color uint8

const (
	Gray Color = iota
	Green
	Red
	Blue
)

func (c Color) String() string {
	switch c {
	case Green:
		return "green"
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "gray"
	}
}

// Surface is something that can be tinted, like a ground plane or an agent body.
type Surface interface {
	SetColor(c Color)
}

// Scheduler runs fn after d. Stop on the returned timer cancels it.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type Timer interface {
	Stop() bool
}

// WallClock schedules with time.AfterFunc.
type WallClock struct{}

func (WallClock) AfterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// Pulser flashes the ground green or red on terminal events and tints the
// agent body blue at episode start.
type Pulser struct {
	ground   Surface
	body     Surface
	sched    Scheduler
	duration time.Duration
	idle     Color

	mu      sync.Mutex
	pending Timer
	// gen identifies the latest flash; older restores are ignored.
	gen  uint64
	subs []bus.Subscription
}

// NewPulser sets the ground to its idle color. body may be nil.
func NewPulser(ground, body Surface, sched Scheduler, duration time.Duration) *Pulser {
	if sched == nil {
		sched = WallClock{}
	}
	p := &Pulser{ground: ground, body: body, sched: sched, duration: duration, idle: Gray}
	ground.SetColor(p.idle)
	return p
}

// Flash tints the ground with c and restores the idle color after the
// configured duration. A new flash replaces a pending restore.
func (p *Pulser) Flash(c Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending != nil {
		p.pending.Stop()
	}
	p.gen++
	gen := p.gen
	p.ground.SetColor(c)
	p.pending = p.sched.AfterFunc(p.duration, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.gen != gen {
			return
		}
		p.pending = nil
		p.ground.SetColor(p.idle)
	})
}

// ColorFor returns the flash color for a terminal cause, and false when the
// cause does not flash.
func ColorFor(cause episode.Cause) (Color, bool) {
	switch cause {
	case episode.CauseGoal:
		return Green, true
	case episode.CauseWall, episode.CauseHazard:
		return Red, true
	default:
		return Gray, false
	}
}

// Attach listens for episode events of one agent on topic.
func (p *Pulser) Attach(eb bus.EventBus, topic string) error {
	end, err := eb.SubscribeTopic(topic, events.TypeEpisodeEnd, func(e bus.Event) error {
		if ev, ok := e.Data().(events.EpisodeEnd); ok {
			if c, flash := ColorFor(ev.Record.Cause); flash {
				p.Flash(c)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	begin, err := eb.SubscribeTopic(topic, events.TypeEpisodeBegin, func(bus.Event) error {
		if p.body != nil {
			p.body.SetColor(Blue)
		}
		return nil
	})
	if err != nil {
		_ = end.Cancel()
		return err
	}
	p.mu.Lock()
	p.subs = append(p.subs, end, begin)
	p.mu.Unlock()
	return nil
}

// Close stops a pending restore and drops bus subscriptions.
func (p *Pulser) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
	for _, s := range p.subs {
		_ = s.Cancel()
	}
	p.subs = nil
}

// Swatch is an in-memory Surface that remembers its color.
type Swatch struct {
	mu    sync.Mutex
	color Color
}

func (s *Swatch) SetColor(c Color) {
	s.mu.Lock()
	s.color = c
	s.mu.Unlock()
}

func (s *Swatch) Color() Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}
