// Package stats receives named training statistics from controllers.
package stats

import (
	"sort"
	"sync"

	"github.com/zeusync/navepisode/internal/core/observability/log"
)

const (
	GoalCorrect = "Goal/Correct"
	GoalWrong   = "Goal/Wrong"

	EpisodeReward = "Episode/Reward"
	EpisodeLength = "Episode/Length"
)

// Aggregation tells the sink how repeated samples of a key combine.
type Aggregation uint8

const (
	Average Aggregation = iota
	MostRecent
	Sum
)

func (a Aggregation) String() string {
	switch a {
	case MostRecent:
		return "most_recent"
	case Sum:
		return "sum"
	default:
		return "average"
	}
}

// Sink accepts statistic samples. Implementations must be safe for
// concurrent use since many controllers may share one sink.
type Sink interface {
	Add(key string, value float64, agg Aggregation)
}

// Stat is the aggregated view of one key.
type Stat struct {
	Key         string
	Aggregation Aggregation
	Value       float64
	Count       int
}

type entry struct {
	agg   Aggregation
	sum   float64
	last  float64
	count int
}

// Recorder aggregates samples in memory.
type Recorder struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewRecorder() *Recorder {
	return &Recorder{entries: make(map[string]*entry)}
}

// Add records a sample. The first sample of a key fixes its aggregation.
func (r *Recorder) Add(key string, value float64, agg Aggregation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		e = &entry{agg: agg}
		r.entries[key] = e
	}
	e.sum += value
	e.last = value
	e.count++
}

// Value returns the aggregated value of key.
func (r *Recorder) Value(key string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return 0, false
	}
	return e.value(), true
}

// Snapshot returns every key sorted by name.
func (r *Recorder) Snapshot() []Stat {
	r.mu.Lock()
	out := make([]Stat, 0, len(r.entries))
	for k, e := range r.entries {
		out = append(out, Stat{Key: k, Aggregation: e.agg, Value: e.value(), Count: e.count})
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.entries = make(map[string]*entry)
	r.mu.Unlock()
}

func (e *entry) value() float64 {
	switch e.agg {
	case Sum:
		return e.sum
	case MostRecent:
		return e.last
	default:
		if e.count == 0 {
			return 0
		}
		return e.sum / float64(e.count)
	}
}

// LogSink writes every sample at debug level.
type LogSink struct {
	logger log.Log
}

func NewLogSink(logger log.Log) *LogSink { return &LogSink{logger: logger} }

func (s *LogSink) Add(key string, value float64, agg Aggregation) {
	s.logger.Debug("stat",
		log.String("key", key),
		log.Float64("value", value),
		log.String("aggregation", agg.String()),
	)
}

type multi []Sink

// Multi fans samples out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) Add(key string, value float64, agg Aggregation) {
	for _, s := range m {
		s.Add(key, value, agg)
	}
}

// Discard drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Add(string, float64, Aggregation) {}
