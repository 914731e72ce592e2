package episode

import (
	"bytes"
	"encoding/gob"
	"sync"
	"time"
)

// Record is the summary of a finished episode.
type Record struct {
	ID       string
	Index    uint64
	Cause    Cause
	Reward   float64
	Steps    int
	Started  time.Time
	Finished time.Time
}

// History keeps finished episodes in memory, bounded to the most recent
// limit records when limit > 0.
type History struct {
	mu    sync.RWMutex
	limit int
	list  []Record
}

func NewHistory(limit int) *History {
	return &History{limit: limit, list: make([]Record, 0, 64)}
}

func (h *History) Append(rec Record) {
	h.mu.Lock()
	h.list = append(h.list, rec)
	h.trim()
	h.mu.Unlock()
}

// trim drops the oldest records beyond limit. Callers hold mu.
func (h *History) trim() {
	if h.limit > 0 && len(h.list) > h.limit {
		h.list = append(h.list[:0], h.list[len(h.list)-h.limit:]...)
	}
}

// Records returns a copy of the history, oldest first.
func (h *History) Records() []Record {
	h.mu.RLock()
	cp := make([]Record, len(h.list))
	copy(cp, h.list)
	h.mu.RUnlock()
	return cp
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.list)
}

func (h *History) Reset() {
	h.mu.Lock()
	h.list = h.list[:0]
	h.mu.Unlock()
}

// Save serializes the history with gob.
func (h *History) Save() ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(h.list); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load replaces the history with a blob produced by Save, keeping only the
// newest records when the history is bounded.
func (h *History) Load(b []byte) error {
	var list []Record
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&list); err != nil {
		return err
	}
	h.mu.Lock()
	h.list = list
	h.trim()
	h.mu.Unlock()
	return nil
}

// Analytics summarizes a history.
type Analytics struct {
	Total      int
	Successes  int
	Failures   int
	Timeouts   int
	MeanReward float64
	MeanSteps  float64
}

// SuccessRate is the fraction of episodes that reached the goal.
func (a Analytics) SuccessRate() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Successes) / float64(a.Total)
}

func (h *History) Analyze() Analytics {
	recs := h.Records()
	var a Analytics
	a.Total = len(recs)
	if a.Total == 0 {
		return a
	}
	var reward float64
	var steps int
	for _, r := range recs {
		switch r.Cause {
		case CauseGoal:
			a.Successes++
		case CauseWall, CauseHazard:
			a.Failures++
		case CauseBudget:
			a.Timeouts++
		}
		reward += r.Reward
		steps += r.Steps
	}
	a.MeanReward = reward / float64(a.Total)
	a.MeanSteps = float64(steps) / float64(a.Total)
	return a
}
