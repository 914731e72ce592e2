// Package episode tracks reward and terminal conditions for one agent.
package episode

import (
	"fmt"
	"strings"
)

// Cause is why an episode ended.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseGoal
	CauseHazard
	CauseWall
	CauseBudget
)

func (c Cause) String() string {
	switch c {
	case CauseGoal:
		return "goal"
	case CauseHazard:
		return "hazard"
	case CauseWall:
		return "wall"
	case CauseBudget:
		return "budget"
	default:
		return "none"
	}
}

// Success reports whether the cause counts as reaching the goal.
func (c Cause) Success() bool { return c == CauseGoal }

// Tag is the label a contact event carries.
type Tag string

const (
	TagGoal   Tag = "goal"
	TagWall   Tag = "wall"
	TagHazard Tag = "hazard"
	// TagDead is the hazard tag used by the ball scene.
	TagDead Tag = "dead"
)

// CauseOf maps a contact tag to a terminal cause, ignoring case.
// Unknown tags map to CauseNone.
func CauseOf(tag Tag) Cause {
	switch Tag(strings.ToLower(string(tag))) {
	case TagGoal:
		return CauseGoal
	case TagWall:
		return CauseWall
	case TagHazard, TagDead:
		return CauseHazard
	default:
		return CauseNone
	}
}

// PenaltyMode selects how the per-tick penalty is computed.
type PenaltyMode string

const (
	// PenaltyFlat subtracts StepPenalty every tick.
	PenaltyFlat PenaltyMode = "flat"
	// PenaltyBudget subtracts 2/MaxStep every tick.
	PenaltyBudget PenaltyMode = "budget"
)

// Rewards holds the reward-shaping constants.
type Rewards struct {
	Mode PenaltyMode
	// StepPenalty is the flat per-tick penalty magnitude.
	StepPenalty float64
	// MaxStep is the step budget; 0 disables the budget.
	MaxStep int
	Goal    float64
	Hazard  float64
}

// PerTick returns the signed reward applied on every running tick.
func (r Rewards) PerTick() float64 {
	switch r.Mode {
	case PenaltyBudget:
		if r.MaxStep <= 0 {
			return 0
		}
		return -2 / float64(r.MaxStep)
	default:
		return -r.StepPenalty
	}
}

// Validate checks the constants are usable.
func (r Rewards) Validate() error {
	switch r.Mode {
	case PenaltyFlat, "":
	case PenaltyBudget:
		if r.MaxStep <= 0 {
			return fmt.Errorf("%w: budget penalty needs max_step > 0", ErrInvalidRewards)
		}
	default:
		return fmt.Errorf("%w: unknown penalty mode %q", ErrInvalidRewards, r.Mode)
	}
	if r.MaxStep < 0 {
		return fmt.Errorf("%w: negative max_step", ErrInvalidRewards)
	}
	return nil
}

// State is a snapshot of the tracker.
type State struct {
	Index      uint64
	Steps      int
	Cumulative float64
	Cause      Cause
}

// Terminal reports whether the episode has ended.
func (s State) Terminal() bool { return s.Cause != CauseNone }

// Tracker is the Running / Terminal(cause) state machine. Once terminal it
// ignores ticks and contacts until Reset, so at most one terminal reward is
// granted per episode.
type Tracker struct {
	rewards Rewards
	state   State
}

func NewTracker(rewards Rewards) (*Tracker, error) {
	if err := rewards.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{rewards: rewards}, nil
}

// Reset starts the next episode.
func (t *Tracker) Reset() {
	t.state = State{Index: t.state.Index + 1}
}

// State returns a snapshot.
func (t *Tracker) State() State { return t.state }

// Rewards returns the configured constants.
func (t *Tracker) Rewards() Rewards { return t.rewards }

// Tick applies the step penalty. It returns the reward granted and whether
// this tick ended the episode (budget exhausted).
func (t *Tracker) Tick() (reward float64, ended bool) {
	if t.state.Terminal() {
		return 0, false
	}
	reward = t.rewards.PerTick()
	t.state.Steps++
	t.state.Cumulative += reward
	if t.rewards.MaxStep > 0 && t.state.Steps >= t.rewards.MaxStep {
		t.state.Cause = CauseBudget
		return reward, true
	}
	return reward, false
}

// Contact resolves a tagged contact. It returns the reward granted and
// whether this contact ended the episode. Unknown tags and contacts after the
// episode ended grant nothing.
func (t *Tracker) Contact(tag Tag) (reward float64, ended bool) {
	if t.state.Terminal() {
		return 0, false
	}
	cause := CauseOf(tag)
	switch cause {
	case CauseGoal:
		reward = t.rewards.Goal
	case CauseWall, CauseHazard:
		reward = t.rewards.Hazard
	default:
		return 0, false
	}
	t.state.Cumulative += reward
	t.state.Cause = cause
	return reward, true
}
