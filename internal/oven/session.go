package oven

import (
	"time"

	"microwave/internal/models"
)

// Session is the heating state of one user session. Exactly one of Stopped,
// Heating or Paused.
type Session interface {
	State() string
	sealed()
}

// Stopped is the idle state. Remnant keeps the configuration of a cycle that
// completed until it is cleared or replaced.
type Stopped struct {
	Remnant     *Config
	ProgramID   string
	DisplayChar string
}

// Heating is a running cycle started at StartedAt.
type Heating struct {
	Config      Config
	StartedAt   time.Time
	ProgramID   string
	DisplayChar string
}

// Paused holds the remaining seconds captured when the cycle was paused.
type Paused struct {
	Config      Config
	Remaining   int
	ProgramID   string
	DisplayChar string
}

func (Stopped) State() string { return models.StateStopped }
func (Heating) State() string { return models.StateHeating }
func (Paused) State() string  { return models.StatePaused }

func (Stopped) sealed() {}
func (Heating) sealed() {}
func (Paused) sealed()  {}

// Resumable reports whether the pause snapshot is complete.
func (p Paused) Resumable() bool {
	return p.Remaining > 0 && p.Config.PowerLevel >= MinPower
}

// IsPaused reports whether s is a Paused session.
func IsPaused(s Session) bool {
	_, ok := s.(Paused)
	return ok
}

// Normalize maps a nil session to the initial Stopped state.
func Normalize(s Session) Session {
	if s == nil {
		return Stopped{}
	}
	return s
}

func elapsedSeconds(start, now time.Time) int {
	elapsed := int(now.Sub(start) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
