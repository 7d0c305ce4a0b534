package models

import "time"

// Heating states as persisted in the session store.
const (
	StateStopped = "STOPPED"
	StateHeating = "HEATING"
	StatePaused  = "PAUSED"
)

// HeatingStatus is the derived view of a session at a given instant.
type HeatingStatus struct {
	IsRunning              bool   `json:"isRunning"`
	RemainingTime          int    `json:"remainingTime"`
	PowerLevel             int    `json:"powerLevel"`
	Progress               int    `json:"progress"`
	StatusMessage          string `json:"statusMessage"`
	FormattedRemainingTime string `json:"formattedRemainingTime"`

	CurrentState   string     `json:"currentState"`
	HeatingChar    string     `json:"heatingChar,omitempty"`
	CurrentProgram string     `json:"currentProgram,omitempty"`
	StartTime      *time.Time `json:"startTime,omitempty"`
}

// HeatingEvent is a single entry of the heating log.
type HeatingEvent struct {
	EventID     string    `json:"event_id"`
	SessionID   string    `json:"session_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // START | RESUME | PAUSE | CANCEL | CLEAR | COMPLETE | TIME_INCREASE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
