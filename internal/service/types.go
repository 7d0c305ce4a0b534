package service

import "time"

// Heating event types written to the event log.
const (
	EventStart        = "START"
	EventResume       = "RESUME"
	EventPause        = "PAUSE"
	EventCancel       = "CANCEL"
	EventClear        = "CLEAR"
	EventComplete     = "COMPLETE"
	EventTimeIncrease = "TIME_INCREASE"
)

// LogFilter supports history filtering by time range, type and session.
type LogFilter struct {
	From      time.Time // inclusive; zero means no lower bound
	To        time.Time // inclusive; zero means no upper bound
	Type      string    // "", "START", "RESUME", "PAUSE", "CANCEL", "CLEAR", "COMPLETE", "TIME_INCREASE"
	SessionID string
}

// AuthOptions configures token issuance and secret storage.
type AuthOptions struct {
	SigningKey    string
	TokenTTL      time.Duration
	EncryptionKey string
}

// Options carries the tunables of the service layer.
type Options struct {
	Auth        AuthOptions
	IdleTimeout time.Duration
}
