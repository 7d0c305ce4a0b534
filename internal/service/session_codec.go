package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"microwave/internal/models"
	"microwave/internal/oven"
	"microwave/internal/repository"
)

// Session store keys.
const (
	keyCurrentOven         = "CurrentOven"
	keyIsHeating           = "IsHeating"
	keyStartTime           = "StartTime"
	keyMicrowaveState      = "MicrowaveState"
	keyPausedRemainingTime = "PausedRemainingTime"
	keyCurrentProgram      = "CurrentProgram"
	keyHeatingChar         = "HeatingChar"
)

// sessionCodec maps oven.Session values onto the string keys of a
// SessionStore.
type sessionCodec struct {
	store repository.SessionStore
}

// Load decodes the session. Missing or inconsistent keys degrade to the
// closest valid state: a HEATING record without configuration or start time
// reads as Stopped.
func (c sessionCodec) Load(ctx context.Context, sessionID string) (oven.Session, error) {
	if err := c.store.Touch(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}

	values := make(map[string]string, 7)
	for _, key := range []string{
		keyCurrentOven, keyIsHeating, keyStartTime, keyMicrowaveState,
		keyPausedRemainingTime, keyCurrentProgram, keyHeatingChar,
	} {
		v, ok, err := c.store.GetString(ctx, sessionID, key)
		if err != nil {
			return nil, fmt.Errorf("read session key %s: %w", key, err)
		}
		if ok {
			values[key] = v
		}
	}

	var cfg *oven.Config
	if raw := values[keyCurrentOven]; raw != "" {
		var decoded oven.Config
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			cfg = &decoded
		}
	}
	programID := values[keyCurrentProgram]
	char := values[keyHeatingChar]

	state := values[keyMicrowaveState]
	if state == "" && values[keyIsHeating] == "true" {
		state = models.StateHeating
	}

	switch state {
	case models.StateHeating:
		start, err := time.Parse(time.RFC3339Nano, values[keyStartTime])
		if cfg == nil || err != nil {
			return oven.Stopped{Remnant: cfg, ProgramID: programID, DisplayChar: char}, nil
		}
		return oven.Heating{Config: *cfg, StartedAt: start, ProgramID: programID, DisplayChar: char}, nil
	case models.StatePaused:
		remaining, _ := strconv.Atoi(values[keyPausedRemainingTime])
		p := oven.Paused{Remaining: remaining, ProgramID: programID, DisplayChar: char}
		if cfg != nil {
			p.Config = *cfg
		}
		return p, nil
	default:
		return oven.Stopped{Remnant: cfg, ProgramID: programID, DisplayChar: char}, nil
	}
}

// Save writes s, removing the keys its variant does not carry.
func (c sessionCodec) Save(ctx context.Context, sessionID string, s oven.Session) error {
	s = oven.Normalize(s)
	w := sessionWriter{ctx: ctx, store: c.store, id: sessionID}

	switch v := s.(type) {
	case oven.Heating:
		w.config(&v.Config)
		w.set(keyIsHeating, "true")
		w.set(keyStartTime, v.StartedAt.UTC().Format(time.RFC3339Nano))
		w.remove(keyPausedRemainingTime)
		w.setOrRemove(keyCurrentProgram, v.ProgramID)
		w.setOrRemove(keyHeatingChar, v.DisplayChar)
	case oven.Paused:
		w.config(&v.Config)
		w.set(keyIsHeating, "false")
		w.remove(keyStartTime)
		w.set(keyPausedRemainingTime, strconv.Itoa(v.Remaining))
		w.setOrRemove(keyCurrentProgram, v.ProgramID)
		w.setOrRemove(keyHeatingChar, v.DisplayChar)
	case oven.Stopped:
		w.config(v.Remnant)
		w.set(keyIsHeating, "false")
		w.remove(keyStartTime)
		w.remove(keyPausedRemainingTime)
		w.setOrRemove(keyCurrentProgram, v.ProgramID)
		w.setOrRemove(keyHeatingChar, v.DisplayChar)
	}
	w.set(keyMicrowaveState, s.State())
	return w.err
}

// sessionWriter stops at the first store error.
type sessionWriter struct {
	ctx   context.Context
	store repository.SessionStore
	id    string
	err   error
}

func (w *sessionWriter) set(key, value string) {
	if w.err != nil {
		return
	}
	if err := w.store.SetString(w.ctx, w.id, key, value); err != nil {
		w.err = fmt.Errorf("write session key %s: %w", key, err)
	}
}

func (w *sessionWriter) remove(key string) {
	if w.err != nil {
		return
	}
	if err := w.store.Remove(w.ctx, w.id, key); err != nil {
		w.err = fmt.Errorf("remove session key %s: %w", key, err)
	}
}

func (w *sessionWriter) setOrRemove(key, value string) {
	if value == "" {
		w.remove(key)
		return
	}
	w.set(key, value)
}

func (w *sessionWriter) config(cfg *oven.Config) {
	if cfg == nil {
		w.remove(keyCurrentOven)
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		if w.err == nil {
			w.err = fmt.Errorf("encode oven config: %w", err)
		}
		return
	}
	w.set(keyCurrentOven, string(raw))
}
