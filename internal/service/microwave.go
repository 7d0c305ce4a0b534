package service

import (
	"context"
	"fmt"
	"time"

	"microwave/internal/models"
	"microwave/internal/mqtt"
	"microwave/internal/oven"
	"microwave/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type programResolver interface {
	GetProgramByID(ctx context.Context, id string) (*models.ProgramDisplayInfo, error)
}

// MicrowaveService runs the heating state machine against a session store.
// Each call loads the session, applies one transition and writes the result
// back. Concurrent calls on the same session are last-write-wins.
type MicrowaveService struct {
	codec     sessionCodec
	programs  programResolver
	eventRepo repository.EventRepo
	publisher mqtt.Publisher
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewMicrowaveService(
	store repository.SessionStore,
	programs programResolver,
	eventRepo repository.EventRepo,
	publisher mqtt.Publisher,
	log *zap.SugaredLogger,
) *MicrowaveService {
	if publisher == nil {
		publisher = mqtt.NopPublisher{}
	}
	return &MicrowaveService{
		codec:     sessionCodec{store: store},
		programs:  programs,
		eventRepo: eventRepo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

type transition func(s oven.Session, now time.Time) (oven.Session, models.OperationResult, error)

func pure(f func(oven.Session, time.Time) (oven.Session, models.OperationResult)) transition {
	return func(s oven.Session, now time.Time) (oven.Session, models.OperationResult, error) {
		next, res := f(s, now)
		return next, res, nil
	}
}

// StartHeating starts a manual cycle. A paused session resumes instead and
// the arguments are ignored.
func (s *MicrowaveService) StartHeating(ctx context.Context, sessionID string, durationSeconds, powerLevel int) (models.OperationResult, error) {
	return s.apply(ctx, sessionID, "heating_start", pure(func(cur oven.Session, now time.Time) (oven.Session, models.OperationResult) {
		return oven.StartManual(cur, durationSeconds, powerLevel, now)
	}))
}

func (s *MicrowaveService) QuickStart(ctx context.Context, sessionID string) (models.OperationResult, error) {
	return s.apply(ctx, sessionID, "heating_quick_start", pure(oven.StartQuick))
}

func (s *MicrowaveService) StartPredefinedProgram(ctx context.Context, sessionID, name string) (models.OperationResult, error) {
	return s.apply(ctx, sessionID, "heating_predefined_start", pure(func(cur oven.Session, now time.Time) (oven.Session, models.OperationResult) {
		return oven.StartPredefined(cur, name, now)
	}))
}

// StartCustomProgram resolves id in the catalog unless the session is paused,
// in which case it resumes without a lookup.
func (s *MicrowaveService) StartCustomProgram(ctx context.Context, sessionID, id string) (models.OperationResult, error) {
	return s.apply(ctx, sessionID, "heating_custom_start", func(cur oven.Session, now time.Time) (oven.Session, models.OperationResult, error) {
		if oven.IsPaused(cur) {
			next, res := oven.Resume(cur, now)
			return next, res, nil
		}
		program, err := s.programs.GetProgramByID(ctx, id)
		if err != nil {
			return cur, models.OperationResult{}, fmt.Errorf("resolve custom program %s: %w", id, err)
		}
		next, res := oven.StartCustom(cur, program, now)
		return next, res, nil
	})
}

func (s *MicrowaveService) IncreaseTime(ctx context.Context, sessionID string, additionalSeconds int) (models.OperationResult, error) {
	return s.apply(ctx, sessionID, "heating_time_increase", pure(func(cur oven.Session, _ time.Time) (oven.Session, models.OperationResult) {
		return oven.IncreaseTime(cur, additionalSeconds)
	}))
}

// PauseOrCancel pauses a running cycle, cancels a paused one or clears the
// remnants of a finished one.
func (s *MicrowaveService) PauseOrCancel(ctx context.Context, sessionID string) (models.OperationResult, error) {
	return s.apply(ctx, sessionID, "heating_pause_or_cancel", pure(oven.PauseOrCancel))
}

// GetHeatingProgress derives the current status. A cycle whose time is up is
// finalized and persisted by this call.
func (s *MicrowaveService) GetHeatingProgress(ctx context.Context, sessionID string) (models.HeatingStatus, error) {
	cur, err := s.codec.Load(ctx, sessionID)
	if err != nil {
		s.log.Errorw("heating_status_load_failed", "session_id", sessionID, "err", err)
		return models.HeatingStatus{}, err
	}
	now := s.now().UTC()
	next, status := oven.Progress(cur, now)
	if next.State() != cur.State() {
		if err := s.codec.Save(ctx, sessionID, next); err != nil {
			s.log.Errorw("heating_status_save_failed", "session_id", sessionID, "err", err)
			return models.HeatingStatus{}, err
		}
		s.record(ctx, sessionID, cur, next, now)
	}
	return status, nil
}

func (s *MicrowaveService) apply(ctx context.Context, sessionID, op string, fn transition) (models.OperationResult, error) {
	cur, err := s.codec.Load(ctx, sessionID)
	if err != nil {
		s.log.Errorw(op+"_load_failed", "session_id", sessionID, "err", err)
		return models.OperationResult{}, err
	}

	now := s.now().UTC()
	next, res, err := fn(cur, now)
	if err != nil {
		s.log.Errorw(op+"_failed", "session_id", sessionID, "err", err)
		return models.OperationResult{}, err
	}

	if res.Success || next.State() != cur.State() {
		if err := s.codec.Save(ctx, sessionID, next); err != nil {
			s.log.Errorw(op+"_save_failed", "session_id", sessionID, "err", err)
			return models.OperationResult{}, err
		}
		s.record(ctx, sessionID, cur, next, now)
	}

	if res.Success {
		s.log.Infow(op, "session_id", sessionID, "state", next.State())
	} else {
		s.log.Debugw(op+"_rejected", "session_id", sessionID, "code", res.ErrorCode)
	}
	return res, nil
}

// record appends the event for a persisted transition and publishes it.
// Failures are logged only.
func (s *MicrowaveService) record(ctx context.Context, sessionID string, before, after oven.Session, now time.Time) {
	typ := classifyTransition(before, after)
	if typ == "" {
		return
	}
	ev := models.HeatingEvent{
		EventID:     uuid.NewString(),
		SessionID:   sessionID,
		OccurredAt:  now,
		Type:        typ,
		Description: eventDescriptions[typ],
		Metadata:    transitionMetadata(before, after),
	}
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		s.log.Warnw("heating_event_append_failed", "session_id", sessionID, "type", typ, "err", err)
	}
	if err := s.publisher.Publish(ev); err != nil {
		s.log.Warnw("heating_event_publish_failed", "session_id", sessionID, "type", typ, "err", err)
	}
}

var eventDescriptions = map[string]string{
	EventStart:        "Heating started",
	EventResume:       "Heating resumed",
	EventPause:        "Heating paused",
	EventCancel:       "Heating cancelled",
	EventClear:        "Settings cleared",
	EventComplete:     "Heating completed",
	EventTimeIncrease: "Heating time increased",
}

// classifyTransition names the event of a state change, or "" when nothing
// observable happened.
func classifyTransition(before, after oven.Session) string {
	switch b := before.(type) {
	case oven.Paused:
		switch after.(type) {
		case oven.Heating:
			return EventResume
		case oven.Stopped:
			return EventCancel
		}
	case oven.Heating:
		switch a := after.(type) {
		case oven.Paused:
			return EventPause
		case oven.Stopped:
			return EventComplete
		case oven.Heating:
			if a.StartedAt.Equal(b.StartedAt) {
				return EventTimeIncrease
			}
			return EventStart
		}
	case oven.Stopped:
		switch a := after.(type) {
		case oven.Heating:
			return EventStart
		case oven.Stopped:
			if b.Remnant != nil && a.Remnant == nil {
				return EventClear
			}
		}
	}
	return ""
}

func transitionMetadata(before, after oven.Session) map[string]any {
	meta := map[string]any{"from": before.State(), "to": after.State()}
	var (
		cfg       *oven.Config
		programID string
	)
	switch v := after.(type) {
	case oven.Heating:
		cfg, programID = &v.Config, v.ProgramID
	case oven.Paused:
		cfg, programID = &v.Config, v.ProgramID
		meta["remainingSeconds"] = v.Remaining
	case oven.Stopped:
		cfg, programID = v.Remnant, v.ProgramID
	}
	if cfg != nil {
		meta["durationSeconds"] = cfg.DurationSeconds
		meta["powerLevel"] = cfg.PowerLevel
	}
	if programID != "" {
		meta["programId"] = programID
	}
	return meta
}
