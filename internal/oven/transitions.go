package oven

import (
	"fmt"
	"time"

	"microwave/internal/models"
)

const (
	QuickHeatSeconds = 30
	QuickHeatPower   = 10
)

const (
	msgStarted        = "Aquecimento iniciado: %s a potência %d."
	msgProgramStarted = "Programa '%s' iniciado: %s a potência %d."
	msgResumed        = "Aquecimento retomado: %s restantes a potência %d."
	msgPaused         = "Aquecimento pausado. Restam %s. Pressione 'Retomar Aquecimento' para continuar."
	msgCancelled      = "Aquecimento cancelado. Todas as configurações foram limpas."
	msgCleared        = "Configurações limpas."
	msgTimeIncreased  = "Tempo aumentado para %s."

	msgNotHeating        = "Erro: Micro-ondas não está aquecendo."
	msgExpiredOnPause    = "Micro-ondas não está aquecendo."
	msgPredefinedProgram = "Erro: Não é permitido aumentar tempo em programa pré-definido."
	msgNotRunning        = "Micro-ondas já está parado."
	msgNoPauseData       = "Erro: Dados de pausa não encontrados."
	msgProgramNotFound   = "Erro: Programa '%s' não encontrado."
	msgCustomNotFound    = "Erro: Programa customizado não encontrado."

	msgStatusStopped   = "Micro-ondas parado."
	msgStatusPaused    = "PAUSADO - Restam %s. Pressione 'Retomar Aquecimento' para continuar."
	msgStatusCompleted = " Aquecimento concluído"
)

func invalid(code models.ErrorCode, err error) models.OperationResult {
	return models.Failed(code, fmt.Sprintf("Erro: %s.", err))
}

// StartManual starts a manual cycle, or resumes a paused one ignoring the
// arguments.
func StartManual(s Session, durationSeconds, powerLevel int, now time.Time) (Session, models.OperationResult) {
	s = Normalize(s)
	if IsPaused(s) {
		return Resume(s, now)
	}
	cfg, err := NewManual(durationSeconds, powerLevel)
	if err != nil {
		return s, invalid(models.CodeInvalidParameters, err)
	}
	next := Heating{Config: cfg, StartedAt: now}
	return next, models.Succeeded(fmt.Sprintf(msgStarted, FormatTimeDisplay(cfg.DurationSeconds), cfg.PowerLevel))
}

// StartQuick is StartManual with the 30 seconds at full power preset.
func StartQuick(s Session, now time.Time) (Session, models.OperationResult) {
	return StartManual(s, QuickHeatSeconds, QuickHeatPower, now)
}

// StartPredefined starts the preset named name.
func StartPredefined(s Session, name string, now time.Time) (Session, models.OperationResult) {
	s = Normalize(s)
	if IsPaused(s) {
		return Resume(s, now)
	}
	p, ok := FindPredefined(name)
	if !ok {
		return s, models.Failed(models.CodeProgramNotFound, fmt.Sprintf(msgProgramNotFound, name))
	}
	cfg, err := NewPredefined(p.TimeInSeconds, p.PowerLevel)
	if err != nil {
		return s, invalid(models.CodeInvalidParameters, err)
	}
	next := Heating{Config: cfg, StartedAt: now, ProgramID: p.Name, DisplayChar: p.Character}
	return next, models.Succeeded(fmt.Sprintf(msgProgramStarted, p.Name, FormatTimeDisplay(cfg.DurationSeconds), cfg.PowerLevel))
}

// StartCustom starts a resolved custom program. A nil or non-custom program
// fails with CUSTOM_PROGRAM_NOT_FOUND.
func StartCustom(s Session, program *models.ProgramDisplayInfo, now time.Time) (Session, models.OperationResult) {
	s = Normalize(s)
	if IsPaused(s) {
		return Resume(s, now)
	}
	if program == nil || !program.IsCustom {
		return s, models.Failed(models.CodeCustomProgramNotFound, msgCustomNotFound)
	}
	cfg, err := NewCustom(program.TimeInSeconds, program.PowerLevel)
	if err != nil {
		return s, invalid(models.CodeInvalidParameters, err)
	}
	next := Heating{
		Config:      cfg,
		StartedAt:   now,
		ProgramID:   CustomProgramRef(program.ID),
		DisplayChar: program.Character,
	}
	return next, models.Succeeded(fmt.Sprintf(msgProgramStarted, program.Name, FormatTimeDisplay(cfg.DurationSeconds), cfg.PowerLevel))
}

// IncreaseTime extends the target duration of a manual cycle. The start
// instant is untouched, so elapsed time keeps counting.
func IncreaseTime(s Session, additionalSeconds int) (Session, models.OperationResult) {
	s = Normalize(s)
	h, ok := s.(Heating)
	if !ok {
		return s, models.Failed(models.CodeNotHeating, msgNotHeating)
	}
	if h.ProgramID != "" {
		return s, models.Failed(models.CodePredefinedProgram, msgPredefinedProgram)
	}
	cfg, err := h.Config.WithDuration(ModeManual, h.Config.DurationSeconds+additionalSeconds)
	if err != nil {
		return s, invalid(models.CodeInvalidTime, err)
	}
	h.Config = cfg
	return h, models.Succeeded(fmt.Sprintf(msgTimeIncreased, FormatTimeDisplay(cfg.DurationSeconds)))
}

// Progress derives the status of s at now. A heating cycle whose duration has
// elapsed is finalized into Stopped; every other call returns s unchanged.
func Progress(s Session, now time.Time) (Session, models.HeatingStatus) {
	s = Normalize(s)
	switch v := s.(type) {
	case Paused:
		if !v.Resumable() {
			return s, stoppedStatus(s)
		}
		st := models.HeatingStatus{
			RemainingTime:          v.Remaining,
			PowerLevel:             v.Config.PowerLevel,
			StatusMessage:          fmt.Sprintf(msgStatusPaused, FormatTimeDisplay(v.Remaining)),
			FormattedRemainingTime: FormatTimeDisplay(v.Remaining),
		}
		return s, annotate(s, st)
	case Heating:
		duration := v.Config.DurationSeconds
		elapsed := elapsedSeconds(v.StartedAt, now)
		if elapsed >= duration {
			cfg := v.Config
			done := Stopped{Remnant: &cfg, ProgramID: v.ProgramID, DisplayChar: v.DisplayChar}
			st := models.HeatingStatus{
				PowerLevel:             cfg.PowerLevel,
				Progress:               100,
				StatusMessage:          ProgressString(v.DisplayChar, cfg.PowerLevel, duration) + msgStatusCompleted,
				FormattedRemainingTime: FormatTimeDisplay(0),
			}
			return done, annotate(done, st)
		}
		remaining := duration - elapsed
		st := models.HeatingStatus{
			IsRunning:              true,
			RemainingTime:          remaining,
			PowerLevel:             v.Config.PowerLevel,
			Progress:               elapsed * 100 / duration,
			StatusMessage:          ProgressString(v.DisplayChar, v.Config.PowerLevel, elapsed),
			FormattedRemainingTime: FormatTimeDisplay(remaining),
		}
		return s, annotate(s, st)
	default:
		return s, stoppedStatus(s)
	}
}

// PauseOrCancel pauses a running cycle, cancels a paused one and clears the
// remnants of a finished one.
func PauseOrCancel(s Session, now time.Time) (Session, models.OperationResult) {
	s = Normalize(s)
	switch v := s.(type) {
	case Heating:
		next, st := Progress(v, now)
		if !st.IsRunning {
			return next, models.Failed(models.CodeNotHeating, msgExpiredOnPause)
		}
		paused := Paused{
			Config:      v.Config,
			Remaining:   st.RemainingTime,
			ProgramID:   v.ProgramID,
			DisplayChar: v.DisplayChar,
		}
		return paused, models.Succeeded(fmt.Sprintf(msgPaused, FormatTimeDisplay(st.RemainingTime)))
	case Paused:
		return Stopped{}, models.Succeeded(msgCancelled)
	case Stopped:
		if v.Remnant != nil {
			return Stopped{}, models.Succeeded(msgCleared)
		}
	}
	return s, models.Failed(models.CodeNotRunning, msgNotRunning)
}

// Resume restarts a paused cycle with the remaining time and the original
// power. Program id and display character carry over from the pause.
func Resume(s Session, now time.Time) (Session, models.OperationResult) {
	s = Normalize(s)
	p, ok := s.(Paused)
	if !ok || !p.Resumable() {
		return s, models.Failed(models.CodeNoPauseData, msgNoPauseData)
	}
	next := Heating{
		Config:      Config{DurationSeconds: p.Remaining, PowerLevel: p.Config.PowerLevel},
		StartedAt:   now,
		ProgramID:   p.ProgramID,
		DisplayChar: p.DisplayChar,
	}
	return next, models.Succeeded(fmt.Sprintf(msgResumed, FormatTimeDisplay(p.Remaining), p.Config.PowerLevel))
}

func stoppedStatus(s Session) models.HeatingStatus {
	return annotate(s, models.HeatingStatus{
		StatusMessage:          msgStatusStopped,
		FormattedRemainingTime: FormatTimeDisplay(0),
	})
}

func annotate(s Session, st models.HeatingStatus) models.HeatingStatus {
	st.CurrentState = s.State()
	switch v := s.(type) {
	case Heating:
		start := v.StartedAt
		st.StartTime = &start
		st.CurrentProgram = v.ProgramID
		st.HeatingChar = displayCharOrDefault(v.DisplayChar)
	case Paused:
		st.CurrentProgram = v.ProgramID
		st.HeatingChar = displayCharOrDefault(v.DisplayChar)
	}
	return st
}

func displayCharOrDefault(c string) string {
	if c == "" {
		return DefaultDisplayChar
	}
	return c
}
