// Package oven holds the heating rules of the simulated microwave: duration
// policies per mode, oven construction, program presets and the pure
// transitions of a heating session.
package oven

import (
	"errors"
	"fmt"
)

// Mode selects the duration policy applied to a heating request.
type Mode string

const (
	ModeManual     Mode = "manual"
	ModePredefined Mode = "predefined"
	ModeCustom     Mode = "custom"
)

// Power bounds are the same for every mode.
const (
	MinPower = 1
	MaxPower = 10
)

var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidPower    = errors.New("potência deve estar entre 1 e 10")
	ErrUnknownMode     = errors.New("unknown heating mode")
)

// Range is an inclusive [Min, Max] interval in seconds.
type Range struct {
	Min int
	Max int
}

func (r Range) Contains(seconds int) bool {
	return seconds >= r.Min && seconds <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("entre %d e %d segundos", r.Min, r.Max)
}

var durationPolicy = map[Mode]Range{
	ModeManual:     {Min: 1, Max: 120},
	ModePredefined: {Min: 1, Max: 1800},
	ModeCustom:     {Min: 1, Max: 7200},
}

var modeLabels = map[Mode]string{
	ModeManual:     "aquecimento manual",
	ModePredefined: "programa pré-definido",
	ModeCustom:     "programa customizado",
}

// DurationError reports a duration outside the policy of its mode.
type DurationError struct {
	Mode    Mode
	Range   Range
	Seconds int
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("%s: tempo deve estar %s", modeLabels[e.Mode], e.Range)
}

func (e *DurationError) Unwrap() error { return ErrInvalidDuration }

// PolicyFor returns the allowed duration range of mode.
func PolicyFor(mode Mode) (Range, error) {
	r, ok := durationPolicy[mode]
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return r, nil
}

// ValidateDuration succeeds iff seconds lies within the range of mode.
func ValidateDuration(mode Mode, seconds int) error {
	r, err := PolicyFor(mode)
	if err != nil {
		return err
	}
	if !r.Contains(seconds) {
		return &DurationError{Mode: mode, Range: r, Seconds: seconds}
	}
	return nil
}

// DescribeRange renders the allowed range of mode for messages and UI hints.
func DescribeRange(mode Mode) string {
	r, err := PolicyFor(mode)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", modeLabels[mode], r)
}
