package oven

// Config is a validated (duration, power) pair. It is a value: copies never
// alias, and a changed duration goes through WithDuration again.
type Config struct {
	DurationSeconds int `json:"durationSeconds"`
	PowerLevel      int `json:"powerLevel"`
}

// NewConfig validates power and duration for mode.
func NewConfig(mode Mode, durationSeconds, powerLevel int) (Config, error) {
	if powerLevel < MinPower || powerLevel > MaxPower {
		return Config{}, ErrInvalidPower
	}
	if err := ValidateDuration(mode, durationSeconds); err != nil {
		return Config{}, err
	}
	return Config{DurationSeconds: durationSeconds, PowerLevel: powerLevel}, nil
}

func NewManual(durationSeconds, powerLevel int) (Config, error) {
	return NewConfig(ModeManual, durationSeconds, powerLevel)
}

func NewPredefined(durationSeconds, powerLevel int) (Config, error) {
	return NewConfig(ModePredefined, durationSeconds, powerLevel)
}

func NewCustom(durationSeconds, powerLevel int) (Config, error) {
	return NewConfig(ModeCustom, durationSeconds, powerLevel)
}

// WithDuration returns a copy with a new duration re-validated for mode.
func (c Config) WithDuration(mode Mode, durationSeconds int) (Config, error) {
	return NewConfig(mode, durationSeconds, c.PowerLevel)
}
