package models

import "time"

// PredefinedProgram is one of the fixed presets shipped with the oven.
type PredefinedProgram struct {
	Name          string `json:"name"`
	Food          string `json:"food"`
	TimeInSeconds int    `json:"timeInSeconds"`
	PowerLevel    int    `json:"powerLevel"`
	Character     string `json:"character"`
	Instructions  string `json:"instructions"`
}

// CustomProgram is a user authored preset.
type CustomProgram struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Food          string    `json:"food"`
	PowerLevel    int       `json:"powerLevel"`
	TimeInSeconds int       `json:"timeInSeconds"`
	Character     string    `json:"character"`
	Instructions  string    `json:"instructions,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CustomProgramInput carries the user editable fields of a custom program.
type CustomProgramInput struct {
	Name          string `json:"name"`
	Food          string `json:"food"`
	PowerLevel    int    `json:"powerLevel"`
	TimeInSeconds int    `json:"timeInSeconds"`
	Character     string `json:"character"`
	Instructions  string `json:"instructions,omitempty"`
}

// ProgramDisplayInfo is the uniform list entry for predefined and custom programs.
type ProgramDisplayInfo struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Food          string     `json:"food"`
	PowerLevel    int        `json:"powerLevel"`
	TimeInSeconds int        `json:"timeInSeconds"`
	Character     string     `json:"character"`
	Instructions  string     `json:"instructions"`
	IsCustom      bool       `json:"isCustom"`
	FormattedTime string     `json:"formattedTime"`
	DisplayName   string     `json:"displayName"`
	CSSClass      string     `json:"cssClass"`
	FontStyle     string     `json:"fontStyle"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// CustomProgramResult is the outcome of a custom program write. Program is set
// on success.
type CustomProgramResult struct {
	OperationResult
	Program *CustomProgram `json:"program,omitempty"`
}
