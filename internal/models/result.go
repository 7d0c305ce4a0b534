package models

// ErrorCode is the stable machine-readable tag carried by failed operations.
type ErrorCode string

const (
	CodeInvalidParameters     ErrorCode = "INVALID_PARAMETERS"
	CodeInvalidTime           ErrorCode = "INVALID_TIME"
	CodeNotHeating            ErrorCode = "NOT_HEATING"
	CodePredefinedProgram     ErrorCode = "PREDEFINED_PROGRAM"
	CodeNotRunning            ErrorCode = "NOT_RUNNING"
	CodeNoPauseData           ErrorCode = "NO_PAUSE_DATA"
	CodeProgramNotFound       ErrorCode = "PROGRAM_NOT_FOUND"
	CodeCustomProgramNotFound ErrorCode = "CUSTOM_PROGRAM_NOT_FOUND"
	CodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	CodeCreationFailed        ErrorCode = "CREATION_FAILED"
	CodeUpdateFailed          ErrorCode = "UPDATE_FAILED"
	CodeDeleteFailed          ErrorCode = "DELETE_FAILED"
	CodeNotConfigured         ErrorCode = "NOT_CONFIGURED"
	CodeInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	CodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

// OperationResult is returned by every mutating operation.
type OperationResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"errorCode,omitempty"`
}

func Succeeded(msg string) OperationResult {
	return OperationResult{Success: true, Message: msg}
}

func Failed(code ErrorCode, msg string) OperationResult {
	return OperationResult{Success: false, Message: msg, ErrorCode: code}
}
