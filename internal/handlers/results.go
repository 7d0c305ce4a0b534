package handlers

import (
	"net/http"

	"microwave/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	msgInternalError   = "Erro interno do servidor"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// internalError logs err and answers 500 with an INTERNAL_ERROR result.
func (h *Handler) internalError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(http.StatusInternalServerError, models.Failed(models.CodeInternalError, msgInternalError))
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// statusForResult maps an operation outcome to its HTTP status.
func statusForResult(r models.OperationResult) int {
	if r.Success {
		return http.StatusOK
	}
	switch r.ErrorCode {
	case models.CodeProgramNotFound, models.CodeCustomProgramNotFound:
		return http.StatusNotFound
	case models.CodeCreationFailed, models.CodeUpdateFailed, models.CodeDeleteFailed, models.CodeInternalError:
		return http.StatusInternalServerError
	case models.CodeNotConfigured, models.CodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) writeResult(c *gin.Context, r models.OperationResult) {
	if !r.Success && h.log != nil {
		h.log.Infow("operation_rejected",
			"path", c.FullPath(),
			"session_id", sessionID(c),
			"error_code", r.ErrorCode,
			"message", r.Message,
		)
	}
	c.JSON(statusForResult(r), r)
}
