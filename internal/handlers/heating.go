package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// StartHeatingRequest is the payload of a manual start.
type StartHeatingRequest struct {
	// Duration in seconds, 1 to 120 for a manual start
	TimeInSeconds int `json:"timeInSeconds" example:"90"`
	// Power level, 1 to 10
	PowerLevel int `json:"powerLevel" example:"7"`
}

// AddTimeRequest extends a running manual cycle.
type AddTimeRequest struct {
	AdditionalSeconds int `json:"additionalSeconds" example:"30"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Start manual heating
// @Description  Resumes instead when the session is paused; the body is then ignored.
// @Tags         heating
// @Accept       json
// @Produce      json
// @Param        body  body      StartHeatingRequest  true  "Duration and power"
// @Success      200   {object}  models.OperationResult
// @Failure      400   {object}  models.OperationResult
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  models.OperationResult
// @Router       /api/v1/heating/start [post]
// @Security     BearerAuth
func (h *Handler) startHeating(c *gin.Context) {
	var req StartHeatingRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	res, err := h.services.StartHeating(c.Request.Context(), sessionID(c), req.TimeInSeconds, req.PowerLevel)
	if err != nil {
		h.internalError(c, "heating_start_failed", err, "session_id", sessionID(c))
		return
	}
	h.writeResult(c, res)
}

// @Summary      Quick start
// @Description  30 seconds at power 10, or resume when paused.
// @Tags         heating
// @Produce      json
// @Success      200  {object}  models.OperationResult
// @Failure      400  {object}  models.OperationResult
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/heating/quick [post]
// @Security     BearerAuth
func (h *Handler) quickStart(c *gin.Context) {
	res, err := h.services.QuickStart(c.Request.Context(), sessionID(c))
	if err != nil {
		h.internalError(c, "heating_quick_start_failed", err, "session_id", sessionID(c))
		return
	}
	h.writeResult(c, res)
}

// @Summary      Pause or cancel
// @Description  Pauses a running cycle, cancels a paused one, clears a finished one.
// @Tags         heating
// @Produce      json
// @Success      200  {object}  models.OperationResult
// @Failure      400  {object}  models.OperationResult
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/heating/pause [post]
// @Security     BearerAuth
func (h *Handler) pauseHeating(c *gin.Context) {
	h.pauseOrCancel(c, "heating_pause_failed")
}

// @Summary      Cancel
// @Description  Same state machine step as pause.
// @Tags         heating
// @Produce      json
// @Success      200  {object}  models.OperationResult
// @Failure      400  {object}  models.OperationResult
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/heating/cancel [post]
// @Security     BearerAuth
func (h *Handler) cancelHeating(c *gin.Context) {
	h.pauseOrCancel(c, "heating_cancel_failed")
}

func (h *Handler) pauseOrCancel(c *gin.Context, logKey string) {
	res, err := h.services.PauseOrCancel(c.Request.Context(), sessionID(c))
	if err != nil {
		h.internalError(c, logKey, err, "session_id", sessionID(c))
		return
	}
	h.writeResult(c, res)
}

// @Summary      Add time
// @Description  Only manual cycles can be extended; the new total must stay within 1 to 120 seconds.
// @Tags         heating
// @Accept       json
// @Produce      json
// @Param        body  body      AddTimeRequest  true  "Additional seconds"
// @Success      200   {object}  models.OperationResult
// @Failure      400   {object}  models.OperationResult
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  models.OperationResult
// @Router       /api/v1/heating/add-time [post]
// @Security     BearerAuth
func (h *Handler) addTime(c *gin.Context) {
	var req AddTimeRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	res, err := h.services.IncreaseTime(c.Request.Context(), sessionID(c), req.AdditionalSeconds)
	if err != nil {
		h.internalError(c, "heating_add_time_failed", err, "session_id", sessionID(c))
		return
	}
	h.writeResult(c, res)
}

// @Summary      Heating status
// @Description  Reading the status after the cycle expired finalizes it.
// @Tags         heating
// @Produce      json
// @Success      200  {object}  models.HeatingStatus
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/heating/status [get]
// @Security     BearerAuth
func (h *Handler) heatingStatus(c *gin.Context) {
	st, err := h.services.GetHeatingProgress(c.Request.Context(), sessionID(c))
	if err != nil {
		h.internalError(c, "heating_status_failed", err, "session_id", sessionID(c))
		return
	}
	c.JSON(http.StatusOK, st)
}
