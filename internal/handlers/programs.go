package handlers

import (
	"net/http"
	"strings"

	"microwave/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	msgProgramNotFound     = "Programa não encontrado"
	msgProgramNameRequired = "Nome do programa é obrigatório"
	msgCharacterRequired   = "Caractere é obrigatório"
)

// CustomProgramRequest is the payload for creating or updating a custom program.
type CustomProgramRequest struct {
	Name          string `json:"name" example:"Pizza"`
	Food          string `json:"food" example:"Pizza congelada"`
	PowerLevel    int    `json:"powerLevel" example:"8"`
	TimeInSeconds int    `json:"timeInSeconds" example:"420"`
	Character     string `json:"character" example:"P"`
	Instructions  string `json:"instructions,omitempty" example:"Retire da embalagem"`
}

func (r CustomProgramRequest) input() models.CustomProgramInput {
	return models.CustomProgramInput{
		Name:          r.Name,
		Food:          r.Food,
		PowerLevel:    r.PowerLevel,
		TimeInSeconds: r.TimeInSeconds,
		Character:     r.Character,
		Instructions:  r.Instructions,
	}
}

// @Summary      List all programs
// @Description  Predefined programs first, then custom programs in creation order.
// @Tags         programs
// @Produce      json
// @Success      200  {array}   models.ProgramDisplayInfo
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/programs [get]
// @Security     BearerAuth
func (h *Handler) listPrograms(c *gin.Context) {
	programs, err := h.services.GetAllPrograms(c.Request.Context())
	if err != nil {
		h.internalError(c, "programs_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// @Summary      List predefined programs
// @Tags         programs
// @Produce      json
// @Success      200  {array}   models.ProgramDisplayInfo
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/programs/predefined [get]
// @Security     BearerAuth
func (h *Handler) listPredefinedPrograms(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.GetPredefinedPrograms())
}

// @Summary      Start a predefined program
// @Tags         programs
// @Produce      json
// @Param        name  path      string  true  "Program name"  example(Pipoca)
// @Success      200   {object}  models.OperationResult
// @Failure      400   {object}  models.OperationResult
// @Failure      404   {object}  models.OperationResult
// @Failure      500   {object}  models.OperationResult
// @Router       /api/v1/programs/predefined/{name}/start [post]
// @Security     BearerAuth
func (h *Handler) startPredefinedProgram(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, models.Failed(models.CodeInvalidParameters, msgProgramNameRequired))
		return
	}
	res, err := h.services.StartPredefinedProgram(c.Request.Context(), sessionID(c), name)
	if err != nil {
		h.internalError(c, "program_start_failed", err, "session_id", sessionID(c), "program", name)
		return
	}
	h.writeResult(c, res)
}

// @Summary      List custom programs
// @Tags         programs
// @Produce      json
// @Success      200  {array}   models.ProgramDisplayInfo
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/programs/custom [get]
// @Security     BearerAuth
func (h *Handler) listCustomPrograms(c *gin.Context) {
	programs, err := h.services.GetCustomPrograms(c.Request.Context())
	if err != nil {
		h.internalError(c, "custom_programs_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// @Summary      Get a custom program
// @Tags         programs
// @Produce      json
// @Param        id   path      string  true  "Program id"
// @Success      200  {object}  models.CustomProgram
// @Failure      404  {object}  models.OperationResult
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/programs/custom/{id} [get]
// @Security     BearerAuth
func (h *Handler) getCustomProgram(c *gin.Context) {
	id := c.Param("id")
	p, err := h.services.GetCustomProgram(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "custom_program_get_failed", err, "id", id)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, models.Failed(models.CodeProgramNotFound, msgProgramNotFound))
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Create a custom program
// @Description  All violated constraints are reported at once in the message.
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        body  body      CustomProgramRequest  true  "Program"
// @Success      201   {object}  models.CustomProgram
// @Failure      400   {object}  models.OperationResult
// @Failure      500   {object}  models.OperationResult
// @Router       /api/v1/programs/custom [post]
// @Security     BearerAuth
func (h *Handler) createCustomProgram(c *gin.Context) {
	var req CustomProgramRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	res, err := h.services.CreateProgram(c.Request.Context(), req.input())
	if err != nil {
		h.internalError(c, "custom_program_create_failed", err)
		return
	}
	if !res.Success {
		h.writeResult(c, res.OperationResult)
		return
	}
	c.JSON(http.StatusCreated, res.Program)
}

// @Summary      Update a custom program
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Program id"
// @Param        body  body      CustomProgramRequest  true  "Program"
// @Success      200   {object}  models.CustomProgram
// @Failure      400   {object}  models.OperationResult
// @Failure      404   {object}  models.OperationResult
// @Failure      500   {object}  models.OperationResult
// @Router       /api/v1/programs/custom/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateCustomProgram(c *gin.Context) {
	var req CustomProgramRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	id := c.Param("id")
	res, err := h.services.UpdateProgram(c.Request.Context(), id, req.input())
	if err != nil {
		h.internalError(c, "custom_program_update_failed", err, "id", id)
		return
	}
	if !res.Success {
		h.writeResult(c, res.OperationResult)
		return
	}
	c.JSON(http.StatusOK, res.Program)
}

// @Summary      Delete a custom program
// @Tags         programs
// @Produce      json
// @Param        id   path      string  true  "Program id"
// @Success      200  {object}  models.OperationResult
// @Failure      404  {object}  models.OperationResult
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/programs/custom/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteCustomProgram(c *gin.Context) {
	id := c.Param("id")
	res, err := h.services.DeleteProgram(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "custom_program_delete_failed", err, "id", id)
		return
	}
	h.writeResult(c, res)
}

// @Summary      Start a custom program
// @Tags         programs
// @Produce      json
// @Param        id   path      string  true  "Program id"
// @Success      200  {object}  models.OperationResult
// @Failure      400  {object}  models.OperationResult
// @Failure      404  {object}  models.OperationResult
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/programs/custom/{id}/start [post]
// @Security     BearerAuth
func (h *Handler) startCustomProgram(c *gin.Context) {
	id := c.Param("id")
	res, err := h.services.StartCustomProgram(c.Request.Context(), sessionID(c), id)
	if err != nil {
		h.internalError(c, "custom_program_start_failed", err, "session_id", sessionID(c), "id", id)
		return
	}
	h.writeResult(c, res)
}

// @Summary      Check name availability
// @Tags         programs
// @Produce      json
// @Param        name       path   string  true   "Program name"
// @Param        excludeId  query  string  false  "Program id to ignore"
// @Success      200  {object}  map[string]interface{}  "name, isAvailable"
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/programs/custom/names/{name}/available [get]
// @Security     BearerAuth
func (h *Handler) nameAvailable(c *gin.Context) {
	name := c.Param("name")
	ok, err := h.services.IsNameAvailable(c.Request.Context(), name, c.Query("excludeId"))
	if err != nil {
		h.internalError(c, "program_name_check_failed", err, "name", name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "isAvailable": ok})
}

// @Summary      Characters in use
// @Tags         characters
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "usedCharacters"
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/characters/used [get]
// @Security     BearerAuth
func (h *Handler) usedCharacters(c *gin.Context) {
	chars, err := h.services.GetUsedCharacters(c.Request.Context())
	if err != nil {
		h.internalError(c, "characters_used_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usedCharacters": chars})
}

// @Summary      Check character uniqueness
// @Tags         characters
// @Produce      json
// @Param        character  path   string  true   "Display character"
// @Param        excludeId  query  string  false  "Program id to ignore"
// @Success      200  {object}  map[string]interface{}  "character, isUnique"
// @Failure      400  {object}  models.OperationResult
// @Failure      500  {object}  models.OperationResult
// @Router       /api/v1/characters/{character}/unique [get]
// @Security     BearerAuth
func (h *Handler) characterUnique(c *gin.Context) {
	char := c.Param("character")
	if char == "" {
		c.JSON(http.StatusBadRequest, models.Failed(models.CodeInvalidParameters, msgCharacterRequired))
		return
	}
	unique, err := h.services.IsCharacterUnique(c.Request.Context(), char, c.Query("excludeId"))
	if err != nil {
		h.internalError(c, "character_check_failed", err, "character", char)
		return
	}
	c.JSON(http.StatusOK, gin.H{"character": char, "isUnique": unique})
}
