package handlers

import (
	"errors"
	"net/http"
	"strings"

	"microwave/internal/models"
	"microwave/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgLoginOK           = "Login realizado com sucesso"
	msgConfigureOK       = "Configuração realizada com sucesso"
	msgLogoutOK          = "Logout realizado com sucesso"
	msgCredentialsNeeded = "Nome de usuário e senha são obrigatórios"
	msgNotConfigured     = "Sistema não configurado. Configure as credenciais primeiro."
	msgInvalidCreds      = "Credenciais inválidas"
	msgTokenRequired     = "Token é obrigatório"
	msgReconfigureAuth   = "Autenticação necessária para alterar as credenciais"
)

// AuthCredentials is the login payload.
type AuthCredentials struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"s3cret"`
}

// AuthConfigRequest sets or replaces the administrator credential.
type AuthConfigRequest struct {
	Username         string `json:"username" example:"admin"`
	Password         string `json:"password" example:"s3cret"`
	ConnectionString string `json:"connectionString,omitempty" example:"Data Source=microwave.db"`
}

// TokenValidationRequest carries a token to check.
type TokenValidationRequest struct {
	Token string `json:"token"`
}

func credentialsMissing(username, password string) bool {
	return strings.TrimSpace(username) == "" || strings.TrimSpace(password) == ""
}

// @Summary      Configure administrator credential
// @Description  Open while nothing is configured; afterwards a valid Bearer token is required.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      AuthConfigRequest  true  "Credential"
// @Success      200   {object}  models.OperationResult
// @Failure      400   {object}  models.OperationResult
// @Failure      401   {object}  models.OperationResult
// @Failure      500   {object}  models.OperationResult
// @Router       /api/auth/configure [post]
func (h *Handler) configure(c *gin.Context) {
	var input AuthConfigRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if credentialsMissing(input.Username, input.Password) {
		c.JSON(http.StatusBadRequest, models.Failed(models.CodeInvalidParameters, msgCredentialsNeeded))
		return
	}

	ctx := c.Request.Context()
	configured, err := h.services.IsConfigured(ctx)
	if err != nil {
		h.internalError(c, "auth_status_failed", err)
		return
	}
	if configured && !h.hasValidToken(c) {
		c.JSON(http.StatusUnauthorized, models.Failed(models.CodeInvalidCredentials, msgReconfigureAuth))
		return
	}

	if err := h.services.Configure(ctx, input.Username, input.Password, input.ConnectionString); err != nil {
		if errors.Is(err, service.ErrEmptyCredentials) {
			c.JSON(http.StatusBadRequest, models.Failed(models.CodeInvalidParameters, msgCredentialsNeeded))
			return
		}
		h.internalError(c, "auth_configure_failed", err, "username", input.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("auth_configured", "username", input.Username, "reconfigured", configured)
	}
	c.JSON(http.StatusOK, models.Succeeded(msgConfigureOK))
}

func (h *Handler) hasValidToken(c *gin.Context) bool {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		return false
	}
	_, err := h.services.ParseToken(token)
	return err == nil
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      AuthCredentials  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "success, message, data{token, expiresAt, username}"
// @Failure      400   {object}  models.OperationResult
// @Failure      401   {object}  models.OperationResult
// @Failure      500   {object}  models.OperationResult
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input AuthCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if credentialsMissing(input.Username, input.Password) {
		c.JSON(http.StatusBadRequest, models.Failed(models.CodeInvalidParameters, msgCredentialsNeeded))
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotConfigured):
		c.JSON(http.StatusUnauthorized, models.Failed(models.CodeNotConfigured, msgNotConfigured))
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username)
		}
		c.JSON(http.StatusUnauthorized, models.Failed(models.CodeInvalidCredentials, msgInvalidCreds))
		return
	default:
		h.internalError(c, "auth_login_error", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgLoginOK,
		"data":    token,
	})
}

// @Summary      Authentication status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.AuthStatus
// @Failure      500  {object}  models.OperationResult
// @Router       /api/auth/status [get]
func (h *Handler) authStatus(c *gin.Context) {
	st, err := h.services.Status(c.Request.Context())
	if err != nil {
		h.internalError(c, "auth_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Validate token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      TokenValidationRequest  true  "Token"
// @Success      200   {object}  map[string]interface{}  "isValid, username"
// @Failure      400   {object}  models.OperationResult
// @Router       /api/auth/validate [post]
func (h *Handler) validateToken(c *gin.Context) {
	var input TokenValidationRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if strings.TrimSpace(input.Token) == "" {
		c.JSON(http.StatusBadRequest, models.Failed(models.CodeInvalidParameters, msgTokenRequired))
		return
	}

	username, err := h.services.ParseToken(strings.TrimSpace(input.Token))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isValid": false, "username": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isValid": true, "username": username})
}

// @Summary      Logout
// @Description  Tokens are stateless; the client discards its copy.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.OperationResult
// @Router       /api/auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, models.Succeeded(msgLogoutOK))
}
