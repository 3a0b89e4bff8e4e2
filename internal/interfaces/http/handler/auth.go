package handler

import (
	"github.com/fiscalmanager/backend/internal/application/identity"
	"github.com/fiscalmanager/backend/internal/interfaces/http/dto"
	"github.com/fiscalmanager/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@ID				registerUser
//	@Summary		Register a user
//	@Description	Create an account and return a token for it
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identity.RegisterInput	true	"Account data"
//	@Success		201		{object}	dto.Response{data=identity.AuthResult}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		500		{object}	dto.Response{error=dto.ErrorInfo}
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterInput
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Login godoc
//
//	@ID				loginUser
//	@Summary		User login
//	@Description	Authenticate with email and password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identity.LoginInput	true	"Login credentials"
//	@Success		200		{object}	dto.Response{data=identity.AuthResult}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		401		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		429		{object}	dto.Response{error=dto.ErrorInfo}
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
//
//	@ID				logoutUser
//	@Summary		User logout
//	@Description	Revoke the presented token
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=dto.MessageResponse}
//	@Failure		401	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	identityClaims, err := claims.Identity()
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := identity.LogoutInput{
		UserID:   identityClaims.UserID,
		TokenJTI: claims.ID,
	}
	if claims.ExpiresAt != nil {
		input.ExpiresAt = claims.ExpiresAt.Time
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Logout realizado com sucesso"})
}

// GetCurrentUser godoc
//
//	@ID				getCurrentUser
//	@Summary		Current user
//	@Description	Profile of the authenticated user
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=identity.UserInfo}
//	@Failure		401	{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
