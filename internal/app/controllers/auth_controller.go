// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/studentdesk/studentdesk/internal/app/models/dto"
	"github.com/studentdesk/studentdesk/internal/app/services"
	"github.com/studentdesk/studentdesk/internal/middleware"
	"github.com/studentdesk/studentdesk/internal/session"
)

// CookieSettings carries the session cookie parameters from configuration.
type CookieSettings struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	sessions    *session.Store
	cookie      CookieSettings
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *session.Store, cookie CookieSettings, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		cookie:      cookie,
		logger:      logger,
	}
}

// setSessionCookie establishes a session for the identity and delivers the
// opaque token in an HTTP-only cookie.
func (c *AuthController) setSessionCookie(ctx *gin.Context, user *dto.UserInfo) {
	sess := c.sessions.Create(user.ID, user.Username)
	ctx.SetCookie(c.cookie.Name, sess.Token, int(c.cookie.TTL.Seconds()), "/", "", c.cookie.Secure, true)
}

// Signup handles account registration
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid signup request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, user)

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User:    user,
	})
}

// Login handles credential verification and session creation
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, user)

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
	})
}

// Logout destroys the current session and clears the cookie. Calling it with
// no active session still succeeds.
func (c *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(c.cookie.Name); err == nil && token != "" {
		c.sessions.Delete(token)
	}

	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)

	ctx.JSON(http.StatusOK, dto.LogoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// Status reports the current session state without side effects
func (c *AuthController) Status(ctx *gin.Context) {
	resp := dto.AuthStatusResponse{}

	if token, err := ctx.Cookie(c.cookie.Name); err == nil && token != "" {
		if sess, ok := c.sessions.Get(token); ok {
			resp.Authenticated = true
			username := sess.Username
			resp.Username = &username
		}
	}

	ctx.JSON(http.StatusOK, resp)
}
