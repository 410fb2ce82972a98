package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// AuthHandler serves signup, login and the session-backed current user.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new user. It does not log the user in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	h.respondUser(c, http.StatusCreated, user, err)
}

// Login checks the credentials and stores the user id in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err == nil {
		err = saveSession(c, func(s sessions.Session) { s.Set(constants.ContextKeyUserID, user.ID) })
	}
	h.respondUser(c, http.StatusOK, user, err)
}

// Logout clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := saveSession(c, sessions.Session.Clear); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	h.respondUser(c, http.StatusOK, user, err)
}

func (h *AuthHandler) respondUser(c *gin.Context, status int, user *models.User, err error) {
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(status, dto.ToUserDTO(*user))
}

var errSessionNotSaved = errors.New("failed to save session")

func saveSession(c *gin.Context, apply func(sessions.Session)) error {
	session := sessions.Default(c)
	apply(session)
	if err := session.Save(); err != nil {
		return fmt.Errorf("%w: %w", errSessionNotSaved, err)
	}
	return nil
}

// respondAuthError handles credential and signup errors and leaves the rest
// to respondServiceError.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, errSessionNotSaved):
		apierrors.InternalError(c, "Failed to save session")
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser):
		apierrors.InternalError(c, "Failed to create user")
	default:
		respondServiceError(c, err)
	}
}
