package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/application"
	"github.com/taskdeck/taskdeck/internal/domain/entity"
	"github.com/taskdeck/taskdeck/internal/interface/middleware"
	"github.com/taskdeck/taskdeck/pkg/helpers"
	"github.com/taskdeck/taskdeck/pkg/response"
	"github.com/taskdeck/taskdeck/pkg/validation"
)

// AuthHandler handles register, login, logout and the profile endpoint.
type AuthHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErr(c, validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == application.ErrEmailTaken {
			response.Err(c, http.StatusConflict, "Email already exists", response.CodeConflict)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Internal(c)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

// Login handles POST /auth/login. The token goes into an httpOnly cookie and
// the body, so clients that cannot use cookies can fall back to the
// Authorization header.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErr(c, validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == application.ErrInvalidCredentials {
			// Same message for unknown email and wrong password.
			response.Err(c, http.StatusUnauthorized, "Invalid email or password", response.CodeUnauthorized)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Internal(c)
		return
	}
	h.Cookies.SetToken(c, token, exp)
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp,
		"user":       toUserResponse(u),
	})
}

// Logout handles POST /auth/logout. Stateless tokens cannot be revoked;
// clearing the cookie tells the client to stop presenting it.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me handles GET /auth/me for the resolved identity.
func (h *AuthHandler) Me(c *gin.Context) {
	uid := middleware.UserID(c)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		// Token verified but the user row is gone; treat as not logged in.
		response.Err(c, http.StatusUnauthorized, "Please log in to continue", response.CodeUnauthorized)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}
