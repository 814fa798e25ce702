package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoury7/EzyStayBackend/internal/http/middleware"
	"github.com/Shoury7/EzyStayBackend/internal/http/validation"
	"github.com/Shoury7/EzyStayBackend/internal/modules/users"
	"github.com/Shoury7/EzyStayBackend/internal/shared/apperr"
)

type AuthHandler struct {
	Svc *users.AuthService
}

func NewAuthHandler(svc *users.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

type registerInput struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	AdminKey string `json:"adminKey"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Registration failed.", validation.FromBindError(err, &in)))
		return
	}

	token, _, err := h.Svc.Register(c.Request.Context(), users.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		AdminKey: in.AdminKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrAdminKeyInvalid):
			middleware.Fail(c, apperr.ForbiddenErr("Invalid or missing admin secret key."))
		case errors.Is(err, users.ErrEmailTaken):
			middleware.Fail(c, apperr.ConflictErr("Email is already registered."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Login failed.", validation.FromBindError(err, &in)))
		return
	}

	token, u, err := h.Svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			middleware.Fail(c, apperr.UnauthorizedErr("Invalid credentials."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": u.Name,
		"userid":   u.ID,
		"role":     u.Role,
		"email":    u.Email,
		"message":  "Login successful",
	})
}
