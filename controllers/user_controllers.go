package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

type UserController struct {
	auth   *services.AuthService
	cookie SessionCookie
}

func NewUserController(auth *services.AuthService, cookie SessionCookie) *UserController {
	return &UserController{auth: auth, cookie: cookie}
}

type userResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

func sessionResponse(s *services.Session) userResponse {
	resp := userResponse{ID: s.User.ID, Email: s.User.Email, Role: s.User.Role, Token: s.Token}
	if s.Claims != nil && s.Claims.ExpiresAt != nil {
		exp := s.Claims.ExpiresAt.Time
		resp.ExpiresAt = &exp
	}
	return resp
}

// Register creates a customer account and logs it in.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"`
	}
	if !bindJSON(c, &req) {
		return
	}

	session, err := uc.auth.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		utils.RespondError(c, badRequestStatus(err), err)
		return
	}

	uc.cookie.set(c, session.Token)
	utils.RespondJSON(c, http.StatusOK, "Registration successful", sessionResponse(session))
}

func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	session, err := uc.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	uc.cookie.set(c, session.Token)
	utils.RespondJSON(c, http.StatusOK, "Login successful", sessionResponse(session))
}

// Logout always succeeds; a caller without a session just gets the cookie cleared.
func (uc *UserController) Logout(c *gin.Context) {
	if id, ok := utils.CurrentIdentity(c); ok {
		if err := uc.auth.Logout(c.Request.Context(), id); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	uc.cookie.clear(c)
	utils.RespondJSON(c, http.StatusOK, "Logged out successfully", nil)
}

func (uc *UserController) Me(c *gin.Context) {
	id, ok := utils.RequireSession(c)
	if !ok {
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Current user", userResponse{
		ID:    id.UserID,
		Email: id.Email,
		Role:  id.Role,
	})
}
