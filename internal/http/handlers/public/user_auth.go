package public

import (
	"time"

	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FederatedLoginRequest 第三方身份登录请求
type FederatedLoginRequest struct {
	Provider   string `json:"provider" binding:"required"`
	Credential string `json:"credential" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// AuthResponse 登录成功返回
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	}
}

// Register 本地账号注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err, "error.register_failed")
		return
	}
	response.Success(c, toAuthResponse(result))
}

// Login 本地账号登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.UserAuthService.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err, "error.login_failed")
		return
	}
	response.Success(c, toAuthResponse(result))
}

// FederatedLogin 第三方身份登录
func (h *Handler) FederatedLogin(c *gin.Context) {
	var req FederatedLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.UserAuthService.FederatedLogin(c.Request.Context(), req.Provider, req.Credential)
	if err != nil {
		respondAuthError(c, err, "error.login_failed")
		return
	}
	response.Success(c, toAuthResponse(result))
}

// CurrentUserResponse 当前用户信息，roles 为管理端角色
type CurrentUserResponse struct {
	*models.User
	Roles []string `json:"roles"`
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(c.Request.Context(), uid)
	if err != nil {
		respondAuthError(c, err, "error.internal")
		return
	}
	roles := []string{}
	if h.AuthzService != nil {
		if assigned, err := h.AuthzService.GetUserRoles(uid); err != nil {
			logger.FromContext(c.Request.Context()).Warnw("user_roles_fetch_failed", "user_id", uid, "error", err)
		} else {
			roles = assigned
		}
	}
	response.Success(c, CurrentUserResponse{User: user, Roles: roles})
}

// ChangePassword 修改密码，返回新的登录凭证
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.UserAuthService.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword)
	if err != nil {
		respondAuthError(c, err, "error.password_change_failed")
		return
	}
	response.Success(c, toAuthResponse(result))
}

// Logout 退出全部设备
func (h *Handler) Logout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.RevokeSessions(c.Request.Context(), uid); err != nil {
		respondAuthError(c, err, "error.logout_failed")
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}
