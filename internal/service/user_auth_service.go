package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopease-next/internal/cache"
	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// FederatedIdentity 第三方身份校验结果
type FederatedIdentity struct {
	ProviderID     string
	ProviderUserID string
	Email          string
	Name           string
}

// IdentityVerifier 第三方身份令牌校验器
type IdentityVerifier interface {
	Verify(ctx context.Context, provider, token string) (*FederatedIdentity, error)
}

// RegisterInput 注册输入
type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=191"`
	Password string `validate:"required,max=72"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AuthResult 登录结果
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	verifier IdentityVerifier
	validate *validator.Validate
	now      func() time.Time
}

// NewUserAuthService 创建用户认证服务；verifier 为 nil 时第三方登录不可用
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, verifier IdentityVerifier) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		verifier: verifier,
		validate: validator.New(),
		now:      time.Now,
	}
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(time.Duration(resolveUserJWTExpireHours(s.cfg.UserJWT)) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Register 本地账号注册
func (s *UserAuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Struct(input); err != nil {
		return nil, mapRegisterValidationError(err)
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &models.User{
		Email:       input.Email,
		Name:        input.Name,
		Status:      constants.UserStatusActive,
		Locale:      constants.LocaleEnUS,
		LastLoginAt: &now,
	}
	applyAuthMethod(user, LocalAuth{PasswordHash: string(hashed)})
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, wrapStoreErr(err)
	}
	logger.FromContext(ctx).Infow("user_registered", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login 本地账号登录
func (s *UserAuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	local, ok := AuthMethodOf(user).(LocalAuth)
	if !ok {
		return nil, ErrAuthMethodMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(local.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !isUserActive(user) {
		return nil, ErrUserDisabled
	}
	return s.touchAndIssue(ctx, user)
}

// FederatedLogin 第三方身份登录：按身份查找用户，未找到时按邮箱关联或创建
func (s *UserAuthService) FederatedLogin(ctx context.Context, provider, token string) (*AuthResult, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if s.verifier == nil || !s.cfg.FederatedAuth.Enabled || !s.providerEnabled(provider) {
		return nil, ErrFederatedLoginDisabled
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrFederatedTokenInvalid
	}
	identity, err := s.verifier.Verify(ctx, provider, token)
	if err != nil || identity == nil || identity.ProviderUserID == "" {
		logger.FromContext(ctx).Warnw("federated_token_rejected", "provider", provider, "error", err)
		return nil, ErrFederatedTokenInvalid
	}
	if identity.ProviderID == "" {
		identity.ProviderID = provider
	}

	user, err := s.resolveFederatedUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !isUserActive(user) {
		return nil, ErrUserDisabled
	}
	return s.touchAndIssue(ctx, user)
}

func (s *UserAuthService) resolveFederatedUser(ctx context.Context, identity *FederatedIdentity) (*models.User, error) {
	method := FederatedAuth{ProviderID: identity.ProviderID, ProviderUserID: identity.ProviderUserID}
	user, err := s.userRepo.GetByProvider(ctx, method.ProviderID, method.ProviderUserID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if user != nil {
		return user, nil
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, ErrFederatedTokenInvalid
	}
	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if user != nil {
		// 已绑定其他第三方身份的账号不允许改绑
		if existing, ok := AuthMethodOf(user).(FederatedAuth); ok && existing.ProviderUserID != "" {
			return nil, ErrAuthMethodMismatch
		}
		applyAuthMethod(user, method)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, wrapStoreErr(err)
		}
		logger.FromContext(ctx).Infow("user_identity_linked", "user_id", user.ID, "provider", method.ProviderID)
		return user, nil
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = resolveNameFromEmail(email)
	}
	user = &models.User{
		Email:  email,
		Name:   name,
		Status: constants.UserStatusActive,
		Locale: constants.LocaleEnUS,
	}
	applyAuthMethod(user, method)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, wrapStoreErr(err)
	}
	logger.FromContext(ctx).Infow("user_registered", "user_id", user.ID, "provider", method.ProviderID)
	return user, nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword 修改本地账号密码，旧 Token 全部失效并返回新 Token
func (s *UserAuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) (*AuthResult, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	local, ok := AuthMethodOf(user).(LocalAuth)
	if !ok {
		return nil, ErrAuthMethodMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(local.PasswordHash), []byte(oldPassword)); err != nil {
		return nil, ErrInvalidPassword
	}
	if err := s.validate.Var(newPassword, "required,max=72"); err != nil {
		return nil, ErrWeakPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	applyAuthMethod(user, LocalAuth{PasswordHash: string(hashed)})
	if err := s.revokeTokens(ctx, user); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Infow("user_password_changed", "user_id", user.ID)
	return s.issue(ctx, user)
}

// RevokeSessions 使用户已签发的全部 Token 失效
func (s *UserAuthService) RevokeSessions(ctx context.Context, userID uint) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.revokeTokens(ctx, user); err != nil {
		return err
	}
	logger.FromContext(ctx).Infow("user_sessions_revoked", "user_id", user.ID, "token_version", user.TokenVersion)
	return nil
}

// revokeTokens 递增 Token 版本并淘汰鉴权缓存
func (s *UserAuthService) revokeTokens(ctx context.Context, user *models.User) error {
	now := s.now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	user.UpdatedAt = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return wrapStoreErr(err)
	}
	if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
		logger.FromContext(ctx).Warnw("user_auth_state_evict_failed", "user_id", user.ID, "error", err)
	}
	return nil
}

func (s *UserAuthService) touchAndIssue(ctx context.Context, user *models.User) (*AuthResult, error) {
	now := s.now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, wrapStoreErr(err)
	}
	return s.issue(ctx, user)
}

func (s *UserAuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, err
	}
	if err := cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user)); err != nil {
		logger.FromContext(ctx).Warnw("user_auth_state_cache_failed", "user_id", user.ID, "error", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *UserAuthService) providerEnabled(provider string) bool {
	if provider == "" || provider == constants.AuthProviderLocal {
		return false
	}
	for _, item := range s.cfg.FederatedAuth.Providers {
		if strings.EqualFold(strings.TrimSpace(item), provider) {
			return true
		}
	}
	return false
}

func mapRegisterValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return ErrInvalidEmail
	}
	switch validationErrors[0].Field() {
	case "Name":
		return ErrInvalidName
	case "Password":
		return ErrWeakPassword
	default:
		return ErrInvalidEmail
	}
}

func isUserActive(user *models.User) bool {
	return strings.ToLower(strings.TrimSpace(user.Status)) == constants.UserStatusActive
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}

func resolveNameFromEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" {
		return parts[0]
	}
	return email
}
