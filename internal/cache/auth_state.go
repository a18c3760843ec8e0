package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"
)

const shopperAuthStateTTL = 10 * time.Minute

// UserAuthState 顾客鉴权快照，JWT 中间件优先读取，未命中再查库回填
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
type UserAuthState struct {
	UserID             uint   `json:"user_id"`
	Status             string `json:"status"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// Active 账号是否允许下单与评价
func (s *UserAuthState) Active() bool {
	return s != nil && strings.EqualFold(strings.TrimSpace(s.Status), constants.UserStatusActive)
}

// Admits 判断 Token 是否仍有效：版本一致且签发时间不早于失效时间（秒级比较）
func (s *UserAuthState) Admits(tokenVersion uint64, issuedAt time.Time) bool {
	if s == nil || tokenVersion != s.TokenVersion {
		return false
	}
	if s.TokenInvalidBefore <= 0 {
		return true
	}
	if issuedAt.IsZero() {
		return false
	}
	return issuedAt.Unix() >= s.TokenInvalidBefore
}

func shopperAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:shopper:%d", userID)
}

// BuildUserAuthState 从顾客模型构建鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		Status:       user.Status,
		TokenVersion: user.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetUserAuthState 读取鉴权快照，缓存未启用时视为未命中
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, shopperAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState 登录签发或中间件查库后回填
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, shopperAuthStateKey(state.UserID), state, shopperAuthStateTTL)
}

// DelUserAuthState 改密或登出后淘汰快照，下次请求按新版本回填
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, shopperAuthStateKey(userID))
}
