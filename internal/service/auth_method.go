package service

import (
	"strings"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"
)

// AuthMethod 用户登录方式：本地密码或第三方身份，二者互斥
type AuthMethod interface {
	Provider() string
	isAuthMethod()
}

// LocalAuth 本地密码登录
type LocalAuth struct {
	PasswordHash string
}

// Provider 登录方式标识
func (LocalAuth) Provider() string { return constants.AuthProviderLocal }
func (LocalAuth) isAuthMethod()    {}

// FederatedAuth 第三方身份登录
type FederatedAuth struct {
	ProviderID     string
	ProviderUserID string
}

// Provider 登录方式标识
func (a FederatedAuth) Provider() string { return a.ProviderID }
func (FederatedAuth) isAuthMethod()      {}

// AuthMethodOf 从用户记录解析登录方式
func AuthMethodOf(user *models.User) AuthMethod {
	if user == nil {
		return nil
	}
	provider := strings.TrimSpace(user.AuthProvider)
	if provider == "" || provider == constants.AuthProviderLocal {
		return LocalAuth{PasswordHash: user.PasswordHash}
	}
	federated := FederatedAuth{ProviderID: provider}
	if user.ProviderUserID != nil {
		federated.ProviderUserID = *user.ProviderUserID
	}
	return federated
}

// applyAuthMethod 将登录方式写回用户记录
func applyAuthMethod(user *models.User, method AuthMethod) {
	switch m := method.(type) {
	case LocalAuth:
		user.AuthProvider = constants.AuthProviderLocal
		user.PasswordHash = m.PasswordHash
		user.ProviderUserID = nil
	case FederatedAuth:
		providerUserID := m.ProviderUserID
		user.AuthProvider = m.ProviderID
		user.ProviderUserID = &providerUserID
		user.PasswordHash = ""
	}
}
