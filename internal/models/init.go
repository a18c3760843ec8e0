package models

import (
	"errors"
	"strings"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitDefaultAdmin 初始化默认运营账号，返回其用户记录
// 已存在同邮箱用户时直接返回，不覆盖密码
func InitDefaultAdmin(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "admin@shopease.local"
	}

	var existing User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{
		Email:        email,
		Name:         "Administrator",
		AuthProvider: constants.AuthProviderLocal,
		PasswordHash: string(hash),
		Status:       constants.UserStatusActive,
	}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return &user, nil
}
