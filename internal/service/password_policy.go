package service

import (
	"unicode"

	"github.com/shopease-next/internal/config"
)

// PasswordPolicyError 密码不满足策略，Key 为 i18n 文案键
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e PasswordPolicyError) Error() string {
	return e.key
}

// Is 使 errors.Is(err, ErrWeakPassword) 成立
func (e PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 文案键
func (e PasswordPolicyError) Key() string {
	return e.key
}

// Args 文案参数
func (e PasswordPolicyError) Args() []interface{} {
	return e.args
}

type passwordTraits struct {
	upper, lower, number, special bool
}

func scanPassword(password string) passwordTraits {
	var t passwordTraits
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			t.upper = true
		case unicode.IsLower(r):
			t.lower = true
		case unicode.IsDigit(r):
			t.number = true
		default:
			t.special = true
		}
	}
	return t
}

// validatePassword 按配置校验密码强度，返回第一条未满足的规则
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}
	traits := scanPassword(password)
	rules := []struct {
		required bool
		ok       bool
		key      string
	}{
		{policy.RequireUpper, traits.upper, "error.password_require_upper"},
		{policy.RequireLower, traits.lower, "error.password_require_lower"},
		{policy.RequireNumber, traits.number, "error.password_require_number"},
		{policy.RequireSpecial, traits.special, "error.password_require_special"},
	}
	for _, rule := range rules {
		if rule.required && !rule.ok {
			return PasswordPolicyError{key: rule.key}
		}
	}
	return nil
}
