package i18n

import (
	"fmt"
	"strings"

	"github.com/shopease-next/internal/constants"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// ContextKey gin 上下文中保存语言的键
const ContextKey = "locale"

var matcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.SimplifiedChinese,
})

// NormalizeLocale 将任意语言标识归一化为受支持的语言，无法识别时返回默认语言
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.LocaleEnUS
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return constants.LocaleEnUS
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return constants.LocaleEnUS
	}
	return constants.SupportedLocales[index]
}

// ResolveLocale 解析请求语言：上下文 > ?lang= > X-Locale > Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEnUS
	}
	if value, ok := c.Get(ContextKey); ok {
		if locale, ok := value.(string); ok && locale != "" {
			return locale
		}
	}
	for _, candidate := range []string{
		c.Query("lang"),
		c.GetHeader("X-Locale"),
		c.GetHeader("Accept-Language"),
	} {
		if strings.TrimSpace(candidate) != "" {
			return NormalizeLocale(candidate)
		}
	}
	return constants.LocaleEnUS
}

// T 翻译文案，缺失时回退到英文，再回退到 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(constants.LocaleEnUS, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译带参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
