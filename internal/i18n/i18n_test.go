package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopease-next/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":                     constants.LocaleEnUS,
		"zh-CN":                constants.LocaleZhCN,
		"zh":                   constants.LocaleZhCN,
		"en-GB,en;q=0.8":       constants.LocaleEnUS,
		"fr-FR, zh-Hans;q=0.9": constants.LocaleZhCN,
		"not a locale !!":      constants.LocaleEnUS,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Errorf("NormalizeLocale(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestResolveLocalePrecedence(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=zh-CN", nil)
	c.Request.Header.Set("Accept-Language", "en-US")
	if got := ResolveLocale(c); got != constants.LocaleZhCN {
		t.Fatalf("query must win over header, got %s", got)
	}

	c.Set(ContextKey, constants.LocaleEnUS)
	if got := ResolveLocale(c); got != constants.LocaleEnUS {
		t.Fatalf("context value must win, got %s", got)
	}
}

func TestTranslateFallbacks(t *testing.T) {
	if got := T(constants.LocaleZhCN, "error.order_not_found"); got != "订单不存在" {
		t.Fatalf("unexpected zh message: %s", got)
	}
	if got := T("de-DE", "error.order_not_found"); got != "Order not found" {
		t.Fatalf("unknown locale must fall back to english, got %s", got)
	}
	if got := T(constants.LocaleEnUS, "error.missing_key"); got != "error.missing_key" {
		t.Fatalf("missing key must return key, got %s", got)
	}
	if got := Sprintf(constants.LocaleEnUS, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestMessageTablesHaveSameKeys(t *testing.T) {
	en := messages[constants.LocaleEnUS]
	zh := messages[constants.LocaleZhCN]
	for key := range en {
		if _, ok := zh[key]; !ok {
			t.Errorf("zh-CN missing key %s", key)
		}
	}
	for key := range zh {
		if _, ok := en[key]; !ok {
			t.Errorf("en-US missing key %s", key)
		}
	}
}
