package admin

import (
	handlershared "github.com/shopease-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// getOperatorID 当前操作的运营账号（即登录用户）
func getOperatorID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}
