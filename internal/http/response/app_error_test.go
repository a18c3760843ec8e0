package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAppErrorUnwrapsAndClassifies(t *testing.T) {
	storeErr := errors.New("dial tcp: connection refused")
	appErr := WrapError(CodeUnavailable, "error.store_unavailable", "Service temporarily unavailable", storeErr)
	require.ErrorIs(t, appErr, storeErr)
	require.True(t, appErr.Severe())
	require.Equal(t, "Service temporarily unavailable: dial tcp: connection refused", appErr.Error())

	notFound := WrapError(CodeNotFound, "error.review_not_found", "", nil)
	require.False(t, notFound.Severe())
	require.Equal(t, "error.review_not_found", notFound.Error())
}

func TestFailWritesEnvelopeWithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-42")

	Fail(c, WrapError(CodeBadRequest, "error.cart_quantity_invalid", "Quantity must be between 1 and 999", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, CodeBadRequest, body.StatusCode)
	require.Equal(t, "Quantity must be between 1 and 999", body.Msg)
	require.Equal(t, "req-42", body.Data["request_id"])
}
