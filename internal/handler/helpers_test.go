package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
)

func TestHandleError_UnverifiedLoginCarriesVerificationFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)

	handleError(c, appErr.ErrForbidden)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	require.Contains(t, body, "account not verified")
	require.Contains(t, body, `"requires_verification":true`)
}
