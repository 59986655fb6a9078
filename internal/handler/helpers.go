package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sumitroy01/Donate-v2/internal/middleware"
	"github.com/sumitroy01/Donate-v2/internal/pkg/errcode"
	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
	"github.com/sumitroy01/Donate-v2/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

// handleError translates service errors into the response envelope. Anything
// outside the known set is logged and downgraded to a generic internal error
// so no detail leaks.
func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case err == appErr.ErrUnauthorized:
		response.Error(c, errcode.ErrUnauthorized, "invalid credentials")
	case err == appErr.ErrForbidden:
		// The client routes to the verify screen off this flag.
		response.ErrorWithData(c, errcode.ErrForbidden, "account not verified",
			gin.H{"requires_verification": true})
	case err == appErr.ErrNotFound:
		response.Error(c, errcode.ErrNotFound, "not found")
	case err == appErr.ErrInvalid:
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case err == appErr.ErrConflict:
		response.Error(c, errcode.ErrConflict, "already exists")
	case err == appErr.ErrTooMany:
		response.Error(c, errcode.ErrTooMany, "please wait before requesting another code")
	case err == appErr.ErrAlreadyVerified:
		response.Error(c, errcode.ErrAlreadyVerified, "account already verified")
	case err == appErr.ErrCodeExpired:
		response.Error(c, errcode.ErrCodeExpired, "code expired, please request a new one")
	case err == appErr.ErrCodeInvalid:
		response.Error(c, errcode.ErrCodeInvalid, "invalid code")
	case err == appErr.ErrCodeInvalidOrExpired:
		response.Error(c, errcode.ErrCodeInvalid, "invalid or expired code")
	case err == appErr.ErrWeakPassword:
		response.Error(c, errcode.ErrWeakPassword, "password must be at least 6 characters")
	case err == appErr.ErrUpstream:
		response.Error(c, errcode.ErrUpstream, "payment gateway unavailable")
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err))
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
