package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyplanner-backend/internal/platform/apierr"
)

// ErrorBody is the error shape the UI reads: a human message plus a stable code.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: message, Code: code})
}

// RespondAPIError renders an *apierr.Error found in err's chain. Anything else
// becomes a 500 without leaking err's text.
func RespondAPIError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		RespondError(c, ae.Status, ae.Code, ae.Message)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", "Internal server error.")
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
