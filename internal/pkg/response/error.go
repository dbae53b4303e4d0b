package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homease/home-services-backend/internal/i18n"
	"github.com/homease/home-services-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response.
// AppError values determine the status code and carry a translation key that
// is resolved against the request language; anything else becomes an opaque
// 500 so storage details never leak to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: localize(c, appErr.Key, appErr.Message)})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: localize(c, "server_error", "internal server error")})
}

func localize(c *gin.Context, key, fallback string) string {
	t, lang, ok := i18n.FromContext(c)
	if !ok {
		return fallback
	}
	return t.T(c.Request.Context(), lang, key, fallback)
}
