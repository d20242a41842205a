package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the uniform error payload. Clients always get JSON on
// failure, never a bare stack trace.
type ErrorBody struct {
	Error     string    `json:"error"`
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorBody{
		Error:     http.StatusText(code),
		Code:      code,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}
