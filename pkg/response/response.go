package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Status    string                 `json:"status"`
	Message   string                 `json:"message"`
	Timestamp time.Time              `json:"timestamp"`
	Data      interface{}            `json:"data,omitempty"`
	ErrorCode string                 `json:"error_code,omitempty"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
}

// Paginated wraps list payloads with offset pagination metadata.
type Paginated struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// JSON sends a success response with an optional meta map.
func JSON(c *gin.Context, status int, message string, data interface{}, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{
		Status:    "success",
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message string, data interface{}, meta ...map[string]interface{}) {
	JSON(c, http.StatusOK, message, data, meta...)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{
		Status:    "error",
		Message:   appErr.Message,
		Timestamp: time.Now().UTC(),
		ErrorCode: appErr.Code,
	})
}
