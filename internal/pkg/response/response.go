package response

import "github.com/gin-gonic/gin"

// Error codes shared by handlers.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeInternal   = "INTERNAL_ERROR"
)

// JSON writes data as the bare response body.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Error writes the failure envelope. The top-level message mirrors error.message
// so clients reading either field see the same text.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func AbortWithError(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
