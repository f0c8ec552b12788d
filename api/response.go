package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the generic response envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse is the paginated list envelope. HasMore is true while
// total > page*limit; pages past the end yield an empty list, not an error.
type PageResponse struct {
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	HasMore bool        `json:"has_more"`
	List    interface{} `json:"list"`
}

// NewPageResponse fills the envelope, deriving HasMore.
func NewPageResponse(total int64, page, limit int, list interface{}) PageResponse {
	return PageResponse{
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: total > int64(page)*int64(limit),
		List:    list,
	}
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage writes a 200 response with a custom message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error writes an error response.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound writes a 404 response. Handlers use the same message whether the
// row is missing or owned by someone else.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}
